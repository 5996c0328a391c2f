// Package assets embeds the distributable standards artifacts and
// describes where each one belongs inside a target repository.
package assets
