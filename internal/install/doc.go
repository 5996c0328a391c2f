// Package install places the standards artifacts into a target repository,
// merging project configuration where needed and recording a manifest of
// what was installed.
package install
