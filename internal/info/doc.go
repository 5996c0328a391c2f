// Package info reports the tool version and the packaged artifacts,
// including the titles of the bundled documentation guides.
package info
