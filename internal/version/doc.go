// Package version exposes the tool version stamped into installation manifests.
package version
