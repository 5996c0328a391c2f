// Package compliance compares a repository against its installation manifest
// and restores drifted files to the packaged standards.
package compliance
