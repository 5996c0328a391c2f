// Package manifest records what an installation placed into a repository
// so later compliance checks can compare against it.
package manifest
