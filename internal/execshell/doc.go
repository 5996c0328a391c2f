// Package execshell provides structured helpers for invoking external tools.
//
// It wraps os/exec with logging and lifecycle events via ShellExecutor, exposes
// OSCommandRunner for default process execution, and defines abstractions used
// throughout standards to run git and pre-commit in a testable manner.
package execshell
