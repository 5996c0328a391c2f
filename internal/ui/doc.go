// Package ui renders command lifecycle events and human-readable reports.
//
// ConsoleCommandEventLogger narrates external command execution through a zap
// logger configured for console output, and StatusPrinter renders colored
// compliance rows when standard output is attached to a terminal.
package ui
