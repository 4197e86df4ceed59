// Package main provides the entry point for the TaskFlow board.
//
// The bare command opens the kanban board TUI against the configured
// backend; `taskflow serve` runs a seeded in-memory backend for local use.
package main

import "github.com/taskflow/taskflow/internal/cli"

func main() {
	cli.Execute()
}
