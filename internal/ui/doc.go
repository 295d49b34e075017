// Package ui styles terminal output with a small [lipgloss] palette.
//
// [Default] is used by the CLI for headers, status lines and run summaries.
// Styles degrade to plain text when the output is not a terminal.
package ui
