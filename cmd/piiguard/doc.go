// Package piiguard provides the command-line interface for piiguard. It wires
// subcommands (scan, redact, anonymize, entities, etc.), parses flags, and
// executes the selected command.
//
// Typical usage from a main package:
//
//	package main
//	import "github.com/redactyl/piiguard/cmd/piiguard"
//	func main() { piiguard.Execute() }
package piiguard
