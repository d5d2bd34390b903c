// Package core provides a small, stable facade over piiguard's internal
// packages for external integrations. It re-exports a narrow API surface so
// third-party tools can depend on a stable import path without importing
// internal implementation packages.
//
// Example:
//
//	det := core.NewDetector(core.WithMinConfidence(0.8))
//	entities := det.Detect("Contact john.doe@example.com")
//	_ = core.MarshalEntities(os.Stdout, entities)
//
// Programs that prefer a process-wide detector call Init once at startup and
// Shutdown before exit; Detect and Redact then use it.
package core
