// Package detectors finds PII entities in free text. Candidates come from
// per-label regular expressions plus name and address heuristics; each is
// scored by pattern weight, nearby keywords and an optional format validator,
// then overlapping candidates are resolved into one entity per span.
package detectors
