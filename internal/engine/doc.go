// Package engine walks a directory tree and runs the PII detector over every
// eligible text file with a bounded worker pool. This package is internal;
// external consumers should use the stable facade in pkg/core.
package engine
