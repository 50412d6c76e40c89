// Package types defines the shared types and interfaces used throughout
// convertdemo: the filesystem abstraction, output targets and the result
// structures returned by commands.
package types
