// Package filesystem provides the filesystem used by convertdemo.
//
// AferoFS implements types.FS over afero: the OS filesystem for the CLI and
// an in-memory one for tests. The same value is handed to synthfs when the
// writer runs its write pipelines.
package filesystem
