// Package testutil provides utilities for testing convertdemo components.
//
// Key components:
//   - TestEnvironment: a viewer checkout plus servlet container laid out on
//     an in-memory or temporary on-disk filesystem, with the root
//     environment variables pointing at it
//   - file helpers that fail the test instead of returning errors
//
// Usage guidelines:
//   - prefer EnvMemoryOnly; use EnvIsolated when the code under test builds
//     its own OS filesystem (the CLI)
//   - define page content inline in the test
package testutil
