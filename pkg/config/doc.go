// Package config handles configuration management for convertdemo.
// Configuration is layered: embedded defaults, an optional user TOML file,
// the XNATIMAGEVIEWER_HOME / CATALINA_HOME roots, CONVERTDEMO_* environment
// variables and finally command-line overrides.
package config
