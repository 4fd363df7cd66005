// Package models defines the shared domain types for ArchGuide:
// verbosity levels, assistant targets, and the configuration section
// models consumed by internal/config.
//
// Types live here rather than in internal/ so that external tooling
// embedding ArchGuide as a library can construct filters and inspect
// configuration without reaching into internal packages.
package models
