// Package cli parses command-line arguments, validates user input and maps
// failures to process exit codes. Flags are layered on top of an optional
// HCL configuration file.
package cli
