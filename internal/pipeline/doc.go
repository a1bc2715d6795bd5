// Package pipeline orchestrates the cargo web build stages: toolchain
// invocation, artifact location, loader validation, and final packaging of the
// binary module and host loader script.
package pipeline
