// Package artifacts locates toolchain build outputs by file extension and
// enforces that each artifact category resolves to exactly one file.
package artifacts
