// Package loader validates the toolchain-generated loader script against the
// expected structural templates and reassembles a minimal loader for a host
// runtime that exposes a synchronous module handle instead of asynchronous
// fetch bootstrapping.
package loader
