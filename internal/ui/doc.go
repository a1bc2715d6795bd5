// Package ui renders command lifecycle events for human operators.
package ui
