// Package testutils holds fixtures shared by package tests: word corpora,
// a controllable clock, failing repositories and an slog capture handler.
// It must only be imported from _test.go files.
package testutils
