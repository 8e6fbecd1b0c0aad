// Package testsupport holds fixtures shared by package tests: isolated
// configs rooted in t.TempDir and an opened lyrics cache.
package testsupport
