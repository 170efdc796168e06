// Package testsupport provides shared helpers for building test
// configurations and trajectory fixtures.
package testsupport
