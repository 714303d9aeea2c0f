// Package preflight provides readiness checks for the binaries, paths,
// and disk space a render run depends on.
//
// The render command runs RunAll before opening the store so a doomed
// run fails in milliseconds instead of partway through an encode. Each
// check returns a Result rather than an error so the CLI can report all
// failures at once.
package preflight
