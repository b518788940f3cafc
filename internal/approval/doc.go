// Package approval derives the gating state of a pull request from its raw reviews,
// check results and comments.
//
// Every function in this package is pure: no I/O, no clocks, no globals. The
// privileged reviewer set and the current time are passed in explicitly, so the
// same input always yields the same output.
package approval
