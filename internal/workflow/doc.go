// Package workflow drives the convert-and-install sequence as an explicit
// state machine.
//
// Machine walks Idle → Backing-Up → Awaiting-External-Tool → Verifying-Output
// → Installing → Done, moving one step per Advance call. Steps that need the
// user (confirming the converter finished, locating its output by hand) take
// their answer through Input, so the machine runs the same under a terminal
// prompt, a script, or a test. Any failed step lands in Failed; nothing is
// retried automatically and Cancel or Reset return to Idle.
package workflow
