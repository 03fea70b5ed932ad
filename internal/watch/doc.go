// Package watch notices the converter output appearing while the user works
// in the external tool. It is informational; the workflow still waits for
// the user's confirmation.
package watch
