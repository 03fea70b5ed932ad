// Package preflight provides readiness checks for the filesystem paths and
// external tools menubg depends on.
//
// These checks run in two contexts:
//   - Commands that modify the game installation call RunAll before starting
//     and refuse to continue when a required check fails.
//   - The CLI "menubg status" command renders every Result as a table row.
package preflight
