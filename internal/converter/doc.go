// Package converter starts the external BK2 conversion tool.
//
// The tool is closed source and driven entirely by the user, so menubg only
// starts it as a detached process with no arguments and never waits for it.
// When a direct start fails the launcher retries once through the platform
// shell before reporting ErrLaunch.
package converter
