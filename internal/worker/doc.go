// Package worker runs long menubg operations one at a time off the prompt
// goroutine.
//
// A Worker accepts a single active job. Submitting while a job runs fails with
// ErrBusy, and a gofrs/flock lock file in the backup directory keeps a second
// menubg process from touching the same files concurrently.
package worker
