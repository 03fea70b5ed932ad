//go:build windows

package preflight

import "os"

// Windows ACLs are not visible through mode bits, so probe with a real file.
func checkAccess(path string) error {
	f, err := os.CreateTemp(path, ".menubg-probe-*")
	if err != nil {
		return err
	}
	name := f.Name()
	if err := f.Close(); err != nil {
		return err
	}
	return os.Remove(name)
}
