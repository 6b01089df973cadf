//go:build unix

package system

import "syscall"

func platformExec(argv0 string, argv []string, envv []string) error {
	return syscall.Exec(argv0, argv, envv)
}
