//go:build !unix

package system

func platformExec(argv0 string, argv []string, envv []string) error {
	return ErrUnsupported
}
