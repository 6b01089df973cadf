//go:build !unix

package system

// OwnerOf is not available without POSIX ownership.
func OwnerOf(path string) (string, error) {
	return "", ErrUnsupported
}
