//go:build unix

package system

import (
	"fmt"
	"os"
	"os/user"
	"strconv"
	"syscall"
)

// OwnerOf returns the name of the user owning path. When the uid has no
// passwd entry the numeric uid is returned.
func OwnerOf(path string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", fmt.Errorf("error reading owner of %s: %w", path, err)
	}

	st, ok := info.Sys().(*syscall.Stat_t)
	if !ok {
		return "", fmt.Errorf("%w: no stat data for %s", ErrUnsupported, path)
	}

	uid := strconv.FormatUint(uint64(st.Uid), 10)
	u, err := user.LookupId(uid)
	if err != nil {
		return uid, nil
	}

	return u.Username, nil
}
