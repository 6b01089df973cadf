package configfile

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// skippedFragment is the legacy name of the main template; it may live
// next to the fragments and must not be appended to itself.
const skippedFragment = "openerp_serverrc"

// Exists reports whether path exists. Errors other than "not exist" are
// returned.
func Exists(path string) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}

	return false, fmt.Errorf("error checking %s: %w", path, err)
}

// Copy copies src to dst, keeping the permission bits of src. dst is
// created or truncated.
func Copy(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("error opening default config: %w", err)
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return fmt.Errorf("error reading default config: %w", err)
	}

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return fmt.Errorf("error creating config file: %w", err)
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return fmt.Errorf("error copying default config: %w", err)
	}
	if err := out.Chmod(info.Mode().Perm()); err != nil {
		out.Close()
		return fmt.Errorf("error setting config file mode: %w", err)
	}

	return out.Close()
}

// AppendFragments appends every regular file in dir, in name order, to the
// config file. Each fragment is separated from the previous content by an
// empty line.
//
// Once at least one fragment is appended the whole file is rewritten
// normalized: lines of the config file itself, not only of the fragments,
// are trimmed and blank lines dropped, so the result is no longer
// byte-identical to the original. When nothing is appended the file is
// left untouched.
//
// A missing dir is not an error. Returns the number of fragments appended.
func AppendFragments(path, dir string) (int, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return 0, nil
		}
		return 0, fmt.Errorf("error listing config fragments: %w", err)
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })

	info, err := os.Stat(path)
	if err != nil {
		return 0, fmt.Errorf("error reading config file: %w", err)
	}

	lines, err := readLines(path)
	if err != nil {
		return 0, err
	}

	appended := 0
	for _, e := range entries {
		if !e.Type().IsRegular() || e.Name() == skippedFragment {
			continue
		}

		fragment, err := readLines(filepath.Join(dir, e.Name()))
		if err != nil {
			return 0, err
		}
		if len(fragment) == 0 {
			continue
		}

		lines = append(lines, "")
		lines = append(lines, fragment...)
		appended++
	}

	if appended == 0 {
		return 0, nil
	}

	if err := writeFile(path, joinLines(lines), info.Mode().Perm()); err != nil {
		return 0, err
	}

	return appended, nil
}

// readLines returns the trimmed, non-blank lines of a file.
func readLines(fileName string) ([]string, error) {
	content, err := os.ReadFile(fileName)
	if err != nil {
		return nil, fmt.Errorf("error reading %s: %w", fileName, err)
	}

	var res []string
	for _, l := range strings.Split(string(content), "\n") {
		a := strings.TrimSpace(l)
		if a != "" {
			res = append(res, a)
		}
	}

	return res, nil
}
