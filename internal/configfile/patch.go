// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package configfile

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ChangeValue rewrites the file at path so that every line beginning with
// prefix becomes replacement. Other lines keep their content. Every output
// line ends with a single "\n".
//
// The file is replaced through a temp file in the same directory, keeping
// its permission bits. Applying the same (prefix, replacement) twice yields
// the same file as applying it once.
//
// Returns the number of replaced lines. Zero means the setting has no line
// in the file and was dropped; nothing is appended.
func ChangeValue(path, prefix, replacement string) (int, error) {
	if prefix == "" {
		return 0, ErrEmptyPrefix
	}
	if strings.Contains(replacement, "\n") {
		return 0, ErrMultilineReplacement
	}

	info, err := os.Stat(path)
	if err != nil {
		return 0, fmt.Errorf("error reading config file: %w", err)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("error reading config file: %w", err)
	}

	lines := splitLines(string(content))
	replaced := 0
	for i, line := range lines {
		if strings.HasPrefix(line, prefix) {
			lines[i] = replacement
			replaced++
		}
	}

	if err := writeFile(path, joinLines(lines), info.Mode().Perm()); err != nil {
		return 0, err
	}

	return replaced, nil
}

// splitLines splits content on "\n". A trailing newline does not produce an
// extra empty line.
func splitLines(content string) []string {
	if content == "" {
		return nil
	}

	return strings.Split(strings.TrimSuffix(content, "\n"), "\n")
}

func joinLines(lines []string) []byte {
	var b strings.Builder
	for _, line := range lines {
		b.WriteString(line)
		b.WriteByte('\n')
	}

	return []byte(b.String())
}

// writeFile atomically replaces path with data.
func writeFile(path string, data []byte, perm os.FileMode) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("error creating temp config file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName) // no-op once renamed

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("error writing temp config file: %w", err)
	}
	if err := tmp.Chmod(perm); err != nil {
		tmp.Close()
		return fmt.Errorf("error setting config file mode: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("error closing temp config file: %w", err)
	}

	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("error replacing config file: %w", err)
	}

	return nil
}
