package configfile

import "errors"

var (
	// ErrEmptyPrefix is returned by [ChangeValue] when the search prefix is
	// empty, which would match every line.
	ErrEmptyPrefix = errors.New("search prefix must not be empty")

	// ErrMultilineReplacement is returned by [ChangeValue] when the
	// replacement contains a newline and would change the line count.
	ErrMultilineReplacement = errors.New("replacement must be a single line")
)
