// Package configfile edits the line-oriented application server
// configuration file.
//
// [ChangeValue] is the in-place patcher: every line starting with a prefix
// is replaced verbatim, all other lines pass through untouched. [Copy]
// installs the bundled default and [AppendFragments] concatenates extra
// snippets onto a freshly installed file.
package configfile
