// Package reparse implements the reparse-point codec (C3): reading and
// writing junction and symbolic link reparse data, and translating between
// the raw NT-namespace name form and the "nice" user-facing form.
package reparse

import "strings"

const (
	rawPrefix  = `\??\`
	nicePrefix = `\\?\`
)

// RawToNice converts an NT-namespace ("raw") path, such as
// `\??\C:\foo` or `\??\Volume{GUID}\foo`, into its user-facing ("nice")
// form, such as `\\?\C:\foo` or `\\?\Volume{GUID}\foo`. Per spec.md §4.3,
// this is a pure textual substitution; paths not beginning with the raw
// prefix pass through unchanged.
func RawToNice(raw string) string {
	if strings.HasPrefix(raw, rawPrefix) {
		return nicePrefix + raw[len(rawPrefix):]
	}
	return raw
}

// NiceToRaw converts a user-facing ("nice") path into its NT-namespace
// ("raw") form. Paths not beginning with the nice prefix pass through
// unchanged.
func NiceToRaw(nice string) string {
	if strings.HasPrefix(nice, nicePrefix) {
		return rawPrefix + nice[len(nicePrefix):]
	}
	return nice
}
