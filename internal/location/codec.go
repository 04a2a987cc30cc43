// Package location converts between decoded filesystem paths and
// percent-encoded location identifiers (`file://…` URIs).
//
// The two directions round-trip: for any path whose segments contain no
// literal percent signs, Decode(Encode(path)) == path. Encoding an
// already-encoded identifier is never attempted by the engine; idempotence
// on the consuming side is handled by the scan passes' processed markers.
package location

import (
	"net/url"
	"regexp"
	"strings"
)

const fileScheme = "file://"

var winDriveRe = regexp.MustCompile(`^[A-Za-z]:(/|$)`)

// IsRemote reports whether the identifier points at a remote copy rather
// than a local file.
func IsRemote(identifier string) bool {
	return strings.HasPrefix(identifier, "http://") || strings.HasPrefix(identifier, "https://")
}

// Decode converts a location identifier into a decoded path.
//
// The file scheme is stripped, then the remainder is percent-decoded
// repeatedly until a fixed point is reached, unwinding accidental
// double-encoding introduced by producers. A decode error falls back to
// the last successful decode rather than failing. Remote identifiers are
// returned unchanged.
func Decode(identifier string) string {
	if IsRemote(identifier) {
		return identifier
	}
	s := strings.TrimPrefix(identifier, fileScheme)

	for {
		next, err := url.PathUnescape(s)
		if err != nil || next == s {
			break
		}
		s = next
	}

	// A windows file URI carries the drive after the authority slash:
	// file:///C:/… strips to /C:/…, which is not a real path.
	if len(s) > 1 && s[0] == '/' && winDriveRe.MatchString(s[1:]) {
		s = s[1:]
	}

	// Some producers drop the leading slash of the home segment.
	if strings.HasPrefix(s, "Users/") {
		s = "/" + s
	}

	return s
}

// Encode converts a decoded path into a file identifier, percent-encoding
// each path segment independently so separators survive.
//
// Windows absolute paths keep the drive-letter segment verbatim (its
// colon must not be escaped) and use the triple-slash scheme form.
// Non-windows paths use the two-slash form: their leading slash supplies
// the third one, and a literal triple-slash prefix would introduce an
// extra empty segment.
func Encode(path string) string {
	norm := strings.ReplaceAll(path, `\`, "/")
	isWindows := winDriveRe.MatchString(norm)

	segments := strings.Split(norm, "/")
	for i, seg := range segments {
		if isWindows && i == 0 {
			continue
		}
		segments[i] = url.PathEscape(seg)
	}
	encoded := strings.Join(segments, "/")

	if isWindows {
		return fileScheme + "/" + encoded
	}
	return fileScheme + encoded
}
