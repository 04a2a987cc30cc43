// Package translate classifies absolute asset paths by the computer
// profile that produced them and rewrites them into the running
// computer's path convention. Translation is best-effort string
// rewriting: the engine never checks that a translated path exists.
package translate

import (
	"regexp"
	"strings"

	"github.com/starford/ehwaz/internal/profile"
)

// Classify returns the registered profile whose path convention produced
// the given absolute path, or nil when no profile matches.
//
// The live current-computer profile is skipped: a path already in this
// computer's own convention never needs translation, and skipping it
// keeps the identity rewrite from being misclassified as foreign. The
// first matching profile wins, so registration order is significant.
func Classify(path string, profiles []profile.Profile, live *profile.Profile) *profile.Profile {
	for i := range profiles {
		p := profiles[i]
		if live != nil && p.ID == live.ID {
			continue
		}
		if matchesConvention(path, p) {
			return &p
		}
	}
	return nil
}

// matchesConvention reports whether path carries the profile's user
// segment. The separator immediately after the username is required so a
// username that prefixes another registered username cannot false-match.
func matchesConvention(path string, p profile.Profile) bool {
	switch p.Platform {
	case profile.PlatformMacOS:
		return strings.Contains(path, "/Users/"+p.Username+"/")
	case profile.PlatformWindows:
		return windowsUserRe(p.Username).MatchString(path)
	}
	return false
}

// windowsUserRe matches `<drive>:\Users\<name>\` case-insensitively with
// either separator style.
func windowsUserRe(username string) *regexp.Regexp {
	return regexp.MustCompile(`(?i)[a-z]:[/\\]Users[/\\]` + regexp.QuoteMeta(username) + `[/\\]`)
}
