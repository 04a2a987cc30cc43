package translate

import (
	"regexp"
	"strings"

	"github.com/starford/ehwaz/internal/profile"
)

// Translate classifies path against the registered profiles and, when it
// belongs to a foreign profile, rewrites it into the current computer's
// convention. The path is returned unchanged when it is unclassifiable,
// when no current-computer profile is registered, or when the rewrite
// cannot prove its remainder extraction succeeded.
func Translate(path string, profiles []profile.Profile, current *profile.Profile) string {
	src := Classify(path, profiles, current)
	if src == nil {
		return path
	}
	return From(path, *src, current)
}

// From rewrites a path classified as belonging to src into the current
// profile's convention.
func From(path string, src profile.Profile, current *profile.Profile) string {
	if current == nil || src.ID == current.ID {
		return path
	}

	remainder, ok := stripRoot(path, src)
	if !ok {
		// Classifier matched but the full root prefix (user segment plus
		// sub-path) is not present in this exact form. Never emit a
		// partial rewrite.
		return path
	}

	return rootPrefix(*current) + remainder
}

// rootPrefix is the current profile's documents-root prefix, always in
// forward-slash form. Windows targets are anchored to drive C:.
func rootPrefix(p profile.Profile) string {
	var root string
	switch p.Platform {
	case profile.PlatformWindows:
		root = "C:/Users/" + p.Username + "/"
	default:
		root = "/Users/" + p.Username + "/"
	}
	if p.SubPath != "" {
		root += strings.Trim(p.SubPath, "/") + "/"
	}
	return root
}

// stripRoot removes the source profile's root prefix (home directory plus
// optional sub-path) from path and returns the relative remainder with
// forward slashes. ok is false when the prefix is not actually present.
func stripRoot(path string, src profile.Profile) (string, bool) {
	re, err := sourceRootRe(src)
	if err != nil {
		return "", false
	}
	loc := re.FindStringIndex(path)
	if loc == nil {
		return "", false
	}
	remainder := path[loc[1]:]
	remainder = strings.ReplaceAll(remainder, `\`, "/")
	return remainder, true
}

// sourceRootRe builds the root-prefix matcher for the source profile.
func sourceRootRe(src profile.Profile) (*regexp.Regexp, error) {
	sub := strings.Trim(src.SubPath, "/")
	switch src.Platform {
	case profile.PlatformWindows:
		expr := `(?i)[a-z]:[/\\]Users[/\\]` + regexp.QuoteMeta(src.Username) + `[/\\]`
		if sub != "" {
			expr += strings.ReplaceAll(regexp.QuoteMeta(sub), "/", `[/\\]`) + `[/\\]`
		}
		return regexp.Compile(expr)
	default:
		expr := regexp.QuoteMeta("/Users/"+src.Username+"/")
		if sub != "" {
			expr += regexp.QuoteMeta(sub) + "/"
		}
		return regexp.Compile(expr)
	}
}
