// Package profile manages the registry of known computer identities that
// can produce absolute asset paths, and detection of the identity the
// engine is currently running under.
package profile

import (
	"os"
	"regexp"
	"runtime"
	"strings"
)

// Platform is the operating-system family a computer profile belongs to.
type Platform string

// Supported platforms.
const (
	PlatformMacOS   Platform = "macos"
	PlatformWindows Platform = "windows"
)

// Valid reports whether p is a known platform value.
func (p Platform) Valid() bool {
	return p == PlatformMacOS || p == PlatformWindows
}

// Profile is the identity of one machine/user pairing that can produce
// asset paths. SubPath is an optional relative segment between the user's
// home directory and the documents root (e.g. a synced cloud-drive folder).
type Profile struct {
	ID          string   `yaml:"id" json:"id"`
	DisplayName string   `yaml:"display_name" json:"display_name"`
	Platform    Platform `yaml:"platform" json:"platform"`
	Username    string   `yaml:"username" json:"username"`
	SubPath     string   `yaml:"sub_path,omitempty" json:"sub_path,omitempty"`
}

// Identity is the (platform, username) pair that distinguishes profiles.
type Identity struct {
	Platform Platform `json:"platform"`
	Username string   `json:"username"`
}

// Identity returns the profile's (platform, username) pair.
func (p Profile) Identity() Identity {
	return Identity{Platform: p.Platform, Username: p.Username}
}

// Is reports whether the profile carries the given identity. Usernames
// compare case-insensitively on Windows, exactly on macOS.
func (p Profile) Is(id Identity) bool {
	if p.Platform != id.Platform {
		return false
	}
	if p.Platform == PlatformWindows {
		return strings.EqualFold(p.Username, id.Username)
	}
	return p.Username == id.Username
}

var (
	macHomeRe = regexp.MustCompile(`/Users/([^/]+)/`)
	winHomeRe = regexp.MustCompile(`(?i)^[a-z]:[/\\]Users[/\\]([^/\\]+)[/\\]`)
)

// DetectLiveIdentity derives the identity of the running computer by
// pattern-matching the vault's own absolute location against the
// platform home-directory conventions. This is an environmental
// heuristic: a vault living outside the home directory falls back to the
// OS account name from the environment.
func DetectLiveIdentity(vaultPath string) Identity {
	slashed := strings.ReplaceAll(vaultPath, `\`, "/")
	if m := winHomeRe.FindStringSubmatch(vaultPath); m != nil {
		return Identity{Platform: PlatformWindows, Username: m[1]}
	}
	if m := macHomeRe.FindStringSubmatch(slashed); m != nil {
		return Identity{Platform: PlatformMacOS, Username: m[1]}
	}
	return envIdentity()
}

// envIdentity falls back to GOOS plus the account name from the environment.
func envIdentity() Identity {
	if runtime.GOOS == "windows" {
		return Identity{Platform: PlatformWindows, Username: os.Getenv("USERNAME")}
	}
	return Identity{Platform: PlatformMacOS, Username: os.Getenv("USER")}
}
