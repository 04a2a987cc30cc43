package profile

import "testing"

func TestPlatformValid(t *testing.T) {
	if !PlatformMacOS.Valid() || !PlatformWindows.Valid() {
		t.Error("known platforms should be valid")
	}
	if Platform("linux").Valid() {
		t.Error("unknown platform should be invalid")
	}
}

func TestIs_WindowsCaseInsensitive(t *testing.T) {
	p := Profile{Platform: PlatformWindows, Username: "Alice"}
	if !p.Is(Identity{Platform: PlatformWindows, Username: "alice"}) {
		t.Error("windows usernames compare case-insensitively")
	}
}

func TestIs_MacCaseSensitive(t *testing.T) {
	p := Profile{Platform: PlatformMacOS, Username: "Alice"}
	if p.Is(Identity{Platform: PlatformMacOS, Username: "alice"}) {
		t.Error("macos usernames compare exactly")
	}
	if !p.Is(Identity{Platform: PlatformMacOS, Username: "Alice"}) {
		t.Error("exact match should hold")
	}
}

func TestIs_PlatformMismatch(t *testing.T) {
	p := Profile{Platform: PlatformMacOS, Username: "alice"}
	if p.Is(Identity{Platform: PlatformWindows, Username: "alice"}) {
		t.Error("identities on different platforms never match")
	}
}

func TestDetectLiveIdentity_MacVault(t *testing.T) {
	id := DetectLiveIdentity("/Users/alice/notes/vault")
	if id.Platform != PlatformMacOS || id.Username != "alice" {
		t.Fatalf("identity = %+v", id)
	}
}

func TestDetectLiveIdentity_WindowsVault(t *testing.T) {
	for _, path := range []string{
		`C:\Users\Alice\vault`,
		"c:/users/Alice/vault",
	} {
		id := DetectLiveIdentity(path)
		if id.Platform != PlatformWindows || id.Username != "Alice" {
			t.Errorf("DetectLiveIdentity(%q) = %+v", path, id)
		}
	}
}

func TestDetectLiveIdentity_OutsideHomeFallsBack(t *testing.T) {
	// A vault outside any home directory falls back to the environment
	// account; only the platform family is predictable here.
	id := DetectLiveIdentity("/srv/vault")
	if !id.Platform.Valid() {
		t.Fatalf("fallback platform invalid: %+v", id)
	}
}
