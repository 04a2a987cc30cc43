package translate

import (
	"testing"

	"github.com/starford/ehwaz/internal/profile"
)

func TestTranslate_MacToWindows(t *testing.T) {
	src := macProfile("mac-alice", "alice", "Dropbox")
	cur := winProfile("win-alice", "alice", "")
	profiles := []profile.Profile{src, cur}

	got := Translate("/Users/alice/Dropbox/attachments/cat.png", profiles, &cur)
	want := "C:/Users/alice/attachments/cat.png"
	if got != want {
		t.Fatalf("Translate = %q, want %q", got, want)
	}
}

func TestTranslate_WindowsToMac(t *testing.T) {
	src := winProfile("win-bob", "bob", "")
	cur := macProfile("mac-alice", "alice", "notes")
	profiles := []profile.Profile{src, cur}

	got := Translate(`D:\Users\bob\vault\img.png`, profiles, &cur)
	want := "/Users/alice/notes/vault/img.png"
	if got != want {
		t.Fatalf("Translate = %q, want %q", got, want)
	}
}

func TestTranslate_RoundTripIsStable(t *testing.T) {
	mac := macProfile("mac-alice", "alice", "")
	win := winProfile("win-bob", "bob", "")
	profiles := []profile.Profile{mac, win}

	start := "/Users/alice/Pictures/cat.png"
	onWindows := Translate(start, profiles, &win)
	if onWindows != "C:/Users/bob/Pictures/cat.png" {
		t.Fatalf("forward = %q", onWindows)
	}
	back := Translate(onWindows, profiles, &mac)
	if back != start {
		t.Fatalf("round trip = %q, want %q", back, start)
	}
}

func TestTranslate_AlreadyLocalUnchanged(t *testing.T) {
	cur := macProfile("mac-alice", "alice", "")
	profiles := []profile.Profile{cur, winProfile("win-bob", "bob", "")}

	path := "/Users/alice/Pictures/cat.png"
	if got := Translate(path, profiles, &cur); got != path {
		t.Fatalf("Translate = %q, want unchanged", got)
	}
}

func TestTranslate_NoCurrentProfile(t *testing.T) {
	profiles := []profile.Profile{winProfile("win-bob", "bob", "")}
	path := `C:\Users\bob\img.png`
	if got := Translate(path, profiles, nil); got != path {
		t.Fatalf("Translate = %q, want unchanged", got)
	}
}

func TestTranslate_UnclassifiableUnchanged(t *testing.T) {
	cur := macProfile("mac-alice", "alice", "")
	profiles := []profile.Profile{cur}
	path := "/opt/shared/cat.png"
	if got := Translate(path, profiles, &cur); got != path {
		t.Fatalf("Translate = %q, want unchanged", got)
	}
}

func TestFrom_SubPathNotPresentLeavesUnchanged(t *testing.T) {
	// The classifier only checks the user segment; when the source
	// profile's sub-path is missing from the actual path, the rewrite
	// must refuse rather than emit a partial result.
	src := macProfile("mac-alice", "alice", "Dropbox/notes")
	cur := winProfile("win-alice", "alice", "")

	path := "/Users/alice/Desktop/cat.png"
	if got := From(path, src, &cur); got != path {
		t.Fatalf("From = %q, want unchanged", got)
	}
}

func TestFrom_SourceEqualsCurrent(t *testing.T) {
	p := macProfile("mac-alice", "alice", "")
	path := "/Users/alice/cat.png"
	if got := From(path, p, &p); got != path {
		t.Fatalf("From = %q, want unchanged", got)
	}
}

func TestTranslate_WindowsTargetAnchoredToDriveC(t *testing.T) {
	src := macProfile("mac-alice", "alice", "")
	cur := winProfile("win-alice", "alice", "")
	profiles := []profile.Profile{src, cur}

	got := Translate("/Users/alice/a b/cat.png", profiles, &cur)
	want := "C:/Users/alice/a b/cat.png"
	if got != want {
		t.Fatalf("Translate = %q, want %q", got, want)
	}
}

func TestTranslate_WindowsSourceSubPathBackslashes(t *testing.T) {
	src := winProfile("win-bob", "bob", "Sync/vault")
	cur := macProfile("mac-alice", "alice", "")
	profiles := []profile.Profile{src, cur}

	got := Translate(`C:\Users\bob\Sync\vault\img\cat.png`, profiles, &cur)
	want := "/Users/alice/img/cat.png"
	if got != want {
		t.Fatalf("Translate = %q, want %q", got, want)
	}
}
