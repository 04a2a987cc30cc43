package refs

import "testing"

func TestResolve_RelativeToDocument(t *testing.T) {
	got := Resolve("attachments/cat.png", "notes/topic.md")
	if got != "notes/attachments/cat.png" {
		t.Fatalf("Resolve = %q", got)
	}
}

func TestResolve_ParentTraversal(t *testing.T) {
	got := Resolve("../attachments/cat.png", "notes/topic.md")
	if got != "attachments/cat.png" {
		t.Fatalf("Resolve = %q", got)
	}
}

func TestResolve_TraversalCannotEscapeVault(t *testing.T) {
	got := Resolve("../../../etc/passwd", "notes/topic.md")
	if got != "etc/passwd" {
		t.Fatalf("Resolve = %q", got)
	}
}

func TestResolve_VaultAbsolute(t *testing.T) {
	got := Resolve("/attachments/cat.png", "notes/deep/topic.md")
	if got != "attachments/cat.png" {
		t.Fatalf("Resolve = %q", got)
	}
}

func TestResolve_PercentEncoded(t *testing.T) {
	got := Resolve("attachments/cat%20photo.png", "topic.md")
	if got != "attachments/cat photo.png" {
		t.Fatalf("Resolve = %q", got)
	}
}

func TestResolve_NonVaultTargets(t *testing.T) {
	for _, raw := range []string{
		"",
		"https://example.com/cat.png",
		"http://example.com/cat.png",
		"file:///Users/alice/cat.png",
	} {
		if got := Resolve(raw, "topic.md"); got != "" {
			t.Errorf("Resolve(%q) = %q, want \"\"", raw, got)
		}
	}
}

func TestMatches_FullPath(t *testing.T) {
	if !Matches("attachments/cat.png", "attachments/cat.png", "attachments/cat.png") {
		t.Error("exact resolved path should match")
	}
	if !Matches("attachments/Cat.PNG", "attachments/Cat.PNG", "attachments/cat.png") {
		t.Error("comparison is case-insensitive")
	}
	if Matches("attachments/dog.png", "attachments/dog.png", "attachments/cat.png") {
		t.Error("different asset should not match")
	}
}

func TestMatches_BareNameMatchesBasename(t *testing.T) {
	// Wikilink-style targets carry no path; they refer to the asset by
	// its basename regardless of which folder it lives in.
	if !Matches("cat.png", "cat.png", "attachments/cat.png") {
		t.Error("bare name should match the asset basename")
	}
	if Matches("notes/cat.png", "notes/cat.png", "attachments/cat.png") {
		t.Error("a pathed target resolving elsewhere should not match")
	}
}

func TestMatches_EmptyInputs(t *testing.T) {
	if Matches("cat.png", "", "attachments/cat.png") {
		t.Error("empty resolved should not match")
	}
	if Matches("cat.png", "cat.png", "") {
		t.Error("empty asset should not match")
	}
}
