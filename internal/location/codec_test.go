package location

import "testing"

func TestDecode_MacIdentifier(t *testing.T) {
	got := Decode("file:///Users/alice/Pictures/cat%20photo.png")
	want := "/Users/alice/Pictures/cat photo.png"
	if got != want {
		t.Fatalf("Decode = %q, want %q", got, want)
	}
}

func TestDecode_WindowsTripleSlash(t *testing.T) {
	got := Decode("file:///C:/Users/alice/cat.png")
	want := "C:/Users/alice/cat.png"
	if got != want {
		t.Fatalf("Decode = %q, want %q", got, want)
	}
}

func TestDecode_WindowsEncodedDriveColon(t *testing.T) {
	// Some producers percent-encode the drive colon; decoding unwinds it
	// and still strips the authority slash in front of the drive.
	got := Decode("file:///C%3A/Users/alice/My%20Vault/cat.png")
	want := "C:/Users/alice/My Vault/cat.png"
	if got != want {
		t.Fatalf("Decode = %q, want %q", got, want)
	}
}

func TestDecode_DoubleEncodingUnwinds(t *testing.T) {
	// %2520 is "%20" encoded again. Decoding runs to a fixed point.
	got := Decode("file:///Users/alice/a%2520b/cat.png")
	want := "/Users/alice/a b/cat.png"
	if got != want {
		t.Fatalf("Decode = %q, want %q", got, want)
	}
}

func TestDecode_BadEscapeFallsBackToLastGood(t *testing.T) {
	// "%zz" is not a valid escape; the raw remainder survives.
	got := Decode("file:///Users/alice/100%zz/cat.png")
	want := "/Users/alice/100%zz/cat.png"
	if got != want {
		t.Fatalf("Decode = %q, want %q", got, want)
	}
}

func TestDecode_MissingHomeSlashRestored(t *testing.T) {
	got := Decode("file://Users/alice/cat.png")
	want := "/Users/alice/cat.png"
	if got != want {
		t.Fatalf("Decode = %q, want %q", got, want)
	}
}

func TestDecode_RemotePassthrough(t *testing.T) {
	for _, id := range []string{
		"https://example.com/a%20b.png",
		"http://example.com/img.png",
	} {
		if got := Decode(id); got != id {
			t.Errorf("Decode(%q) = %q, want unchanged", id, got)
		}
	}
}

func TestEncode_MacTwoSlashForm(t *testing.T) {
	got := Encode("/Users/alice/Pictures/cat photo.png")
	want := "file:///Users/alice/Pictures/cat%20photo.png"
	if got != want {
		t.Fatalf("Encode = %q, want %q", got, want)
	}
}

func TestEncode_WindowsTripleSlashDriveVerbatim(t *testing.T) {
	got := Encode(`C:\Users\alice\My Vault\cat.png`)
	want := "file:///C:/Users/alice/My%20Vault/cat.png"
	if got != want {
		t.Fatalf("Encode = %q, want %q", got, want)
	}
}

func TestEncode_SeparatorsSurvive(t *testing.T) {
	got := Encode("/Users/alice/a#b/c?d/cat.png")
	want := "file:///Users/alice/a%23b/c%3Fd/cat.png"
	if got != want {
		t.Fatalf("Encode = %q, want %q", got, want)
	}
}

func TestRoundTrip(t *testing.T) {
	paths := []string{
		"/Users/alice/Pictures/cat.png",
		"/Users/alice/a b/c d.png",
		"C:/Users/alice/My Vault/cat.png",
	}
	for _, p := range paths {
		if got := Decode(Encode(p)); got != p {
			t.Errorf("Decode(Encode(%q)) = %q", p, got)
		}
	}
}

func TestIsRemote(t *testing.T) {
	if !IsRemote("https://example.com/x.png") {
		t.Error("https should be remote")
	}
	if !IsRemote("http://example.com/x.png") {
		t.Error("http should be remote")
	}
	if IsRemote("file:///Users/alice/x.png") {
		t.Error("file scheme is not remote")
	}
	if IsRemote("/Users/alice/x.png") {
		t.Error("plain path is not remote")
	}
}
