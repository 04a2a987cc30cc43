package parser

import "testing"

func TestParse_FrontmatterAndTitle(t *testing.T) {
	content := []byte(`---
title: My Note
tags: [a, b]
---
# Heading

![cat](attachments/cat.png)
`)
	res, err := Parse(content)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if res.Title != "My Note" {
		t.Errorf("Title = %q", res.Title)
	}
	if res.Frontmatter["title"] != "My Note" {
		t.Errorf("Frontmatter = %v", res.Frontmatter)
	}
	if len(res.Embeds) != 1 {
		t.Fatalf("Embeds = %v", res.Embeds)
	}
}

func TestParse_TitleFromHeading(t *testing.T) {
	res, err := Parse([]byte("intro\n# The Title\nbody"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if res.Title != "The Title" {
		t.Errorf("Title = %q", res.Title)
	}
}

func TestExtractEmbeds_Positions(t *testing.T) {
	text := "first line\nsee ![a cat](file:///Users/alice/cat.png) here\n"
	embeds := ExtractEmbeds(text)
	if len(embeds) != 1 {
		t.Fatalf("embeds = %v", embeds)
	}
	e := embeds[0]
	if e.Line != 1 || e.Column != 4 {
		t.Errorf("position = (%d,%d), want (1,4)", e.Line, e.Column)
	}
	if e.Alt != "a cat" {
		t.Errorf("Alt = %q", e.Alt)
	}
	if e.Target != "file:///Users/alice/cat.png" {
		t.Errorf("Target = %q", e.Target)
	}
	if e.Raw != "![a cat](file:///Users/alice/cat.png)" {
		t.Errorf("Raw = %q", e.Raw)
	}
}

func TestExtractEmbeds_MultiplePerLine(t *testing.T) {
	text := "![a](x.png) and ![b](y.png)"
	embeds := ExtractEmbeds(text)
	if len(embeds) != 2 {
		t.Fatalf("embeds = %v", embeds)
	}
	if embeds[0].Target != "x.png" || embeds[1].Target != "y.png" {
		t.Errorf("targets = %q, %q", embeds[0].Target, embeds[1].Target)
	}
	if embeds[1].Column <= embeds[0].Column {
		t.Errorf("columns not increasing: %d, %d", embeds[0].Column, embeds[1].Column)
	}
}

func TestExtractEmbeds_Wikilink(t *testing.T) {
	embeds := ExtractEmbeds("![[cat.png]] and ![[dog.png|a dog]]")
	if len(embeds) != 2 {
		t.Fatalf("embeds = %v", embeds)
	}
	if embeds[0].Target != "cat.png" {
		t.Errorf("Target = %q", embeds[0].Target)
	}
	if embeds[1].Target != "dog.png" {
		t.Errorf("aliased Target = %q", embeds[1].Target)
	}
	if embeds[1].Raw != "![[dog.png|a dog]]" {
		t.Errorf("Raw = %q", embeds[1].Raw)
	}
}

func TestExtractEmbeds_MixedFormsColumnOrder(t *testing.T) {
	embeds := ExtractEmbeds("![[w.png]] then ![x](i.png) then ![[v.png]]")
	if len(embeds) != 3 {
		t.Fatalf("embeds = %v", embeds)
	}
	wantTargets := []string{"w.png", "i.png", "v.png"}
	for i, want := range wantTargets {
		if embeds[i].Target != want {
			t.Errorf("embeds[%d].Target = %q, want %q", i, embeds[i].Target, want)
		}
	}
	for i := 1; i < len(embeds); i++ {
		if embeds[i].Column <= embeds[i-1].Column {
			t.Errorf("columns not increasing: %d then %d", embeds[i-1].Column, embeds[i].Column)
		}
	}
}

func TestExtractEmbeds_IgnoresPlainLinks(t *testing.T) {
	embeds := ExtractEmbeds("[not an embed](cat.png) and [[not either]]")
	if len(embeds) != 0 {
		t.Fatalf("embeds = %v", embeds)
	}
}

func TestReplaceTarget(t *testing.T) {
	raw := "![a cat](file:///Users/alice/cat.png)"
	got := ReplaceTarget(raw, "file:///Users/alice/cat.png", "file:///C:/Users/bob/cat.png")
	want := "![a cat](file:///C:/Users/bob/cat.png)"
	if got != want {
		t.Fatalf("ReplaceTarget = %q, want %q", got, want)
	}
}

func TestReplaceTarget_WikilinkKeepsAlias(t *testing.T) {
	got := ReplaceTarget("![[cat.png|a cat]]", "cat.png", "new-cat.png")
	want := "![[new-cat.png|a cat]]"
	if got != want {
		t.Fatalf("ReplaceTarget = %q, want %q", got, want)
	}
}

func TestParse_NoFrontmatter(t *testing.T) {
	res, err := Parse([]byte("just a body"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if res.Frontmatter != nil {
		t.Errorf("Frontmatter = %v, want nil", res.Frontmatter)
	}
	if res.Body != "just a body" {
		t.Errorf("Body = %q", res.Body)
	}
}
