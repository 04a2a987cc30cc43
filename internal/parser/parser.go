// Package parser extracts frontmatter, the document title, and
// embedded-asset occurrences (with exact positions) from Markdown content.
package parser

import (
	"bytes"
	"regexp"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/starford/ehwaz/internal/models"
)

var (
	// ![alt](target) — the target must be a single run without spaces or
	// parens, which is what the engine's own encoder produces.
	imageEmbedRe = regexp.MustCompile(`!\[([^\]]*)\]\(([^()\s]+)\)`)
	// ![[target]] / ![[target|alias]] — wikilink-style embeds.
	wikiEmbedRe = regexp.MustCompile(`!\[\[([^\]|]+)(?:\|[^\]]*)?\]\]`)
)

// Result holds the output of parsing a Markdown document.
type Result struct {
	Frontmatter map[string]interface{}
	Body        string
	Title       string
	Embeds      []models.Embed
}

// Parse extracts frontmatter, body, title, and embeds from raw Markdown bytes.
func Parse(data []byte) (*Result, error) {
	fm, body, err := splitFrontmatter(data)
	if err != nil {
		return nil, err
	}
	return &Result{
		Frontmatter: fm,
		Body:        body,
		Title:       deriveTitle(fm, body),
		Embeds:      ExtractEmbeds(string(data)),
	}, nil
}

// ExtractEmbeds returns every embedded-asset occurrence in text, in
// document order. Line and column are zero-based byte positions of the
// full matched markup, so the raw text can be replaced in place safely.
func ExtractEmbeds(text string) []models.Embed {
	var out []models.Embed
	for lineIdx, line := range strings.Split(text, "\n") {
		var found []models.Embed
		for _, m := range imageEmbedRe.FindAllStringSubmatchIndex(line, -1) {
			found = append(found, models.Embed{
				Line:   lineIdx,
				Column: m[0],
				Raw:    line[m[0]:m[1]],
				Alt:    line[m[2]:m[3]],
				Target: line[m[4]:m[5]],
			})
		}
		for _, m := range wikiEmbedRe.FindAllStringSubmatchIndex(line, -1) {
			found = append(found, models.Embed{
				Line:   lineIdx,
				Column: m[0],
				Raw:    line[m[0]:m[1]],
				Target: line[m[2]:m[3]],
			})
		}
		// Both forms can appear on one line; callers rely on column order
		// when they replace spans back to front.
		sort.Slice(found, func(i, j int) bool { return found[i].Column < found[j].Column })
		out = append(out, found...)
	}
	return out
}

// ReplaceTarget rebuilds an embed's raw markup with a new target,
// preserving the alt text or alias as written.
func ReplaceTarget(raw, oldTarget, newTarget string) string {
	// The target appears exactly once inside the markup forms matched
	// above, so a single replacement is sufficient and position-safe.
	return strings.Replace(raw, oldTarget, newTarget, 1)
}

// splitFrontmatter separates YAML frontmatter (between leading --- delimiters)
// from the Markdown body. If no frontmatter is found the entire content is body.
func splitFrontmatter(data []byte) (map[string]interface{}, string, error) {
	const delim = "---"
	trimmed := bytes.TrimLeft(data, "\n\r")

	if !bytes.HasPrefix(trimmed, []byte(delim)) {
		return nil, string(data), nil
	}

	rest := trimmed[len(delim):]
	idx := bytes.Index(rest, []byte("\n"+delim))
	if idx < 0 {
		return nil, string(data), nil
	}

	yamlBlock := rest[:idx]
	afterDelim := rest[idx+1+len(delim):]
	body := strings.TrimLeft(string(afterDelim), "\n\r")

	var fm map[string]interface{}
	if err := yaml.Unmarshal(yamlBlock, &fm); err != nil {
		// Invalid YAML — treat everything as body.
		return nil, string(data), nil
	}
	return fm, body, nil
}

// deriveTitle returns the frontmatter "title" if present, otherwise the
// first H1 heading, otherwise empty string.
func deriveTitle(fm map[string]interface{}, body string) string {
	if fm != nil {
		if t, ok := fm["title"]; ok {
			if s, ok := t.(string); ok && s != "" {
				return s
			}
		}
	}
	for _, line := range strings.Split(body, "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "# ") {
			return strings.TrimSpace(trimmed[2:])
		}
	}
	return ""
}
