package scan

import (
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// EmbedNode is one embedded-asset node of a rendered view. Target is the
// resolved display target the render pass mutates; the persisted text
// behind the view is never touched.
type EmbedNode struct {
	ID         int    `json:"id"`
	Target     string `json:"target"`
	PrevTarget string `json:"prev_target,omitempty"`
	Alt        string `json:"alt,omitempty"`
	Line       int    `json:"line"`
}

// View is the rendered form of one document for the lifetime of one
// render instance. Conversion state is an explicit set keyed by node
// identity rather than a marker mutated into markup.
type View struct {
	Nodes     []*EmbedNode
	converted map[int]struct{}
}

// ParseView builds a rendered view from markdown content by walking the
// goldmark AST and collecting image nodes.
func ParseView(content string) *View {
	source := []byte(content)
	md := goldmark.New()
	doc := md.Parser().Parse(text.NewReader(source))

	lineStarts := computeLineStarts(content)

	v := &View{converted: make(map[int]struct{})}
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		img, ok := n.(*ast.Image)
		if !ok {
			return ast.WalkContinue, nil
		}

		var alt string
		if first := img.FirstChild(); first != nil {
			if t, ok := first.(*ast.Text); ok {
				alt = string(t.Segment.Value(source))
			}
		}

		v.Nodes = append(v.Nodes, &EmbedNode{
			ID:     len(v.Nodes),
			Target: string(img.Destination),
			Alt:    alt,
			Line:   nodeLine(img, lineStarts),
		})
		return ast.WalkContinue, nil
	})
	return v
}

// IsConverted reports whether the node already carries the converted
// marker in this view.
func (v *View) IsConverted(n *EmbedNode) bool {
	_, ok := v.converted[n.ID]
	return ok
}

// markConverted records the pre-conversion value and tags the node.
func (v *View) markConverted(n *EmbedNode, prev string) {
	n.PrevTarget = prev
	v.converted[n.ID] = struct{}{}
}

// nodeLine finds the zero-based line of the nearest ancestor that has
// source segments. Image nodes carry no segments of their own, so the
// enclosing block supplies the position.
func nodeLine(n ast.Node, lineStarts []int) int {
	for cur := n; cur != nil; cur = cur.Parent() {
		if cur.Type() == ast.TypeBlock && cur.Lines().Len() > 0 {
			return offsetToLine(lineStarts, cur.Lines().At(0).Start)
		}
	}
	return 0
}

// computeLineStarts returns the byte offset of each line start.
func computeLineStarts(content string) []int {
	starts := []int{0}
	for i := 0; i < len(content); i++ {
		if content[i] == '\n' && i+1 < len(content) {
			starts = append(starts, i+1)
		}
	}
	return starts
}

// offsetToLine maps a byte offset to its zero-based line index.
func offsetToLine(lineStarts []int, offset int) int {
	line := 0
	for i, start := range lineStarts {
		if start > offset {
			break
		}
		line = i
	}
	return line
}
