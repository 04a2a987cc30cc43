package scan

import "testing"

func TestParseView_CollectsImageNodes(t *testing.T) {
	content := "# Title\n\n![a cat](file:///Users/alice/cat.png)\n\ntext\n\n![dog](attachments/dog.png)\n"
	view := ParseView(content)
	if len(view.Nodes) != 2 {
		t.Fatalf("nodes = %d, want 2", len(view.Nodes))
	}
	first := view.Nodes[0]
	if first.Target != "file:///Users/alice/cat.png" {
		t.Errorf("Target = %q", first.Target)
	}
	if first.Alt != "a cat" {
		t.Errorf("Alt = %q", first.Alt)
	}
	if first.Line != 2 {
		t.Errorf("Line = %d, want 2", first.Line)
	}
	if view.Nodes[1].Line != 6 {
		t.Errorf("second Line = %d, want 6", view.Nodes[1].Line)
	}
}

func TestRender_ConvertsAndMarks(t *testing.T) {
	pass := NewPass(twoComputerRegistry(), nil)
	view := ParseView("![cat](file:///Users/alice/cat.png)\n")

	n := pass.Render(view)
	if n != 1 {
		t.Fatalf("converted = %d, want 1", n)
	}
	node := view.Nodes[0]
	if node.Target != "file:///C:/Users/alice/cat.png" {
		t.Errorf("Target = %q", node.Target)
	}
	if node.PrevTarget != "file:///Users/alice/cat.png" {
		t.Errorf("PrevTarget = %q", node.PrevTarget)
	}
	if !view.IsConverted(node) {
		t.Error("node should carry the converted marker")
	}
}

func TestRender_SecondPassSkipsMarkedNodes(t *testing.T) {
	pass := NewPass(twoComputerRegistry(), nil)
	view := ParseView("![cat](file:///Users/alice/cat.png)\n")

	if n := pass.Render(view); n != 1 {
		t.Fatalf("first render = %d", n)
	}
	if n := pass.Render(view); n != 0 {
		t.Fatalf("second render = %d, want 0", n)
	}
}

func TestRender_LeavesLocalAndRemoteNodes(t *testing.T) {
	pass := NewPass(twoComputerRegistry(), nil)
	view := ParseView("![r](https://example.com/x.png)\n\n![l](attachments/x.png)\n")

	if n := pass.Render(view); n != 0 {
		t.Fatalf("converted = %d, want 0", n)
	}
	for _, node := range view.Nodes {
		if view.IsConverted(node) {
			t.Errorf("node %d should not be marked", node.ID)
		}
		if node.PrevTarget != "" {
			t.Errorf("node %d PrevTarget = %q", node.ID, node.PrevTarget)
		}
	}
}
