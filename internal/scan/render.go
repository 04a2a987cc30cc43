package scan

import (
	"log/slog"
)

// Render rewrites the resolved targets of a rendered view's embed nodes,
// leaving the persisted document untouched. Each converted node is tagged
// in the view's converted set and keeps its pre-conversion value for
// inspection. Nodes already carrying the marker are skipped, so repeated
// passes over the same view are no-ops even when the host dispatches
// overlapping render events.
func (p *Pass) Render(view *View) int {
	profiles := p.registry.List()
	current := p.registry.FindCurrent()

	converted := 0
	for _, node := range view.Nodes {
		if view.IsConverted(node) {
			continue
		}
		newIdent, changed := translateTarget(node.Target, profiles, current)
		if !changed {
			continue
		}
		prev := node.Target
		node.Target = newIdent
		view.markConverted(node, prev)
		converted++
		p.logger.Debug("scan: converted render node",
			slog.Int("node", node.ID),
			slog.String("from", prev),
			slog.String("to", newIdent))
	}
	return converted
}
