package handlers

import (
	"topocanvas/domain/core/entities"
)

// upsertNode replaces the record in place or appends it, preserving the
// canonical order
func upsertNode(nodes []entities.Node, n entities.Node) []entities.Node {
	for i := range nodes {
		if nodes[i].ID == n.ID {
			nodes[i] = n
			return nodes
		}
	}
	return append(nodes, n)
}

// removeNode drops the record with the given id
func removeNode(nodes []entities.Node, id string) []entities.Node {
	out := nodes[:0]
	for _, n := range nodes {
		if n.ID != id {
			out = append(out, n)
		}
	}
	return out
}

// appendMember adds id to the member list if not already present
func appendMember(members []string, id string) []string {
	for _, m := range members {
		if m == id {
			return members
		}
	}
	return append(members, id)
}

// removeMember drops id from the member list
func removeMember(members []string, id string) []string {
	out := members[:0]
	for _, m := range members {
		if m != id {
			out = append(out, m)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// displayName prefers the label for action labels, falling back to the id
func displayName(label, id string) string {
	if label != "" {
		return label
	}
	return id
}
