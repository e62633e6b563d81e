package scene

import (
	"fmt"

	"github.com/google/uuid"
)

// Edge is a directed connection between two scenes. Ids are opaque strings;
// edges minted by the editor carry a readable source/target prefix plus a
// uuid fragment so parallel edges between the same pair stay unique.
type Edge struct {
	ID           string `json:"id"`
	Source       string `json:"source"`
	Target       string `json:"target"`
	Animated     bool   `json:"animated,omitempty"`
	Label        string `json:"label,omitempty"`
	Kind         string `json:"type,omitempty"`
	SourceHandle string `json:"sourceHandle,omitempty"`
	TargetHandle string `json:"targetHandle,omitempty"`
}

// Connection is a connect gesture from the canvas: which node pair (and
// optionally which handles) the user linked.
type Connection struct {
	Source       string `json:"source"`
	Target       string `json:"target"`
	SourceHandle string `json:"sourceHandle,omitempty"`
	TargetHandle string `json:"targetHandle,omitempty"`
}

// NewEdge mints an animated edge for a connect gesture.
func NewEdge(conn Connection) Edge {
	return Edge{
		ID:           newEdgeID(conn.Source, conn.Target),
		Source:       conn.Source,
		Target:       conn.Target,
		SourceHandle: conn.SourceHandle,
		TargetHandle: conn.TargetHandle,
		Animated:     true,
	}
}

// CloneEdges returns a copy that shares no memory with the input.
func CloneEdges(edges []Edge) []Edge {
	cloned := make([]Edge, len(edges))
	copy(cloned, edges)
	return cloned
}

func newEdgeID(source, target string) string {
	return fmt.Sprintf("e%s-%s-%s", source, target, uuid.New().String()[:8])
}
