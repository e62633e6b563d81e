package flow

import "sceneflow/domain/scene"

// State is the canonical scene-flow state. Node order is z-order /
// insertion order and ids are unique; SelectedNodeID and EditingNodeID,
// when non-empty, always reference an id present in Nodes; NextNodeID is
// always strictly greater than the highest numeric id present.
type State struct {
	Nodes          []scene.SceneNode `json:"nodes"`
	Edges          []scene.Edge      `json:"edges"`
	SelectedNodeID string            `json:"selectedNodeId,omitempty"`
	EditingNodeID  string            `json:"editingNodeId,omitempty"`
	NextNodeID     int               `json:"nextNodeId"`
}

// NewState builds the initial state from a seed graph. Nodes are
// synchronized, edges are copied, and the id counter is seeded from the
// synchronized node set.
func NewState(nodes []scene.SceneNode, edges []scene.Edge) State {
	synced := scene.SyncAll(nodes)
	return State{
		Nodes:      synced,
		Edges:      scene.CloneEdges(edges),
		NextNodeID: scene.NextID(synced),
	}
}

// Clone returns a copy sharing no slice memory with the receiver.
func (s State) Clone() State {
	clone := s
	clone.Nodes = make([]scene.SceneNode, len(s.Nodes))
	copy(clone.Nodes, s.Nodes)
	clone.Edges = scene.CloneEdges(s.Edges)
	return clone
}

// HasNode checks whether a node with the given id exists.
func (s State) HasNode(id string) bool {
	for _, node := range s.Nodes {
		if node.ID == id {
			return true
		}
	}
	return false
}

// Node looks up a node by id.
func (s State) Node(id string) (scene.SceneNode, bool) {
	for _, node := range s.Nodes {
		if node.ID == id {
			return node, true
		}
	}
	return scene.SceneNode{}, false
}
