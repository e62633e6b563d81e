package flow

import "sceneflow/domain/scene"

// Action is a typed state transition request. Every mutation of the scene
// flow funnels through Reduce with one of the actions below; no other code
// path may touch nodes, edges, or the selection focus.
type Action interface {
	// Name identifies the action in logs.
	Name() string
}

// NodeChange is one incremental node patch originating from a drag, resize,
// or marquee-select gesture on the canvas. Nil fields leave the
// corresponding value untouched.
type NodeChange struct {
	NodeID   string          `json:"nodeId"`
	Position *scene.Position `json:"position,omitempty"`
	Selected *bool           `json:"selected,omitempty"`
	Width    *float64        `json:"width,omitempty"`
	Height   *float64        `json:"height,omitempty"`
	Remove   bool            `json:"remove,omitempty"`
}

// EdgeChange is one incremental edge patch: an addition, a removal, or an
// update of an existing edge.
type EdgeChange struct {
	EdgeID   string      `json:"edgeId,omitempty"`
	Add      *scene.Edge `json:"add,omitempty"`
	Animated *bool       `json:"animated,omitempty"`
	Remove   bool        `json:"remove,omitempty"`
}

// NodesChanged applies a batch of incremental node patches.
type NodesChanged struct {
	Changes []NodeChange
}

// EdgesChanged applies a batch of incremental edge patches.
type EdgesChanged struct {
	Changes []EdgeChange
}

// EdgeConnected appends a new animated edge for a connect gesture. No
// de-duplication is performed; parallel edges between the same pair are
// permitted.
type EdgeConnected struct {
	Connection scene.Connection
}

// NodeAdded creates a new scene. When Position is nil a default cascading
// position is computed from the current node count.
type NodeAdded struct {
	Position *scene.Position
}

// NodeDeleted removes a scene and every edge touching it.
type NodeDeleted struct {
	NodeID string
}

// EdgeRemoved removes exactly the edge with the given id.
type EdgeRemoved struct {
	EdgeID string
}

// TitleCommitted is the inline editor's submit gesture: it sets the title
// if the node still exists and always exits editing mode.
type TitleCommitted struct {
	NodeID string
	Title  string
}

// TitleEdited live-updates the title as the user types in the sidebar.
type TitleEdited struct {
	NodeID string
	Title  string
}

// SummaryEdited live-updates the summary as the user types in the sidebar.
type SummaryEdited struct {
	NodeID  string
	Summary string
}

// NodeSelected moves the selection focus. An empty or unknown id clears it.
type NodeSelected struct {
	NodeID string
}

// EditingStarted enters inline-edit mode for an existing node. A stale id
// is silently ignored.
type EditingStarted struct {
	NodeID string
}

// EditingCancelled exits inline-edit mode unconditionally.
type EditingCancelled struct{}

// SnapshotApplied bulk-replaces the whole graph. Both "new scene" and
// "load" funnel through this transition.
type SnapshotApplied struct {
	Nodes []scene.SceneNode
	Edges []scene.Edge
}

func (NodesChanged) Name() string     { return "nodes_changed" }
func (EdgesChanged) Name() string     { return "edges_changed" }
func (EdgeConnected) Name() string    { return "edge_connected" }
func (NodeAdded) Name() string        { return "node_added" }
func (NodeDeleted) Name() string      { return "node_deleted" }
func (EdgeRemoved) Name() string      { return "edge_removed" }
func (TitleCommitted) Name() string   { return "title_committed" }
func (TitleEdited) Name() string      { return "title_edited" }
func (SummaryEdited) Name() string    { return "summary_edited" }
func (NodeSelected) Name() string     { return "node_selected" }
func (EditingStarted) Name() string   { return "editing_started" }
func (EditingCancelled) Name() string { return "editing_cancelled" }
func (SnapshotApplied) Name() string  { return "snapshot_applied" }
