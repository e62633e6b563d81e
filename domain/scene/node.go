package scene

import "fmt"

// KindScene is the only node kind the editor renders. Externally sourced
// nodes are coerced to it during normalization.
const KindScene = "scene"

// Position is a node's location on the canvas, in canvas coordinates.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Equals checks if two positions are equal
func (p Position) Equals(other Position) bool {
	return p.X == other.X && p.Y == other.Y
}

// SubmitFunc is a capability handle bound by the selector layer for the
// inline title editor's submit gesture.
type SubmitFunc func(nodeID, title string)

// CancelFunc is the matching handle for the cancel gesture.
type CancelFunc func()

// SceneNodeData carries a scene's authoring values plus the derived and
// ephemeral fields attached only for rendering.
//
// Title and Summary are the persisted authoring values. Label is always
// derived from Title by Sync and is never independently settable. The
// remaining fields are transient render state and are stripped by Sync
// before the node is stored or persisted.
type SceneNodeData struct {
	Title   string `json:"title"`
	Summary string `json:"summary"`

	// Derived: always equal to Title after Sync.
	Label string `json:"label,omitempty"`

	// Transient render flags, set by the selector layer only.
	IsEditing  bool `json:"isEditing,omitempty"`
	IsSelected bool `json:"isSelected,omitempty"`

	// Capability handles, bound by the selector layer only.
	OnSubmit SubmitFunc `json:"-"`
	OnCancel CancelFunc `json:"-"`
}

// SceneNode is one narrative unit on the canvas.
//
// Selected, Width, and Height mirror the canvas library's node envelope and
// are updated by incremental change batches; they are excluded from
// snapshots by construction.
type SceneNode struct {
	ID       string        `json:"id"`
	Position Position      `json:"position"`
	Data     SceneNodeData `json:"data"`
	Kind     string        `json:"type"`

	Selected bool    `json:"selected,omitempty"`
	Width    float64 `json:"width,omitempty"`
	Height   float64 `json:"height,omitempty"`
}

// DefaultTitle returns the generated title for a scene that has none.
func DefaultTitle(id string) string {
	return fmt.Sprintf("Scene %s", id)
}

// Sync normalizes a node's derived and ephemeral data: it strips the
// transient flags and capability handles and rederives Label from Title.
// Every node must pass through Sync before it is stored, rendered, or
// persisted. Sync is idempotent.
func Sync(node SceneNode) SceneNode {
	node.Data.Label = node.Data.Title
	node.Data.IsEditing = false
	node.Data.IsSelected = false
	node.Data.OnSubmit = nil
	node.Data.OnCancel = nil
	return node
}

// SyncAll applies Sync to every node, returning a fresh slice.
func SyncAll(nodes []SceneNode) []SceneNode {
	synced := make([]SceneNode, len(nodes))
	for i, node := range nodes {
		synced[i] = Sync(node)
	}
	return synced
}

// Normalize repairs an externally sourced node whose data may be partial.
// The title falls back from title to label to a generated default; the
// summary defaults to empty; the kind is forced to KindScene. Normalize is
// used only at snapshot-load and external-ingestion boundaries, never on
// nodes produced internally.
func Normalize(raw SceneNode) SceneNode {
	title := raw.Data.Title
	if title == "" {
		title = raw.Data.Label
	}
	if title == "" {
		title = DefaultTitle(raw.ID)
	}

	raw.Data.Title = title
	raw.Kind = KindScene
	return Sync(raw)
}
