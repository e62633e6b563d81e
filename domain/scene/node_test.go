package scene

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func sampleNode() SceneNode {
	return SceneNode{
		ID:       "7",
		Position: Position{X: 10, Y: 20},
		Data: SceneNodeData{
			Title:      "The Duel",
			Summary:    "Two rivals meet at dawn.",
			Label:      "stale label",
			IsEditing:  true,
			IsSelected: true,
			OnSubmit:   func(string, string) {},
			OnCancel:   func() {},
		},
		Kind: KindScene,
	}
}

func TestSync(t *testing.T) {
	t.Run("strips transient fields and derives label", func(t *testing.T) {
		synced := Sync(sampleNode())

		assert.Equal(t, "The Duel", synced.Data.Label)
		assert.False(t, synced.Data.IsEditing)
		assert.False(t, synced.Data.IsSelected)
		assert.Nil(t, synced.Data.OnSubmit)
		assert.Nil(t, synced.Data.OnCancel)

		assert.Equal(t, "The Duel", synced.Data.Title)
		assert.Equal(t, "Two rivals meet at dawn.", synced.Data.Summary)
	})

	t.Run("empty title derives empty label", func(t *testing.T) {
		synced := Sync(SceneNode{ID: "1", Data: SceneNodeData{Label: "old"}})
		assert.Equal(t, "", synced.Data.Label)
	})

	t.Run("is idempotent", func(t *testing.T) {
		once := Sync(sampleNode())
		assert.Equal(t, once, Sync(once))
	})

	t.Run("does not mutate its argument", func(t *testing.T) {
		node := sampleNode()
		_ = Sync(node)
		assert.True(t, node.Data.IsEditing)
		assert.Equal(t, "stale label", node.Data.Label)
	})
}

func TestNormalize(t *testing.T) {
	t.Run("keeps existing title", func(t *testing.T) {
		normalized := Normalize(SceneNode{ID: "3", Data: SceneNodeData{Title: "Prologue", Summary: "memo"}})
		assert.Equal(t, "Prologue", normalized.Data.Title)
		assert.Equal(t, "Prologue", normalized.Data.Label)
		assert.Equal(t, "memo", normalized.Data.Summary)
	})

	t.Run("falls back to label then generated default", func(t *testing.T) {
		fromLabel := Normalize(SceneNode{ID: "3", Data: SceneNodeData{Label: "Old Label"}})
		assert.Equal(t, "Old Label", fromLabel.Data.Title)

		generated := Normalize(SceneNode{ID: "3"})
		assert.Equal(t, "Scene 3", generated.Data.Title)
		assert.Equal(t, "Scene 3", generated.Data.Label)
	})

	t.Run("forces scene kind", func(t *testing.T) {
		normalized := Normalize(SceneNode{ID: "3", Kind: "group", Data: SceneNodeData{Title: "x"}})
		assert.Equal(t, KindScene, normalized.Kind)
	})
}

func TestNewEdge(t *testing.T) {
	edge := NewEdge(Connection{Source: "1", Target: "2"})

	assert.Equal(t, "1", edge.Source)
	assert.Equal(t, "2", edge.Target)
	assert.True(t, edge.Animated)
	assert.NotEmpty(t, edge.ID)

	// Parallel edges between the same pair stay distinct.
	other := NewEdge(Connection{Source: "1", Target: "2"})
	assert.NotEqual(t, edge.ID, other.ID)
}
