package snapshot

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sceneflow/domain/scene"
	apperrors "sceneflow/pkg/errors"
)

func liveGraph() ([]scene.SceneNode, []scene.Edge) {
	nodes := []scene.SceneNode{
		{
			ID:       "1",
			Position: scene.Position{X: 250, Y: 50},
			Data: scene.SceneNodeData{
				Title:      "Opening",
				Summary:    "Dawn over the harbor.",
				IsEditing:  true,
				IsSelected: true,
				OnCancel:   func() {},
			},
			Kind:     scene.KindScene,
			Selected: true,
			Width:    180,
		},
		{
			ID:       "2",
			Position: scene.Position{X: 400, Y: 200},
			Data:     scene.SceneNodeData{Title: "Storm", Summary: ""},
			Kind:     scene.KindScene,
		},
	}
	edges := []scene.Edge{{ID: "e1-2", Source: "1", Target: "2", Animated: true}}
	return nodes, edges
}

func TestEncode(t *testing.T) {
	nodes, edges := liveGraph()
	doc := Encode(nodes, edges)

	assert.Equal(t, Version, doc.Version)
	require.Len(t, doc.Nodes, 2)
	assert.Equal(t, "Opening", doc.Nodes[0].Data.Title)
	assert.Equal(t, "Dawn over the harbor.", doc.Nodes[0].Data.Summary)
	assert.Equal(t, scene.Position{X: 250, Y: 50}, doc.Nodes[0].Position)

	// Edges share no memory with the live slice.
	doc.Edges[0].Target = "99"
	assert.Equal(t, "2", edges[0].Target)
}

func TestEncodeExcludesTransientFields(t *testing.T) {
	nodes, edges := liveGraph()
	text, err := json.Marshal(Encode(nodes, edges))
	require.NoError(t, err)

	assert.NotContains(t, string(text), "isEditing")
	assert.NotContains(t, string(text), "isSelected")
	assert.NotContains(t, string(text), "selected")
	assert.NotContains(t, string(text), "width")
	assert.NotContains(t, string(text), "label")
}

func TestRoundTrip(t *testing.T) {
	nodes, edges := liveGraph()
	text, err := json.Marshal(Encode(nodes, edges))
	require.NoError(t, err)

	parsed, err := Decode(text)
	require.NoError(t, err)

	require.Len(t, parsed.Nodes, 2)
	require.Len(t, parsed.Edges, 1)

	synced := scene.SyncAll(nodes)
	for i, node := range parsed.Nodes {
		assert.Equal(t, synced[i].ID, node.ID)
		assert.Equal(t, synced[i].Position, node.Position)
		assert.Equal(t, synced[i].Data.Title, node.Data.Title)
		assert.Equal(t, synced[i].Data.Summary, node.Data.Summary)
		assert.Equal(t, synced[i].Data.Title, node.Data.Label)
		assert.Equal(t, scene.KindScene, node.Kind)
	}
	assert.Equal(t, edges[0], parsed.Edges[0])
}

func TestDecodeEnvelopeErrors(t *testing.T) {
	t.Run("not a JSON object", func(t *testing.T) {
		for _, text := range []string{`[]`, `"scene"`, `42`, `not json`} {
			_, err := Decode([]byte(text))
			assert.True(t, apperrors.IsFormat(err), "input %q", text)
		}
	})

	t.Run("missing version", func(t *testing.T) {
		_, err := Decode([]byte(`{"nodes":[],"edges":[]}`))
		assert.True(t, apperrors.IsFormat(err))
	})

	t.Run("wrong version reports expected and actual", func(t *testing.T) {
		_, err := Decode([]byte(`{"version":2,"nodes":[],"edges":[]}`))
		require.True(t, apperrors.IsVersionMismatch(err))

		appErr := apperrors.GetAppError(err)
		assert.Equal(t, Version, appErr.Details["expected"])
		assert.Equal(t, "2", appErr.Details["actual"])
	})

	t.Run("non-numeric version is a mismatch", func(t *testing.T) {
		_, err := Decode([]byte(`{"version":"1","nodes":[],"edges":[]}`))
		assert.True(t, apperrors.IsVersionMismatch(err))
	})

	t.Run("nodes or edges not arrays", func(t *testing.T) {
		_, err := Decode([]byte(`{"version":1,"nodes":{},"edges":[]}`))
		assert.True(t, apperrors.IsFormat(err))

		_, err = Decode([]byte(`{"version":1,"nodes":[],"edges":"none"}`))
		assert.True(t, apperrors.IsFormat(err))

		_, err = Decode([]byte(`{"version":1,"nodes":[]}`))
		assert.True(t, apperrors.IsFormat(err))
	})

	t.Run("null nodes or edges are not arrays", func(t *testing.T) {
		_, err := Decode([]byte(`{"version":1,"nodes":null,"edges":[]}`))
		assert.True(t, apperrors.IsFormat(err))

		_, err = Decode([]byte(`{"version":1,"nodes":[],"edges":null}`))
		assert.True(t, apperrors.IsFormat(err))

		_, err = Decode([]byte(`{"version":1,"nodes":null,"edges":null}`))
		assert.True(t, apperrors.IsFormat(err))
	})
}

func TestDecodeLenientElements(t *testing.T) {
	t.Run("malformed nodes are dropped, valid ones normalized", func(t *testing.T) {
		text := `{
			"version": 1,
			"nodes": [
				{"id": "1", "position": {"x": 1, "y": 2}, "data": {"title": "Kept", "summary": "s"}},
				{"id": "2", "position": {"x": 1}, "data": {"title": "No Y", "summary": ""}},
				{"id": "3", "data": {"title": "No position", "summary": ""}},
				{"id": "4", "position": {"x": 0, "y": 0}, "data": {"summary": "missing title"}},
				{"position": {"x": 0, "y": 0}, "data": {"title": "missing id", "summary": ""}},
				{"id": "6", "position": {"x": 3, "y": 4}, "data": {"title": "", "label": "From Label", "summary": ""}},
				"not even an object"
			],
			"edges": []
		}`

		parsed, err := Decode([]byte(text))
		require.NoError(t, err)
		require.Len(t, parsed.Nodes, 2)

		assert.Equal(t, "Kept", parsed.Nodes[0].Data.Title)
		assert.Equal(t, "Kept", parsed.Nodes[0].Data.Label)

		// Empty title falls back to the label during normalization.
		assert.Equal(t, "From Label", parsed.Nodes[1].Data.Title)
		assert.Equal(t, scene.KindScene, parsed.Nodes[1].Kind)
	})

	t.Run("malformed edges are dropped", func(t *testing.T) {
		text := `{
			"version": 1,
			"nodes": [],
			"edges": [
				{"id": "e1", "source": "1", "target": "2", "animated": true},
				{"id": "e2", "source": "1"},
				{"source": "1", "target": "2"},
				7
			]
		}`

		parsed, err := Decode([]byte(text))
		require.NoError(t, err)
		require.Len(t, parsed.Edges, 1)
		assert.Equal(t, "e1", parsed.Edges[0].ID)
		assert.True(t, parsed.Edges[0].Animated)
	})

	t.Run("empty scene is a valid decode", func(t *testing.T) {
		parsed, err := Decode([]byte(`{"version":1,"nodes":[],"edges":[]}`))
		require.NoError(t, err)
		assert.Empty(t, parsed.Nodes)
		assert.Empty(t, parsed.Edges)
	})
}
