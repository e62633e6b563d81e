package scene

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func nodesWithIDs(ids ...string) []SceneNode {
	nodes := make([]SceneNode, len(ids))
	for i, id := range ids {
		nodes[i] = SceneNode{ID: id, Kind: KindScene}
	}
	return nodes
}

func TestHighestNumericID(t *testing.T) {
	assert.Equal(t, 0, HighestNumericID(nil))
	assert.Equal(t, 0, HighestNumericID(nodesWithIDs("intro", "e1-2")))
	assert.Equal(t, 12, HighestNumericID(nodesWithIDs("3", "12", "7")))
	assert.Equal(t, 5, HighestNumericID(nodesWithIDs("5", "chapter-9", "")))
}

func TestNextID(t *testing.T) {
	assert.Equal(t, 1, NextID(nil))
	assert.Equal(t, 13, NextID(nodesWithIDs("3", "12", "7")))
	assert.Equal(t, 1, NextID(nodesWithIDs("prologue")))
}
