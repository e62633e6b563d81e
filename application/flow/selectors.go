package flow

import "sceneflow/domain/scene"

// Handlers are the capability handles the selector layer binds into flow
// nodes for the rendering layer. They are never written back into state.
type Handlers struct {
	OnSubmit scene.SubmitFunc
	OnCancel scene.CancelFunc
}

// FlowNodes derives the render-ready node list: each node synchronized,
// then annotated with the transient editing/selection flags and the bound
// capability handles. The result is for the rendering layer only and must
// never be stored back into core state.
func FlowNodes(nodes []scene.SceneNode, selectedID, editingID string, handlers Handlers) []scene.SceneNode {
	flowNodes := make([]scene.SceneNode, len(nodes))
	for i, node := range nodes {
		synced := scene.Sync(node)
		synced.Kind = scene.KindScene
		synced.Data.IsEditing = node.ID == editingID
		synced.Data.IsSelected = node.ID == selectedID
		synced.Data.OnSubmit = handlers.OnSubmit
		synced.Data.OnCancel = handlers.OnCancel
		flowNodes[i] = synced
	}
	return flowNodes
}

// SelectedNode looks up the selected node, or nil when nothing is selected
// or the id is absent from the node set.
func SelectedNode(nodes []scene.SceneNode, selectedID string) *scene.SceneNode {
	if selectedID == "" {
		return nil
	}
	for _, node := range nodes {
		if node.ID == selectedID {
			found := node
			return &found
		}
	}
	return nil
}
