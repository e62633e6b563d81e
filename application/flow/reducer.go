package flow

import (
	"strconv"

	"sceneflow/domain/scene"
)

// Reduce computes the next state for an action. It is total: every action
// yields a valid state, and actions referencing ids that no longer exist
// degrade to no-ops or self-heal rather than fail. The input state is never
// mutated.
func Reduce(s State, action Action) State {
	switch a := action.(type) {
	case NodesChanged:
		next := s.Clone()
		next.Nodes = scene.SyncAll(applyNodeChanges(next.Nodes, a.Changes))
		return ensureValidNodeReferences(next)

	case EdgesChanged:
		next := s.Clone()
		next.Edges = applyEdgeChanges(next.Edges, a.Changes)
		return next

	case EdgeConnected:
		next := s.Clone()
		next.Edges = append(next.Edges, scene.NewEdge(a.Connection))
		return next

	case NodeAdded:
		return reduceNodeAdded(s, a)

	case NodeDeleted:
		next := s.Clone()
		nodes := next.Nodes[:0]
		for _, node := range next.Nodes {
			if node.ID != a.NodeID {
				nodes = append(nodes, node)
			}
		}
		next.Nodes = nodes

		edges := next.Edges[:0]
		for _, edge := range next.Edges {
			if edge.Source != a.NodeID && edge.Target != a.NodeID {
				edges = append(edges, edge)
			}
		}
		next.Edges = edges
		return ensureValidNodeReferences(next)

	case EdgeRemoved:
		next := s.Clone()
		edges := next.Edges[:0]
		for _, edge := range next.Edges {
			if edge.ID != a.EdgeID {
				edges = append(edges, edge)
			}
		}
		next.Edges = edges
		return next

	case TitleCommitted:
		next := setTitle(s, a.NodeID, a.Title)
		// The submit gesture always exits editing mode, even when the node
		// has been deleted out from under the editor.
		next.EditingNodeID = ""
		return next

	case TitleEdited:
		return setTitle(s, a.NodeID, a.Title)

	case SummaryEdited:
		next := s.Clone()
		for i, node := range next.Nodes {
			if node.ID == a.NodeID {
				node.Data.Summary = a.Summary
				next.Nodes[i] = node
				break
			}
		}
		return next

	case NodeSelected:
		next := s.Clone()
		if a.NodeID != "" && next.HasNode(a.NodeID) {
			next.SelectedNodeID = a.NodeID
		} else {
			next.SelectedNodeID = ""
		}
		return next

	case EditingStarted:
		next := s.Clone()
		if next.HasNode(a.NodeID) {
			next.EditingNodeID = a.NodeID
		}
		return next

	case EditingCancelled:
		next := s.Clone()
		next.EditingNodeID = ""
		return next

	case SnapshotApplied:
		return NewState(a.Nodes, a.Edges)

	default:
		return s
	}
}

func reduceNodeAdded(s State, a NodeAdded) State {
	next := s.Clone()

	id := strconv.Itoa(next.NextNodeID)
	next.NextNodeID++

	position := scene.Position{
		X: 100 + float64(len(next.Nodes))*80,
		Y: 100 + float64(len(next.Nodes)%4)*80,
	}
	if a.Position != nil {
		position = *a.Position
	}

	node := scene.SceneNode{
		ID:       id,
		Position: position,
		Data:     scene.SceneNodeData{Title: scene.DefaultTitle(id)},
		Kind:     scene.KindScene,
	}
	next.Nodes = append(next.Nodes, scene.Sync(node))
	return next
}

func setTitle(s State, nodeID, title string) State {
	next := s.Clone()
	for i, node := range next.Nodes {
		if node.ID == nodeID {
			node.Data.Title = title
			node.Data.Label = title
			next.Nodes[i] = node
			break
		}
	}
	return next
}

// ensureValidNodeReferences is the single choke point for selection/editing
// reference integrity: every transition that can shrink or replace the node
// set re-validates both references before returning.
func ensureValidNodeReferences(s State) State {
	if s.SelectedNodeID != "" && !s.HasNode(s.SelectedNodeID) {
		s.SelectedNodeID = ""
	}
	if s.EditingNodeID != "" && !s.HasNode(s.EditingNodeID) {
		s.EditingNodeID = ""
	}
	return s
}

func applyNodeChanges(nodes []scene.SceneNode, changes []NodeChange) []scene.SceneNode {
	for _, change := range changes {
		if change.Remove {
			filtered := nodes[:0]
			for _, node := range nodes {
				if node.ID != change.NodeID {
					filtered = append(filtered, node)
				}
			}
			nodes = filtered
			continue
		}

		for i, node := range nodes {
			if node.ID != change.NodeID {
				continue
			}
			if change.Position != nil {
				node.Position = *change.Position
			}
			if change.Selected != nil {
				node.Selected = *change.Selected
			}
			if change.Width != nil {
				node.Width = *change.Width
			}
			if change.Height != nil {
				node.Height = *change.Height
			}
			nodes[i] = node
			break
		}
	}
	return nodes
}

func applyEdgeChanges(edges []scene.Edge, changes []EdgeChange) []scene.Edge {
	for _, change := range changes {
		if change.Add != nil {
			edges = append(edges, *change.Add)
			continue
		}
		if change.Remove {
			filtered := edges[:0]
			for _, edge := range edges {
				if edge.ID != change.EdgeID {
					filtered = append(filtered, edge)
				}
			}
			edges = filtered
			continue
		}

		for i, edge := range edges {
			if edge.ID != change.EdgeID {
				continue
			}
			if change.Animated != nil {
				edge.Animated = *change.Animated
			}
			edges[i] = edge
			break
		}
	}
	return edges
}
