// Package snapshot implements the versioned persistence document for the
// scene graph: encoding live state down to its authoring values and
// decoding untrusted documents back into sanitized nodes and edges.
//
// Validation is strict on the envelope (record shape, version, array
// fields) and lenient per element: malformed nodes or edges are dropped
// silently while the decode as a whole succeeds. A decode never mutates
// anything; it is a pure transform from raw bytes to a parsed result or a
// typed error.
package snapshot

import (
	"bytes"
	"encoding/json"

	"sceneflow/domain/scene"
	apperrors "sceneflow/pkg/errors"
	"sceneflow/pkg/validation"
)

// Version is the supported snapshot schema version. A document whose
// version differs is rejected without touching in-memory state.
const Version = 1

// NodeData carries only the persisted authoring values of a scene node.
type NodeData struct {
	Title   string `json:"title"`
	Summary string `json:"summary"`
}

// Node is the persistable subset of a scene node. Derived and transient
// fields are excluded by construction.
type Node struct {
	ID       string         `json:"id"`
	Position scene.Position `json:"position"`
	Data     NodeData       `json:"data"`
	Kind     string         `json:"type,omitempty"`
}

// Document is the persisted snapshot of the full graph.
type Document struct {
	Version int          `json:"version"`
	Nodes   []Node       `json:"nodes"`
	Edges   []scene.Edge `json:"edges"`
}

// Parsed is the sanitized in-memory result of a successful decode.
type Parsed struct {
	Version int
	Nodes   []scene.SceneNode
	Edges   []scene.Edge
}

// Encode builds a snapshot document from live state. Nodes are synchronized
// and stripped down to their authoring values; edges are cloned so the
// document shares no memory with the live slices.
func Encode(nodes []scene.SceneNode, edges []scene.Edge) Document {
	doc := Document{
		Version: Version,
		Nodes:   make([]Node, len(nodes)),
		Edges:   scene.CloneEdges(edges),
	}
	for i, node := range nodes {
		synced := scene.Sync(node)
		doc.Nodes[i] = Node{
			ID:       synced.ID,
			Position: synced.Position,
			Data: NodeData{
				Title:   synced.Data.Title,
				Summary: synced.Data.Summary,
			},
			Kind: scene.KindScene,
		}
	}
	return doc
}

// Marshal serializes a document as pretty-printed JSON, the format written
// to exported scene files.
func (d Document) Marshal() ([]byte, error) {
	return json.MarshalIndent(d, "", "  ")
}

// rawNode mirrors the expected node shape with pointer fields so absent and
// present-but-empty values are distinguishable during validation.
type rawNode struct {
	ID       *string      `json:"id" validate:"required"`
	Position *rawPosition `json:"position" validate:"required"`
	Data     *rawNodeData `json:"data" validate:"required"`
}

type rawPosition struct {
	X *float64 `json:"x" validate:"required"`
	Y *float64 `json:"y" validate:"required"`
}

type rawNodeData struct {
	Title   *string `json:"title" validate:"required"`
	Summary *string `json:"summary" validate:"required"`
	Label   *string `json:"label"`
}

type rawEdge struct {
	ID     *string `json:"id" validate:"required"`
	Source *string `json:"source" validate:"required"`
	Target *string `json:"target" validate:"required"`
}

// Decode parses and validates an untrusted snapshot document.
//
// Envelope failures (not a JSON object, unsupported version, nodes or edges
// not arrays) return a typed error and nothing else; individual nodes or
// edges that fail shape validation are dropped. Surviving nodes are passed
// through scene.Normalize. An empty result is a valid decode of an empty
// scene.
func Decode(text []byte) (*Parsed, error) {
	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(text, &envelope); err != nil {
		return nil, apperrors.NewFormatError("snapshot is not a JSON object").WithCause(err)
	}

	rawVersion, ok := envelope["version"]
	if !ok {
		return nil, apperrors.NewFormatError("snapshot is missing a version field")
	}
	var version int
	if err := json.Unmarshal(rawVersion, &version); err != nil || version != Version {
		return nil, apperrors.NewVersionMismatchError(Version, string(rawVersion))
	}

	rawNodes, err := decodeArray(envelope, "nodes")
	if err != nil {
		return nil, err
	}
	rawEdges, err := decodeArray(envelope, "edges")
	if err != nil {
		return nil, err
	}

	parsed := &Parsed{
		Version: Version,
		Nodes:   make([]scene.SceneNode, 0, len(rawNodes)),
		Edges:   make([]scene.Edge, 0, len(rawEdges)),
	}

	for _, raw := range rawNodes {
		var candidate rawNode
		if err := json.Unmarshal(raw, &candidate); err != nil {
			continue
		}
		if err := validation.Struct(candidate); err != nil {
			continue
		}
		node := scene.SceneNode{
			ID:       *candidate.ID,
			Position: scene.Position{X: *candidate.Position.X, Y: *candidate.Position.Y},
			Data: scene.SceneNodeData{
				Title:   *candidate.Data.Title,
				Summary: *candidate.Data.Summary,
			},
		}
		if candidate.Data.Label != nil {
			node.Data.Label = *candidate.Data.Label
		}
		parsed.Nodes = append(parsed.Nodes, scene.Normalize(node))
	}

	for _, raw := range rawEdges {
		var candidate rawEdge
		if err := json.Unmarshal(raw, &candidate); err != nil {
			continue
		}
		if err := validation.Struct(candidate); err != nil {
			continue
		}
		var edge scene.Edge
		if err := json.Unmarshal(raw, &edge); err != nil {
			continue
		}
		parsed.Edges = append(parsed.Edges, edge)
	}

	return parsed, nil
}

func decodeArray(envelope map[string]json.RawMessage, field string) ([]json.RawMessage, error) {
	raw, ok := envelope[field]
	if !ok {
		return nil, apperrors.NewFormatError("snapshot field '" + field + "' is missing")
	}
	// Unmarshal accepts null into a slice, leaving it nil.
	if string(bytes.TrimSpace(raw)) == "null" {
		return nil, apperrors.NewFormatError("snapshot field '" + field + "' is not an array")
	}
	var elements []json.RawMessage
	if err := json.Unmarshal(raw, &elements); err != nil {
		return nil, apperrors.NewFormatError("snapshot field '" + field + "' is not an array").WithCause(err)
	}
	return elements, nil
}
