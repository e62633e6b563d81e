package handlers

import (
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"sceneflow/application/flow"
	"sceneflow/application/services"
	"sceneflow/domain/scene"
	"sceneflow/pkg/common"
	apperrors "sceneflow/pkg/errors"
	"sceneflow/pkg/validation"
)

const maxBodyBytes = 1 << 20

// SceneHandler exposes the scene-flow action table and the persistence
// operations to the presentation layer. Every mutation it performs goes
// through the dispatch store; it never touches nodes or edges directly.
type SceneHandler struct {
	flow   *flow.Store
	scenes *services.SceneService
	logger *zap.Logger
}

// NewSceneHandler creates a new scene handler
func NewSceneHandler(flowStore *flow.Store, scenes *services.SceneService, logger *zap.Logger) *SceneHandler {
	return &SceneHandler{
		flow:   flowStore,
		scenes: scenes,
		logger: logger,
	}
}

// nodeView is a flow node plus its render-ready summary preview.
type nodeView struct {
	scene.SceneNode
	SummaryPreview string `json:"summaryPreview,omitempty"`
}

// sceneView is the render-ready projection of the current state.
type sceneView struct {
	Nodes          []nodeView       `json:"nodes"`
	Edges          []scene.Edge     `json:"edges"`
	SelectedNodeID string           `json:"selectedNodeId,omitempty"`
	EditingNodeID  string           `json:"editingNodeId,omitempty"`
	SelectedNode   *scene.SceneNode `json:"selectedNode,omitempty"`
}

// GetScene handles GET /scene
func (h *SceneHandler) GetScene(w http.ResponseWriter, r *http.Request) {
	h.respondScene(w, h.flow.State())
}

// AddNodeRequest represents the request body for adding a scene
type AddNodeRequest struct {
	Position *scene.Position `json:"position,omitempty"`
}

// AddNode handles POST /scene/nodes
func (h *SceneHandler) AddNode(w http.ResponseWriter, r *http.Request) {
	var req AddNodeRequest
	if r.ContentLength > 0 {
		if err := common.ParseJSONBody(r, &req, maxBodyBytes); err != nil {
			common.RespondError(w, http.StatusBadRequest, "BAD_REQUEST", "Invalid request body: "+err.Error())
			return
		}
	}

	h.respondScene(w, h.flow.Dispatch(flow.NodeAdded{Position: req.Position}))
}

// DeleteNode handles DELETE /scene/nodes/{nodeID}
func (h *SceneHandler) DeleteNode(w http.ResponseWriter, r *http.Request) {
	nodeID := chi.URLParam(r, "nodeID")
	h.respondScene(w, h.flow.Dispatch(flow.NodeDeleted{NodeID: nodeID}))
}

// NodeChangesRequest represents a batch of incremental node patches
type NodeChangesRequest struct {
	Changes []flow.NodeChange `json:"changes" validate:"required,dive"`
}

// ApplyNodeChanges handles POST /scene/nodes/changes
func (h *SceneHandler) ApplyNodeChanges(w http.ResponseWriter, r *http.Request) {
	var req NodeChangesRequest
	if err := common.ParseJSONBody(r, &req, maxBodyBytes); err != nil {
		common.RespondError(w, http.StatusBadRequest, "BAD_REQUEST", "Invalid request body: "+err.Error())
		return
	}
	if err := validation.Struct(req); err != nil {
		common.RespondError(w, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	h.respondScene(w, h.flow.Dispatch(flow.NodesChanged{Changes: req.Changes}))
}

// TitleRequest carries a title for edit or commit
type TitleRequest struct {
	Title string `json:"title"`
}

// EditTitle handles PUT /scene/nodes/{nodeID}/title
func (h *SceneHandler) EditTitle(w http.ResponseWriter, r *http.Request) {
	var req TitleRequest
	if err := common.ParseJSONBody(r, &req, maxBodyBytes); err != nil {
		common.RespondError(w, http.StatusBadRequest, "BAD_REQUEST", "Invalid request body: "+err.Error())
		return
	}

	nodeID := chi.URLParam(r, "nodeID")
	h.respondScene(w, h.flow.Dispatch(flow.TitleEdited{NodeID: nodeID, Title: req.Title}))
}

// CommitTitle handles POST /scene/nodes/{nodeID}/title/commit
func (h *SceneHandler) CommitTitle(w http.ResponseWriter, r *http.Request) {
	var req TitleRequest
	if err := common.ParseJSONBody(r, &req, maxBodyBytes); err != nil {
		common.RespondError(w, http.StatusBadRequest, "BAD_REQUEST", "Invalid request body: "+err.Error())
		return
	}

	nodeID := chi.URLParam(r, "nodeID")
	h.respondScene(w, h.flow.Dispatch(flow.TitleCommitted{NodeID: nodeID, Title: req.Title}))
}

// SummaryRequest carries an edited summary
type SummaryRequest struct {
	Summary string `json:"summary"`
}

// EditSummary handles PUT /scene/nodes/{nodeID}/summary
func (h *SceneHandler) EditSummary(w http.ResponseWriter, r *http.Request) {
	var req SummaryRequest
	if err := common.ParseJSONBody(r, &req, maxBodyBytes); err != nil {
		common.RespondError(w, http.StatusBadRequest, "BAD_REQUEST", "Invalid request body: "+err.Error())
		return
	}

	nodeID := chi.URLParam(r, "nodeID")
	h.respondScene(w, h.flow.Dispatch(flow.SummaryEdited{NodeID: nodeID, Summary: req.Summary}))
}

// ConnectRequest represents a connect gesture between two scenes
type ConnectRequest struct {
	Source       string `json:"source" validate:"required"`
	Target       string `json:"target" validate:"required"`
	SourceHandle string `json:"sourceHandle,omitempty"`
	TargetHandle string `json:"targetHandle,omitempty"`
}

// ConnectEdge handles POST /scene/edges
func (h *SceneHandler) ConnectEdge(w http.ResponseWriter, r *http.Request) {
	var req ConnectRequest
	if err := common.ParseJSONBody(r, &req, maxBodyBytes); err != nil {
		common.RespondError(w, http.StatusBadRequest, "BAD_REQUEST", "Invalid request body: "+err.Error())
		return
	}
	if err := validation.Struct(req); err != nil {
		common.RespondError(w, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	h.respondScene(w, h.flow.Dispatch(flow.EdgeConnected{Connection: scene.Connection{
		Source:       req.Source,
		Target:       req.Target,
		SourceHandle: req.SourceHandle,
		TargetHandle: req.TargetHandle,
	}}))
}

// EdgeChangesRequest represents a batch of incremental edge patches
type EdgeChangesRequest struct {
	Changes []flow.EdgeChange `json:"changes" validate:"required,dive"`
}

// ApplyEdgeChanges handles POST /scene/edges/changes
func (h *SceneHandler) ApplyEdgeChanges(w http.ResponseWriter, r *http.Request) {
	var req EdgeChangesRequest
	if err := common.ParseJSONBody(r, &req, maxBodyBytes); err != nil {
		common.RespondError(w, http.StatusBadRequest, "BAD_REQUEST", "Invalid request body: "+err.Error())
		return
	}
	if err := validation.Struct(req); err != nil {
		common.RespondError(w, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	h.respondScene(w, h.flow.Dispatch(flow.EdgesChanged{Changes: req.Changes}))
}

// RemoveEdge handles DELETE /scene/edges/{edgeID}
func (h *SceneHandler) RemoveEdge(w http.ResponseWriter, r *http.Request) {
	edgeID := chi.URLParam(r, "edgeID")
	h.respondScene(w, h.flow.Dispatch(flow.EdgeRemoved{EdgeID: edgeID}))
}

// SelectRequest moves the selection focus; an empty id clears it
type SelectRequest struct {
	NodeID string `json:"nodeId"`
}

// SelectNode handles PUT /scene/selection
func (h *SceneHandler) SelectNode(w http.ResponseWriter, r *http.Request) {
	var req SelectRequest
	if err := common.ParseJSONBody(r, &req, maxBodyBytes); err != nil {
		common.RespondError(w, http.StatusBadRequest, "BAD_REQUEST", "Invalid request body: "+err.Error())
		return
	}

	h.respondScene(w, h.flow.Dispatch(flow.NodeSelected{NodeID: req.NodeID}))
}

// StartEditing handles POST /scene/nodes/{nodeID}/editing
func (h *SceneHandler) StartEditing(w http.ResponseWriter, r *http.Request) {
	nodeID := chi.URLParam(r, "nodeID")
	h.respondScene(w, h.flow.Dispatch(flow.EditingStarted{NodeID: nodeID}))
}

// CancelEditing handles DELETE /scene/editing
func (h *SceneHandler) CancelEditing(w http.ResponseWriter, r *http.Request) {
	h.respondScene(w, h.flow.Dispatch(flow.EditingCancelled{}))
}

// Save handles POST /scene/save
func (h *SceneHandler) Save(w http.ResponseWriter, r *http.Request) {
	if err := h.scenes.Save(r.Context()); err != nil {
		common.RespondAppError(w, err)
		return
	}
	common.RespondJSON(w, http.StatusOK, map[string]string{"message": "scene saved"})
}

// Load handles POST /scene/load
func (h *SceneHandler) Load(w http.ResponseWriter, r *http.Request) {
	if err := h.scenes.Load(r.Context()); err != nil {
		common.RespondAppError(w, err)
		return
	}
	h.respondScene(w, h.flow.State())
}

// Import handles POST /scene/import with a raw snapshot document body
func (h *SceneHandler) Import(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		common.RespondAppError(w, apperrors.NewIOError("failed to read snapshot body", err))
		return
	}

	if err := h.scenes.Import(r.Context(), body); err != nil {
		common.RespondAppError(w, err)
		return
	}
	h.respondScene(w, h.flow.State())
}

// NewScene handles POST /scene/new
func (h *SceneHandler) NewScene(w http.ResponseWriter, r *http.Request) {
	if err := h.scenes.NewScene(r.Context()); err != nil {
		common.RespondAppError(w, err)
		return
	}
	h.respondScene(w, h.flow.State())
}

// Export handles GET /scene/export
func (h *SceneHandler) Export(w http.ResponseWriter, r *http.Request) {
	text, err := h.scenes.Export()
	if err != nil {
		common.RespondAppError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", `attachment; filename="`+services.DefaultExportName+`"`)
	w.WriteHeader(http.StatusOK)
	w.Write(text)
}

func (h *SceneHandler) respondScene(w http.ResponseWriter, state flow.State) {
	flowNodes := flow.FlowNodes(state.Nodes, state.SelectedNodeID, state.EditingNodeID, flow.Handlers{})

	views := make([]nodeView, len(flowNodes))
	for i, node := range flowNodes {
		views[i] = nodeView{
			SceneNode:      node,
			SummaryPreview: scene.FormatSummary(node.Data.Summary),
		}
	}

	common.RespondJSON(w, http.StatusOK, sceneView{
		Nodes:          views,
		Edges:          state.Edges,
		SelectedNodeID: state.SelectedNodeID,
		EditingNodeID:  state.EditingNodeID,
		SelectedNode:   flow.SelectedNode(state.Nodes, state.SelectedNodeID),
	})
}
