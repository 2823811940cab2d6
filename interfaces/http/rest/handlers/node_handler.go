package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"topocanvas/application/commands"
	"topocanvas/application/commands/bus"
	"topocanvas/pkg/common"
)

// NodeHandler exposes node movement and drag gestures over HTTP
type NodeHandler struct {
	commandBus *bus.CommandBus
	logger     *zap.Logger
}

// NewNodeHandler creates a new node handler
func NewNodeHandler(commandBus *bus.CommandBus, logger *zap.Logger) *NodeHandler {
	return &NodeHandler{
		commandBus: commandBus,
		logger:     logger,
	}
}

// MoveNode handles POST /nodes/{nodeID}/move
func (h *NodeHandler) MoveNode(w http.ResponseWriter, r *http.Request) {
	var cmd commands.MoveNodeCommand
	if err := common.ParseJSONBody(w, r, &cmd, maxBodyBytes); err != nil {
		common.RespondError(w, http.StatusBadRequest, "INVALID_BODY", err.Error())
		return
	}
	cmd.NodeID = chi.URLParam(r, "nodeID")

	if err := h.commandBus.Send(r.Context(), cmd); err != nil {
		writeError(w, err)
		return
	}
	common.RespondJSON(w, http.StatusOK, map[string]string{"id": cmd.NodeID})
}

// BeginGesture handles POST /gestures
func (h *NodeHandler) BeginGesture(w http.ResponseWriter, r *http.Request) {
	var cmd commands.BeginGestureCommand
	if err := common.ParseJSONBody(w, r, &cmd, maxBodyBytes); err != nil {
		common.RespondError(w, http.StatusBadRequest, "INVALID_BODY", err.Error())
		return
	}
	if cmd.GestureID == "" {
		cmd.GestureID = uuid.New().String()
	}

	if err := h.commandBus.Send(r.Context(), cmd); err != nil {
		writeError(w, err)
		return
	}
	common.RespondJSON(w, http.StatusCreated, map[string]string{"id": cmd.GestureID})
}

// ApplyGestureFrame handles PUT /gestures/{gestureID}/frame. Frames
// mutate the live document only; nothing is recorded until the
// gesture ends.
func (h *NodeHandler) ApplyGestureFrame(w http.ResponseWriter, r *http.Request) {
	var cmd commands.GestureFrameCommand
	if err := common.ParseJSONBody(w, r, &cmd, maxBodyBytes); err != nil {
		common.RespondError(w, http.StatusBadRequest, "INVALID_BODY", err.Error())
		return
	}

	if err := h.commandBus.Send(r.Context(), cmd); err != nil {
		writeError(w, err)
		return
	}
	common.RespondJSON(w, http.StatusOK, map[string]string{"id": cmd.NodeID})
}

// EndGesture handles POST /gestures/{gestureID}/end
func (h *NodeHandler) EndGesture(w http.ResponseWriter, r *http.Request) {
	var cmd commands.EndGestureCommand
	if err := common.ParseJSONBody(w, r, &cmd, maxBodyBytes); err != nil {
		common.RespondError(w, http.StatusBadRequest, "INVALID_BODY", err.Error())
		return
	}
	cmd.GestureID = chi.URLParam(r, "gestureID")

	if err := h.commandBus.Send(r.Context(), cmd); err != nil {
		writeError(w, err)
		return
	}
	common.RespondJSON(w, http.StatusOK, map[string]string{"id": cmd.GestureID})
}
