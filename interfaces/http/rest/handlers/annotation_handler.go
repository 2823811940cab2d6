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

const maxBodyBytes = 1 << 20

// AnnotationHandler exposes group, text and shape mutations over HTTP
type AnnotationHandler struct {
	commandBus *bus.CommandBus
	logger     *zap.Logger
}

// NewAnnotationHandler creates a new annotation handler
func NewAnnotationHandler(commandBus *bus.CommandBus, logger *zap.Logger) *AnnotationHandler {
	return &AnnotationHandler{
		commandBus: commandBus,
		logger:     logger,
	}
}

// CreateGroup handles POST /groups. The id is generated server side
// when the client does not supply one.
func (h *AnnotationHandler) CreateGroup(w http.ResponseWriter, r *http.Request) {
	var cmd commands.AddGroupCommand
	if err := common.ParseJSONBody(w, r, &cmd, maxBodyBytes); err != nil {
		common.RespondError(w, http.StatusBadRequest, "INVALID_BODY", err.Error())
		return
	}
	if cmd.GroupID == "" {
		cmd.GroupID = uuid.New().String()
	}

	if err := h.commandBus.Send(r.Context(), cmd); err != nil {
		writeError(w, err)
		return
	}
	common.RespondJSON(w, http.StatusCreated, map[string]string{"id": cmd.GroupID})
}

// UpdateGroup handles PUT /groups/{groupID}
func (h *AnnotationHandler) UpdateGroup(w http.ResponseWriter, r *http.Request) {
	var cmd commands.UpdateGroupCommand
	if err := common.ParseJSONBody(w, r, &cmd, maxBodyBytes); err != nil {
		common.RespondError(w, http.StatusBadRequest, "INVALID_BODY", err.Error())
		return
	}
	cmd.GroupID = chi.URLParam(r, "groupID")

	if err := h.commandBus.Send(r.Context(), cmd); err != nil {
		writeError(w, err)
		return
	}
	common.RespondJSON(w, http.StatusOK, map[string]string{"id": cmd.GroupID})
}

// ResizeGroup handles PUT /groups/{groupID}/size
func (h *AnnotationHandler) ResizeGroup(w http.ResponseWriter, r *http.Request) {
	var cmd commands.UpdateGroupSizeCommand
	if err := common.ParseJSONBody(w, r, &cmd, maxBodyBytes); err != nil {
		common.RespondError(w, http.StatusBadRequest, "INVALID_BODY", err.Error())
		return
	}
	cmd.GroupID = chi.URLParam(r, "groupID")

	if err := h.commandBus.Send(r.Context(), cmd); err != nil {
		writeError(w, err)
		return
	}
	common.RespondJSON(w, http.StatusOK, map[string]string{"id": cmd.GroupID})
}

// MoveGroup handles PUT /groups/{groupID}/position
func (h *AnnotationHandler) MoveGroup(w http.ResponseWriter, r *http.Request) {
	var cmd commands.UpdateGroupPositionCommand
	if err := common.ParseJSONBody(w, r, &cmd, maxBodyBytes); err != nil {
		common.RespondError(w, http.StatusBadRequest, "INVALID_BODY", err.Error())
		return
	}
	cmd.GroupID = chi.URLParam(r, "groupID")

	if err := h.commandBus.Send(r.Context(), cmd); err != nil {
		writeError(w, err)
		return
	}
	common.RespondJSON(w, http.StatusOK, map[string]string{"id": cmd.GroupID})
}

// DeleteGroup handles DELETE /groups/{groupID}
func (h *AnnotationHandler) DeleteGroup(w http.ResponseWriter, r *http.Request) {
	cmd := commands.DeleteGroupCommand{GroupID: chi.URLParam(r, "groupID")}

	if err := h.commandBus.Send(r.Context(), cmd); err != nil {
		writeError(w, err)
		return
	}
	common.RespondJSON(w, http.StatusOK, map[string]string{"id": cmd.GroupID})
}

// ChangeMembership handles PUT /membership
func (h *AnnotationHandler) ChangeMembership(w http.ResponseWriter, r *http.Request) {
	var cmd commands.ChangeMembershipCommand
	if err := common.ParseJSONBody(w, r, &cmd, maxBodyBytes); err != nil {
		common.RespondError(w, http.StatusBadRequest, "INVALID_BODY", err.Error())
		return
	}

	if err := h.commandBus.Send(r.Context(), cmd); err != nil {
		writeError(w, err)
		return
	}
	common.RespondJSON(w, http.StatusOK, map[string]string{"id": cmd.ChildID})
}

// CreateText handles POST /texts
func (h *AnnotationHandler) CreateText(w http.ResponseWriter, r *http.Request) {
	var cmd commands.AddTextCommand
	if err := common.ParseJSONBody(w, r, &cmd, maxBodyBytes); err != nil {
		common.RespondError(w, http.StatusBadRequest, "INVALID_BODY", err.Error())
		return
	}
	if cmd.TextID == "" {
		cmd.TextID = uuid.New().String()
	}

	if err := h.commandBus.Send(r.Context(), cmd); err != nil {
		writeError(w, err)
		return
	}
	common.RespondJSON(w, http.StatusCreated, map[string]string{"id": cmd.TextID})
}

// UpdateText handles PUT /texts/{textID}
func (h *AnnotationHandler) UpdateText(w http.ResponseWriter, r *http.Request) {
	var cmd commands.UpdateTextCommand
	if err := common.ParseJSONBody(w, r, &cmd, maxBodyBytes); err != nil {
		common.RespondError(w, http.StatusBadRequest, "INVALID_BODY", err.Error())
		return
	}
	cmd.TextID = chi.URLParam(r, "textID")

	if err := h.commandBus.Send(r.Context(), cmd); err != nil {
		writeError(w, err)
		return
	}
	common.RespondJSON(w, http.StatusOK, map[string]string{"id": cmd.TextID})
}

// DeleteText handles DELETE /texts/{textID}
func (h *AnnotationHandler) DeleteText(w http.ResponseWriter, r *http.Request) {
	cmd := commands.DeleteTextCommand{TextID: chi.URLParam(r, "textID")}

	if err := h.commandBus.Send(r.Context(), cmd); err != nil {
		writeError(w, err)
		return
	}
	common.RespondJSON(w, http.StatusOK, map[string]string{"id": cmd.TextID})
}

// CreateShape handles POST /shapes
func (h *AnnotationHandler) CreateShape(w http.ResponseWriter, r *http.Request) {
	var cmd commands.AddShapeCommand
	if err := common.ParseJSONBody(w, r, &cmd, maxBodyBytes); err != nil {
		common.RespondError(w, http.StatusBadRequest, "INVALID_BODY", err.Error())
		return
	}
	if cmd.ShapeID == "" {
		cmd.ShapeID = uuid.New().String()
	}

	if err := h.commandBus.Send(r.Context(), cmd); err != nil {
		writeError(w, err)
		return
	}
	common.RespondJSON(w, http.StatusCreated, map[string]string{"id": cmd.ShapeID})
}

// UpdateShape handles PUT /shapes/{shapeID}
func (h *AnnotationHandler) UpdateShape(w http.ResponseWriter, r *http.Request) {
	var cmd commands.UpdateShapeCommand
	if err := common.ParseJSONBody(w, r, &cmd, maxBodyBytes); err != nil {
		common.RespondError(w, http.StatusBadRequest, "INVALID_BODY", err.Error())
		return
	}
	cmd.ShapeID = chi.URLParam(r, "shapeID")

	if err := h.commandBus.Send(r.Context(), cmd); err != nil {
		writeError(w, err)
		return
	}
	common.RespondJSON(w, http.StatusOK, map[string]string{"id": cmd.ShapeID})
}

// DeleteShape handles DELETE /shapes/{shapeID}
func (h *AnnotationHandler) DeleteShape(w http.ResponseWriter, r *http.Request) {
	cmd := commands.DeleteShapeCommand{ShapeID: chi.URLParam(r, "shapeID")}

	if err := h.commandBus.Send(r.Context(), cmd); err != nil {
		writeError(w, err)
		return
	}
	common.RespondJSON(w, http.StatusOK, map[string]string{"id": cmd.ShapeID})
}
