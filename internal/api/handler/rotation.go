package handler

import (
	"encoding/json"
	"net/http"

	"github.com/trouze/movienight/internal/api/apierr"
	"github.com/trouze/movienight/internal/api/middleware"
	"github.com/trouze/movienight/internal/api/request"
	"github.com/trouze/movienight/internal/api/response"
	"github.com/trouze/movienight/internal/rotation"
)

// RotationHandler handles rotation endpoints
type RotationHandler struct {
	controller *rotation.Controller
}

// NewRotationHandler creates a new rotation handler
func NewRotationHandler(controller *rotation.Controller) *RotationHandler {
	return &RotationHandler{
		controller: controller,
	}
}

// Get handles GET /api/v1/rotation.
// Returns the cursor and the participants in display order.
func (h *RotationHandler) Get(w http.ResponseWriter, r *http.Request) {
	members, cursor, err := h.controller.Snapshot(r.Context())
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.Rotation{
		Cursor: cursor,
		Order:  response.MembersFromModel(rotation.Rotate(members, cursor)),
	})
}

// SetCursor handles PUT /api/v1/rotation/cursor.
// Callers without the manage permission get a 204 and nothing happens;
// the rejection is deliberately indistinguishable from success.
func (h *RotationHandler) SetCursor(w http.ResponseWriter, r *http.Request) {
	member := middleware.MustGetMember(r.Context())

	var req request.SetCursorRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierr.WriteError(w, apierr.NewInvalidRequestError("invalid request body"))
		return
	}

	if err := h.controller.AdvanceTo(r.Context(), member.ID, req.Cursor); err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.NoContent(w)
}

// TriggerParty handles POST /api/v1/rotation/party
func (h *RotationHandler) TriggerParty(w http.ResponseWriter, r *http.Request) {
	member := middleware.MustGetMember(r.Context())

	if err := h.controller.TriggerParty(r.Context(), member.ID); err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.NoContent(w)
}
