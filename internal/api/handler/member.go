package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/trouze/movienight/internal/api/apierr"
	"github.com/trouze/movienight/internal/api/middleware"
	"github.com/trouze/movienight/internal/api/request"
	"github.com/trouze/movienight/internal/api/response"
	"github.com/trouze/movienight/internal/model"
	"github.com/trouze/movienight/internal/rotation"
	"github.com/trouze/movienight/internal/services/auth"
)

// MemberHandler handles member and authentication endpoints
type MemberHandler struct {
	authService *auth.Service
	roster      *rotation.Roster
}

// NewMemberHandler creates a new member handler
func NewMemberHandler(authService *auth.Service, roster *rotation.Roster) *MemberHandler {
	return &MemberHandler{
		authService: authService,
		roster:      roster,
	}
}

// Register handles POST /api/v1/members/register
func (h *MemberHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req request.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierr.WriteError(w, apierr.NewInvalidRequestError("invalid request body"))
		return
	}

	if req.Username == "" {
		apierr.WriteError(w, apierr.NewInvalidRequestError("username is required"))
		return
	}
	if req.Password == "" {
		apierr.WriteError(w, apierr.NewInvalidRequestError("password is required"))
		return
	}
	if req.DisplayName == "" {
		apierr.WriteError(w, apierr.NewInvalidRequestError("display_name is required"))
		return
	}

	session, err := h.authService.Register(r.Context(), req.Username, req.Password, req.DisplayName, req.AvatarURL)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.AuthResponseFromSession(session))
}

// Login handles POST /api/v1/members/login
func (h *MemberHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req request.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierr.WriteError(w, apierr.NewInvalidRequestError("invalid request body"))
		return
	}

	if req.Username == "" {
		apierr.WriteError(w, apierr.NewInvalidRequestError("username is required"))
		return
	}
	if req.Password == "" {
		apierr.WriteError(w, apierr.NewInvalidRequestError("password is required"))
		return
	}

	session, err := h.authService.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.AuthResponseFromSession(session))
}

// Logout handles POST /api/v1/members/logout
func (h *MemberHandler) Logout(w http.ResponseWriter, r *http.Request) {
	session := middleware.GetSession(r.Context())
	if session != nil {
		h.authService.InvalidateSession(session.Token)
	}
	response.NoContent(w)
}

// List handles GET /api/v1/members. Participants come back in slot
// order; members outside the rotation are not listed.
func (h *MemberHandler) List(w http.ResponseWriter, r *http.Request) {
	members, err := h.roster.Members(r.Context())
	if err != nil {
		apierr.WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, response.MembersFromModel(members))
}

// GetMe handles GET /api/v1/members/me
func (h *MemberHandler) GetMe(w http.ResponseWriter, r *http.Request) {
	member := middleware.MustGetMember(r.Context())
	response.JSON(w, http.StatusOK, response.MemberFromModel(member))
}

// SetRole handles PATCH /api/v1/members/{member_id}/role
func (h *MemberHandler) SetRole(w http.ResponseWriter, r *http.Request) {
	caller := middleware.MustGetMember(r.Context())
	if !h.authService.Has(r.Context(), caller.ID, model.PermissionManageMovies) {
		apierr.WriteError(w, apierr.NewForbiddenError())
		return
	}

	var req request.SetRoleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierr.WriteError(w, apierr.NewInvalidRequestError("invalid request body"))
		return
	}

	role := model.Role(req.Role)
	if role != model.RoleMember && role != model.RoleAdmin {
		apierr.WriteError(w, apierr.NewInvalidRequestError("role must be member or admin"))
		return
	}

	memberID := model.MemberID(mux.Vars(r)["member_id"])
	if err := h.authService.SetRole(r.Context(), memberID, role); err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.NoContent(w)
}
