package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/trouze/movienight/internal/api/apierr"
	"github.com/trouze/movienight/internal/api/middleware"
	"github.com/trouze/movienight/internal/api/request"
	"github.com/trouze/movienight/internal/api/response"
	"github.com/trouze/movienight/internal/services/chat"
)

// ChatHandler handles chat endpoints
type ChatHandler struct {
	chatService *chat.Service
}

// NewChatHandler creates a new chat handler
func NewChatHandler(chatService *chat.Service) *ChatHandler {
	return &ChatHandler{
		chatService: chatService,
	}
}

// History handles GET /api/v1/chat/messages
func (h *ChatHandler) History(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			apierr.WriteError(w, apierr.NewInvalidRequestError("limit must be an integer"))
			return
		}
		limit = parsed
	}

	messages, err := h.chatService.Recent(r.Context(), limit)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.ChatHistoryFromModel(messages))
}

// Post handles POST /api/v1/chat/messages
func (h *ChatHandler) Post(w http.ResponseWriter, r *http.Request) {
	member := middleware.MustGetMember(r.Context())

	var req request.PostMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierr.WriteError(w, apierr.NewInvalidRequestError("invalid request body"))
		return
	}

	msg, err := h.chatService.Post(r.Context(), member, req.Text)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.ChatMessageFromModel(msg))
}
