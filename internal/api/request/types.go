package request

// RegisterRequest is the request body for registering a member
type RegisterRequest struct {
	Username    string `json:"username"`
	Password    string `json:"password"`
	DisplayName string `json:"display_name"`
	AvatarURL   string `json:"avatar_url,omitempty"`
}

// LoginRequest is the request body for logging in
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// SetRoleRequest is the request body for changing a member's role
type SetRoleRequest struct {
	Role string `json:"role"`
}

// SetCursorRequest is the request body for advancing the rotation
type SetCursorRequest struct {
	Cursor int `json:"cursor"`
}

// PostMessageRequest is the request body for posting a chat message
type PostMessageRequest struct {
	Text string `json:"text"`
}

// AddMovieRequest is the request body for recording a watched movie
type AddMovieRequest struct {
	Title     string `json:"title,omitempty"`
	TMDBID    int64  `json:"tmdb_id,omitempty"`
	PickedBy  string `json:"picked_by,omitempty"`
	WatchedAt string `json:"watched_at,omitempty"` // RFC 3339
}
