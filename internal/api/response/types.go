package response

import (
	"time"

	"github.com/trouze/movienight/internal/metadata"
	"github.com/trouze/movienight/internal/model"
	"github.com/trouze/movienight/internal/services/auth"
)

// Member represents a member in API responses
type Member struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
	AvatarURL   string `json:"avatar_url,omitempty"`
	Role        string `json:"role"`
	Slot        int    `json:"slot"`
}

// MemberFromModel converts a model.Member to a response Member
func MemberFromModel(m *model.Member) Member {
	return Member{
		ID:          string(m.ID),
		DisplayName: m.DisplayName,
		AvatarURL:   m.AvatarURL,
		Role:        string(m.Role),
		Slot:        m.Slot,
	}
}

// MembersFromModel converts a list of members
func MembersFromModel(members []*model.Member) []Member {
	out := make([]Member, len(members))
	for i, m := range members {
		out[i] = MemberFromModel(m)
	}
	return out
}

// AuthResponse is the response for authentication endpoints
type AuthResponse struct {
	Member       Member `json:"member"`
	SessionToken string `json:"session_token"`
}

// AuthResponseFromSession creates an AuthResponse from a session
func AuthResponseFromSession(s *auth.Session) AuthResponse {
	return AuthResponse{
		Member:       MemberFromModel(&s.Member),
		SessionToken: s.Token,
	}
}

// Rotation is the current rotation state: the cursor plus the
// participants in display order (cursor's member first)
type Rotation struct {
	Cursor int      `json:"cursor"`
	Order  []Member `json:"order"`
}

// ChatMessage represents a chat message in API responses
type ChatMessage struct {
	ID          string    `json:"id"`
	MemberID    string    `json:"member_id"`
	DisplayName string    `json:"display_name"`
	AvatarURL   string    `json:"avatar_url,omitempty"`
	Text        string    `json:"text"`
	CreatedAt   time.Time `json:"created_at"`
}

// ChatMessageFromModel converts a model.ChatMessage
func ChatMessageFromModel(m *model.ChatMessage) ChatMessage {
	return ChatMessage{
		ID:          m.ID,
		MemberID:    string(m.MemberID),
		DisplayName: m.DisplayName,
		AvatarURL:   m.AvatarURL,
		Text:        m.Text,
		CreatedAt:   m.CreatedAt,
	}
}

// ChatHistory is the response for the chat history endpoint
type ChatHistory struct {
	Messages []ChatMessage `json:"messages"`
}

// ChatHistoryFromModel converts a list of chat messages
func ChatHistoryFromModel(messages []*model.ChatMessage) ChatHistory {
	out := make([]ChatMessage, len(messages))
	for i, m := range messages {
		out[i] = ChatMessageFromModel(m)
	}
	return ChatHistory{Messages: out}
}

// Movie represents a movie in API responses
type Movie struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	TMDBID      int64      `json:"tmdb_id,omitempty"`
	PosterURL   string     `json:"poster_url,omitempty"`
	Overview    string     `json:"overview,omitempty"`
	ReleaseYear int        `json:"release_year,omitempty"`
	PickedBy    string     `json:"picked_by,omitempty"`
	WatchedAt   *time.Time `json:"watched_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

// MovieFromModel converts a model.Movie
func MovieFromModel(m *model.Movie) Movie {
	movie := Movie{
		ID:          string(m.ID),
		Title:       m.Title,
		TMDBID:      m.TMDBID,
		PosterURL:   m.PosterURL,
		Overview:    m.Overview,
		ReleaseYear: m.ReleaseYear,
		PickedBy:    string(m.PickedBy),
		CreatedAt:   m.CreatedAt,
	}
	if !m.WatchedAt.IsZero() {
		t := m.WatchedAt
		movie.WatchedAt = &t
	}
	return movie
}

// MovieList is the response for the movie list endpoint
type MovieList struct {
	Movies []Movie `json:"movies"`
}

// MovieListFromModel converts a list of movies
func MovieListFromModel(movies []*model.Movie) MovieList {
	out := make([]Movie, len(movies))
	for i, m := range movies {
		out[i] = MovieFromModel(m)
	}
	return MovieList{Movies: out}
}

// SearchResult represents a metadata search hit
type SearchResult struct {
	TMDBID      int64  `json:"tmdb_id"`
	Title       string `json:"title"`
	Overview    string `json:"overview,omitempty"`
	PosterURL   string `json:"poster_url,omitempty"`
	ReleaseYear int    `json:"release_year,omitempty"`
}

// SearchResults is the response for the metadata search endpoint
type SearchResults struct {
	Results []SearchResult `json:"results"`
}

// SearchResultsFromMetadata converts metadata results
func SearchResultsFromMetadata(results []metadata.Result) SearchResults {
	out := make([]SearchResult, len(results))
	for i, r := range results {
		out[i] = SearchResult{
			TMDBID:      r.TMDBID,
			Title:       r.Title,
			Overview:    r.Overview,
			PosterURL:   r.PosterURL,
			ReleaseYear: r.ReleaseYear,
		}
	}
	return SearchResults{Results: out}
}
