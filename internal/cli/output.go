package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
}

// NewOutput creates a new Output formatter
func NewOutput(format string) *Output {
	return &Output{format: format}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintError outputs an error
func (o *Output) PrintError(err error) {
	if o.format == "json" {
		errData := map[string]any{
			"error": map[string]string{
				"message": err.Error(),
			},
		}
		data, _ := json.Marshal(errData)
		fmt.Fprintln(os.Stderr, string(data))
	} else {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == "json" {
		data, _ := json.Marshal(map[string]string{"message": msg})
		fmt.Println(string(data))
	} else {
		fmt.Println(msg)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case Member:
		o.printMember(v)
	case []Member:
		o.printMembers(v)
	case AuthResult:
		o.printAuthResult(v)
	case Rotation:
		o.printRotation(v)
	case ChatHistory:
		o.printChatHistory(v)
	case ChatMessage:
		o.printChatMessage(v)
	case Movie:
		o.printMovie(v)
	case MovieList:
		o.printMovieList(v)
	case SearchResults:
		o.printSearchResults(v)
	case HealthResult:
		o.printHealthResult(v)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

// Member response type (matches API)
type Member struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
	AvatarURL   string `json:"avatar_url,omitempty"`
	Role        string `json:"role"`
	Slot        int    `json:"slot"`
}

// AuthResult combines member and token
type AuthResult struct {
	Member       Member `json:"member"`
	SessionToken string `json:"session_token"`
}

// Rotation response type
type Rotation struct {
	Cursor int      `json:"cursor"`
	Order  []Member `json:"order"`
}

// ChatMessage response type
type ChatMessage struct {
	ID          string    `json:"id"`
	MemberID    string    `json:"member_id"`
	DisplayName string    `json:"display_name"`
	Text        string    `json:"text"`
	CreatedAt   time.Time `json:"created_at"`
}

// ChatHistory response type
type ChatHistory struct {
	Messages []ChatMessage `json:"messages"`
}

// Movie response type
type Movie struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	TMDBID      int64      `json:"tmdb_id,omitempty"`
	PosterURL   string     `json:"poster_url,omitempty"`
	Overview    string     `json:"overview,omitempty"`
	ReleaseYear int        `json:"release_year,omitempty"`
	PickedBy    string     `json:"picked_by,omitempty"`
	WatchedAt   *time.Time `json:"watched_at,omitempty"`
}

// MovieList response type
type MovieList struct {
	Movies []Movie `json:"movies"`
}

// SearchResult response type
type SearchResult struct {
	TMDBID      int64  `json:"tmdb_id"`
	Title       string `json:"title"`
	Overview    string `json:"overview,omitempty"`
	ReleaseYear int    `json:"release_year,omitempty"`
}

// SearchResults response type
type SearchResults struct {
	Results []SearchResult `json:"results"`
}

// HealthResult response type
type HealthResult struct {
	Status string `json:"status"`
}

func (o *Output) printMember(m Member) {
	fmt.Printf("Member: %s (%s)\n", m.DisplayName, m.ID)
	fmt.Printf("Role: %s\n", m.Role)
	fmt.Printf("Slot: %d\n", m.Slot)
}

func (o *Output) printMembers(members []Member) {
	if len(members) == 0 {
		fmt.Println("No members")
		return
	}
	fmt.Printf("Members (%d):\n", len(members))
	for _, m := range members {
		fmt.Printf("  %d: %s (%s) - %s\n", m.Slot, m.DisplayName, m.ID, m.Role)
	}
}

func (o *Output) printAuthResult(a AuthResult) {
	o.printMember(a.Member)
	fmt.Printf("Token: %s\n", a.SessionToken)
}

func (o *Output) printRotation(r Rotation) {
	fmt.Printf("Cursor: %d\n", r.Cursor)
	fmt.Printf("Up next (%d members):\n", len(r.Order))
	for i, m := range r.Order {
		marker := "  "
		if i == 0 {
			marker = "* "
		}
		fmt.Printf("%s%s (slot %d)\n", marker, m.DisplayName, m.Slot)
	}
}

func (o *Output) printChatMessage(m ChatMessage) {
	timestamp := m.CreatedAt.Local().Format("15:04")
	fmt.Printf("[%s] %s: %s\n", timestamp, m.DisplayName, m.Text)
}

func (o *Output) printChatHistory(h ChatHistory) {
	if len(h.Messages) == 0 {
		fmt.Println("No messages")
		return
	}
	for _, m := range h.Messages {
		o.printChatMessage(m)
	}
}

func (o *Output) printMovie(m Movie) {
	fmt.Printf("Movie: %s (%s)\n", m.Title, m.ID)
	if m.ReleaseYear != 0 {
		fmt.Printf("Year: %d\n", m.ReleaseYear)
	}
	if m.TMDBID != 0 {
		fmt.Printf("TMDB: %d\n", m.TMDBID)
	}
	if m.PickedBy != "" {
		fmt.Printf("Picked by: %s\n", m.PickedBy)
	}
	if m.WatchedAt != nil {
		fmt.Printf("Watched: %s\n", m.WatchedAt.Local().Format("2006-01-02"))
	}
	if m.Overview != "" {
		fmt.Printf("Overview: %s\n", m.Overview)
	}
}

func (o *Output) printMovieList(l MovieList) {
	if len(l.Movies) == 0 {
		fmt.Println("No movies")
		return
	}
	fmt.Printf("Movies (%d):\n", len(l.Movies))
	for _, m := range l.Movies {
		watched := ""
		if m.WatchedAt != nil {
			watched = " [watched " + m.WatchedAt.Local().Format("2006-01-02") + "]"
		}
		year := ""
		if m.ReleaseYear != 0 {
			year = fmt.Sprintf(" (%d)", m.ReleaseYear)
		}
		fmt.Printf("  - %s%s - %s%s\n", m.Title, year, m.ID, watched)
	}
}

func (o *Output) printSearchResults(r SearchResults) {
	if len(r.Results) == 0 {
		fmt.Println("No results")
		return
	}
	for _, res := range r.Results {
		year := ""
		if res.ReleaseYear != 0 {
			year = fmt.Sprintf(" (%d)", res.ReleaseYear)
		}
		fmt.Printf("  %d: %s%s\n", res.TMDBID, res.Title, year)
	}
}

func (o *Output) printHealthResult(h HealthResult) {
	fmt.Printf("Status: %s\n", h.Status)
}
