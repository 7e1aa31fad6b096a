package model

import "time"

// MovieID uniquely identifies a watched-movie record
type MovieID string

// Movie is a movie the group watched (or has queued up)
type Movie struct {
	ID          MovieID
	Title       string
	TMDBID      int64 // external metadata catalog id, 0 if unknown
	PosterURL   string
	Overview    string
	ReleaseYear int
	PickedBy    MemberID // whose turn produced this pick
	WatchedAt   time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
