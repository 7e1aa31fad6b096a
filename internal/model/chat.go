package model

import "time"

// ChatMessage is a single message in the group chat.
// Messages are broadcast live and appended to a capped history list.
type ChatMessage struct {
	ID          string
	MemberID    MemberID
	DisplayName string
	AvatarURL   string
	Text        string
	CreatedAt   time.Time
}
