package model

// Channel names for the pub/sub broker. Clients subscribe by name;
// events published while a client is disconnected are not replayed.
const (
	ChannelMovieNight = "movie_night_members"
	ChannelChat       = "chat"
)

// Event names broadcast over the channels
const (
	// EventSetCursor carries the new rotation cursor as a bare integer
	EventSetCursor = "evt::set-cursor"
	// EventTriggerParty carries the triggering member's id as a string.
	// Nothing is persisted for it.
	EventTriggerParty = "evt::trigger-party"
	// EventMainChat carries a full ChatMessage
	EventMainChat = "evt::main-chat"
)

// Channels lists every channel the broker serves
func Channels() []string {
	return []string{ChannelMovieNight, ChannelChat}
}

// KnownChannel reports whether name is a channel clients may subscribe to
func KnownChannel(name string) bool {
	for _, c := range Channels() {
		if c == name {
			return true
		}
	}
	return false
}
