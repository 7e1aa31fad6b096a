package redis

import (
	"fmt"

	"github.com/trouze/movienight/internal/model"
)

// Key prefix for all movie night data
const keyPrefix = "movienight"

// cursorKey returns the Redis key holding the rotation cursor.
// The value is stored as a plain number, not JSON.
func cursorKey() string {
	return fmt.Sprintf("%s:cursor", keyPrefix)
}

// memberKey returns the Redis key for a Member
func memberKey(id model.MemberID) string {
	return fmt.Sprintf("%s:member:%s", keyPrefix, id)
}

// membersIndexKey returns the Redis key for the LIST of member keys,
// in registry enumeration order
func membersIndexKey() string {
	return fmt.Sprintf("%s:idx:members", keyPrefix)
}

// credentialsKey returns the Redis key for a member's Credentials
func credentialsKey(id model.MemberID) string {
	return fmt.Sprintf("%s:credentials:%s", keyPrefix, id)
}

// usernameIndexKey returns the Redis key for the username -> member_id index
func usernameIndexKey(username string) string {
	return fmt.Sprintf("%s:idx:username:%s", keyPrefix, username)
}

// movieKey returns the Redis key for a Movie
func movieKey(id model.MovieID) string {
	return fmt.Sprintf("%s:movie:%s", keyPrefix, id)
}

// moviesIndexKey returns the Redis key for the LIST of movie keys
func moviesIndexKey() string {
	return fmt.Sprintf("%s:idx:movies", keyPrefix)
}

// chatKey returns the Redis key for the chat history list
func chatKey() string {
	return fmt.Sprintf("%s:posts", keyPrefix)
}
