package rotation

import (
	"github.com/trouze/movienight/internal/model"
)

// Rotate returns members rotated left by cursor, so the member at slot
// cursor comes first and the rest follow in slot order, wrapping around.
// The input slice is not modified.
func Rotate(members []*model.Member, cursor int) []*model.Member {
	n := len(members)
	if n == 0 {
		return []*model.Member{}
	}

	cursor = ClampCursor(cursor, n)

	rotated := make([]*model.Member, 0, n)
	rotated = append(rotated, members[cursor:]...)
	rotated = append(rotated, members[:cursor]...)
	return rotated
}

// ClampCursor forces cursor into the valid range [0, n). Values past the
// end of a shrunk roster land on the last slot rather than pointing at
// nothing; negative values land on the first.
func ClampCursor(cursor, n int) int {
	if n <= 0 {
		return 0
	}
	if cursor < 0 {
		return 0
	}
	if cursor >= n {
		return n - 1
	}
	return cursor
}
