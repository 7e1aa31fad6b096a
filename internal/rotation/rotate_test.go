package rotation

import (
	"fmt"
	"testing"

	"github.com/trouze/movienight/internal/model"
)

func makeMembers(n int) []*model.Member {
	members := make([]*model.Member, n)
	for i := 0; i < n; i++ {
		members[i] = &model.Member{
			ID:          model.MemberID(fmt.Sprintf("member-%d", i)),
			DisplayName: fmt.Sprintf("P%d", i),
			Slot:        i,
		}
	}
	return members
}

func TestRotate(t *testing.T) {
	tests := []struct {
		name     string
		size     int
		cursor   int
		expected []string
	}{
		{
			name:     "cursor zero keeps slot order",
			size:     4,
			cursor:   0,
			expected: []string{"P0", "P1", "P2", "P3"},
		},
		{
			name:     "cursor three of eight",
			size:     8,
			cursor:   3,
			expected: []string{"P3", "P4", "P5", "P6", "P7", "P0", "P1", "P2"},
		},
		{
			name:     "cursor six of eight",
			size:     8,
			cursor:   6,
			expected: []string{"P6", "P7", "P0", "P1", "P2", "P3", "P4", "P5"},
		},
		{
			name:     "wraparound at last slot",
			size:     5,
			cursor:   4,
			expected: []string{"P4", "P0", "P1", "P2", "P3"},
		},
		{
			name:     "single member",
			size:     1,
			cursor:   0,
			expected: []string{"P0"},
		},
		{
			name:     "cursor past shrunk roster clamps to last slot",
			size:     3,
			cursor:   7,
			expected: []string{"P2", "P0", "P1"},
		},
		{
			name:     "negative cursor clamps to first slot",
			size:     3,
			cursor:   -2,
			expected: []string{"P0", "P1", "P2"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Rotate(makeMembers(tt.size), tt.cursor)
			if len(result) != len(tt.expected) {
				t.Fatalf("Rotate() returned %d members, want %d", len(result), len(tt.expected))
			}
			for i, m := range result {
				if m.DisplayName != tt.expected[i] {
					t.Errorf("Rotate()[%d] = %s, want %s", i, m.DisplayName, tt.expected[i])
				}
			}
		})
	}
}

func TestRotate_PreservesMultiset(t *testing.T) {
	for n := 1; n <= 8; n++ {
		for c := 0; c < n; c++ {
			members := makeMembers(n)
			result := Rotate(members, c)

			if result[0].Slot != c {
				t.Errorf("n=%d c=%d: first member has slot %d, want %d", n, c, result[0].Slot, c)
			}

			seen := make(map[model.MemberID]bool)
			for _, m := range result {
				if seen[m.ID] {
					t.Errorf("n=%d c=%d: member %s duplicated", n, c, m.ID)
				}
				seen[m.ID] = true
			}
			if len(seen) != n {
				t.Errorf("n=%d c=%d: %d distinct members, want %d", n, c, len(seen), n)
			}
		}
	}
}

func TestRotate_EmptyList(t *testing.T) {
	result := Rotate(nil, 3)
	if len(result) != 0 {
		t.Errorf("Rotate(nil) returned %d members, want 0", len(result))
	}
}

func TestRotate_DoesNotModifyInput(t *testing.T) {
	members := makeMembers(4)
	Rotate(members, 2)
	for i, m := range members {
		if m.Slot != i {
			t.Errorf("input member %d moved to slot %d", i, m.Slot)
		}
	}
}

func TestClampCursor(t *testing.T) {
	tests := []struct {
		name     string
		cursor   int
		n        int
		expected int
	}{
		{"in range", 3, 8, 3},
		{"zero", 0, 8, 0},
		{"last slot", 7, 8, 7},
		{"past end", 8, 8, 7},
		{"far past end", 100, 3, 2},
		{"negative", -1, 8, 0},
		{"empty roster", 5, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ClampCursor(tt.cursor, tt.n); got != tt.expected {
				t.Errorf("ClampCursor(%d, %d) = %d, want %d", tt.cursor, tt.n, got, tt.expected)
			}
		})
	}
}
