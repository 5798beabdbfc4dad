package models

import "fmt"

// Group represents a shared expense room.
type Group struct {
	// ID is the room code (format XXX-XXX) used to join the room.
	ID string

	// Name is the display name of the room.
	Name string

	// Members is the ordered member list. Members are only ever appended.
	Members []Member

	// CreatedAt is the Unix timestamp when the room was created.
	CreatedAt int64
}

// Member represents one person in a room.
type Member struct {
	// ID is the stable unique identifier for the member (UUID format).
	ID string

	// Name is the display name. Not required to be unique.
	Name string
}

// DefaultGroupName returns the name given to a room created without one.
func DefaultGroupName(code string) string {
	return fmt.Sprintf("Room %s", code)
}

// FindMember returns the member with the given ID, if present.
func (g *Group) FindMember(memberID string) (Member, bool) {
	for _, m := range g.Members {
		if m.ID == memberID {
			return m, true
		}
	}
	return Member{}, false
}
