package resource

import "fmt"

// Level is a permission level on a resource. Levels are strictly ordered:
// OWNER implies UPDATE implies READ. The numeric encoding is the classic
// unix-mask style used by the wire format and the permissions table.
type Level int

const (
	LevelRead   Level = 1
	LevelUpdate Level = 7
	LevelOwner  Level = 15
)

func (l Level) String() string {
	switch l {
	case LevelRead:
		return "read"
	case LevelUpdate:
		return "update"
	case LevelOwner:
		return "owner"
	}
	return fmt.Sprintf("Level(%d)", int(l))
}

// IsValid reports whether l is one of the three defined levels.
func (l Level) IsValid() bool {
	return l == LevelRead || l == LevelUpdate || l == LevelOwner
}

// Grants reports whether a grant at level l satisfies the required level.
func (l Level) Grants(required Level) bool {
	return l >= required
}
