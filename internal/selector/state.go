package selector

// State is the interaction phase of a selector.
type State int

const (
	// Idle means the offset sits exactly on a row boundary.
	Idle State = iota
	// Dragging means the user controls the offset.
	Dragging
	// Settling means the host is decelerating after a release.
	Settling
	// Repositioning means the offset was silently moved and a commit is pending.
	Repositioning
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Dragging:
		return "dragging"
	case Settling:
		return "settling"
	case Repositioning:
		return "repositioning"
	}
	return "unknown"
}
