package event

import "time"

//go:generate go run github.com/dmarkham/enumer -type Kind -trimprefix Kind -transform snake -output kind.gen.go
type Kind int

const (
	KindResourceCreated Kind = iota
	KindResourceUpdated
	KindResourceSoftDeleted
)

// Event describes one resource lifecycle transition.
type Event struct {
	Kind       Kind
	ResourceID string
	ActorID    string
	Timestamp  time.Time
}

// New builds an event stamped with the current time.
func New(kind Kind, resourceID, actorID string) Event {
	return Event{
		Kind:       kind,
		ResourceID: resourceID,
		ActorID:    actorID,
		Timestamp:  time.Now().UTC(),
	}
}
