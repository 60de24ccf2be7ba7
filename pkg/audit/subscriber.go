package audit

import (
	"fmt"

	"github.com/lockboxhq/lockbox/pkg/event"
)

// Subscriber bridges the lifecycle event bus to the audit trail. Register
// it on the bus at wiring time; every committed mutation then produces one
// audit record.
type Subscriber struct {
	log func(Event)
}

var _ event.Subscriber = (*Subscriber)(nil)

func NewSubscriber() *Subscriber {
	return &Subscriber{log: Log}
}

func (s *Subscriber) HandleEvent(e event.Event) error {
	switch e.Kind {
	case event.KindResourceCreated:
		s.log(ResourceCreatedEvent{ActorID: e.ActorID, ResourceID: e.ResourceID})
	case event.KindResourceUpdated:
		s.log(ResourceUpdatedEvent{ActorID: e.ActorID, ResourceID: e.ResourceID})
	case event.KindResourceSoftDeleted:
		s.log(ResourceSoftDeletedEvent{ActorID: e.ActorID, ResourceID: e.ResourceID})
	default:
		return fmt.Errorf("unknown event kind %d", int(e.Kind))
	}
	return nil
}
