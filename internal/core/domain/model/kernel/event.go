package kernel

import "time"

// DomainEvent is a fact recorded by an aggregate and published after the
// unit of work that produced it commits.
type DomainEvent interface {
	EventName() string
	AggregateID() UUID
	OccurredAt() time.Time
}
