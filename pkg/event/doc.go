// Package event publishes resource lifecycle events to registered
// subscribers. Publication is best effort: a failing subscriber is logged
// and never rolls back the mutation that produced the event.
package event
