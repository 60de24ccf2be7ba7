// Package audit provides audit logging for resource lifecycle operations.
//
// Events are emitted in RFC5424 syslog format and optionally persisted to a
// dedicated audit database. The package subscribes to the lifecycle event
// bus, so every committed create, update and soft delete produces exactly
// one audit record.
package audit
