package audit

import "fmt"

// ResourceCreatedEvent records a committed resource creation
type ResourceCreatedEvent struct {
	ActorID    string
	ResourceID string
}

func (e ResourceCreatedEvent) MessageID() string {
	return "resource-create"
}

func (e ResourceCreatedEvent) Message() string {
	return fmt.Sprintf("%s created resource %s", e.ActorID, e.ResourceID)
}

func (e ResourceCreatedEvent) Severity() Severity {
	return SeverityInfo
}

func (e ResourceCreatedEvent) Facility() int {
	return FacilityAuthPriv
}

func (e ResourceCreatedEvent) StructuredData() map[string]map[string]string {
	return map[string]map[string]string{
		SDIDActor:   {"user": e.ActorID},
		SDIDSubject: {"resource": e.ResourceID},
		SDIDAction:  {"operation": "create", "result": "success"},
	}
}

// ResourceUpdatedEvent records a committed resource update
type ResourceUpdatedEvent struct {
	ActorID    string
	ResourceID string
}

func (e ResourceUpdatedEvent) MessageID() string {
	return "resource-update"
}

func (e ResourceUpdatedEvent) Message() string {
	return fmt.Sprintf("%s updated resource %s", e.ActorID, e.ResourceID)
}

func (e ResourceUpdatedEvent) Severity() Severity {
	return SeverityInfo
}

func (e ResourceUpdatedEvent) Facility() int {
	return FacilityAuthPriv
}

func (e ResourceUpdatedEvent) StructuredData() map[string]map[string]string {
	return map[string]map[string]string{
		SDIDActor:   {"user": e.ActorID},
		SDIDSubject: {"resource": e.ResourceID},
		SDIDAction:  {"operation": "update", "result": "success"},
	}
}

// ResourceSoftDeletedEvent records a committed soft delete
type ResourceSoftDeletedEvent struct {
	ActorID    string
	ResourceID string
}

func (e ResourceSoftDeletedEvent) MessageID() string {
	return "resource-soft-delete"
}

func (e ResourceSoftDeletedEvent) Message() string {
	return fmt.Sprintf("%s soft deleted resource %s", e.ActorID, e.ResourceID)
}

func (e ResourceSoftDeletedEvent) Severity() Severity {
	return SeverityNotice
}

func (e ResourceSoftDeletedEvent) Facility() int {
	return FacilityAuthPriv
}

func (e ResourceSoftDeletedEvent) StructuredData() map[string]map[string]string {
	return map[string]map[string]string{
		SDIDActor:   {"user": e.ActorID},
		SDIDSubject: {"resource": e.ResourceID},
		SDIDAction:  {"operation": "soft-delete", "result": "success"},
	}
}
