package store

import "context"

// AccessStore materializes group membership for the engine. Membership
// management itself is external; the engine only reads it to expand group
// grantees into user ids and to resolve an actor's effective level.
type AccessStore interface {
	// GroupsOfUser returns the ids of the groups the user belongs to.
	GroupsOfUser(ctx context.Context, userID string) ([]string, error)

	// MembersOfGroups returns the deduplicated user ids belonging to any of
	// the given groups. Empty input yields an empty result.
	MembersOfGroups(ctx context.Context, groupIDs []string) ([]string, error)
}
