package resource

import "github.com/lockboxhq/lockbox/pkg/model"

// EffectiveLevel resolves the highest level the actor holds on the
// materialized permission rows of a resource, considering direct user
// grants and grants to any of the actor's groups. The second return is
// false when the actor holds no grant at all.
func EffectiveLevel(perms []model.Permission, actorID string, actorGroups []string) (Level, bool) {
	groups := make(map[string]struct{}, len(actorGroups))
	for _, g := range actorGroups {
		groups[g] = struct{}{}
	}

	var effective Level
	found := false
	for _, p := range perms {
		match := false
		switch p.AroType {
		case model.AroUser:
			match = p.AroID == actorID
		case model.AroGroup:
			_, match = groups[p.AroID]
		}
		if !match {
			continue
		}
		if level := Level(p.Type); !found || level > effective {
			effective = level
			found = true
		}
	}
	return effective, found
}

// Authorize reports whether the actor's effective level satisfies the
// required level. It fails closed: no grant found means no access, never
// an error a caller could swallow.
func Authorize(perms []model.Permission, actorID string, actorGroups []string, required Level) bool {
	effective, ok := EffectiveLevel(perms, actorID, actorGroups)
	return ok && effective.Grants(required)
}
