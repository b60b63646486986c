package role

import (
	"strings"

	"github.com/edustack/academy-idm/pkg/errors"
)

// Kind is one of the fixed authorization tiers. The set of kinds is defined
// here, not data-driven: persisted roles carry a kind name, the policy lives
// in this table.
type Kind struct {
	ID    string
	Name  string
	Level int
}

// The four kinds in ascending authorization order
var (
	Student    = Kind{ID: "STUDENT", Name: "STUDENT", Level: 0}
	Teacher    = Kind{ID: "TEACHER", Name: "TEACHER", Level: 1}
	Admin      = Kind{ID: "ADMIN", Name: "ADMIN", Level: 2}
	SuperAdmin = Kind{ID: "SUPER_ADMIN", Name: "SUPER_ADMIN", Level: 3}
)

// Kinds returns the fixed role kinds in ascending level order
func Kinds() []Kind {
	return []Kind{Student, Teacher, Admin, SuperAdmin}
}

// ParseKindID resolves a kind from its string identifier, case-insensitively.
// Unknown identifiers are an error, never a default kind.
func ParseKindID(id string) (Kind, error) {
	for _, k := range Kinds() {
		if strings.EqualFold(k.ID, id) {
			return k, nil
		}
	}
	return Kind{}, errors.RoleNotFound(id)
}

// ParseKindName resolves a kind from its display name, case-insensitively.
// Display names are identical to identifiers in this system, but the lookup
// is exposed separately because persisted roles reference kinds by name.
func ParseKindName(name string) (Kind, error) {
	for _, k := range Kinds() {
		if strings.EqualFold(k.Name, name) {
			return k, nil
		}
	}
	return Kind{}, errors.RoleNotFound(name)
}

// HasMinimumLevel reports whether k is at least as privileged as required
func (k Kind) HasMinimumLevel(required Kind) bool {
	return k.Level >= required.Level
}

// String returns the kind's stable identifier
func (k Kind) String() string {
	return k.ID
}
