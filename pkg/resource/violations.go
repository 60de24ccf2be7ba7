package resource

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Rule names attached to violations. They match the historical wire names
// consumers of the API already key on.
const (
	RuleOwnerPermissionProvided  = "owner_permission_provided"
	RuleAtLeastOneOwner          = "at_least_one_owner"
	RuleOwnerSecretProvided      = "owner_secret_provided"
	RuleSecretsProvided          = "secrets_provided"
	RuleHasAccess                = "has_access"
	RuleIsNotSoftDeleted         = "is_not_soft_deleted"
	RuleResourceIsNotSoftDeleted = "resource_is_not_soft_deleted"
	RuleResourceTypeExists       = "resource_type_exists"
	RuleUUID                     = "uuid"
	RuleExists                   = "exists"
)

// Violations collects named business-rule failures scoped to the field they
// concern (permissions, secrets, id, ...). A mutation that produces any
// violation is fully rolled back.
type Violations map[string]map[string]string

// Add records a violation of rule on field.
func (v Violations) Add(field, rule, message string) {
	if v[field] == nil {
		v[field] = map[string]string{}
	}
	v[field][rule] = message
}

// Empty reports whether no violation has been recorded.
func (v Violations) Empty() bool {
	return len(v) == 0
}

// Has reports whether a violation of rule exists on field.
func (v Violations) Has(field, rule string) bool {
	_, ok := v[field][rule]
	return ok
}

// Fields returns the violated field names, sorted.
func (v Violations) Fields() []string {
	fields := make([]string, 0, len(v))
	for field := range v {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	return fields
}

// ValidationError carries the structured violations of a rejected mutation.
// It is the only error kind the engine produces for recoverable failures;
// storage faults propagate as plain wrapped errors.
type ValidationError struct {
	Violations Violations
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed on %s", strings.Join(e.Violations.Fields(), ", "))
}

func newValidationError(field, rule, message string) *ValidationError {
	v := Violations{}
	v.Add(field, rule, message)
	return &ValidationError{Violations: v}
}

// AsValidation unwraps err into a ValidationError if it is one.
func AsValidation(err error) (*ValidationError, bool) {
	var verr *ValidationError
	if errors.As(err, &verr) {
		return verr, true
	}
	return nil, false
}
