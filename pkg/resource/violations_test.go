package resource

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestViolations(t *testing.T) {
	v := Violations{}
	assert.True(t, v.Empty())

	v.Add("secrets", RuleSecretsProvided, "The secrets of all the users having access to the resource are required.")
	v.Add("permissions", RuleAtLeastOneOwner, "At least one owner permission must be provided.")

	assert.False(t, v.Empty())
	assert.True(t, v.Has("secrets", RuleSecretsProvided))
	assert.False(t, v.Has("secrets", RuleOwnerSecretProvided))
	assert.Equal(t, []string{"permissions", "secrets"}, v.Fields())
}

func TestAsValidation(t *testing.T) {
	verr := newValidationError("id", RuleExists, "The resource does not exist.")
	assert.Equal(t, "validation failed on id", verr.Error())

	wrapped := fmt.Errorf("update rejected: %w", verr)
	unwrapped, ok := AsValidation(wrapped)
	assert.True(t, ok)
	assert.True(t, unwrapped.Violations.Has("id", RuleExists))

	_, ok = AsValidation(errors.New("disk on fire"))
	assert.False(t, ok)
}
