package integration

import (
	"context"
	"fmt"

	"github.com/cucumber/godog"
	"github.com/google/uuid"

	"github.com/lockboxhq/lockbox/pkg/event"
	"github.com/lockboxhq/lockbox/pkg/model"
	"github.com/lockboxhq/lockbox/pkg/resource"
)

// StepsContext carries the state of a single scenario: the engine under
// test plus the user and resource names the feature file refers to.
type StepsContext struct {
	tc          *TestContext
	manager     *resource.Manager
	coordinator *resource.Coordinator

	users     map[string]string
	resources map[string]string
	lastErr   error
	lastCount int64
}

func NewStepsContext(tc *TestContext) *StepsContext {
	return &StepsContext{
		tc:          tc,
		manager:     resource.NewManager(tc.Store, event.NewBus()),
		coordinator: resource.NewCoordinator(tc.Store),
		users:       map[string]string{},
		resources:   map[string]string{},
	}
}

// RegisterSteps binds the step definitions to the scenario
func (s *StepsContext) RegisterSteps(sc *godog.ScenarioContext) {
	sc.Step(`^a clean database$`, s.aCleanDatabase)

	sc.Step(`^"([^"]*)" creates a resource "([^"]*)" with their own secret$`, s.createsResource)
	sc.Step(`^"([^"]*)" has created a resource "([^"]*)" with their own secret$`, s.hasCreatedResource)
	sc.Step(`^"([^"]*)" creates a resource "([^"]*)" granting only update to themselves$`, s.createsResourceWithoutOwner)

	sc.Step(`^"([^"]*)" grants "([^"]*)" read access to "([^"]*)" without supplying secrets$`, s.grantsWithoutSecrets)
	sc.Step(`^"([^"]*)" shares "([^"]*)" with "([^"]*)" supplying both secrets$`, s.sharesWithSecrets)
	sc.Step(`^"([^"]*)" revokes "[^"]*" from "([^"]*)"$`, s.revokes)
	sc.Step(`^"([^"]*)" soft deletes "([^"]*)"$`, s.softDeletes)
	sc.Step(`^"([^"]*)" has marked "([^"]*)" as a favorite$`, s.marksFavorite)

	sc.Step(`^the resource "([^"]*)" should exist$`, s.resourceShouldExist)
	sc.Step(`^no resource named "([^"]*)" should exist$`, s.noResourceShouldExist)
	sc.Step(`^"([^"]*)" should hold an owner permission on "([^"]*)"$`, s.shouldHoldOwnerPermission)
	sc.Step(`^only "([^"]*)" should hold a secret for "([^"]*)"$`, s.onlyUserShouldHoldSecret)
	sc.Step(`^"([^"]*)" should hold a secret for "([^"]*)"$`, s.shouldHoldSecret)
	sc.Step(`^"([^"]*)" should have no favorite on "([^"]*)"$`, s.shouldHaveNoFavorite)
	sc.Step(`^the request should be rejected with rule "([^"]*)"$`, s.shouldBeRejectedWithRule)
	sc.Step(`^"([^"]*)" should be flagged deleted with its metadata scrubbed$`, s.shouldBeFlaggedDeleted)
	sc.Step(`^"([^"]*)" should have no permissions, secrets or favorites$`, s.shouldHaveNoDependents)

	sc.Step(`^a resource without a resource type exists$`, s.resourceWithoutTypeExists)
	sc.Step(`^the resource type cleanup runs in dry-run mode$`, s.cleanupRunsDryRun)
	sc.Step(`^the resource type cleanup runs$`, s.cleanupRuns)
	sc.Step(`^the cleanup should report (\d+) resource(?:s|\(s\))?$`, s.cleanupShouldReport)
	sc.Step(`^every resource should have a resource type$`, s.everyResourceShouldHaveType)
}

func (s *StepsContext) aCleanDatabase() error {
	s.users = map[string]string{}
	s.resources = map[string]string{}
	s.lastErr = nil
	s.lastCount = 0
	return s.tc.Reset()
}

// userID memoizes a user id per name so steps within a scenario agree on
// who "alice" is.
func (s *StepsContext) userID(name string) string {
	if id, ok := s.users[name]; ok {
		return id
	}
	id := uuid.NewString()
	s.users[name] = id
	return id
}

func (s *StepsContext) resourceID(name string) (string, error) {
	id, ok := s.resources[name]
	if !ok {
		return "", fmt.Errorf("no resource named %q was created in this scenario", name)
	}
	return id, nil
}

func (s *StepsContext) defaultTypeID() (string, error) {
	return s.tc.Store.ResourceTypes().IDBySlug(context.Background(), model.DefaultResourceTypeSlug)
}

func (s *StepsContext) createsResource(user, name string) error {
	typeID, err := s.defaultTypeID()
	if err != nil {
		return err
	}
	actor := s.userID(user)
	username := "admin"
	uri := "https://" + name + ".example.com"

	created, err := s.manager.Create(context.Background(), actor, resource.CreateRequest{
		Name:           name,
		Username:       &username,
		URI:            &uri,
		ResourceTypeID: typeID,
		Permissions: resource.PermissionSet{
			{AroType: model.AroUser, AroID: actor, Type: resource.LevelOwner},
		},
		Secrets: resource.SecretSet{
			{UserID: actor, Data: []byte("ciphertext-" + user)},
		},
	})
	s.lastErr = err
	if err == nil {
		s.resources[name] = created.ID
	}
	return nil
}

func (s *StepsContext) hasCreatedResource(user, name string) error {
	if err := s.createsResource(user, name); err != nil {
		return err
	}
	return s.lastErr
}

func (s *StepsContext) createsResourceWithoutOwner(user, name string) error {
	typeID, err := s.defaultTypeID()
	if err != nil {
		return err
	}
	actor := s.userID(user)

	_, err = s.manager.Create(context.Background(), actor, resource.CreateRequest{
		Name:           name,
		ResourceTypeID: typeID,
		Permissions: resource.PermissionSet{
			{AroType: model.AroUser, AroID: actor, Type: resource.LevelUpdate},
		},
		Secrets: resource.SecretSet{
			{UserID: actor, Data: []byte("ciphertext-" + user)},
		},
	})
	s.lastErr = err
	return nil
}

func (s *StepsContext) grantsWithoutSecrets(owner, grantee, name string) error {
	id, err := s.resourceID(name)
	if err != nil {
		return err
	}

	_, err = s.manager.Update(context.Background(), s.userID(owner), id, resource.UpdatePatch{
		Permissions: resource.PermissionSet{
			{AroType: model.AroUser, AroID: s.userID(owner), Type: resource.LevelOwner},
			{AroType: model.AroUser, AroID: s.userID(grantee), Type: resource.LevelRead},
		},
	})
	s.lastErr = err
	return nil
}

func (s *StepsContext) sharesWithSecrets(owner, grantee, name string) error {
	id, err := s.resourceID(name)
	if err != nil {
		return err
	}

	_, err = s.manager.Update(context.Background(), s.userID(owner), id, resource.UpdatePatch{
		Permissions: resource.PermissionSet{
			{AroType: model.AroUser, AroID: s.userID(owner), Type: resource.LevelOwner},
			{AroType: model.AroUser, AroID: s.userID(grantee), Type: resource.LevelRead},
		},
		Secrets: resource.SecretSet{
			{UserID: s.userID(owner), Data: []byte("ciphertext-" + owner)},
			{UserID: s.userID(grantee), Data: []byte("ciphertext-" + grantee)},
		},
	})
	s.lastErr = err
	return s.lastErr
}

func (s *StepsContext) revokes(owner, name string) error {
	id, err := s.resourceID(name)
	if err != nil {
		return err
	}

	_, err = s.manager.Update(context.Background(), s.userID(owner), id, resource.UpdatePatch{
		Permissions: resource.PermissionSet{
			{AroType: model.AroUser, AroID: s.userID(owner), Type: resource.LevelOwner},
		},
		Secrets: resource.SecretSet{
			{UserID: s.userID(owner), Data: []byte("ciphertext-" + owner)},
		},
	})
	s.lastErr = err
	return s.lastErr
}

func (s *StepsContext) softDeletes(user, name string) error {
	id, err := s.resourceID(name)
	if err != nil {
		return err
	}
	s.lastErr = s.manager.SoftDelete(context.Background(), s.userID(user), id)
	return nil
}

func (s *StepsContext) marksFavorite(user, name string) error {
	id, err := s.resourceID(name)
	if err != nil {
		return err
	}
	return s.tc.DB.Create(&model.Favorite{
		ID:         uuid.NewString(),
		UserID:     s.userID(user),
		ResourceID: id,
	}).Error
}

func (s *StepsContext) resourceShouldExist(name string) error {
	id, err := s.resourceID(name)
	if err != nil {
		return err
	}
	var count int64
	if err := s.tc.DB.Model(&model.Resource{}).Where("id = ? AND deleted = ?", id, false).Count(&count).Error; err != nil {
		return err
	}
	if count != 1 {
		return fmt.Errorf("expected resource %q to exist, found %d rows", name, count)
	}
	return nil
}

func (s *StepsContext) noResourceShouldExist(name string) error {
	var count int64
	if err := s.tc.DB.Model(&model.Resource{}).Where("name = ?", name).Count(&count).Error; err != nil {
		return err
	}
	if count != 0 {
		return fmt.Errorf("expected no resource named %q, found %d rows", name, count)
	}
	return nil
}

func (s *StepsContext) shouldHoldOwnerPermission(user, name string) error {
	id, err := s.resourceID(name)
	if err != nil {
		return err
	}
	var count int64
	err = s.tc.DB.Model(&model.Permission{}).
		Where("resource_id = ? AND aro_type = ? AND aro_id = ? AND type = ?",
			id, model.AroUser, s.userID(user), int(resource.LevelOwner)).
		Count(&count).Error
	if err != nil {
		return err
	}
	if count != 1 {
		return fmt.Errorf("expected %s to own %q, found %d owner rows", user, name, count)
	}
	return nil
}

func (s *StepsContext) onlyUserShouldHoldSecret(user, name string) error {
	id, err := s.resourceID(name)
	if err != nil {
		return err
	}
	var holders []string
	if err := s.tc.DB.Model(&model.Secret{}).Where("resource_id = ?", id).Pluck("user_id", &holders).Error; err != nil {
		return err
	}
	if len(holders) != 1 || holders[0] != s.userID(user) {
		return fmt.Errorf("expected %s to be the only secret holder on %q, found %d holders", user, name, len(holders))
	}
	return nil
}

func (s *StepsContext) shouldHoldSecret(user, name string) error {
	id, err := s.resourceID(name)
	if err != nil {
		return err
	}
	var count int64
	err = s.tc.DB.Model(&model.Secret{}).
		Where("resource_id = ? AND user_id = ?", id, s.userID(user)).
		Count(&count).Error
	if err != nil {
		return err
	}
	if count != 1 {
		return fmt.Errorf("expected %s to hold a secret for %q, found %d rows", user, name, count)
	}
	return nil
}

func (s *StepsContext) shouldHaveNoFavorite(user, name string) error {
	id, err := s.resourceID(name)
	if err != nil {
		return err
	}
	var count int64
	err = s.tc.DB.Model(&model.Favorite{}).
		Where("resource_id = ? AND user_id = ?", id, s.userID(user)).
		Count(&count).Error
	if err != nil {
		return err
	}
	if count != 0 {
		return fmt.Errorf("expected %s to have no favorite on %q, found %d rows", user, name, count)
	}
	return nil
}

func (s *StepsContext) shouldBeRejectedWithRule(rule string) error {
	if s.lastErr == nil {
		return fmt.Errorf("expected a rejection with rule %q, the request succeeded", rule)
	}
	verr, ok := resource.AsValidation(s.lastErr)
	if !ok {
		return fmt.Errorf("expected a validation error, got: %v", s.lastErr)
	}
	for _, rules := range verr.Violations {
		if _, found := rules[rule]; found {
			return nil
		}
	}
	return fmt.Errorf("rule %q not among violations of: %v", rule, s.lastErr)
}

func (s *StepsContext) shouldBeFlaggedDeleted(name string) error {
	id, err := s.resourceID(name)
	if err != nil {
		return err
	}
	var row model.Resource
	if err := s.tc.DB.First(&row, "id = ?", id).Error; err != nil {
		return err
	}
	if !row.Deleted {
		return fmt.Errorf("expected resource %q to be flagged deleted", name)
	}
	if row.Username != nil || row.URI != nil || row.Description != nil {
		return fmt.Errorf("expected metadata of %q to be scrubbed", name)
	}
	return nil
}

func (s *StepsContext) shouldHaveNoDependents(name string) error {
	id, err := s.resourceID(name)
	if err != nil {
		return err
	}
	for _, m := range []interface{}{&model.Permission{}, &model.Secret{}, &model.Favorite{}} {
		var count int64
		if err := s.tc.DB.Model(m).Where("resource_id = ?", id).Count(&count).Error; err != nil {
			return err
		}
		if count != 0 {
			return fmt.Errorf("expected no dependent rows on %q, found %d in %T", name, count, m)
		}
	}
	return nil
}

func (s *StepsContext) resourceWithoutTypeExists() error {
	actor := s.userID("legacy-admin")
	row := &model.Resource{
		ID:         uuid.NewString(),
		Name:       "legacy",
		CreatedBy:  actor,
		ModifiedBy: actor,
	}
	if err := s.tc.DB.Create(row).Error; err != nil {
		return err
	}
	s.resources["legacy"] = row.ID
	return nil
}

func (s *StepsContext) cleanupRunsDryRun() error {
	typeID, err := s.defaultTypeID()
	if err != nil {
		return err
	}
	s.lastCount, s.lastErr = s.coordinator.BackfillDefaultResourceType(context.Background(), typeID, true)
	return s.lastErr
}

func (s *StepsContext) cleanupRuns() error {
	typeID, err := s.defaultTypeID()
	if err != nil {
		return err
	}
	s.lastCount, s.lastErr = s.coordinator.BackfillDefaultResourceType(context.Background(), typeID, false)
	return s.lastErr
}

func (s *StepsContext) cleanupShouldReport(expected int) error {
	if s.lastCount != int64(expected) {
		return fmt.Errorf("expected cleanup to report %d resources, got %d", expected, s.lastCount)
	}
	return nil
}

func (s *StepsContext) everyResourceShouldHaveType() error {
	var count int64
	if err := s.tc.DB.Model(&model.Resource{}).Where("resource_type_id IS NULL").Count(&count).Error; err != nil {
		return err
	}
	if count != 0 {
		return fmt.Errorf("expected no untyped resources, found %d", count)
	}
	return nil
}
