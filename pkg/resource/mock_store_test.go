package resource

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/lockboxhq/lockbox/pkg/event"
	"github.com/lockboxhq/lockbox/pkg/model"
	"github.com/lockboxhq/lockbox/pkg/store"
)

// MockResourceStore implements store.ResourceStore for testing using testify/mock
type MockResourceStore struct {
	mock.Mock
}

func (m *MockResourceStore) Fetch(ctx context.Context, id string) (*model.Resource, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Resource), args.Error(1)
}

func (m *MockResourceStore) Create(ctx context.Context, resource *model.Resource) error {
	args := m.Called(ctx, resource)
	return args.Error(0)
}

func (m *MockResourceStore) Update(ctx context.Context, resource *model.Resource) error {
	args := m.Called(ctx, resource)
	return args.Error(0)
}

func (m *MockResourceStore) SoftDeleteMany(ctx context.Context, ids []string) (int64, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockResourceStore) CountMissingResourceType(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockResourceStore) BackfillResourceType(ctx context.Context, typeID string) (int64, error) {
	args := m.Called(ctx, typeID)
	return args.Get(0).(int64), args.Error(1)
}

// MockPermissionStore implements store.PermissionStore for testing using testify/mock
type MockPermissionStore struct {
	mock.Mock
}

func (m *MockPermissionStore) ListByResource(ctx context.Context, resourceID string) ([]model.Permission, error) {
	args := m.Called(ctx, resourceID)
	return args.Get(0).([]model.Permission), args.Error(1)
}

func (m *MockPermissionStore) Replace(ctx context.Context, resourceID string, permissions []model.Permission) error {
	args := m.Called(ctx, resourceID, permissions)
	return args.Error(0)
}

func (m *MockPermissionStore) DeleteByResources(ctx context.Context, resourceIDs []string) error {
	args := m.Called(ctx, resourceIDs)
	return args.Error(0)
}

// MockSecretStore implements store.SecretStore for testing using testify/mock
type MockSecretStore struct {
	mock.Mock
}

func (m *MockSecretStore) ListByResource(ctx context.Context, resourceID string) ([]model.Secret, error) {
	args := m.Called(ctx, resourceID)
	return args.Get(0).([]model.Secret), args.Error(1)
}

func (m *MockSecretStore) Replace(ctx context.Context, resourceID string, secrets []model.Secret) error {
	args := m.Called(ctx, resourceID, secrets)
	return args.Error(0)
}

func (m *MockSecretStore) DeleteByResources(ctx context.Context, resourceIDs []string) error {
	args := m.Called(ctx, resourceIDs)
	return args.Error(0)
}

// MockFavoriteStore implements store.FavoriteStore for testing using testify/mock
type MockFavoriteStore struct {
	mock.Mock
}

func (m *MockFavoriteStore) DeleteByResources(ctx context.Context, resourceIDs []string) error {
	args := m.Called(ctx, resourceIDs)
	return args.Error(0)
}

func (m *MockFavoriteStore) DeleteByResourceAndUsers(ctx context.Context, resourceID string, userIDs []string) error {
	args := m.Called(ctx, resourceID, userIDs)
	return args.Error(0)
}

// MockResourceTypeStore implements store.ResourceTypeStore for testing using testify/mock
type MockResourceTypeStore struct {
	mock.Mock
}

func (m *MockResourceTypeStore) Exists(ctx context.Context, id string) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockResourceTypeStore) IDBySlug(ctx context.Context, slug string) (string, error) {
	args := m.Called(ctx, slug)
	return args.String(0), args.Error(1)
}

// MockAccessStore implements store.AccessStore for testing using testify/mock
type MockAccessStore struct {
	mock.Mock
}

func (m *MockAccessStore) GroupsOfUser(ctx context.Context, userID string) ([]string, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockAccessStore) MembersOfGroups(ctx context.Context, groupIDs []string) ([]string, error) {
	args := m.Called(ctx, groupIDs)
	return args.Get(0).([]string), args.Error(1)
}

// mockStore bundles the collection mocks into a store.Store whose
// Atomically runs the callback inline. Rollback behavior is exercised by
// asserting that no writes were issued when a mutation fails validation.
type mockStore struct {
	resources     *MockResourceStore
	permissions   *MockPermissionStore
	secrets       *MockSecretStore
	favorites     *MockFavoriteStore
	resourceTypes *MockResourceTypeStore
	access        *MockAccessStore
}

var _ store.Store = (*mockStore)(nil)

func newMockStore() *mockStore {
	return &mockStore{
		resources:     &MockResourceStore{},
		permissions:   &MockPermissionStore{},
		secrets:       &MockSecretStore{},
		favorites:     &MockFavoriteStore{},
		resourceTypes: &MockResourceTypeStore{},
		access:        &MockAccessStore{},
	}
}

func (s *mockStore) Resources() store.ResourceStore         { return s.resources }
func (s *mockStore) Permissions() store.PermissionStore     { return s.permissions }
func (s *mockStore) Secrets() store.SecretStore             { return s.secrets }
func (s *mockStore) Favorites() store.FavoriteStore         { return s.favorites }
func (s *mockStore) ResourceTypes() store.ResourceTypeStore { return s.resourceTypes }
func (s *mockStore) Access() store.AccessStore              { return s.access }

func (s *mockStore) Atomically(_ context.Context, fn func(store.Bundle) error) error {
	return fn(s)
}

// capturePublisher records published events for assertions.
type capturePublisher struct {
	events []event.Event
}

func (p *capturePublisher) Publish(e event.Event) {
	p.events = append(p.events, e)
}
