package gorm

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"

	"github.com/lockboxhq/lockbox/pkg/model"
	"github.com/lockboxhq/lockbox/pkg/store"
)

const (
	testResourceID = "99999999-9999-4999-8999-999999999999"
	testUserID     = "11111111-1111-4111-8111-111111111111"
	testTypeID     = "55555555-5555-4555-8555-555555555555"
)

func TestResourcesFetch(t *testing.T) {
	t.Run("returns the row", func(t *testing.T) {
		mockDB, err := NewMockDB()
		assert.NoError(t, err)
		defer mockDB.Close()

		mockDB.ExpectResourceQuery(testResourceID, "wiki", testUserID, false)

		resource, err := NewStore(mockDB.GormDB).Resources().Fetch(context.Background(), testResourceID)

		assert.NoError(t, err)
		assert.Equal(t, "wiki", resource.Name)
		assert.False(t, resource.Deleted)
		assert.NoError(t, mockDB.VerifyExpectations())
	})

	t.Run("maps a missing row to ErrResourceNotFound", func(t *testing.T) {
		mockDB, err := NewMockDB()
		assert.NoError(t, err)
		defer mockDB.Close()

		mockDB.ExpectResourceNotFound(testResourceID)

		_, err = NewStore(mockDB.GormDB).Resources().Fetch(context.Background(), testResourceID)

		assert.ErrorIs(t, err, store.ErrResourceNotFound)
		assert.NoError(t, mockDB.VerifyExpectations())
	})

	t.Run("locks the row inside a transaction", func(t *testing.T) {
		mockDB, err := NewMockDB()
		assert.NoError(t, err)
		defer mockDB.Close()

		mockDB.Mock.ExpectBegin()
		rows := sqlmock.NewRows([]string{"id", "name", "deleted", "created_by", "modified_by"}).
			AddRow(testResourceID, "wiki", false, testUserID, testUserID)
		mockDB.Mock.ExpectQuery(`SELECT .* FROM "resources" .*FOR UPDATE`).
			WithArgs(testResourceID).
			WillReturnRows(rows)
		mockDB.Mock.ExpectCommit()

		err = NewStore(mockDB.GormDB).Atomically(context.Background(), func(b store.Bundle) error {
			_, err := b.Resources().Fetch(context.Background(), testResourceID)
			return err
		})

		assert.NoError(t, err)
		assert.NoError(t, mockDB.VerifyExpectations())
	})
}

func TestResourcesSoftDeleteMany(t *testing.T) {
	mockDB, err := NewMockDB()
	assert.NoError(t, err)
	defer mockDB.Close()

	ids := []string{testResourceID}
	mockDB.Mock.ExpectBegin()
	mockDB.Mock.ExpectExec(`UPDATE "resources" SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mockDB.Mock.ExpectCommit()

	n, err := NewStore(mockDB.GormDB).Resources().SoftDeleteMany(context.Background(), ids)

	assert.NoError(t, err)
	assert.Equal(t, int64(1), n)
	assert.NoError(t, mockDB.VerifyExpectations())
}

func TestResourcesBackfill(t *testing.T) {
	t.Run("counts missing types", func(t *testing.T) {
		mockDB, err := NewMockDB()
		assert.NoError(t, err)
		defer mockDB.Close()

		mockDB.ExpectCount("resources", 4)

		n, err := NewStore(mockDB.GormDB).Resources().CountMissingResourceType(context.Background())

		assert.NoError(t, err)
		assert.Equal(t, int64(4), n)
		assert.NoError(t, mockDB.VerifyExpectations())
	})

	t.Run("rewrites missing types", func(t *testing.T) {
		mockDB, err := NewMockDB()
		assert.NoError(t, err)
		defer mockDB.Close()

		mockDB.Mock.ExpectBegin()
		mockDB.Mock.ExpectExec(`UPDATE "resources" SET`).
			WillReturnResult(sqlmock.NewResult(0, 4))
		mockDB.Mock.ExpectCommit()

		n, err := NewStore(mockDB.GormDB).Resources().BackfillResourceType(context.Background(), testTypeID)

		assert.NoError(t, err)
		assert.Equal(t, int64(4), n)
		assert.NoError(t, mockDB.VerifyExpectations())
	})
}

func TestPermissionsReplace(t *testing.T) {
	t.Run("deletes then inserts", func(t *testing.T) {
		mockDB, err := NewMockDB()
		assert.NoError(t, err)
		defer mockDB.Close()

		mockDB.Mock.ExpectBegin()
		mockDB.Mock.ExpectExec(`DELETE FROM "permissions"`).
			WithArgs(testResourceID).
			WillReturnResult(sqlmock.NewResult(0, 2))
		mockDB.Mock.ExpectCommit()
		mockDB.Mock.ExpectBegin()
		mockDB.Mock.ExpectExec(`INSERT INTO "permissions"`).
			WillReturnResult(sqlmock.NewResult(1, 1))
		mockDB.Mock.ExpectCommit()

		permissions := []model.Permission{
			{ID: "p1", ResourceID: testResourceID, AroType: model.AroUser, AroID: testUserID, Type: 15},
		}
		err = NewStore(mockDB.GormDB).Permissions().Replace(context.Background(), testResourceID, permissions)

		assert.NoError(t, err)
		assert.NoError(t, mockDB.VerifyExpectations())
	})

	t.Run("an empty replacement only deletes", func(t *testing.T) {
		mockDB, err := NewMockDB()
		assert.NoError(t, err)
		defer mockDB.Close()

		mockDB.Mock.ExpectBegin()
		mockDB.Mock.ExpectExec(`DELETE FROM "permissions"`).
			WithArgs(testResourceID).
			WillReturnResult(sqlmock.NewResult(0, 2))
		mockDB.Mock.ExpectCommit()

		err = NewStore(mockDB.GormDB).Permissions().Replace(context.Background(), testResourceID, nil)

		assert.NoError(t, err)
		assert.NoError(t, mockDB.VerifyExpectations())
	})
}

func TestFavoritesDeleteByResourceAndUsers(t *testing.T) {
	mockDB, err := NewMockDB()
	assert.NoError(t, err)
	defer mockDB.Close()

	mockDB.Mock.ExpectBegin()
	mockDB.Mock.ExpectExec(`DELETE FROM "favorites"`).
		WithArgs(testResourceID, testUserID).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mockDB.Mock.ExpectCommit()

	err = NewStore(mockDB.GormDB).Favorites().DeleteByResourceAndUsers(context.Background(), testResourceID, []string{testUserID})

	assert.NoError(t, err)
	assert.NoError(t, mockDB.VerifyExpectations())
}

func TestResourceTypesExists(t *testing.T) {
	mockDB, err := NewMockDB()
	assert.NoError(t, err)
	defer mockDB.Close()

	mockDB.ExpectCount("resource_types", 1)

	ok, err := NewStore(mockDB.GormDB).ResourceTypes().Exists(context.Background(), testTypeID)

	assert.NoError(t, err)
	assert.True(t, ok)
	assert.NoError(t, mockDB.VerifyExpectations())
}

func TestAccessStore(t *testing.T) {
	t.Run("lists a user's groups", func(t *testing.T) {
		mockDB, err := NewMockDB()
		assert.NoError(t, err)
		defer mockDB.Close()

		rows := sqlmock.NewRows([]string{"group_id"}).AddRow("g1").AddRow("g2")
		mockDB.Mock.ExpectQuery(`SELECT "group_id" FROM "groups_users"`).
			WithArgs(testUserID).
			WillReturnRows(rows)

		groups, err := NewStore(mockDB.GormDB).Access().GroupsOfUser(context.Background(), testUserID)

		assert.NoError(t, err)
		assert.Equal(t, []string{"g1", "g2"}, groups)
		assert.NoError(t, mockDB.VerifyExpectations())
	})

	t.Run("expands group members", func(t *testing.T) {
		mockDB, err := NewMockDB()
		assert.NoError(t, err)
		defer mockDB.Close()

		rows := sqlmock.NewRows([]string{"user_id"}).AddRow(testUserID)
		mockDB.Mock.ExpectQuery(`SELECT DISTINCT "user_id" FROM "groups_users"`).
			WillReturnRows(rows)

		users, err := NewStore(mockDB.GormDB).Access().MembersOfGroups(context.Background(), []string{"g1"})

		assert.NoError(t, err)
		assert.Equal(t, []string{testUserID}, users)
		assert.NoError(t, mockDB.VerifyExpectations())
	})

	t.Run("no groups means no query", func(t *testing.T) {
		mockDB, err := NewMockDB()
		assert.NoError(t, err)
		defer mockDB.Close()

		users, err := NewStore(mockDB.GormDB).Access().MembersOfGroups(context.Background(), nil)

		assert.NoError(t, err)
		assert.Empty(t, users)
		assert.NoError(t, mockDB.VerifyExpectations())
	})
}

func TestAtomicallyRollsBack(t *testing.T) {
	mockDB, err := NewMockDB()
	assert.NoError(t, err)
	defer mockDB.Close()

	mockDB.ExpectBeginRollback()

	boom := errors.New("validation rejected")
	err = NewStore(mockDB.GormDB).Atomically(context.Background(), func(store.Bundle) error {
		return boom
	})

	assert.ErrorIs(t, err, boom)
	assert.NoError(t, mockDB.VerifyExpectations())
}
