package gorm

import (
	"database/sql"

	"github.com/DATA-DOG/go-sqlmock"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// MockDB wraps sqlmock for easier test setup
type MockDB struct {
	DB     *sql.DB
	Mock   sqlmock.Sqlmock
	GormDB *gorm.DB
}

// NewMockDB creates a new mock database connection
func NewMockDB() (*MockDB, error) {
	db, mock, err := sqlmock.New()
	if err != nil {
		return nil, err
	}

	gormDB, err := gorm.Open(
		postgres.New(postgres.Config{
			Conn:                 db,
			PreferSimpleProtocol: true,
		}),
		&gorm.Config{
			Logger: logger.Default.LogMode(logger.Silent),
		},
	)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	return &MockDB{
		DB:     db,
		Mock:   mock,
		GormDB: gormDB,
	}, nil
}

// Close closes the mock database
func (m *MockDB) Close() error {
	return m.DB.Close()
}

// ExpectResourceQuery sets up expectation for a resource lookup
func (m *MockDB) ExpectResourceQuery(id, name, createdBy string, deleted bool) {
	rows := sqlmock.NewRows([]string{"id", "name", "deleted", "created_by", "modified_by"}).
		AddRow(id, name, deleted, createdBy, createdBy)
	m.Mock.ExpectQuery(`SELECT .* FROM "resources"`).
		WithArgs(id).
		WillReturnRows(rows)
}

// ExpectResourceNotFound sets up expectation for a missing resource
func (m *MockDB) ExpectResourceNotFound(id string) {
	m.Mock.ExpectQuery(`SELECT .* FROM "resources"`).
		WithArgs(id).
		WillReturnError(gorm.ErrRecordNotFound)
}

// ExpectPermissionsQuery sets up expectation for a permission listing
func (m *MockDB) ExpectPermissionsQuery(resourceID string, rows *sqlmock.Rows) {
	m.Mock.ExpectQuery(`SELECT .* FROM "permissions"`).
		WithArgs(resourceID).
		WillReturnRows(rows)
}

// ExpectCount sets up expectation for a count query on a table
func (m *MockDB) ExpectCount(table string, count int64) {
	rows := sqlmock.NewRows([]string{"count"}).AddRow(count)
	m.Mock.ExpectQuery(`SELECT count\(\*\) FROM "` + table + `"`).
		WillReturnRows(rows)
}

// ExpectBeginCommit sets up expectation for transaction begin and commit
func (m *MockDB) ExpectBeginCommit() {
	m.Mock.ExpectBegin()
	m.Mock.ExpectCommit()
}

// ExpectBeginRollback sets up expectation for transaction begin and rollback
func (m *MockDB) ExpectBeginRollback() {
	m.Mock.ExpectBegin()
	m.Mock.ExpectRollback()
}

// VerifyExpectations checks that all expectations were met
func (m *MockDB) VerifyExpectations() error {
	return m.Mock.ExpectationsWereMet()
}
