package store

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"ai-access-manager/core/database"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/gorm/schema"
)

func TestDatabaseStore(t *testing.T) {
	ctx := context.Background()

	db, err := database.Connect(database.Config{Driver: "sqlite", Name: ":memory:"})
	require.NoError(t, err)

	s, err := NewDatabaseStore(ctx, db)
	require.NoError(t, err)
	defer func() { _ = s.Close() }()

	var out []string
	found, err := s.Get(ctx, "users", &out)
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, s.Set(ctx, "users", []string{"a@x.com"}))
	require.NoError(t, s.Set(ctx, "users", []string{"a@x.com", "b@x.com"}))

	found, err = s.Get(ctx, "users", &out)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, []string{"a@x.com", "b@x.com"}, out)

	var count int64
	require.NoError(t, db.Model(&entry{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)

	require.NoError(t, s.Delete(ctx, "users"))
	require.NoError(t, s.Delete(ctx, "users"))
	found, err = s.Get(ctx, "users", &out)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestDatabaseStoreQueryError(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = sqlDB.Close() }()

	db, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)

	mock.ExpectQuery("SELECT \\* FROM `store_entries`").WillReturnError(errors.New("connection reset"))

	s := &DatabaseStore{db: db}
	var out []string
	found, err := s.Get(context.Background(), "users", &out)
	assert.False(t, found)
	assert.ErrorContains(t, err, `failed to load store key "users"`)
	assert.ErrorContains(t, err, "connection reset")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDatabaseStoreLargeDocument(t *testing.T) {
	parsed, err := schema.Parse(&entry{}, &sync.Map{}, schema.NamingStrategy{})
	require.NoError(t, err)
	// MySQL TEXT stops at 64 KiB, a merged user list can be larger.
	assert.Equal(t, "longtext", parsed.LookUpField("Value").TagSettings["TYPE"])

	ctx := context.Background()
	db, err := database.Connect(database.Config{Driver: "sqlite", Name: ":memory:"})
	require.NoError(t, err)
	s, err := NewDatabaseStore(ctx, db)
	require.NoError(t, err)

	big := strings.Repeat("x", 100*1024)
	require.NoError(t, s.Set(ctx, "users", []string{big}))

	var out []string
	found, err := s.Get(ctx, "users", &out)
	require.NoError(t, err)
	assert.True(t, found)
	require.Len(t, out, 1)
	assert.Len(t, out[0], len(big))
}
