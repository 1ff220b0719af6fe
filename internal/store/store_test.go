package store

import (
	"path/filepath"
	"testing"

	"github.com/Ron-Caster/POP-Messenger/internal/config"
	"github.com/Ron-Caster/POP-Messenger/internal/database"
	"github.com/Ron-Caster/POP-Messenger/internal/util"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.Init(config.DatabaseConfig{
		Path: filepath.Join(t.TempDir(), "test.db"),
	})
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db))
	return db
}

func newUsers(t *testing.T) (*Users, *gorm.DB) {
	db := newTestDB(t)
	return NewUsers(db, util.PBKDF2Hasher{}), db
}
