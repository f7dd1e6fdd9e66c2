package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrationsPath(t *testing.T) {
	for _, dbType := range []string{"postgresql", "mysql"} {
		path, err := MigrationsPath(dbType)
		require.NoError(t, err)
		assert.Equal(t, dbType, filepath.Base(path))

		entries, err := os.ReadDir(path)
		require.NoError(t, err)
		assert.NotEmpty(t, entries)
	}

	_, err := MigrationsPath("sqlite")
	assert.Error(t, err)
}

func TestNewKeyMaterial(t *testing.T) {
	a := NewKeyMaterial(t)
	b := NewKeyMaterial(t)
	assert.Len(t, a.MasterKey, 32)
	assert.NotEqual(t, a.MasterKey, b.MasterKey)
	assert.NotEqual(t, a.MasterKey, a.Pepper)
}

func TestNewSQLMock(t *testing.T) {
	db, mock := NewSQLMock(t)
	mock.ExpectExec("DELETE FROM agents").WillReturnResult(sqlmock.NewResult(0, 3))

	res, err := db.Exec("DELETE FROM agents")
	require.NoError(t, err)
	n, err := res.RowsAffected()
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)
}
