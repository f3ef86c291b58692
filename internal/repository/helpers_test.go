package repository

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/uma-arai/sbcntr-creekriver/internal/common/database"
)

// newTestDB は一時ディレクトリにSQLiteのDBを作成し、スキーマとシードデータを投入します
func newTestDB(t *testing.T) *DB {
	t.Helper()
	t.Setenv("AWS_XRAY_SDK_DISABLED", "TRUE")

	conn, err := database.NewDB(database.Config{
		Driver: database.DriverSQLite,
		DSN:    filepath.Join(t.TempDir(), "creekriver.db"),
	}, false)
	require.NoError(t, err)

	db := &DB{DB: conn.DB}
	t.Cleanup(func() { db.Close() })

	ctx := context.Background()
	schema := NewSchemaRepository(db)
	require.NoError(t, schema.CreateSchema(ctx))
	require.NoError(t, schema.Seed(ctx))

	return db
}

// countRows はテーブルの行数を返します
func countRows(t *testing.T, db *DB, table string) int {
	t.Helper()

	var count int
	require.NoError(t, db.GetContext(context.Background(), &count, "SELECT COUNT(*) FROM "+table))
	return count
}
