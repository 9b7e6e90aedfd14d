package repositories

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", t.Name(), time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err, "open sqlite")
	return db
}

func mustExec(t *testing.T, db *gorm.DB, q string, args ...interface{}) {
	t.Helper()
	require.NoError(t, db.Exec(q, args...).Error, "exec failed: query=%s", q)
}

func createUserTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE users (
		id TEXT PRIMARY KEY,
		email TEXT UNIQUE,
		name TEXT,
		contact_number TEXT,
		language TEXT,
		password_hash TEXT,
		role TEXT,
		status TEXT,
		activated_at DATETIME,
		created_at DATETIME,
		updated_at DATETIME,
		deleted_at DATETIME
	);`)
}

func createPasswordResetTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE password_resets (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		token TEXT NOT NULL UNIQUE,
		expires_at DATETIME NOT NULL,
		used_at DATETIME,
		created_at DATETIME,
		deleted_at DATETIME
	);`)
}

func createCarPostTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE car_posts (
		id TEXT PRIMARY KEY,
		owner_id TEXT NOT NULL,
		title TEXT NOT NULL,
		model TEXT NOT NULL,
		condition TEXT NOT NULL,
		price NUMERIC NOT NULL,
		description TEXT,
		image_urls TEXT,
		sold BOOLEAN NOT NULL DEFAULT 0,
		created_at DATETIME,
		updated_at DATETIME,
		deleted_at DATETIME
	);`)
}

func createFileObjectTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE file_objects (
		id TEXT PRIMARY KEY,
		bucket TEXT NOT NULL,
		name TEXT,
		content_type TEXT,
		data BLOB NOT NULL,
		created_at DATETIME
	);`)
}

func createAppSettingTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE app_settings (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL,
		updated_at DATETIME
	);`)
}
