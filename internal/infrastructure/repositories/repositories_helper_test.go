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
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err, "open sqlite")
	return db
}

func mustExec(t *testing.T, db *gorm.DB, q string, args ...interface{}) {
	t.Helper()
	require.NoError(t, db.Exec(q, args...).Error, "exec failed: query=%s", q)
}

func createDepartmentTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE departments (
		id TEXT PRIMARY KEY,
		code TEXT NOT NULL UNIQUE,
		name TEXT NOT NULL,
		created_at DATETIME,
		updated_at DATETIME
	);`)
}

func createUserTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE users (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		email TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		role TEXT NOT NULL,
		verification_status TEXT NOT NULL,
		profile_picture TEXT,
		refresh_token TEXT,
		created_at DATETIME,
		updated_at DATETIME
	);`)
}

func createProfileTables(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE students (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL UNIQUE,
		enrollment_no TEXT NOT NULL UNIQUE,
		department_id TEXT NOT NULL,
		created_at DATETIME
	);`)
	mustExec(t, db, `CREATE TABLE professors (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL UNIQUE,
		teacher_id TEXT NOT NULL UNIQUE,
		department_id TEXT NOT NULL,
		created_at DATETIME
	);`)
	mustExec(t, db, `CREATE TABLE hods (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL UNIQUE,
		department_id TEXT NOT NULL UNIQUE,
		created_at DATETIME
	);`)
}

func createVerificationRequestTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE verification_requests (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		type TEXT NOT NULL,
		status TEXT NOT NULL,
		approved_by_id TEXT,
		reason TEXT,
		snapshot TEXT,
		created_at DATETIME,
		updated_at DATETIME
	);`)
	mustExec(t, db, `CREATE UNIQUE INDEX idx_verification_requests_pending
		ON verification_requests(user_id) WHERE status = 'PENDING';`)
}

func createAllTables(t *testing.T, db *gorm.DB) {
	createDepartmentTable(t, db)
	createUserTable(t, db)
	createProfileTables(t, db)
	createVerificationRequestTable(t, db)
}
