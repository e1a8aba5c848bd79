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

func createTeamTable(t *testing.T, db *gorm.DB) {
	t.Helper()
	mustExec(t, db, `CREATE TABLE teams (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		discord_user_id TEXT,
		discord_channel_id TEXT,
		bank_number TEXT,
		bank_account_holder TEXT,
		bank_provider TEXT,
		role TEXT NOT NULL DEFAULT 'ARTIST',
		created_at DATETIME,
		updated_at DATETIME,
		deleted_at DATETIME
	);`)
}

func createUserTable(t *testing.T, db *gorm.DB) {
	t.Helper()
	mustExec(t, db, `CREATE TABLE users (
		id TEXT PRIMARY KEY,
		email TEXT NOT NULL UNIQUE,
		verified BOOLEAN NOT NULL DEFAULT false,
		created_at DATETIME,
		updated_at DATETIME
	);`)
}

func createPayrollTable(t *testing.T, db *gorm.DB) {
	t.Helper()
	mustExec(t, db, `CREATE TABLE payrolls (
		id TEXT PRIMARY KEY,
		team_id TEXT NOT NULL,
		period_start DATETIME NOT NULL,
		period_end DATETIME NOT NULL,
		status TEXT NOT NULL,
		amount INTEGER NOT NULL DEFAULT 0,
		created_at DATETIME,
		updated_at DATETIME,
		deleted_at DATETIME
	);`)
}

func createProjectTables(t *testing.T, db *gorm.DB) {
	t.Helper()
	mustExec(t, db, `CREATE TABLE projects (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		client_name TEXT,
		image_ratio TEXT,
		note TEXT,
		fee INTEGER NOT NULL DEFAULT 0,
		image_count INTEGER NOT NULL DEFAULT 0,
		deadline DATETIME NOT NULL,
		confirmation_duration INTEGER NOT NULL DEFAULT 0,
		auto_number_task BOOLEAN NOT NULL DEFAULT true,
		status TEXT NOT NULL,
		is_paid BOOLEAN NOT NULL DEFAULT false,
		team_id TEXT,
		payroll_id TEXT,
		published_at DATETIME,
		done_at DATETIME,
		created_at DATETIME,
		updated_at DATETIME,
		deleted_at DATETIME
	);`)
	mustExec(t, db, `CREATE TABLE project_attachments (
		id TEXT PRIMARY KEY,
		project_id TEXT NOT NULL,
		url TEXT NOT NULL,
		created_at DATETIME
	);`)
}

func createTaskTables(t *testing.T, db *gorm.DB) {
	t.Helper()
	mustExec(t, db, `CREATE TABLE tasks (
		id TEXT PRIMARY KEY,
		project_id TEXT NOT NULL,
		fee INTEGER NOT NULL DEFAULT 0,
		image_count INTEGER NOT NULL DEFAULT 0,
		note TEXT,
		created_at DATETIME,
		updated_at DATETIME
	);`)
	mustExec(t, db, `CREATE TABLE task_attachments (
		id TEXT PRIMARY KEY,
		task_id TEXT NOT NULL,
		url TEXT NOT NULL,
		created_at DATETIME
	);`)
}

func createOfferingTable(t *testing.T, db *gorm.DB) {
	t.Helper()
	mustExec(t, db, `CREATE TABLE offerings (
		id TEXT PRIMARY KEY,
		project_id TEXT NOT NULL,
		team_id TEXT NOT NULL,
		status TEXT NOT NULL,
		discord_thread_id TEXT,
		created_at DATETIME,
		updated_at DATETIME
	);`)
}

func createVisitCounterTable(t *testing.T, db *gorm.DB) {
	t.Helper()
	mustExec(t, db, `CREATE TABLE visit_counters (
		day TEXT PRIMARY KEY,
		count INTEGER NOT NULL DEFAULT 0,
		updated_at DATETIME
	);`)
}

func createSchema(t *testing.T, db *gorm.DB) {
	t.Helper()
	createTeamTable(t, db)
	createUserTable(t, db)
	createPayrollTable(t, db)
	createProjectTables(t, db)
	createTaskTables(t, db)
	createOfferingTable(t, db)
	createVisitCounterTable(t, db)
}
