// Package repotest opens in-memory sqlite stores with the production table
// layout for repository and usecase tests.
package repotest

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// NewDB opens an empty shared-cache in-memory database. Writes are serialised
// on one connection so concurrent fan-out does not hit SQLITE_LOCKED.
func NewDB(t testing.TB) *gorm.DB {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", name, time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err, "open sqlite")
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	return db
}

// NewStore opens a database with every table created
func NewStore(t testing.TB) *gorm.DB {
	db := NewDB(t)
	CreateUserTable(t, db)
	CreateListingTable(t, db)
	CreateFulfillmentTables(t, db)
	CreatePaymentTable(t, db)
	CreateNotificationTables(t, db)
	return db
}

// MustExec runs a statement and fails the test on error
func MustExec(t testing.TB, db *gorm.DB, q string, args ...interface{}) {
	t.Helper()
	require.NoError(t, db.Exec(q, args...).Error, "exec failed: query=%s", q)
}

// CreateUserTable mirrors the users model with sqlite column types
func CreateUserTable(t testing.TB, db *gorm.DB) {
	MustExec(t, db, `CREATE TABLE users (
		id TEXT PRIMARY KEY,
		email TEXT NOT NULL UNIQUE,
		name TEXT NOT NULL,
		password_hash TEXT NOT NULL,
		role TEXT NOT NULL,
		is_verified BOOLEAN NOT NULL DEFAULT 0,
		verified_by_admin BOOLEAN NOT NULL DEFAULT 0,
		kyc_status TEXT NOT NULL,
		kyc_id_front_url TEXT,
		kyc_id_back_url TEXT,
		kyc_selfie_url TEXT,
		kyc_submitted_at DATETIME,
		kyc_rejection_reason TEXT,
		favorites TEXT,
		security_settings TEXT,
		is_suspended BOOLEAN NOT NULL DEFAULT 0,
		created_at DATETIME,
		updated_at DATETIME
	);`)
}

func CreateListingTable(t testing.TB, db *gorm.DB) {
	MustExec(t, db, `CREATE TABLE listings (
		id TEXT PRIMARY KEY,
		dealer_id TEXT,
		make TEXT NOT NULL,
		model TEXT NOT NULL,
		year INTEGER NOT NULL,
		price TEXT NOT NULL,
		mileage INTEGER NOT NULL DEFAULT 0,
		description TEXT,
		specs TEXT,
		categories TEXT,
		images TEXT,
		status TEXT NOT NULL,
		moderation_reason TEXT,
		archived_by TEXT NOT NULL DEFAULT 'none',
		is_suspended BOOLEAN NOT NULL DEFAULT 0,
		is_featured BOOLEAN NOT NULL DEFAULT 0,
		created_at DATETIME,
		updated_at DATETIME,
		deleted_at DATETIME
	);`)
}

func CreateFulfillmentTables(t testing.TB, db *gorm.DB) {
	MustExec(t, db, `CREATE TABLE bookings (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		dealer_id TEXT,
		listing_id TEXT NOT NULL,
		scheduled_at DATETIME NOT NULL,
		location TEXT NOT NULL,
		notes TEXT,
		status TEXT NOT NULL,
		hide_from_dealer BOOLEAN NOT NULL DEFAULT 0,
		listing_label TEXT,
		user_name TEXT,
		user_email TEXT,
		created_at DATETIME,
		updated_at DATETIME
	);`)
	MustExec(t, db, `CREATE TABLE rentals (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		dealer_id TEXT,
		listing_id TEXT NOT NULL,
		start_date DATETIME NOT NULL,
		duration_days INTEGER NOT NULL,
		location TEXT NOT NULL,
		status TEXT NOT NULL,
		hide_from_dealer BOOLEAN NOT NULL DEFAULT 0,
		listing_label TEXT,
		user_name TEXT,
		user_email TEXT,
		created_at DATETIME,
		updated_at DATETIME
	);`)
}

func CreatePaymentTable(t testing.TB, db *gorm.DB) {
	MustExec(t, db, `CREATE TABLE payments (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		item_type TEXT NOT NULL,
		item_id TEXT NOT NULL,
		item_description TEXT,
		amount TEXT NOT NULL,
		method TEXT NOT NULL,
		reference_id TEXT NOT NULL,
		status TEXT NOT NULL,
		decided_at DATETIME,
		created_at DATETIME,
		updated_at DATETIME
	);`)
}

func CreateNotificationTables(t testing.TB, db *gorm.DB) {
	MustExec(t, db, `CREATE TABLE notifications (
		id TEXT PRIMARY KEY,
		recipient_id TEXT NOT NULL,
		title TEXT NOT NULL,
		message TEXT NOT NULL,
		type TEXT NOT NULL,
		read BOOLEAN NOT NULL DEFAULT 0,
		created_at DATETIME
	);`)
	MustExec(t, db, `CREATE TABLE broadcasts (
		id TEXT PRIMARY KEY,
		author_id TEXT NOT NULL,
		target TEXT NOT NULL,
		title TEXT NOT NULL,
		message TEXT NOT NULL,
		type TEXT NOT NULL,
		created_at DATETIME,
		updated_at DATETIME
	);`)
	MustExec(t, db, `CREATE TABLE inquiries (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		listing_id TEXT NOT NULL,
		listing_label TEXT,
		user_name TEXT,
		user_email TEXT,
		message TEXT NOT NULL,
		created_at DATETIME
	);`)
}
