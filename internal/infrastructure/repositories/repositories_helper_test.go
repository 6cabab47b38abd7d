package repositories

import (
	"testing"

	"gorm.io/gorm"
	"motorhub.backend/internal/infrastructure/repositories/repotest"
)

func newTestDB(t *testing.T) *gorm.DB {
	return repotest.NewDB(t)
}

func mustExec(t *testing.T, db *gorm.DB, q string, args ...interface{}) {
	t.Helper()
	repotest.MustExec(t, db, q, args...)
}

func createUserTable(t *testing.T, db *gorm.DB)         { repotest.CreateUserTable(t, db) }
func createListingTable(t *testing.T, db *gorm.DB)      { repotest.CreateListingTable(t, db) }
func createFulfillmentTables(t *testing.T, db *gorm.DB) { repotest.CreateFulfillmentTables(t, db) }
func createPaymentTable(t *testing.T, db *gorm.DB)      { repotest.CreatePaymentTable(t, db) }
func createNotificationTables(t *testing.T, db *gorm.DB) {
	repotest.CreateNotificationTables(t, db)
}
