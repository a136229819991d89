package testutil

import (
	"fmt"
	"os"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	appConfig "github.com/helpsoluciones/crm-api/config"
	"github.com/helpsoluciones/crm-api/models"
)

// RequireTestEnvironment ensures that tests are running in the test environment.
// This prevents accidental execution of tests against production or development databases.
// It will fail the test immediately if GO_ENV is not set to "test".
func RequireTestEnvironment(t *testing.T) {
	t.Helper()

	env := os.Getenv("GO_ENV")
	if env != "test" {
		t.Fatalf("SAFETY CHECK FAILED: Tests must run with GO_ENV=test to prevent data loss. Current GO_ENV=%q. Set GO_ENV=test before running tests.", env)
	}
}

// MustSetTestEnvironment sets GO_ENV to test and fails if it cannot be set.
// Use this in TestMain or suite setup functions.
func MustSetTestEnvironment(t *testing.T) {
	t.Helper()

	if err := os.Setenv("GO_ENV", "test"); err != nil {
		t.Fatalf("Failed to set GO_ENV=test: %v", err)
	}

	if os.Getenv("GO_ENV") != "test" {
		t.Fatal("Failed to verify GO_ENV=test")
	}
}

// SetupTestDB opens an in-memory SQLite database, migrates every model
// and installs it as the active connection for the duration of the test.
func SetupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.Client{},
		&models.Supplier{},
		&models.Product{},
		&models.Quote{},
		&models.PurchaseOrder{},
		&models.Dispatch{},
		&models.Driver{},
		&models.Repair{},
		&models.SalesBudget{},
		&models.Notification{},
	); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	appConfig.SetDB(db)
	return db
}

// SetupTestConfig installs a minimal configuration for handler tests
func SetupTestConfig(t *testing.T) *appConfig.Config {
	t.Helper()

	cfg := &appConfig.Config{
		Port:           "8080",
		GoEnv:          "test",
		JWTSecret:      "test-secret",
		OrgName:        "HELP SOLUCIONES INFORMATICAS",
		OrgNIT:         "900686378-7",
		LogisticsEmail: "logistica@helpsoluciones.com.co",
		LogisticsPhone: "+573001234567",
	}
	appConfig.SetConfig(cfg)
	return cfg
}

// PrintEnvironmentInfo prints the current test environment configuration.
// Useful for debugging test environment issues.
func PrintEnvironmentInfo() {
	fmt.Printf("Test Environment Info:\n")
	fmt.Printf("  GO_ENV: %s\n", os.Getenv("GO_ENV"))
	fmt.Printf("  PORT: %s\n", os.Getenv("PORT"))
}
