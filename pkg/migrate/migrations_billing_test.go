package migrate_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Amanshah2829/smart-society-sub000/pkg/migrate"
)

func TestMigrationsDirIsValid(t *testing.T) {
	if err := migrate.ValidateDir("migrations"); err != nil {
		t.Fatalf("validate migrations dir: %v", err)
	}
}

func TestBillingMigrationContainsConstraints(t *testing.T) {
	matches, err := filepath.Glob(filepath.Join("migrations", "*_create_billing.sql"))
	if err != nil {
		t.Fatalf("glob migrations: %v", err)
	}
	if len(matches) == 0 {
		t.Fatalf("no billing migration file found")
	}

	data, err := os.ReadFile(matches[0])
	if err != nil {
		t.Fatalf("read migration file: %v", err)
	}
	content := string(data)

	checks := []string{
		"CREATE TABLE IF NOT EXISTS bills",
		"CREATE UNIQUE INDEX IF NOT EXISTS idx_bills_flat_period",
		"CHECK (amount >= 0)",
		"CHECK (period_month BETWEEN 1 AND 12)",
		"CREATE TABLE IF NOT EXISTS ledger_entries",
		"DROP TABLE IF EXISTS bills",
	}

	for _, sub := range checks {
		if !strings.Contains(content, sub) {
			t.Errorf("missing expected statement %q", sub)
		}
	}
}

func TestUsersMigrationEnforcesRoles(t *testing.T) {
	matches, err := filepath.Glob(filepath.Join("migrations", "*_create_users.sql"))
	if err != nil {
		t.Fatalf("glob migrations: %v", err)
	}
	if len(matches) == 0 {
		t.Fatalf("no users migration file found")
	}

	data, err := os.ReadFile(matches[0])
	if err != nil {
		t.Fatalf("read migration file: %v", err)
	}
	content := string(data)

	checks := []string{
		"CREATE TABLE IF NOT EXISTS users",
		"'admin', 'resident', 'security', 'receptionist', 'accountant', 'superadmin'",
		"CREATE UNIQUE INDEX IF NOT EXISTS idx_users_email",
		"FOREIGN KEY (site_id) REFERENCES sites(id) ON DELETE RESTRICT",
		"DROP TABLE IF EXISTS users",
	}

	for _, sub := range checks {
		if !strings.Contains(content, sub) {
			t.Errorf("missing expected statement %q", sub)
		}
	}
}
