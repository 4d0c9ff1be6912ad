package migrate_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/weddingbazaar/wedding-bazaar-backend/pkg/migrate"
)

func TestBookingsMigrationContainsSchemas(t *testing.T) {
	matches, err := filepath.Glob(filepath.Join("migrations", "*_create_bookings_tables.sql"))
	if err != nil {
		t.Fatalf("glob migrations: %v", err)
	}
	if len(matches) == 0 {
		t.Fatalf("no bookings migration file found")
	}

	data, err := os.ReadFile(matches[0])
	if err != nil {
		t.Fatalf("read migration file: %v", err)
	}
	content := string(data)

	checks := []string{
		"CREATE TYPE booking_status AS ENUM",
		"'downpayment_paid'",
		"'paid_in_full'",
		"'refunded'",
		"CREATE TABLE IF NOT EXISTS bookings",
		"status                     booking_status NOT NULL DEFAULT 'request'",
		"CHECK (total_paid_centavos >= 0)",
		"CHECK (remaining_balance_centavos >= 0)",
		"CREATE TABLE IF NOT EXISTS booking_events",
		"FOREIGN KEY (booking_id) REFERENCES bookings(id) ON DELETE CASCADE",
		"CREATE INDEX IF NOT EXISTS idx_bookings_vendor_event_date",
		"DROP TABLE IF EXISTS bookings",
	}

	for _, sub := range checks {
		if !strings.Contains(content, sub) {
			t.Errorf("missing expected statement %q", sub)
		}
	}
}

func TestReceiptsMigrationContainsConstraints(t *testing.T) {
	matches, err := filepath.Glob(filepath.Join("migrations", "*_create_receipts_table.sql"))
	if err != nil {
		t.Fatalf("glob migrations: %v", err)
	}
	if len(matches) == 0 {
		t.Fatalf("no receipts migration file found")
	}

	data, err := os.ReadFile(matches[0])
	if err != nil {
		t.Fatalf("read migration file: %v", err)
	}
	content := string(data)

	checks := []string{
		"CREATE SEQUENCE IF NOT EXISTS receipt_number_seq",
		"CREATE UNIQUE INDEX IF NOT EXISTS idx_receipts_provider_payment_id",
		"CREATE UNIQUE INDEX IF NOT EXISTS idx_receipts_receipt_number",
		"CHECK (amount_centavos > 0)",
		"DROP TABLE IF EXISTS receipts",
	}

	for _, sub := range checks {
		if !strings.Contains(content, sub) {
			t.Errorf("missing expected statement %q", sub)
		}
	}
}

func TestMigrationsDirValidates(t *testing.T) {
	if err := migrate.ValidateDir("migrations"); err != nil {
		t.Fatalf("migrations dir invalid: %v", err)
	}
}
