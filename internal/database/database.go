package database

import (
	"strings"

	"gorm.io/driver/postgres"
	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"
	_ "modernc.org/sqlite"

	"studioreserve/internal/domain"
)

// Connect opens PostgreSQL for DSNs with a postgres scheme and falls back to
// SQLite (pure-Go driver) for everything else, which covers local dev and
// the test suite.
func Connect(dsn string) (*gorm.DB, error) {
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		return gorm.Open(postgres.Open(dsn), &gorm.Config{})
	}

	return gorm.Open(
		gormsqlite.New(gormsqlite.Config{
			DriverName: "sqlite",
			DSN:        dsn,
		}),
		&gorm.Config{},
	)
}

// Migrate creates the schema. On PostgreSQL it additionally installs the
// exclusion constraint that rejects two live bookings with intersecting
// ranges on the same room, the store-level backstop for admission races.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&domain.User{},
		&domain.Studio{},
		&domain.Room{},
		&domain.Booking{},
		&domain.EquipmentItem{},
		&domain.EquipmentLog{},
		&domain.Payment{},
	); err != nil {
		return err
	}

	if db.Dialector.Name() != "postgres" {
		return nil
	}

	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS btree_gist`).Error; err != nil {
		return err
	}
	if err := db.Exec(`ALTER TABLE bookings DROP CONSTRAINT IF EXISTS idx_no_overbooking`).Error; err != nil {
		return err
	}
	return db.Exec(`
ALTER TABLE bookings ADD CONSTRAINT idx_no_overbooking
EXCLUDE USING gist (
    room_id WITH =,
    tstzrange(start_time, end_time, '[)') WITH &&
) WHERE (status IN ('pending', 'accepted'))
`).Error
}
