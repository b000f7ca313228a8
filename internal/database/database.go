package database

import (
	"gorm.io/driver/postgres"
	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"
	_ "modernc.org/sqlite" // registers the pure-Go "sqlite" driver

	"studyshare/internal/config"
	"studyshare/internal/domain/auth"
	"studyshare/internal/domain/chat"
	"studyshare/internal/domain/files"
)

// Connect opens the database the config selects. Postgres for real
// deployments, sqlite (via the modernc driver) for local development.
func Connect(cfg *config.Config) (*gorm.DB, error) {
	if cfg.DatabaseDialect() == config.DialectPostgres {
		return gorm.Open(postgres.Open(cfg.DatabaseURL), &gorm.Config{})
	}

	return gorm.Open(
		gormsqlite.New(gormsqlite.Config{
			DriverName: "sqlite",
			DSN:        cfg.DatabaseURL,
		}),
		&gorm.Config{},
	)
}

// Migrate brings the schema up to date for all entities.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&auth.User{},
		&chat.Message{},
		&files.FileAsset{},
	)
}
