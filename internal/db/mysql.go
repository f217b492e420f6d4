package db

import (
	"fmt"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"whiterabbit/internal/model"
)

// entities lists the tables in dependency order.
var entities = []any{
	&model.User{},
	&model.Post{},
	&model.Comment{},
	&model.Todoline{},
}

// NewMySQL returns a connected GORM DB instance.
func NewMySQL(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Warn),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("connect mysql: %w", err)
	}
	return db, nil
}

// Migrate creates or updates the schema. With reset, existing tables are
// dropped first.
func Migrate(db *gorm.DB, reset bool) error {
	if reset {
		for i := len(entities) - 1; i >= 0; i-- {
			if err := db.Migrator().DropTable(entities[i]); err != nil {
				return fmt.Errorf("drop table: %w", err)
			}
		}
	}
	if err := db.AutoMigrate(entities...); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}
