package app

import (
	"fmt"

	"github.com/LIMSONGJIN/metabank-api/internal/result"
	"github.com/LIMSONGJIN/metabank-api/internal/usagelog"
	"github.com/LIMSONGJIN/metabank-api/internal/user"

	"gorm.io/gorm"
)

// Models lists every table in dependency order.
func Models() []interface{} {
	models := []interface{}{&user.User{}, &usagelog.UsageLog{}}
	return append(models, result.Models()...)
}

// Migrate creates or updates the schema.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("auto-migrating schema: %w", err)
	}
	return nil
}
