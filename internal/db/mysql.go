package db

import (
	"fmt"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

// NewMySQL returns a connected GORM DB instance backed by a pooled set of
// connections. maxOpenConns bounds the pool; 0 keeps the driver default.
// Setting it to 1 serializes every operation through a single connection,
// which reproduces the original one-handle-per-collection behavior and is
// only useful as a worst-case fallback.
func NewMySQL(dsn string, maxOpenConns int) (*gorm.DB, error) {
	gormDB, err := gorm.Open(mysql.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("connect mysql: %w", err)
	}

	if maxOpenConns > 0 {
		sqlDB, err := gormDB.DB()
		if err != nil {
			return nil, fmt.Errorf("access connection pool: %w", err)
		}
		sqlDB.SetMaxOpenConns(maxOpenConns)
	}

	return gormDB, nil
}
