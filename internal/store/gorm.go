package store

import (
	"context"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// GormOpener runs raw statements through gorm on top of the cgo driver.
type GormOpener struct{}

func (GormOpener) Name() string { return DriverGorm }

func (GormOpener) Open(ctx context.Context, path string, readOnly bool) (Session, error) {
	db, err := gorm.Open(sqlite.Open(DSN(path, readOnly)), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	// One connection keeps ATTACH visible to every statement.
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)

	if err := verify(ctx, sqlDB.QueryRowContext); err != nil {
		sqlDB.Close()
		return nil, err
	}

	return &gormSession{db: db.WithContext(ctx)}, nil
}

type gormSession struct {
	db *gorm.DB
}

func (s *gormSession) Exec(ctx context.Context, query string, args ...any) error {
	return s.db.WithContext(ctx).Exec(query, args...).Error
}

func (s *gormSession) Query(ctx context.Context, query string, args ...any) (Rows, error) {
	return s.db.WithContext(ctx).Raw(query, args...).Rows()
}

func (s *gormSession) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
