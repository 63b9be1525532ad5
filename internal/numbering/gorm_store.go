package numbering

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	gormlogger "gorm.io/gorm/logger"
)

// CounterRecord is one row of the document_counters table.
type CounterRecord struct {
	Name      string `gorm:"column:name;primaryKey;size:64"`
	Value     string `gorm:"column:value;not null"`
	UpdatedAt time.Time
}

// TableName implements gorm's tabler interface.
func (CounterRecord) TableName() string {
	return "document_counters"
}

// GormStore persists counters in a SQL table through gorm.
type GormStore struct {
	db *gorm.DB
}

// NewSQLiteStore opens (or creates) a sqlite database file and migrates the
// counter table.
func NewSQLiteStore(path string) (*GormStore, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", path, err)
	}
	return NewGormStore(db)
}

// NewGormStore wraps an existing connection, migrating the counter table.
func NewGormStore(db *gorm.DB) (*GormStore, error) {
	if err := db.AutoMigrate(&CounterRecord{}); err != nil {
		return nil, fmt.Errorf("migrate document_counters: %w", err)
	}
	return &GormStore{db: db}, nil
}

func (s *GormStore) Get(ctx context.Context, key string) (string, error) {
	var record CounterRecord
	err := s.db.WithContext(ctx).Where("name = ?", key).First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", ErrCounterNotFound
	}
	if err != nil {
		return "", fmt.Errorf("load counter %s: %w", key, err)
	}
	return record.Value, nil
}

func (s *GormStore) Set(ctx context.Context, key, value string) error {
	record := CounterRecord{Name: key, Value: value}
	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "name"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
		}).
		Create(&record).Error
	if err != nil {
		return fmt.Errorf("save counter %s: %w", key, err)
	}
	return nil
}

// Close releases the underlying connection pool.
func (s *GormStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
