package repositoryImp

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"agrimanage/entities"
	"agrimanage/pkg/apperr"
	"agrimanage/pkg/slot/repository"
)

type sqliteSlot struct{ db *gorm.DB }

func NewSQLite(db *gorm.DB) repository.SlotRepository { return &sqliteSlot{db: db} }

func (r *sqliteSlot) Driver() string { return "sqlite" }

func (r *sqliteSlot) Get(ctx context.Context, key string) ([]byte, error) {
	var row entities.KVEntry
	err := r.db.WithContext(ctx).Where("slot_key = ?", key).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("slot %q: %w", key, apperr.ErrSlotEmpty)
	}
	if err != nil {
		return nil, err
	}
	return row.Value, nil
}

func (r *sqliteSlot) Put(ctx context.Context, key string, value []byte) error {
	row := entities.KVEntry{Key: key, Value: value, UpdatedAt: time.Now()}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "slot_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&row).Error
}

func (r *sqliteSlot) Ping(ctx context.Context) error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}
