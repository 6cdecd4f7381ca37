package entities

import "time"

// KVEntry is one row of the durable key-value slot table.
type KVEntry struct {
	Key       string `gorm:"primaryKey;column:slot_key;size:64"`
	Value     []byte
	UpdatedAt time.Time
}

func (KVEntry) TableName() string { return "kv_slots" }
