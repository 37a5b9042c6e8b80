package storage

import "time"

type KVModel struct {
	Key       string    `gorm:"column:key;type:varchar(255);primaryKey"`
	Value     string    `gorm:"column:value;type:text;not null"`
	UpdatedAt time.Time `gorm:"column:updated_at;type:timestamptz;not null"`
}

func (KVModel) TableName() string {
	return "kv_entries"
}
