package model

import "time"

const TableNameSyncHistory = "sync_history"

// SyncHistory mapped from table <sync_history>
type SyncHistory struct {
	ID             int64     `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Timestamp      time.Time `gorm:"column:timestamp;not null;index:idx_sync_history_timestamp" json:"timestamp"`
	Direction      string    `gorm:"column:direction;not null" json:"direction"`
	Status         string    `gorm:"column:status;not null" json:"status"`
	Message        string    `gorm:"column:message" json:"message"`
	DiagnosticText string    `gorm:"column:diagnostic_text" json:"diagnosticText"`
}

// TableName SyncHistory's table name
func (*SyncHistory) TableName() string {
	return TableNameSyncHistory
}
