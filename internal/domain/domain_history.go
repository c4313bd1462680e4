package domain

import "time"

// Direction 同步方向
type Direction string

const (
	// DirectionPush local to remote (backup)
	DirectionPush Direction = "push"
	// DirectionPull remote to local (restore)
	DirectionPull Direction = "pull"
)

// HistoryStatus 同步结果状态
type HistoryStatus string

const (
	HistoryStatusSuccess HistoryStatus = "success"
	HistoryStatusError   HistoryStatus = "error"
)

// HistoryEntry one top-level push or pull attempt
// HistoryEntry 一次顶层同步尝试的记录
type HistoryEntry struct {
	ID             int64         `json:"id"`
	Timestamp      time.Time     `json:"timestamp"`
	Direction      Direction     `json:"direction"`
	Status         HistoryStatus `json:"status"`
	Message        string        `json:"message"`
	DiagnosticText string        `json:"diagnosticText,omitempty"`
}
