package entity

import "time"

// AuditLog is a best-effort change record written after a workflow operation
// commits. The workflow never depends on these writes succeeding.
type AuditLog struct {
	ID        uint   `gorm:"primaryKey"`
	TableName string `gorm:"not null"`
	Operation string `gorm:"not null"`
	ActorID   *string `gorm:"type:uuid"`
	OldValue  string
	NewValue  string
	CreatedAt time.Time
}
