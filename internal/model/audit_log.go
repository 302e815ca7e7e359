package model

import (
	"time"

	"gorm.io/datatypes"
)

// AuditLog 审计日志表，对应 audit_logs，只追加
type AuditLog struct {
	ID        string         `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Action    string         `gorm:"type:varchar(50);not null"                      json:"action"`
	UserID    string         `gorm:"type:uuid;not null"                             json:"user_id"`
	Extra     datatypes.JSON `gorm:"type:jsonb;not null;default:'{}'"              json:"extra"`
	CreatedAt time.Time      `gorm:"not null;default:CURRENT_TIMESTAMP"             json:"timestamp"`
}

// TableName 指定表名
func (AuditLog) TableName() string { return "audit_logs" }
