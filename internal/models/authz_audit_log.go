package models

import "time"

// AuthzAuditLog 后台角色变更审计日志
type AuthzAuditLog struct {
	ID               uint        `gorm:"primarykey" json:"id"`
	OperatorUserID   uint        `gorm:"index;not null" json:"operator_user_id"`
	OperatorUsername string      `gorm:"type:varchar(100);index;not null;default:''" json:"operator_username"`
	TargetUserID     *uint       `gorm:"index" json:"target_user_id,omitempty"`
	TargetUsername   string      `gorm:"type:varchar(100);index;not null;default:''" json:"target_username"`
	Action           string      `gorm:"type:varchar(100);index;not null" json:"action"`
	Roles            StringArray `gorm:"type:json" json:"roles"`
	RequestID        string      `gorm:"type:varchar(64);index;not null;default:''" json:"request_id"`
	CreatedAt        time.Time   `gorm:"index" json:"created_at"`
}

// TableName 指定表名
func (AuthzAuditLog) TableName() string {
	return "authz_audit_logs"
}
