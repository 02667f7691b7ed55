package entity

import "time"

// AuditLog represents a system audit trail entry.
// Username and Role are a snapshot taken when the action happened.
type AuditLog struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    *uint     `gorm:"index" json:"user_id,omitempty"`
	Username  string    `gorm:"type:varchar(80)" json:"username"`
	Role      *string   `gorm:"type:varchar(50)" json:"role,omitempty"`
	Action    string    `gorm:"type:varchar(255)" json:"action"`
	Timestamp time.Time `gorm:"not null;index" json:"timestamp"`

	User *User `gorm:"foreignKey:UserID;constraint:OnDelete:SET NULL" json:"-"`
}

func (AuditLog) TableName() string {
	return "audit_logs"
}

// SystemActor is the username recorded when no user performed the action
const SystemActor = "System"
