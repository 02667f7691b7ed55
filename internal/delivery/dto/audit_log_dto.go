package dto

import "time"

// Response DTOs

type AuditLogResponse struct {
	ID        uint
	UserID    *uint
	Username  string
	Role      string
	Action    string
	Timestamp time.Time
}
