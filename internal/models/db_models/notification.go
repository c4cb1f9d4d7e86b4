package db_models

import (
	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type NotificationKind string

const (
	NotifyWallet     NotificationKind = "wallet"
	NotifyPlan       NotificationKind = "plan"
	NotifyInvestment NotificationKind = "investment"
	NotifyAccount    NotificationKind = "account"
)

type Notification struct {
	BaseModel
	UserID uuid.UUID        `gorm:"type:uuid;not null;index" json:"user_id"`
	Title  string           `gorm:"not null" json:"title"`
	Body   string           `json:"body"`
	Kind   NotificationKind `gorm:"size:16" json:"kind"`
	Data   datatypes.JSON   `json:"data,omitempty"`
	IsRead bool             `gorm:"default:false" json:"is_read"`
}
