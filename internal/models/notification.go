package models

import (
	"gorm.io/datatypes"
)

type NotificationType string

const (
	NotificationInfo    NotificationType = "INFO"
	NotificationSuccess NotificationType = "SUCCESS"
	NotificationWarning NotificationType = "WARNING"
	NotificationError   NotificationType = "ERROR"
)

func (t NotificationType) Valid() bool {
	switch t {
	case NotificationInfo, NotificationSuccess, NotificationWarning, NotificationError:
		return true
	}
	return false
}

type Notification struct {
	BaseModel

	UserID  string            `gorm:"type:varchar(36);not null;index" json:"userId"`
	Title   string            `gorm:"not null" json:"title"`
	Message string            `gorm:"not null" json:"message"`
	Type    NotificationType  `gorm:"type:varchar(16);not null;default:INFO" json:"type"`
	IsRead  bool              `gorm:"not null;default:false" json:"isRead"`
	Data    datatypes.JSONMap `json:"data,omitempty"`

	// Relationships
	User *User `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"user,omitempty"`
}
