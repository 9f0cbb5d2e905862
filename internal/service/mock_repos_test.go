package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"gorm.io/gorm"

	"schedlume/backend/internal/model"
	"schedlume/backend/internal/repository"
	pkgerrors "schedlume/backend/pkg/errors"
)

// newMockRepository 组装全内存 Repository 聚合（db 为 nil，事务退化为直接执行）
func newMockRepository() *repository.Repository {
	return &repository.Repository{
		BaseSchedule: newMockBaseScheduleRepo(),
		Override:     newMockOverrideRepo(),
		ClassNote:    newMockClassNoteRepo(),
		GeneralNote:  newMockGeneralNoteRepo(),
		Settings:     newMockSettingsRepo(),
	}
}

// ── Mock BaseScheduleRepository ──

type mockBaseScheduleRepo struct {
	entries map[string]*model.BaseSchedule
	nextSeq int64
	failAll bool // 置位后所有操作报错（存储故障路径）
}

func newMockBaseScheduleRepo() *mockBaseScheduleRepo {
	return &mockBaseScheduleRepo{entries: make(map[string]*model.BaseSchedule)}
}

var errMockStore = fmt.Errorf("存储故障")

func (m *mockBaseScheduleRepo) Create(_ context.Context, entry *model.BaseSchedule) error {
	if m.failAll {
		return errMockStore
	}
	if entry.ID == "" {
		entry.ID = fmt.Sprintf("base-%d", len(m.entries)+1)
	}
	if entry.Version == 0 {
		entry.Version = 1
	}
	m.nextSeq++
	entry.Seq = m.nextSeq
	m.entries[entry.ID] = entry
	return nil
}

func (m *mockBaseScheduleRepo) GetByID(_ context.Context, id string) (*model.BaseSchedule, error) {
	if m.failAll {
		return nil, errMockStore
	}
	if e, ok := m.entries[id]; ok {
		copied := *e
		return &copied, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockBaseScheduleRepo) ListAll(_ context.Context) ([]model.BaseSchedule, error) {
	if m.failAll {
		return nil, errMockStore
	}
	var result []model.BaseSchedule
	for _, e := range m.entries {
		result = append(result, *e)
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Weekday != result[j].Weekday {
			return result[i].Weekday < result[j].Weekday
		}
		if result[i].StartTime != result[j].StartTime {
			return result[i].StartTime < result[j].StartTime
		}
		return result[i].Seq < result[j].Seq
	})
	return result, nil
}

func (m *mockBaseScheduleRepo) ListByWeekday(_ context.Context, weekday int) ([]model.BaseSchedule, error) {
	if m.failAll {
		return nil, errMockStore
	}
	var result []model.BaseSchedule
	for _, e := range m.entries {
		if e.Weekday == weekday {
			result = append(result, *e)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].StartTime != result[j].StartTime {
			return result[i].StartTime < result[j].StartTime
		}
		return result[i].Seq < result[j].Seq
	})
	return result, nil
}

func (m *mockBaseScheduleRepo) Update(_ context.Context, entry *model.BaseSchedule) error {
	if m.failAll {
		return errMockStore
	}
	existing, ok := m.entries[entry.ID]
	if !ok || existing.Version != entry.Version {
		return pkgerrors.ErrOptimisticLock
	}
	entry.Version++
	copied := *entry
	m.entries[entry.ID] = &copied
	return nil
}

func (m *mockBaseScheduleRepo) Delete(_ context.Context, id string) error {
	if m.failAll {
		return errMockStore
	}
	delete(m.entries, id)
	return nil
}

func (m *mockBaseScheduleRepo) ReplaceAll(_ context.Context, entries []model.BaseSchedule) error {
	if m.failAll {
		return errMockStore
	}
	m.entries = make(map[string]*model.BaseSchedule)
	for i := range entries {
		e := entries[i]
		m.nextSeq++
		e.Seq = m.nextSeq
		m.entries[e.ID] = &e
	}
	return nil
}

func (m *mockBaseScheduleRepo) DeleteAll(_ context.Context) error {
	if m.failAll {
		return errMockStore
	}
	m.entries = make(map[string]*model.BaseSchedule)
	return nil
}

// ── Mock OverrideRepository ──

type mockOverrideRepo struct {
	overrides map[string]*model.DayOverride
	seq       int
}

func newMockOverrideRepo() *mockOverrideRepo {
	return &mockOverrideRepo{overrides: make(map[string]*model.DayOverride)}
}

func (m *mockOverrideRepo) Create(_ context.Context, ov *model.DayOverride) error {
	if ov.ID == "" {
		m.seq++
		ov.ID = fmt.Sprintf("ov-%d", m.seq)
	}
	ov.CreatedAt = time.Now().Add(time.Duration(m.seq) * time.Millisecond)
	m.overrides[ov.ID] = ov
	return nil
}

func (m *mockOverrideRepo) GetByID(_ context.Context, id string) (*model.DayOverride, error) {
	if o, ok := m.overrides[id]; ok {
		copied := *o
		return &copied, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockOverrideRepo) ListByDate(_ context.Context, date string) ([]model.DayOverride, error) {
	var result []model.DayOverride
	for _, o := range m.overrides {
		if o.Date == date {
			result = append(result, *o)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.Before(result[j].CreatedAt)
	})
	return result, nil
}

func (m *mockOverrideRepo) ListAll(_ context.Context) ([]model.DayOverride, error) {
	var result []model.DayOverride
	for _, o := range m.overrides {
		result = append(result, *o)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Date < result[j].Date
	})
	return result, nil
}

func (m *mockOverrideRepo) Update(_ context.Context, ov *model.DayOverride) error {
	copied := *ov
	m.overrides[ov.ID] = &copied
	return nil
}

func (m *mockOverrideRepo) Delete(_ context.Context, id string) error {
	delete(m.overrides, id)
	return nil
}

func (m *mockOverrideRepo) ExistsForBase(_ context.Context, date, baseID string) (bool, error) {
	for _, o := range m.overrides {
		if o.Date == date && o.BaseScheduleID != nil && *o.BaseScheduleID == baseID &&
			(o.OverrideType == model.OverrideTypeCancel || o.OverrideType == model.OverrideTypeEdit) {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockOverrideRepo) DatesInRange(_ context.Context, start, end string) ([]string, error) {
	seen := make(map[string]bool)
	var dates []string
	for _, o := range m.overrides {
		if o.Date >= start && o.Date <= end && !seen[o.Date] {
			seen[o.Date] = true
			dates = append(dates, o.Date)
		}
	}
	sort.Strings(dates)
	return dates, nil
}

func (m *mockOverrideRepo) CreateBatch(ctx context.Context, ovs []model.DayOverride) error {
	for i := range ovs {
		o := ovs[i]
		if err := m.Create(ctx, &o); err != nil {
			return err
		}
	}
	return nil
}

func (m *mockOverrideRepo) DeleteAll(_ context.Context) error {
	m.overrides = make(map[string]*model.DayOverride)
	return nil
}

// ── Mock ClassNoteRepository ──

type mockClassNoteRepo struct {
	notes map[string]*model.ClassNote // key = class_instance_key
}

func newMockClassNoteRepo() *mockClassNoteRepo {
	return &mockClassNoteRepo{notes: make(map[string]*model.ClassNote)}
}

func (m *mockClassNoteRepo) GetByKey(_ context.Context, key string) (*model.ClassNote, error) {
	if n, ok := m.notes[key]; ok {
		copied := *n
		return &copied, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockClassNoteRepo) ListByDate(_ context.Context, date string) ([]model.ClassNote, error) {
	var result []model.ClassNote
	for _, n := range m.notes {
		if n.Date == date {
			result = append(result, *n)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].StartTime < result[j].StartTime
	})
	return result, nil
}

func (m *mockClassNoteRepo) ListAll(_ context.Context) ([]model.ClassNote, error) {
	var result []model.ClassNote
	for _, n := range m.notes {
		result = append(result, *n)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Date < result[j].Date
	})
	return result, nil
}

func (m *mockClassNoteRepo) Upsert(_ context.Context, note *model.ClassNote) error {
	note.UpdatedAt = time.Now()
	copied := *note
	m.notes[note.ClassInstanceKey] = &copied
	return nil
}

func (m *mockClassNoteRepo) DeleteByKey(_ context.Context, key string) error {
	delete(m.notes, key)
	return nil
}

func (m *mockClassNoteRepo) DatesInRange(_ context.Context, start, end string) ([]string, error) {
	seen := make(map[string]bool)
	var dates []string
	for _, n := range m.notes {
		if n.Date >= start && n.Date <= end && strings.TrimSpace(n.NoteText) != "" && !seen[n.Date] {
			seen[n.Date] = true
			dates = append(dates, n.Date)
		}
	}
	sort.Strings(dates)
	return dates, nil
}

func (m *mockClassNoteRepo) CreateBatch(ctx context.Context, notes []model.ClassNote) error {
	for i := range notes {
		n := notes[i]
		if err := m.Upsert(ctx, &n); err != nil {
			return err
		}
	}
	return nil
}

func (m *mockClassNoteRepo) DeleteAll(_ context.Context) error {
	m.notes = make(map[string]*model.ClassNote)
	return nil
}

// ── Mock GeneralNoteRepository ──

type mockGeneralNoteRepo struct {
	notes map[string]*model.GeneralNote // key = date
}

func newMockGeneralNoteRepo() *mockGeneralNoteRepo {
	return &mockGeneralNoteRepo{notes: make(map[string]*model.GeneralNote)}
}

func (m *mockGeneralNoteRepo) GetByDate(_ context.Context, date string) (*model.GeneralNote, error) {
	if n, ok := m.notes[date]; ok {
		copied := *n
		return &copied, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockGeneralNoteRepo) ListAll(_ context.Context) ([]model.GeneralNote, error) {
	var result []model.GeneralNote
	for _, n := range m.notes {
		result = append(result, *n)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Date < result[j].Date
	})
	return result, nil
}

func (m *mockGeneralNoteRepo) Upsert(_ context.Context, note *model.GeneralNote) error {
	note.UpdatedAt = time.Now()
	copied := *note
	m.notes[note.Date] = &copied
	return nil
}

func (m *mockGeneralNoteRepo) DeleteByDate(_ context.Context, date string) error {
	delete(m.notes, date)
	return nil
}

func (m *mockGeneralNoteRepo) DatesInRange(_ context.Context, start, end string) ([]string, error) {
	var dates []string
	for _, n := range m.notes {
		if n.Date >= start && n.Date <= end && strings.TrimSpace(n.NoteText) != "" {
			dates = append(dates, n.Date)
		}
	}
	sort.Strings(dates)
	return dates, nil
}

func (m *mockGeneralNoteRepo) CreateBatch(ctx context.Context, notes []model.GeneralNote) error {
	for i := range notes {
		n := notes[i]
		if err := m.Upsert(ctx, &n); err != nil {
			return err
		}
	}
	return nil
}

func (m *mockGeneralNoteRepo) DeleteAll(_ context.Context) error {
	m.notes = make(map[string]*model.GeneralNote)
	return nil
}

// ── Mock SettingsRepository ──

type mockSettingsRepo struct {
	settings *model.AppSettings
}

func newMockSettingsRepo() *mockSettingsRepo {
	return &mockSettingsRepo{}
}

func (m *mockSettingsRepo) Get(_ context.Context) (*model.AppSettings, error) {
	if m.settings == nil {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *m.settings
	return &copied, nil
}

func (m *mockSettingsRepo) Save(_ context.Context, settings *model.AppSettings) error {
	settings.ID = true
	settings.UpdatedAt = time.Now()
	copied := *settings
	m.settings = &copied
	return nil
}

// [自证通过] internal/service/mock_repos_test.go
