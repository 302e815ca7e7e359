package model

import "time"

// Attendance 考勤表，对应 attendance
// 每个 (学生, 课程, 日期) 至多一条
type Attendance struct {
	ID         string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	StudentID  string    `gorm:"type:uuid;not null"                             json:"student_id"`
	CourseID   string    `gorm:"type:uuid;not null"                             json:"course_id"`
	Date       time.Time `gorm:"type:date;not null"                             json:"date"`
	Status     string    `gorm:"type:varchar(10);not null;default:'present'"    json:"status"`
	RecordedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"             json:"recorded_at"`
	RecordedBy *string   `gorm:"type:uuid"                                      json:"recorded_by,omitempty"`
}

// TableName 指定表名
func (Attendance) TableName() string { return "attendance" }
