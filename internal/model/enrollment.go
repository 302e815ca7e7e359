package model

import "time"

// Enrollment 选课表，对应 enrollments
type Enrollment struct {
	ID         string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	StudentID  string    `gorm:"type:uuid;not null"                             json:"student_id"`
	CourseID   string    `gorm:"type:uuid;not null"                             json:"course_id"`
	Semester   string    `gorm:"type:varchar(20);not null"                      json:"semester"`
	Year       int       `gorm:"not null"                                       json:"year"`
	Status     string    `gorm:"type:varchar(20);not null;default:'enrolled'"   json:"status"`
	EnrolledAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"             json:"enrolled_at"`
	UploadMeta
}

// TableName 指定表名
func (Enrollment) TableName() string { return "enrollments" }

// IsActive 未退课即视为有效选课
func (e *Enrollment) IsActive() bool { return e.Status != EnrollmentDropped }
