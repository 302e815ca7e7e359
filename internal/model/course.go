package model

import (
	"time"

	"gorm.io/datatypes"
)

// Course 课程表，对应 courses
// TeacherID 在创建时取自认证身份，此后不变
type Course struct {
	ID          string         `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Code        string         `gorm:"type:varchar(20);not null"                      json:"code"`
	Title       string         `gorm:"type:varchar(200);not null"                     json:"title"`
	Description string         `gorm:"type:text;not null;default:''"                  json:"description"`
	Credits     int            `gorm:"not null"                                       json:"credits"`
	TeacherID   string         `gorm:"type:uuid;not null"                             json:"teacher_id"`
	Schedule    datatypes.JSON `gorm:"type:jsonb;not null;default:'{}'"              json:"schedule"`
	Semester    string         `gorm:"type:varchar(20);not null"                      json:"semester"`
	Year        int            `gorm:"not null"                                       json:"year"`
	CreatedAt   time.Time      `gorm:"not null;default:CURRENT_TIMESTAMP"             json:"created_at"`
}

// TableName 指定表名
func (Course) TableName() string { return "courses" }

// CourseSchedule 课程时间安排，序列化到 courses.schedule
type CourseSchedule struct {
	Days     []string `json:"days"`
	Time     string   `json:"time"`
	Location string   `json:"location"`
}
