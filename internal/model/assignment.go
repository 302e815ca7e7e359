package model

import "time"

// Assignment 作业表，对应 assignments
type Assignment struct {
	ID          string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	CourseID    string    `gorm:"type:uuid;not null"                             json:"course_id"`
	Title       string    `gorm:"type:varchar(200);not null"                     json:"title"`
	Description string    `gorm:"type:text;not null;default:''"                  json:"description"`
	DueDate     time.Time `gorm:"not null"                                       json:"due_date"`
	MaxMarks    float64   `gorm:"not null"                                       json:"max_marks"`
	Weightage   float64   `gorm:"not null;default:0"                             json:"weightage"`
	CreatedBy   string    `gorm:"type:uuid;not null"                             json:"created_by"`
	CreatedAt   time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"             json:"created_at"`
}

// TableName 指定表名
func (Assignment) TableName() string { return "assignments" }
