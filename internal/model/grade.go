package model

import (
	"math"
	"time"
)

// Grade 成绩表，对应 grades
// 每个 (学生, 课程) 可有多条成绩，每条对应一个评分项
type Grade struct {
	ID        string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	StudentID string    `gorm:"type:uuid;not null"                             json:"student_id"`
	CourseID  string    `gorm:"type:uuid;not null"                             json:"course_id"`
	Component string    `gorm:"type:varchar(50);not null"                      json:"component"`
	Marks     float64   `gorm:"not null"                                       json:"marks"`
	MaxMarks  float64   `gorm:"not null"                                       json:"max_marks"`
	Weightage float64   `gorm:"not null;default:0"                             json:"weightage"`
	GradedAt  time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"             json:"graded_at"`
	UploadMeta
}

// TableName 指定表名
func (Grade) TableName() string { return "grades" }

// Percentage 得分百分比；MaxMarks 非正时返回 0
func (g *Grade) Percentage() float64 {
	if g.MaxMarks <= 0 {
		return 0
	}
	return g.Marks / g.MaxMarks * 100
}

// InRange 0 <= marks <= max_marks 且 max_marks 为正的有限数
func (g *Grade) InRange() bool {
	if math.IsInf(g.MaxMarks, 0) || math.IsNaN(g.MaxMarks) || math.IsNaN(g.Marks) {
		return false
	}
	return g.MaxMarks > 0 && g.Marks >= 0 && g.Marks <= g.MaxMarks
}

// WeightageInRange 权重在 [0, 100] 内
func (g *Grade) WeightageInRange() bool {
	return g.Weightage >= 0 && g.Weightage <= 100
}
