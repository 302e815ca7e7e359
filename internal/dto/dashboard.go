package dto

import (
	"github.com/priyanshuchauhan04/academics-analytics/internal/analytics"
	"github.com/priyanshuchauhan04/academics-analytics/internal/model"
)

// ── 仪表盘响应 ──

// StudentDashboardResponse 学生仪表盘
type StudentDashboardResponse struct {
	User              UserResponse                `json:"user"`
	Courses           []model.Course              `json:"courses"`
	Enrollments       []model.Enrollment          `json:"enrollments"`
	Grades            []model.Grade               `json:"grades"`
	Attendance        []model.Attendance          `json:"attendance"`
	Assignments       []model.Assignment          `json:"assignments"`
	GPA               float64                     `json:"gpa"`
	TotalCredits      int                         `json:"total_credits"`
	CourseGrades      []analytics.CourseResult    `json:"course_grades"`
	Terms             []analytics.TermResult      `json:"terms"`
	AttendanceSummary analytics.AttendanceSummary `json:"attendance_summary"`
}

// TeacherDashboardResponse 教师仪表盘
type TeacherDashboardResponse struct {
	User          UserResponse            `json:"user"`
	Courses       []model.Course          `json:"courses"`
	Enrollments   []model.Enrollment      `json:"enrollments"`
	Students      []UserResponse          `json:"students"`
	Grades        []model.Grade           `json:"grades"`
	Attendance    []model.Attendance      `json:"attendance"`
	TotalStudents int                     `json:"total_students"`
	TotalCourses  int                     `json:"total_courses"`
	CourseStats   []analytics.CourseStats `json:"course_stats"`
}
