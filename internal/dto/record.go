package dto

import "time"

// ── 选课 / 成绩 / 考勤 / 作业 DTO ──

// CreateEnrollmentRequest 教师为学生选课
// semester/year 为空时沿用课程的学期
type CreateEnrollmentRequest struct {
	StudentID string `json:"student_id" binding:"required,uuid"`
	CourseID  string `json:"course_id"  binding:"required,uuid"`
	Semester  string `json:"semester"   binding:"omitempty,max=20"`
	Year      int    `json:"year"       binding:"omitempty,min=1900,max=2200"`
}

// CreateGradeRequest 录入成绩
// marks 的取值范围由业务层校验，以便返回统一的错误码
type CreateGradeRequest struct {
	StudentID string  `json:"student_id" binding:"required,uuid"`
	CourseID  string  `json:"course_id"  binding:"required,uuid"`
	Component string  `json:"component"  binding:"required,max=50"`
	Marks     float64 `json:"marks"`
	MaxMarks  float64 `json:"max_marks"`
	Weightage float64 `json:"weightage"  binding:"min=0,max=100"`
}

// CreateAttendanceRequest 记录考勤，date 格式 YYYY-MM-DD
type CreateAttendanceRequest struct {
	StudentID string `json:"student_id" binding:"required,uuid"`
	CourseID  string `json:"course_id"  binding:"required,uuid"`
	Date      string `json:"date"       binding:"required,datetime=2006-01-02"`
	Status    string `json:"status"     binding:"omitempty,oneof=present absent late"`
}

// CreateAssignmentRequest 布置作业
type CreateAssignmentRequest struct {
	CourseID    string    `json:"course_id"   binding:"required,uuid"`
	Title       string    `json:"title"       binding:"required,max=200"`
	Description string    `json:"description" binding:"max=5000"`
	DueDate     time.Time `json:"due_date"    binding:"required"`
	MaxMarks    float64   `json:"max_marks"   binding:"required,gt=0"`
	Weightage   float64   `json:"weightage"   binding:"min=0,max=100"`
}

// ExportGradesRequest 成绩导出查询参数
type ExportGradesRequest struct {
	CourseID string `form:"course_id" binding:"required,uuid"`
}
