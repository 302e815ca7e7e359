package model

import "time"

// ── 角色 ──

const (
	RoleStudent = "student"
	RoleTeacher = "teacher"
)

// ── 选课状态 ──

const (
	EnrollmentEnrolled  = "enrolled"
	EnrollmentCompleted = "completed"
	EnrollmentDropped   = "dropped"
)

// ── 考勤状态 ──

const (
	AttendancePresent = "present"
	AttendanceAbsent  = "absent"
	AttendanceLate    = "late"
)

// ── 审计动作 ──

const (
	AuditLogin            = "login"
	AuditLogout           = "logout"
	AuditRegister         = "register"
	AuditEnrollmentUpload = "enrollment_upload"
	AuditGradesUpload     = "grades_upload"
)

// UploadMeta 批量导入记录的审计字段：上传人与上传时间
// 手工创建的记录两者均为空
type UploadMeta struct {
	UploadedBy *string    `gorm:"type:uuid" json:"uploaded_by,omitempty"`
	UploadedAt *time.Time `json:"upload_timestamp,omitempty"`
}
