package dto

// ── 课程模块 DTO ──

// ScheduleRequest 上课时间安排
type ScheduleRequest struct {
	Days     []string `json:"days"     binding:"omitempty,dive,oneof=MON TUE WED THU FRI SAT SUN"`
	Time     string   `json:"time"     binding:"omitempty,max=50"`
	Location string   `json:"location" binding:"omitempty,max=100"`
}

// CreateCourseRequest 创建课程请求
// 授课教师取自当前登录身份，请求体中不接受 teacher_id
type CreateCourseRequest struct {
	Code        string          `json:"code"        binding:"required,course_code"`
	Title       string          `json:"title"       binding:"required,max=200"`
	Description string          `json:"description" binding:"max=2000"`
	Credits     int             `json:"credits"     binding:"required,min=1,max=30"`
	Schedule    ScheduleRequest `json:"schedule"`
	Semester    string          `json:"semester"    binding:"required,max=20"`
	Year        int             `json:"year"        binding:"required,min=1900,max=2200"`
}
