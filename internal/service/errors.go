package service

import "errors"

// ── 业务错误 ──

var (
	ErrInvalidCredentials = errors.New("邮箱或密码错误")
	ErrEmailExists        = errors.New("该邮箱已被注册")
	ErrPasswordTooLong    = errors.New("密码不能超过 72 字节")
	ErrUserNotFound       = errors.New("用户不存在")
	ErrStudentNotFound    = errors.New("学生不存在")
	ErrCourseNotFound     = errors.New("课程不存在")
	ErrCourseNotOwned     = errors.New("只能操作自己教授的课程")
	ErrEnrollmentExists   = errors.New("该学生已选修此课程")
	ErrAttendanceExists   = errors.New("该学生当日考勤已记录")
	ErrInvalidRange       = errors.New("成绩超出范围：需满足 0 <= marks <= max_marks 且 max_marks > 0")
	ErrInvalidWeightage   = errors.New("权重需在 0 到 100 之间")
	ErrInvalidDate        = errors.New("日期格式无效，应为 YYYY-MM-DD")
)

// ── 导入导出错误 ──

var (
	ErrUnsupportedFile        = errors.New("不支持的文件格式")
	ErrEmptyUpload            = errors.New("上传文件无数据行")
	ErrUploadTooManyRows      = errors.New("数据行数超过上限")
	ErrUploadBadHeader        = errors.New("表头缺少必要列")
	ErrUploadMalformed        = errors.New("无法解析上传文件")
	ErrExportGenerateFail     = errors.New("生成 Excel 文件失败")
	ErrTranscriptGenerateFail = errors.New("生成成绩单失败")
)
