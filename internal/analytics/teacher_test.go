package analytics

import (
	"testing"

	"github.com/priyanshuchauhan04/academics-analytics/internal/model"
)

func TestComputeTeacherAnalytics(t *testing.T) {
	courses := []model.Course{
		course("c1", "CS101", 3, "Fall", 2024),
		course("c2", "CS201", 3, "Fall", 2024),
	}
	enrollments := []model.Enrollment{
		{StudentID: "s1", CourseID: "c1", Status: model.EnrollmentEnrolled},
		{StudentID: "s2", CourseID: "c1", Status: model.EnrollmentEnrolled},
		{StudentID: "s1", CourseID: "c2", Status: model.EnrollmentCompleted},
		{StudentID: "s3", CourseID: "c2", Status: model.EnrollmentDropped},
		{StudentID: "s9", CourseID: "other", Status: model.EnrollmentEnrolled},
	}
	grades := []model.Grade{
		{StudentID: "s1", CourseID: "c1", Marks: 90, MaxMarks: 100},
		{StudentID: "s2", CourseID: "c1", Marks: 35, MaxMarks: 50},
	}
	attendance := []model.Attendance{
		{StudentID: "s1", CourseID: "c1", Status: model.AttendancePresent},
		{StudentID: "s2", CourseID: "c1", Status: model.AttendanceLate},
		{StudentID: "s2", CourseID: "c1", Status: model.AttendanceAbsent},
		{StudentID: "s1", CourseID: "c1", Status: model.AttendanceAbsent},
	}

	res := ComputeTeacherAnalytics(courses, enrollments, grades, attendance)

	if res.TotalStudents != 3 {
		t.Errorf("期望 3 名学生（不含其他教师课程），实际 %d", res.TotalStudents)
	}
	if res.TotalCourses != 2 {
		t.Errorf("期望 2 门课程，实际 %d", res.TotalCourses)
	}
	if len(res.Courses) != 2 || res.Courses[0].Code != "CS101" {
		t.Fatalf("课程统计应按代码排序: %+v", res.Courses)
	}

	c1 := res.Courses[0]
	if c1.Enrolled != 2 {
		t.Errorf("CS101 期望在读 2 人，实际 %d", c1.Enrolled)
	}
	if c1.Average != 80 {
		t.Errorf("CS101 期望平均 80，实际 %v", c1.Average)
	}
	if c1.GradedStudents != 2 {
		t.Errorf("CS101 期望 2 名学生有成绩，实际 %d", c1.GradedStudents)
	}
	if c1.AttendanceRate != 50 {
		t.Errorf("CS101 期望出勤率 50，实际 %v", c1.AttendanceRate)
	}

	c2 := res.Courses[1]
	if c2.Enrolled != 1 {
		t.Errorf("CS201 已退课记录不计入在读人数，期望 1，实际 %d", c2.Enrolled)
	}
	if c2.Average != 0 || c2.AttendanceRate != 0 {
		t.Errorf("CS201 无成绩无考勤时应为零值: %+v", c2)
	}
}

func TestComputeTeacherAnalytics_Empty(t *testing.T) {
	res := ComputeTeacherAnalytics(nil, nil, nil, nil)

	if res.TotalStudents != 0 || res.TotalCourses != 0 || len(res.Courses) != 0 {
		t.Errorf("空输入应返回零值: %+v", res)
	}
	if res.StudentIDs == nil {
		t.Error("StudentIDs 应为空切片而非 nil")
	}
}

func TestSummarizeAttendance(t *testing.T) {
	records := []model.Attendance{
		{Status: model.AttendancePresent},
		{Status: model.AttendancePresent},
		{Status: model.AttendanceLate},
		{Status: model.AttendanceAbsent},
	}

	s := SummarizeAttendance(records)

	if s.Present != 2 || s.Late != 1 || s.Absent != 1 {
		t.Errorf("统计错误: %+v", s)
	}
	if s.Rate != 75 {
		t.Errorf("期望出勤率 75，实际 %v", s.Rate)
	}
	if SummarizeAttendance(nil).Rate != 0 {
		t.Error("无记录时出勤率应为 0")
	}
}
