package analytics

import (
	"sort"

	"github.com/priyanshuchauhan04/academics-analytics/internal/model"
)

// CourseStats 单门课程的教学统计
type CourseStats struct {
	CourseID       string  `json:"course_id"`
	Code           string  `json:"code"`
	Title          string  `json:"title"`
	Enrolled       int     `json:"enrolled"`
	GradedStudents int     `json:"graded_students"`
	Average        float64 `json:"average"`         // 全部成绩百分比的平均值
	AttendanceRate float64 `json:"attendance_rate"` // (present + late) / 总记录数 * 100
}

// TeacherAnalytics 教师维度统计
type TeacherAnalytics struct {
	TotalStudents int
	TotalCourses  int
	StudentIDs    []string
	Courses       []CourseStats
}

// ComputeTeacherAnalytics 汇总教师名下课程的统计数据
// 调用方传入的 enrollments/grades/attendance 应已按教师课程范围过滤
func ComputeTeacherAnalytics(courses []model.Course, enrollments []model.Enrollment, grades []model.Grade, attendance []model.Attendance) TeacherAnalytics {
	stats := make(map[string]*CourseStats, len(courses))
	for _, c := range courses {
		stats[c.ID] = &CourseStats{CourseID: c.ID, Code: c.Code, Title: c.Title}
	}

	students := make(map[string]struct{})
	for _, e := range enrollments {
		s, ok := stats[e.CourseID]
		if !ok {
			continue
		}
		students[e.StudentID] = struct{}{}
		if e.IsActive() {
			s.Enrolled++
		}
	}

	gradeSum := make(map[string]float64)
	gradeCount := make(map[string]int)
	graded := make(map[string]map[string]struct{})
	for i := range grades {
		g := &grades[i]
		if _, ok := stats[g.CourseID]; !ok {
			continue
		}
		gradeSum[g.CourseID] += g.Percentage()
		gradeCount[g.CourseID]++
		if graded[g.CourseID] == nil {
			graded[g.CourseID] = make(map[string]struct{})
		}
		graded[g.CourseID][g.StudentID] = struct{}{}
	}

	attended := make(map[string]int)
	attTotal := make(map[string]int)
	for _, a := range attendance {
		if _, ok := stats[a.CourseID]; !ok {
			continue
		}
		attTotal[a.CourseID]++
		if a.Status == model.AttendancePresent || a.Status == model.AttendanceLate {
			attended[a.CourseID]++
		}
	}

	list := make([]CourseStats, 0, len(stats))
	for id, s := range stats {
		if n := gradeCount[id]; n > 0 {
			s.Average = Round2(gradeSum[id] / float64(n))
		}
		s.GradedStudents = len(graded[id])
		if n := attTotal[id]; n > 0 {
			s.AttendanceRate = Round2(float64(attended[id]) / float64(n) * 100)
		}
		list = append(list, *s)
	}
	sort.Slice(list, func(i, j int) bool {
		if list[i].Code != list[j].Code {
			return list[i].Code < list[j].Code
		}
		return list[i].CourseID < list[j].CourseID
	})

	ids := make([]string, 0, len(students))
	for id := range students {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	return TeacherAnalytics{
		TotalStudents: len(ids),
		TotalCourses:  len(courses),
		StudentIDs:    ids,
		Courses:       list,
	}
}

// AttendanceSummary 学生考勤汇总
type AttendanceSummary struct {
	Present int     `json:"present"`
	Absent  int     `json:"absent"`
	Late    int     `json:"late"`
	Rate    float64 `json:"rate"`
}

// SummarizeAttendance 统计考勤记录，出勤率 = (present + late) / total * 100
func SummarizeAttendance(records []model.Attendance) AttendanceSummary {
	var s AttendanceSummary
	for _, r := range records {
		switch r.Status {
		case model.AttendancePresent:
			s.Present++
		case model.AttendanceAbsent:
			s.Absent++
		case model.AttendanceLate:
			s.Late++
		}
	}
	if total := s.Present + s.Absent + s.Late; total > 0 {
		s.Rate = Round2(float64(s.Present+s.Late) / float64(total) * 100)
	}
	return s
}
