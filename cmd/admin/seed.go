package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/priyanshuchauhan04/academics-analytics/internal/model"
	pkgerrors "github.com/priyanshuchauhan04/academics-analytics/pkg/errors"
)

// ── 演示数据 ──

type seedUser struct {
	email, name, role, number string
}

type seedCourse struct {
	code, title string
	credits     int
	teacher     string // 教师邮箱
	days        []string
	time        string
	location    string
}

type seedEnrollment struct {
	student, course string
	midterm, final  float64 // 百分制
}

const (
	seedSemester = "Fall"
	seedYear     = 2024
)

var (
	seedUsers = []seedUser{
		{"wang.li@school.edu", "王立", model.RoleTeacher, "T1001"},
		{"zhao.min@school.edu", "赵敏", model.RoleTeacher, "T1002"},
		{"zhang.san@school.edu", "张三", model.RoleStudent, "2024001"},
		{"li.si@school.edu", "李四", model.RoleStudent, "2024002"},
		{"wang.wu@school.edu", "王五", model.RoleStudent, "2024003"},
	}

	seedCourses = []seedCourse{
		{"CS101", "数据结构", 4, "wang.li@school.edu", []string{"MON", "WED"}, "09:00-10:30", "A201"},
		{"CS102", "操作系统", 3, "wang.li@school.edu", []string{"TUE", "THU"}, "14:00-15:30", "A305"},
		{"MA101", "高等数学", 5, "zhao.min@school.edu", []string{"MON", "TUE", "FRI"}, "08:00-09:30", "B101"},
		{"PH101", "大学物理", 3, "zhao.min@school.edu", []string{"WED", "FRI"}, "10:00-11:30", "C210"},
	}

	seedEnrollments = []seedEnrollment{
		{"zhang.san@school.edu", "CS101", 88, 92},
		{"zhang.san@school.edu", "MA101", 76, 81},
		{"zhang.san@school.edu", "PH101", 69, 74},
		{"li.si@school.edu", "CS101", 72, 65},
		{"li.si@school.edu", "CS102", 91, 95},
		{"li.si@school.edu", "MA101", 58, 62},
		{"wang.wu@school.edu", "CS102", 45, 55},
		{"wang.wu@school.edu", "MA101", 83, 87},
		{"wang.wu@school.edu", "PH101", 97, 94},
	}

	// 每条选课记录三次考勤，状态依次取自该序列
	seedAttendanceStatus = []string{model.AttendancePresent, model.AttendancePresent, model.AttendanceLate, model.AttendanceAbsent}
)

// seedStats 本次写入的记录数
type seedStats struct {
	Users, Courses, Enrollments, Grades, Assignments, Attendance int
}

func newSeedCmd(cli *commandLine) *cobra.Command {
	var pwd string

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "写入演示数据（可重复执行）",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			stats, err := cli.seed(cmd.Context(), pwd)
			if err != nil {
				return err
			}
			fmt.Fprintf(cli.out, "演示数据写入完成: 用户 %d, 课程 %d, 选课 %d, 成绩 %d, 作业 %d, 考勤 %d\n",
				stats.Users, stats.Courses, stats.Enrollments, stats.Grades, stats.Assignments, stats.Attendance)
			return nil
		},
	}
	cmd.Flags().StringVar(&pwd, "password", "password123", "演示账号的统一密码")
	return cmd
}

// seed 按邮箱和课程代码去重；成绩、作业、考勤只在课程本次新建时写入
func (cli *commandLine) seed(ctx context.Context, pwd string) (*seedStats, error) {
	stats := &seedStats{}
	hash, err := cli.hasher.Hash(pwd)
	if err != nil {
		return nil, err
	}

	users := make(map[string]*model.User, len(seedUsers))
	for _, su := range seedUsers {
		u, created, err := cli.ensureUser(ctx, su, hash)
		if err != nil {
			return nil, fmt.Errorf("写入用户 %s 失败: %w", su.email, err)
		}
		if created {
			stats.Users++
		}
		users[su.email] = u
	}

	courses := make(map[string]*model.Course, len(seedCourses))
	fresh := make(map[string]bool, len(seedCourses))
	for _, sc := range seedCourses {
		c, created, err := cli.ensureCourse(ctx, sc, users[sc.teacher])
		if err != nil {
			return nil, fmt.Errorf("写入课程 %s 失败: %w", sc.code, err)
		}
		if created {
			stats.Courses++
			fresh[sc.code] = true
			if err := cli.repo.Assignment.Create(ctx, &model.Assignment{
				CourseID:    c.ID,
				Title:       c.Title + " 课程作业一",
				Description: "演示作业",
				DueDate:     time.Date(seedYear, 10, 15, 23, 59, 0, 0, time.UTC),
				MaxMarks:    100,
				Weightage:   20,
				CreatedBy:   c.TeacherID,
			}); err != nil {
				return nil, err
			}
			stats.Assignments++
		}
		courses[sc.code] = c
	}

	for i, se := range seedEnrollments {
		student, course := users[se.student], courses[se.course]
		err := cli.repo.Enrollment.Create(ctx, &model.Enrollment{
			StudentID: student.ID,
			CourseID:  course.ID,
			Semester:  course.Semester,
			Year:      course.Year,
			Status:    model.EnrollmentEnrolled,
		})
		switch {
		case err == nil:
			stats.Enrollments++
		case errors.Is(err, pkgerrors.ErrDuplicateKey):
		default:
			return nil, fmt.Errorf("写入选课失败: %w", err)
		}

		if !fresh[se.course] {
			continue
		}
		n, err := cli.seedRecords(ctx, i, student, course, se)
		if err != nil {
			return nil, err
		}
		stats.Grades += n.Grades
		stats.Attendance += n.Attendance
	}

	cli.logger.Info("演示数据写入完成",
		zap.Int("users", stats.Users),
		zap.Int("courses", stats.Courses),
		zap.Int("enrollments", stats.Enrollments),
	)
	return stats, nil
}

func (cli *commandLine) ensureUser(ctx context.Context, su seedUser, hash string) (*model.User, bool, error) {
	u, err := cli.repo.User.GetByEmail(ctx, su.email)
	if err == nil {
		return u, false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, err
	}

	number := su.number
	u = &model.User{Email: su.email, Name: su.name, Role: su.role, PasswordHash: hash}
	if su.role == model.RoleStudent {
		u.StudentID = &number
	} else {
		u.EmployeeID = &number
	}
	if err := cli.repo.User.Create(ctx, u); err != nil {
		return nil, false, err
	}
	return u, true, nil
}

func (cli *commandLine) ensureCourse(ctx context.Context, sc seedCourse, teacher *model.User) (*model.Course, bool, error) {
	c, err := cli.repo.Course.GetByTeacherAndCode(ctx, teacher.ID, sc.code)
	if err == nil {
		return c, false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, err
	}

	schedule, err := json.Marshal(model.CourseSchedule{Days: sc.days, Time: sc.time, Location: sc.location})
	if err != nil {
		return nil, false, err
	}
	c = &model.Course{
		Code:      sc.code,
		Title:     sc.title,
		Credits:   sc.credits,
		TeacherID: teacher.ID,
		Schedule:  datatypes.JSON(schedule),
		Semester:  seedSemester,
		Year:      seedYear,
	}
	if err := cli.repo.Course.Create(ctx, c); err != nil {
		return nil, false, err
	}
	return c, true, nil
}

// seedRecords 写入期中/期末成绩与三次考勤
func (cli *commandLine) seedRecords(ctx context.Context, idx int, student *model.User, course *model.Course, se seedEnrollment) (*seedStats, error) {
	n := &seedStats{}
	teacherID := course.TeacherID

	for _, g := range []struct {
		component string
		marks     float64
		weight    float64
	}{
		{"期中", se.midterm, 40},
		{"期末", se.final, 60},
	} {
		if err := cli.repo.Grade.Create(ctx, &model.Grade{
			StudentID: student.ID,
			CourseID:  course.ID,
			Component: g.component,
			Marks:     g.marks,
			MaxMarks:  100,
			Weightage: g.weight,
		}); err != nil {
			return nil, fmt.Errorf("写入成绩失败: %w", err)
		}
		n.Grades++
	}

	start := time.Date(seedYear, 9, 2, 0, 0, 0, 0, time.UTC)
	for week := 0; week < 3; week++ {
		err := cli.repo.Attendance.Create(ctx, &model.Attendance{
			StudentID:  student.ID,
			CourseID:   course.ID,
			Date:       start.AddDate(0, 0, 7*week),
			Status:     seedAttendanceStatus[(idx+week)%len(seedAttendanceStatus)],
			RecordedBy: &teacherID,
		})
		switch {
		case err == nil:
			n.Attendance++
		case errors.Is(err, pkgerrors.ErrDuplicateKey):
		default:
			return nil, fmt.Errorf("写入考勤失败: %w", err)
		}
	}
	return n, nil
}
