package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/priyanshuchauhan04/academics-analytics/internal/analytics"
	"github.com/priyanshuchauhan04/academics-analytics/internal/auth"
	"github.com/priyanshuchauhan04/academics-analytics/internal/dto"
	"github.com/priyanshuchauhan04/academics-analytics/internal/model"
	"github.com/priyanshuchauhan04/academics-analytics/internal/repository"
)

// DashboardService 仪表盘业务接口
type DashboardService interface {
	Student(ctx context.Context, id *auth.Identity) (*dto.StudentDashboardResponse, error)
	Teacher(ctx context.Context, id *auth.Identity) (*dto.TeacherDashboardResponse, error)
}

type dashboardService struct {
	repo   *repository.Repository
	scope  *scope
	opts   analytics.Options
	logger *zap.Logger
}

// NewDashboardService 创建 DashboardService 实例
func NewDashboardService(repo *repository.Repository, opts analytics.Options, logger *zap.Logger) DashboardService {
	return &dashboardService{repo: repo, scope: newScope(repo), opts: opts, logger: logger}
}

func (s *dashboardService) Student(ctx context.Context, id *auth.Identity) (*dto.StudentDashboardResponse, error) {
	if err := auth.Authorize(id, model.RoleStudent); err != nil {
		return nil, err
	}

	user, err := s.user(ctx, id.UserID)
	if err != nil {
		return nil, err
	}

	data, err := loadStudentRecords(ctx, s.scope, id)
	if err != nil {
		s.logger.Error("加载学生仪表盘数据失败", zap.String("user_id", id.UserID), zap.Error(err))
		return nil, err
	}

	assignments, err := s.scope.assignments(ctx, id)
	if err != nil {
		s.logger.Error("查询作业列表失败", zap.String("user_id", id.UserID), zap.Error(err))
		return nil, err
	}

	gpa := analytics.ComputeGPA(data.grades, data.courses, s.opts)

	return &dto.StudentDashboardResponse{
		User:              dto.NewUserResponse(user),
		Courses:           nonNil(data.courses),
		Enrollments:       nonNil(data.enrollments),
		Grades:            nonNil(data.grades),
		Attendance:        nonNil(data.attendance),
		Assignments:       nonNil(assignments),
		GPA:               analytics.Round2(gpa.GPA),
		TotalCredits:      gpa.TotalCredits,
		CourseGrades:      roundCourseResults(gpa.Courses),
		Terms:             gpa.Terms,
		AttendanceSummary: analytics.SummarizeAttendance(data.attendance),
	}, nil
}

func (s *dashboardService) Teacher(ctx context.Context, id *auth.Identity) (*dto.TeacherDashboardResponse, error) {
	if err := auth.Authorize(id, model.RoleTeacher); err != nil {
		return nil, err
	}

	user, err := s.user(ctx, id.UserID)
	if err != nil {
		return nil, err
	}

	courses, err := s.repo.Course.ListByTeacher(ctx, id.UserID)
	if err != nil {
		s.logger.Error("查询教师课程失败", zap.String("user_id", id.UserID), zap.Error(err))
		return nil, err
	}
	courseIDs := make([]string, 0, len(courses))
	for _, c := range courses {
		courseIDs = append(courseIDs, c.ID)
	}

	enrollments, err := s.repo.Enrollment.ListByCourses(ctx, courseIDs)
	if err != nil {
		return nil, err
	}
	grades, err := s.repo.Grade.ListByCourses(ctx, courseIDs)
	if err != nil {
		return nil, err
	}
	attendance, err := s.repo.Attendance.ListByCourses(ctx, courseIDs)
	if err != nil {
		return nil, err
	}

	stats := analytics.ComputeTeacherAnalytics(courses, enrollments, grades, attendance)

	students, err := s.repo.User.ListByIDs(ctx, stats.StudentIDs)
	if err != nil {
		s.logger.Error("查询学生信息失败", zap.Error(err))
		return nil, err
	}

	return &dto.TeacherDashboardResponse{
		User:          dto.NewUserResponse(user),
		Courses:       nonNil(courses),
		Enrollments:   nonNil(enrollments),
		Students:      dto.NewUserResponses(students),
		Grades:        nonNil(grades),
		Attendance:    nonNil(attendance),
		TotalStudents: stats.TotalStudents,
		TotalCourses:  stats.TotalCourses,
		CourseStats:   stats.Courses,
	}, nil
}

func (s *dashboardService) user(ctx context.Context, userID string) (*model.User, error) {
	user, err := s.repo.User.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// studentRecords 学生本人的课程、选课、成绩与考勤
type studentRecords struct {
	courses     []model.Course
	enrollments []model.Enrollment
	grades      []model.Grade
	attendance  []model.Attendance
}

func loadStudentRecords(ctx context.Context, sc *scope, id *auth.Identity) (*studentRecords, error) {
	var (
		data studentRecords
		err  error
	)
	if data.enrollments, err = sc.enrollments(ctx, id); err != nil {
		return nil, err
	}
	if data.courses, err = sc.courses(ctx, id); err != nil {
		return nil, err
	}
	if data.grades, err = sc.grades(ctx, id); err != nil {
		return nil, err
	}
	if data.attendance, err = sc.attendance(ctx, id); err != nil {
		return nil, err
	}
	return &data, nil
}

// roundCourseResults 展示用：平均分与绩点保留两位小数
func roundCourseResults(results []analytics.CourseResult) []analytics.CourseResult {
	out := make([]analytics.CourseResult, len(results))
	for i, r := range results {
		r.Average = analytics.Round2(r.Average)
		r.Points = analytics.Round2(r.Points)
		out[i] = r
	}
	return out
}
