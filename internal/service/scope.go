package service

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/priyanshuchauhan04/academics-analytics/internal/auth"
	"github.com/priyanshuchauhan04/academics-analytics/internal/model"
	"github.com/priyanshuchauhan04/academics-analytics/internal/repository"
)

// scope 按调用方身份裁剪可见数据
//
//	教师：仅自己教授的课程及其下的选课、成绩、考勤、作业
//	学生：仅本人记录；课程与作业来自本人选课涉及的课程
type scope struct {
	repo *repository.Repository
}

func newScope(repo *repository.Repository) *scope {
	return &scope{repo: repo}
}

// courses 调用方可见的课程
func (s *scope) courses(ctx context.Context, id *auth.Identity) ([]model.Course, error) {
	if id.Role == model.RoleTeacher {
		return s.repo.Course.ListByTeacher(ctx, id.UserID)
	}

	courseIDs, err := s.enrolledCourseIDs(ctx, id.UserID)
	if err != nil {
		return nil, err
	}
	return s.repo.Course.ListByIDs(ctx, courseIDs)
}

// courseIDs 调用方可见课程的 ID 集合
func (s *scope) courseIDs(ctx context.Context, id *auth.Identity) ([]string, error) {
	if id.Role != model.RoleTeacher {
		return s.enrolledCourseIDs(ctx, id.UserID)
	}

	courses, err := s.repo.Course.ListByTeacher(ctx, id.UserID)
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(courses))
	for _, c := range courses {
		ids = append(ids, c.ID)
	}
	return ids, nil
}

func (s *scope) enrolledCourseIDs(ctx context.Context, studentID string) ([]string, error) {
	enrollments, err := s.repo.Enrollment.ListByStudent(ctx, studentID)
	if err != nil {
		return nil, err
	}
	seen := make(map[string]struct{}, len(enrollments))
	ids := make([]string, 0, len(enrollments))
	for _, e := range enrollments {
		if _, ok := seen[e.CourseID]; ok {
			continue
		}
		seen[e.CourseID] = struct{}{}
		ids = append(ids, e.CourseID)
	}
	return ids, nil
}

func (s *scope) enrollments(ctx context.Context, id *auth.Identity) ([]model.Enrollment, error) {
	if id.Role != model.RoleTeacher {
		return s.repo.Enrollment.ListByStudent(ctx, id.UserID)
	}
	ids, err := s.courseIDs(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.repo.Enrollment.ListByCourses(ctx, ids)
}

func (s *scope) grades(ctx context.Context, id *auth.Identity) ([]model.Grade, error) {
	if id.Role != model.RoleTeacher {
		return s.repo.Grade.ListByStudent(ctx, id.UserID)
	}
	ids, err := s.courseIDs(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.repo.Grade.ListByCourses(ctx, ids)
}

func (s *scope) attendance(ctx context.Context, id *auth.Identity) ([]model.Attendance, error) {
	if id.Role != model.RoleTeacher {
		return s.repo.Attendance.ListByStudent(ctx, id.UserID)
	}
	ids, err := s.courseIDs(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.repo.Attendance.ListByCourses(ctx, ids)
}

func (s *scope) assignments(ctx context.Context, id *auth.Identity) ([]model.Assignment, error) {
	ids, err := s.courseIDs(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.repo.Assignment.ListByCourses(ctx, ids)
}

// ownedCourse 查询课程并确认由调用方教授
func (s *scope) ownedCourse(ctx context.Context, id *auth.Identity, courseID string) (*model.Course, error) {
	course, err := s.repo.Course.GetByID(ctx, courseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCourseNotFound
		}
		return nil, err
	}
	if course.TeacherID != id.UserID {
		return nil, ErrCourseNotOwned
	}
	return course, nil
}

// student 查询学生，用户不存在或不是学生时返回 ErrStudentNotFound
func (s *scope) student(ctx context.Context, studentID string) (*model.User, error) {
	user, err := s.repo.User.GetByID(ctx, studentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStudentNotFound
		}
		return nil, err
	}
	if user.Role != model.RoleStudent {
		return nil, ErrStudentNotFound
	}
	return user, nil
}

// nonNil 保证列表序列化为 [] 而不是 null
func nonNil[T any](list []T) []T {
	if list == nil {
		return []T{}
	}
	return list
}
