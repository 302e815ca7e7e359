package service

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/priyanshuchauhan04/academics-analytics/internal/model"
	"github.com/priyanshuchauhan04/academics-analytics/internal/repository"
	pkgerrors "github.com/priyanshuchauhan04/academics-analytics/pkg/errors"
)

// 内存实现的 Repository，唯一约束与数据库索引保持一致

// ── Mock UserRepository ──

type mockUserRepo struct {
	mu    sync.Mutex
	users map[string]*model.User
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[string]*model.User)}
}

func (m *mockUserRepo) Create(_ context.Context, user *model.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if strings.EqualFold(u.Email, user.Email) {
			return fmt.Errorf("%w: uq_users_email", pkgerrors.ErrDuplicateKey)
		}
	}
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	user.CreatedAt = time.Now()
	m.users[user.ID] = user
	return nil
}

func (m *mockUserRepo) GetByID(_ context.Context, id string) (*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if u, ok := m.users[id]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) GetByEmail(_ context.Context, email string) (*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if strings.EqualFold(u.Email, email) {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) GetByStudentNumber(_ context.Context, number string) (*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Role == model.RoleStudent && u.StudentID != nil && *u.StudentID == number {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) ListByIDs(_ context.Context, ids []string) ([]model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	result := make([]model.User, 0, len(ids))
	for _, id := range ids {
		if u, ok := m.users[id]; ok {
			result = append(result, *u)
		}
	}
	return result, nil
}

// ── Mock CourseRepository ──

type mockCourseRepo struct {
	mu      sync.Mutex
	courses map[string]*model.Course
}

func newMockCourseRepo() *mockCourseRepo {
	return &mockCourseRepo{courses: make(map[string]*model.Course)}
}

func (m *mockCourseRepo) Create(_ context.Context, course *model.Course) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if course.ID == "" {
		course.ID = uuid.NewString()
	}
	m.courses[course.ID] = course
	return nil
}

func (m *mockCourseRepo) GetByID(_ context.Context, id string) (*model.Course, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if c, ok := m.courses[id]; ok {
		return c, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockCourseRepo) GetByTeacherAndCode(_ context.Context, teacherID, code string) (*model.Course, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, c := range m.courses {
		if c.TeacherID == teacherID && c.Code == code {
			return c, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockCourseRepo) ListByTeacher(_ context.Context, teacherID string) ([]model.Course, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var result []model.Course
	for _, c := range m.courses {
		if c.TeacherID == teacherID {
			result = append(result, *c)
		}
	}
	return result, nil
}

func (m *mockCourseRepo) ListByIDs(_ context.Context, ids []string) ([]model.Course, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	result := make([]model.Course, 0, len(ids))
	for _, id := range ids {
		if c, ok := m.courses[id]; ok {
			result = append(result, *c)
		}
	}
	return result, nil
}

// ── Mock EnrollmentRepository ──

type mockEnrollmentRepo struct {
	mu   sync.Mutex
	list []model.Enrollment
}

func newMockEnrollmentRepo() *mockEnrollmentRepo {
	return &mockEnrollmentRepo{}
}

// Create 模拟部分唯一索引 uq_enrollments_active
func (m *mockEnrollmentRepo) Create(_ context.Context, e *model.Enrollment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if e.IsActive() {
		for i := range m.list {
			ex := &m.list[i]
			if ex.StudentID == e.StudentID && ex.CourseID == e.CourseID && ex.IsActive() {
				return fmt.Errorf("%w: uq_enrollments_active", pkgerrors.ErrDuplicateKey)
			}
		}
	}
	e.ID = uuid.NewString()
	e.EnrolledAt = time.Now()
	m.list = append(m.list, *e)
	return nil
}

func (m *mockEnrollmentRepo) ListByStudent(_ context.Context, studentID string) ([]model.Enrollment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var result []model.Enrollment
	for _, e := range m.list {
		if e.StudentID == studentID {
			result = append(result, e)
		}
	}
	return result, nil
}

func (m *mockEnrollmentRepo) ListByCourses(_ context.Context, courseIDs []string) ([]model.Enrollment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	set := toSet(courseIDs)
	var result []model.Enrollment
	for _, e := range m.list {
		if _, ok := set[e.CourseID]; ok {
			result = append(result, e)
		}
	}
	return result, nil
}

// ── Mock GradeRepository ──

type mockGradeRepo struct {
	mu   sync.Mutex
	list []model.Grade
}

func newMockGradeRepo() *mockGradeRepo {
	return &mockGradeRepo{}
}

func (m *mockGradeRepo) Create(_ context.Context, g *model.Grade) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	g.ID = uuid.NewString()
	m.list = append(m.list, *g)
	return nil
}

func (m *mockGradeRepo) ListByStudent(_ context.Context, studentID string) ([]model.Grade, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var result []model.Grade
	for _, g := range m.list {
		if g.StudentID == studentID {
			result = append(result, g)
		}
	}
	return result, nil
}

func (m *mockGradeRepo) ListByCourses(_ context.Context, courseIDs []string) ([]model.Grade, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	set := toSet(courseIDs)
	var result []model.Grade
	for _, g := range m.list {
		if _, ok := set[g.CourseID]; ok {
			result = append(result, g)
		}
	}
	return result, nil
}

// ── Mock AttendanceRepository ──

type mockAttendanceRepo struct {
	mu   sync.Mutex
	list []model.Attendance
}

func newMockAttendanceRepo() *mockAttendanceRepo {
	return &mockAttendanceRepo{}
}

// Create 模拟唯一索引 uq_attendance_day
func (m *mockAttendanceRepo) Create(_ context.Context, a *model.Attendance) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, ex := range m.list {
		if ex.StudentID == a.StudentID && ex.CourseID == a.CourseID && ex.Date.Equal(a.Date) {
			return fmt.Errorf("%w: uq_attendance_day", pkgerrors.ErrDuplicateKey)
		}
	}
	a.ID = uuid.NewString()
	m.list = append(m.list, *a)
	return nil
}

func (m *mockAttendanceRepo) ListByStudent(_ context.Context, studentID string) ([]model.Attendance, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var result []model.Attendance
	for _, a := range m.list {
		if a.StudentID == studentID {
			result = append(result, a)
		}
	}
	return result, nil
}

func (m *mockAttendanceRepo) ListByCourses(_ context.Context, courseIDs []string) ([]model.Attendance, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	set := toSet(courseIDs)
	var result []model.Attendance
	for _, a := range m.list {
		if _, ok := set[a.CourseID]; ok {
			result = append(result, a)
		}
	}
	return result, nil
}

// ── Mock AssignmentRepository ──

type mockAssignmentRepo struct {
	mu   sync.Mutex
	list []model.Assignment
}

func newMockAssignmentRepo() *mockAssignmentRepo {
	return &mockAssignmentRepo{}
}

func (m *mockAssignmentRepo) Create(_ context.Context, a *model.Assignment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	a.ID = uuid.NewString()
	m.list = append(m.list, *a)
	return nil
}

func (m *mockAssignmentRepo) ListByCourses(_ context.Context, courseIDs []string) ([]model.Assignment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	set := toSet(courseIDs)
	var result []model.Assignment
	for _, a := range m.list {
		if _, ok := set[a.CourseID]; ok {
			result = append(result, a)
		}
	}
	return result, nil
}

// ── Mock AuditLogRepository ──

type mockAuditLogRepo struct {
	mu   sync.Mutex
	list []model.AuditLog
}

func newMockAuditLogRepo() *mockAuditLogRepo {
	return &mockAuditLogRepo{}
}

func (m *mockAuditLogRepo) Create(_ context.Context, l *model.AuditLog) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	l.ID = uuid.NewString()
	m.list = append(m.list, *l)
	return nil
}

func (m *mockAuditLogRepo) ListByUser(_ context.Context, userID string, limit int) ([]model.AuditLog, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var result []model.AuditLog
	for _, l := range m.list {
		if l.UserID == userID {
			result = append(result, l)
		}
	}
	if limit > 0 && len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

func (m *mockAuditLogRepo) actions() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, 0, len(m.list))
	for _, l := range m.list {
		out = append(out, l.Action)
	}
	return out
}

// ── 测试辅助 ──

func toSet(ids []string) map[string]struct{} {
	set := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}

type mocks struct {
	users       *mockUserRepo
	courses     *mockCourseRepo
	enrollments *mockEnrollmentRepo
	grades      *mockGradeRepo
	attendance  *mockAttendanceRepo
	assignments *mockAssignmentRepo
	audit       *mockAuditLogRepo
}

func newMockRepository() (*repository.Repository, *mocks) {
	m := &mocks{
		users:       newMockUserRepo(),
		courses:     newMockCourseRepo(),
		enrollments: newMockEnrollmentRepo(),
		grades:      newMockGradeRepo(),
		attendance:  newMockAttendanceRepo(),
		assignments: newMockAssignmentRepo(),
		audit:       newMockAuditLogRepo(),
	}
	repo := &repository.Repository{
		User:       m.users,
		Course:     m.courses,
		Enrollment: m.enrollments,
		Grade:      m.grades,
		Attendance: m.attendance,
		Assignment: m.assignments,
		AuditLog:   m.audit,
	}
	return repo, m
}
