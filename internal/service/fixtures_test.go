package service

import (
	"context"
	"testing"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/priyanshuchauhan04/academics-analytics/config"
	"github.com/priyanshuchauhan04/academics-analytics/internal/auth"
	"github.com/priyanshuchauhan04/academics-analytics/internal/model"
	"github.com/priyanshuchauhan04/academics-analytics/pkg/jwt"
	"github.com/priyanshuchauhan04/academics-analytics/pkg/password"
)

const testSecret = "test-secret-key-for-unit-testing-2026"

func testConfig() *config.Config {
	return &config.Config{
		Auth:    config.AuthConfig{Mode: config.AuthModeToken, JWTSecret: testSecret, AssertionTTL: auth.DefaultTTL},
		Grading: config.GradingConfig{Scale: config.GradingScaleLinear},
	}
}

func setupTestService(t *testing.T) (*Service, *mocks) {
	t.Helper()
	repo, m := newMockRepository()
	issuer := auth.NewTokenIssuer(jwt.NewManager(testSecret, auth.DefaultTTL))
	svc := NewService(testConfig(), repo, issuer, password.NewHasher(bcrypt.MinCost), zap.NewNop())
	return svc, m
}

func seedUser(t *testing.T, m *mocks, name, role, number string) *model.User {
	t.Helper()
	u := &model.User{
		Email: name + "@school.test",
		Name:  name,
		Role:  role,
	}
	if number != "" {
		u.StudentID = &number
	}
	if err := m.users.Create(context.Background(), u); err != nil {
		t.Fatalf("创建用户失败: %v", err)
	}
	return u
}

func seedCourse(t *testing.T, m *mocks, teacherID, code string, credits int) *model.Course {
	t.Helper()
	c := &model.Course{
		Code:      code,
		Title:     code + " title",
		Credits:   credits,
		TeacherID: teacherID,
		Semester:  "Fall",
		Year:      2024,
	}
	if err := m.courses.Create(context.Background(), c); err != nil {
		t.Fatalf("创建课程失败: %v", err)
	}
	return c
}

func seedEnrollment(t *testing.T, m *mocks, studentID, courseID string) {
	t.Helper()
	e := &model.Enrollment{StudentID: studentID, CourseID: courseID, Semester: "Fall", Year: 2024, Status: model.EnrollmentEnrolled}
	if err := m.enrollments.Create(context.Background(), e); err != nil {
		t.Fatalf("创建选课失败: %v", err)
	}
}

func seedGrade(t *testing.T, m *mocks, studentID, courseID string, marks, maxMarks float64) {
	t.Helper()
	g := &model.Grade{StudentID: studentID, CourseID: courseID, Component: "exam", Marks: marks, MaxMarks: maxMarks}
	if err := m.grades.Create(context.Background(), g); err != nil {
		t.Fatalf("创建成绩失败: %v", err)
	}
}

func identityOf(u *model.User) *auth.Identity {
	return &auth.Identity{UserID: u.ID, Role: u.Role}
}

func nopLogger() *zap.Logger { return zap.NewNop() }
