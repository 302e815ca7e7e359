package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/priyanshuchauhan04/academics-analytics/internal/auth"
	"github.com/priyanshuchauhan04/academics-analytics/internal/dto"
	"github.com/priyanshuchauhan04/academics-analytics/internal/model"
)

// ── 课程 ──

func TestCourseCreate_TeacherFromIdentity(t *testing.T) {
	svc, m := setupTestService(t)
	teacher := seedUser(t, m, "t1", model.RoleTeacher, "")

	course, err := svc.Course.Create(context.Background(), identityOf(teacher), &dto.CreateCourseRequest{
		Code:     "cs101",
		Title:    "Intro",
		Credits:  3,
		Schedule: dto.ScheduleRequest{Days: []string{"MON", "WED"}, Time: "10:00-11:30", Location: "Room 101"},
		Semester: "Fall",
		Year:     2024,
	})
	if err != nil {
		t.Fatalf("创建课程失败: %v", err)
	}
	if course.TeacherID != teacher.ID {
		t.Errorf("teacher_id 应取自登录身份，实际 %s", course.TeacherID)
	}
	if course.Code != "CS101" {
		t.Errorf("课程代码应转为大写，实际 %s", course.Code)
	}
	if len(course.Schedule) == 0 {
		t.Error("schedule 应序列化为 JSON")
	}
}

func TestCourseCreate_StudentForbidden(t *testing.T) {
	svc, m := setupTestService(t)
	student := seedUser(t, m, "s1", model.RoleStudent, "S1")

	_, err := svc.Course.Create(context.Background(), identityOf(student), &dto.CreateCourseRequest{Code: "X1", Title: "x", Credits: 1, Semester: "Fall", Year: 2024})
	if !errors.Is(err, auth.ErrForbidden) {
		t.Errorf("期望 ErrForbidden，实际: %v", err)
	}
}

func TestCourseList_Scoped(t *testing.T) {
	svc, m := setupTestService(t)
	t1 := seedUser(t, m, "t1", model.RoleTeacher, "")
	t2 := seedUser(t, m, "t2", model.RoleTeacher, "")
	s1 := seedUser(t, m, "s1", model.RoleStudent, "S1")
	c1 := seedCourse(t, m, t1.ID, "CS101", 3)
	seedCourse(t, m, t1.ID, "CS102", 3)
	c3 := seedCourse(t, m, t2.ID, "MA101", 4)
	seedEnrollment(t, m, s1.ID, c1.ID)
	seedEnrollment(t, m, s1.ID, c3.ID)

	ctx := context.Background()

	teacherCourses, _ := svc.Course.List(ctx, identityOf(t1))
	if len(teacherCourses) != 2 {
		t.Errorf("教师 t1 应看到 2 门课程，实际 %d", len(teacherCourses))
	}
	for _, c := range teacherCourses {
		if c.TeacherID != t1.ID {
			t.Errorf("教师看到了其他教师的课程 %s", c.Code)
		}
	}

	studentCourses, _ := svc.Course.List(ctx, identityOf(s1))
	if len(studentCourses) != 2 {
		t.Errorf("学生应看到选修的 2 门课程，实际 %d", len(studentCourses))
	}

	other := seedUser(t, m, "s2", model.RoleStudent, "S2")
	empty, err := svc.Course.List(ctx, identityOf(other))
	if err != nil || empty == nil || len(empty) != 0 {
		t.Errorf("未选课学生应得到空列表，实际 %v, %v", empty, err)
	}
}

// ── 选课 ──

func TestEnrollmentCreate(t *testing.T) {
	svc, m := setupTestService(t)
	t1 := seedUser(t, m, "t1", model.RoleTeacher, "")
	t2 := seedUser(t, m, "t2", model.RoleTeacher, "")
	s1 := seedUser(t, m, "s1", model.RoleStudent, "S1")
	c1 := seedCourse(t, m, t1.ID, "CS101", 3)
	ctx := context.Background()

	e, err := svc.Enrollment.Create(ctx, identityOf(t1), &dto.CreateEnrollmentRequest{StudentID: s1.ID, CourseID: c1.ID})
	if err != nil {
		t.Fatalf("选课失败: %v", err)
	}
	if e.Semester != "Fall" || e.Year != 2024 || e.Status != model.EnrollmentEnrolled {
		t.Errorf("学期应默认沿用课程: %+v", e)
	}

	tests := []struct {
		name    string
		caller  *model.User
		req     dto.CreateEnrollmentRequest
		wantErr error
	}{
		{"重复选课", t1, dto.CreateEnrollmentRequest{StudentID: s1.ID, CourseID: c1.ID}, ErrEnrollmentExists},
		{"课程不存在", t1, dto.CreateEnrollmentRequest{StudentID: s1.ID, CourseID: "missing"}, ErrCourseNotFound},
		{"非本人课程", t2, dto.CreateEnrollmentRequest{StudentID: s1.ID, CourseID: c1.ID}, ErrCourseNotOwned},
		{"学生不存在", t1, dto.CreateEnrollmentRequest{StudentID: "missing", CourseID: c1.ID}, ErrStudentNotFound},
		{"目标是教师", t1, dto.CreateEnrollmentRequest{StudentID: t2.ID, CourseID: c1.ID}, ErrStudentNotFound},
		{"学生无权选课", s1, dto.CreateEnrollmentRequest{StudentID: s1.ID, CourseID: c1.ID}, auth.ErrForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Enrollment.Create(ctx, identityOf(tt.caller), &tt.req)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("期望 %v，实际 %v", tt.wantErr, err)
			}
		})
	}
}

func TestEnrollmentCreate_ConcurrentExactlyOne(t *testing.T) {
	svc, m := setupTestService(t)
	t1 := seedUser(t, m, "t1", model.RoleTeacher, "")
	s1 := seedUser(t, m, "s1", model.RoleStudent, "S1")
	c1 := seedCourse(t, m, t1.ID, "CS101", 3)

	const n = 20
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		ok        int
		conflicts int
	)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.Enrollment.Create(context.Background(), identityOf(t1), &dto.CreateEnrollmentRequest{StudentID: s1.ID, CourseID: c1.ID})
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				ok++
			case errors.Is(err, ErrEnrollmentExists):
				conflicts++
			default:
				t.Errorf("意外错误: %v", err)
			}
		}()
	}
	wg.Wait()

	if ok != 1 || conflicts != n-1 {
		t.Errorf("期望 1 成功 %d 冲突，实际 %d 成功 %d 冲突", n-1, ok, conflicts)
	}
	list, _ := m.enrollments.ListByStudent(context.Background(), s1.ID)
	if len(list) != 1 {
		t.Errorf("期望恰好 1 条选课记录，实际 %d", len(list))
	}
}

func TestEnrollmentList_Scoped(t *testing.T) {
	svc, m := setupTestService(t)
	t1 := seedUser(t, m, "t1", model.RoleTeacher, "")
	t2 := seedUser(t, m, "t2", model.RoleTeacher, "")
	s1 := seedUser(t, m, "s1", model.RoleStudent, "S1")
	s2 := seedUser(t, m, "s2", model.RoleStudent, "S2")
	c1 := seedCourse(t, m, t1.ID, "CS101", 3)
	c2 := seedCourse(t, m, t2.ID, "MA101", 3)
	seedEnrollment(t, m, s1.ID, c1.ID)
	seedEnrollment(t, m, s2.ID, c2.ID)
	seedEnrollment(t, m, s1.ID, c2.ID)
	ctx := context.Background()

	forT1, _ := svc.Enrollment.List(ctx, identityOf(t1))
	if len(forT1) != 1 || forT1[0].CourseID != c1.ID {
		t.Errorf("教师只应看到自己课程的选课: %+v", forT1)
	}
	forS2, _ := svc.Enrollment.List(ctx, identityOf(s2))
	if len(forS2) != 1 || forS2[0].StudentID != s2.ID {
		t.Errorf("学生只应看到本人选课: %+v", forS2)
	}
}

// ── 成绩 ──

func TestGradeCreate_Range(t *testing.T) {
	svc, m := setupTestService(t)
	t1 := seedUser(t, m, "t1", model.RoleTeacher, "")
	s1 := seedUser(t, m, "s1", model.RoleStudent, "S1")
	c1 := seedCourse(t, m, t1.ID, "CS101", 3)
	ctx := context.Background()

	tests := []struct {
		name     string
		marks    float64
		maxMarks float64
		wantErr  error
	}{
		{"合法", 45, 50, nil},
		{"满分", 50, 50, nil},
		{"零分", 0, 50, nil},
		{"超过满分", 51, 50, ErrInvalidRange},
		{"负分", -1, 50, ErrInvalidRange},
		{"满分为 0", 0, 0, ErrInvalidRange},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Grade.Create(ctx, identityOf(t1), &dto.CreateGradeRequest{
				StudentID: s1.ID, CourseID: c1.ID, Component: "quiz", Marks: tt.marks, MaxMarks: tt.maxMarks,
			})
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("期望 %v，实际 %v", tt.wantErr, err)
			}
		})
	}

	grades, _ := svc.Grade.List(ctx, identityOf(s1))
	if len(grades) != 3 {
		t.Errorf("期望写入 3 条合法成绩，实际 %d", len(grades))
	}
}

// ── 考勤 ──

func TestAttendanceCreate(t *testing.T) {
	svc, m := setupTestService(t)
	t1 := seedUser(t, m, "t1", model.RoleTeacher, "")
	s1 := seedUser(t, m, "s1", model.RoleStudent, "S1")
	c1 := seedCourse(t, m, t1.ID, "CS101", 3)
	ctx := context.Background()
	req := &dto.CreateAttendanceRequest{StudentID: s1.ID, CourseID: c1.ID, Date: "2024-09-02"}

	rec, err := svc.Attendance.Create(ctx, identityOf(t1), req)
	if err != nil {
		t.Fatalf("记录考勤失败: %v", err)
	}
	if rec.Status != model.AttendancePresent {
		t.Errorf("默认状态应为 present，实际 %s", rec.Status)
	}
	if rec.RecordedBy == nil || *rec.RecordedBy != t1.ID {
		t.Error("recorded_by 应为当前教师")
	}

	if _, err := svc.Attendance.Create(ctx, identityOf(t1), req); !errors.Is(err, ErrAttendanceExists) {
		t.Errorf("同日重复考勤期望 ErrAttendanceExists，实际: %v", err)
	}

	bad := *req
	bad.Date = "02/09/2024"
	if _, err := svc.Attendance.Create(ctx, identityOf(t1), &bad); !errors.Is(err, ErrInvalidDate) {
		t.Errorf("期望 ErrInvalidDate，实际: %v", err)
	}
}

// ── 作业 ──

func TestAssignment_CreateAndStudentVisibility(t *testing.T) {
	svc, m := setupTestService(t)
	t1 := seedUser(t, m, "t1", model.RoleTeacher, "")
	s1 := seedUser(t, m, "s1", model.RoleStudent, "S1")
	s2 := seedUser(t, m, "s2", model.RoleStudent, "S2")
	c1 := seedCourse(t, m, t1.ID, "CS101", 3)
	seedEnrollment(t, m, s1.ID, c1.ID)
	ctx := context.Background()

	a, err := svc.Assignment.Create(ctx, identityOf(t1), &dto.CreateAssignmentRequest{
		CourseID: c1.ID, Title: "HW1", DueDate: time.Now().Add(72 * time.Hour), MaxMarks: 10,
	})
	if err != nil {
		t.Fatalf("创建作业失败: %v", err)
	}
	if a.CreatedBy != t1.ID {
		t.Errorf("created_by 应为当前教师，实际 %s", a.CreatedBy)
	}

	if list, _ := svc.Assignment.List(ctx, identityOf(s1)); len(list) != 1 {
		t.Errorf("选课学生应看到 1 个作业，实际 %d", len(list))
	}
	if list, _ := svc.Assignment.List(ctx, identityOf(s2)); len(list) != 0 {
		t.Errorf("未选课学生不应看到作业，实际 %d", len(list))
	}
}

func TestStandaloneConstructors_ScopeByIdentity(t *testing.T) {
	repo, m := newMockRepository()
	t1 := seedUser(t, m, "t1", model.RoleTeacher, "")
	t2 := seedUser(t, m, "t2", model.RoleTeacher, "")
	s1 := seedUser(t, m, "s1", model.RoleStudent, "S1")
	c1 := seedCourse(t, m, t1.ID, "CS101", 3)
	seedCourse(t, m, t2.ID, "MA101", 3)
	ctx := context.Background()

	enrollments := NewEnrollmentService(repo, nopLogger())
	if _, err := enrollments.Create(ctx, identityOf(t1), &dto.CreateEnrollmentRequest{StudentID: s1.ID, CourseID: c1.ID}); err != nil {
		t.Fatalf("独立构造的 EnrollmentService 选课失败: %v", err)
	}

	courses, err := NewCourseService(repo, nopLogger()).List(ctx, identityOf(s1))
	if err != nil {
		t.Fatalf("查询课程失败: %v", err)
	}
	if len(courses) != 1 || courses[0].ID != c1.ID {
		t.Errorf("学生只应看到已选课程: %+v", courses)
	}
}
