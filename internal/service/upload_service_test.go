package service

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/priyanshuchauhan04/academics-analytics/internal/auth"
	"github.com/priyanshuchauhan04/academics-analytics/internal/model"
)

func TestUploadEnrollments_CSV(t *testing.T) {
	svc, m := setupTestService(t)
	t1 := seedUser(t, m, "t1", model.RoleTeacher, "")
	t2 := seedUser(t, m, "t2", model.RoleTeacher, "")
	s1 := seedUser(t, m, "s1", model.RoleStudent, "2024001")
	seedUser(t, m, "s2", model.RoleStudent, "2024002")
	seedCourse(t, m, t1.ID, "CS101", 3)
	seedCourse(t, m, t2.ID, "MA101", 3)

	csv := strings.Join([]string{
		"student_id,course_code,semester,year",
		"2024001,CS101,Fall,2024",
		s1.ID + ",cs101,Fall,2024", // 同一学生重复选课
		"2024002,CS101,,",
		"9999999,CS101,Fall,2024", // 学号不存在
		"2024002,MA101,Fall,2024", // 其他教师的课程
		"2024002,CS101,Fall,abc",  // year 非法
		",,,",                     // 空行被忽略
	}, "\n")

	resp, err := svc.Upload.UploadEnrollments(context.Background(), identityOf(t1), "enrollments.csv", strings.NewReader(csv))
	if err != nil {
		t.Fatalf("导入失败: %v", err)
	}
	if resp.Total != 6 {
		t.Errorf("期望 total=6，实际 %d", resp.Total)
	}
	if resp.Count != 2 {
		t.Errorf("期望写入 2 行，实际 %d (errors=%+v)", resp.Count, resp.Errors)
	}
	if resp.Failed != 4 || len(resp.Errors) != 4 {
		t.Errorf("期望 4 行失败，实际 %d", resp.Failed)
	}
	if resp.Errors[0].Row != 2 || resp.Errors[0].Reason != ErrEnrollmentExists.Error() {
		t.Errorf("第 2 行应因重复选课失败: %+v", resp.Errors[0])
	}

	list, _ := m.enrollments.ListByStudent(context.Background(), s1.ID)
	if len(list) != 1 {
		t.Fatalf("期望 s1 有 1 条选课，实际 %d", len(list))
	}
	if list[0].UploadedBy == nil || *list[0].UploadedBy != t1.ID || list[0].UploadedAt == nil {
		t.Error("导入的记录应带有上传人与上传时间")
	}

	actions := m.audit.actions()
	if len(actions) != 1 || actions[0] != model.AuditEnrollmentUpload {
		t.Errorf("期望审计 [enrollment_upload]，实际 %v", actions)
	}
}

func TestUploadEnrollments_XLSX(t *testing.T) {
	svc, m := setupTestService(t)
	t1 := seedUser(t, m, "t1", model.RoleTeacher, "")
	seedUser(t, m, "s1", model.RoleStudent, "2024001")
	c1 := seedCourse(t, m, t1.ID, "CS101", 3)

	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	_ = f.SetSheetRow(sheet, "A1", &[]interface{}{"学号", "课程代码", "学期", "学年"})
	_ = f.SetSheetRow(sheet, "A2", &[]interface{}{"2024001", "CS101", "Spring", 2025})
	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		t.Fatalf("生成测试 Excel 失败: %v", err)
	}

	resp, err := svc.Upload.UploadEnrollments(context.Background(), identityOf(t1), "list.XLSX", &buf)
	if err != nil {
		t.Fatalf("导入失败: %v", err)
	}
	if resp.Count != 1 {
		t.Fatalf("期望写入 1 行，实际 %d (%+v)", resp.Count, resp.Errors)
	}

	list, _ := m.enrollments.ListByCourses(context.Background(), []string{c1.ID})
	if list[0].Semester != "Spring" || list[0].Year != 2025 {
		t.Errorf("学期应取自文件: %+v", list[0])
	}
}

func TestUploadGrades_JSON(t *testing.T) {
	svc, m := setupTestService(t)
	t1 := seedUser(t, m, "t1", model.RoleTeacher, "")
	s1 := seedUser(t, m, "s1", model.RoleStudent, "2024001")
	c1 := seedCourse(t, m, t1.ID, "CS101", 3)

	body := `[
		{"student_id": "2024001", "course_code": "CS101", "component": "midterm", "marks": 42, "max_marks": 50, "weightage": 30},
		{"student_id": "` + s1.ID + `", "course_id": "` + c1.ID + `", "component": "final", "marks": 88, "max_marks": 100},
		{"student_id": "2024001", "course_code": "CS101", "component": "quiz", "marks": 12, "max_marks": 10},
		{"student_id": "2024001", "course_code": "CS101", "component": "lab"},
		"not-an-object"
	]`

	resp, err := svc.Upload.UploadGrades(context.Background(), identityOf(t1), "grades.json", strings.NewReader(body))
	if err != nil {
		t.Fatalf("导入失败: %v", err)
	}
	if resp.Total != 5 || resp.Count != 2 || resp.Failed != 3 {
		t.Errorf("期望 total=5 count=2 failed=3，实际 %d/%d/%d (%+v)", resp.Total, resp.Count, resp.Failed, resp.Errors)
	}
	if resp.Errors[0].Row != 3 || resp.Errors[0].Reason != ErrInvalidRange.Error() {
		t.Errorf("第 3 行应因超出满分失败: %+v", resp.Errors[0])
	}

	grades, _ := m.grades.ListByStudent(context.Background(), s1.ID)
	for _, g := range grades {
		if g.UploadedBy == nil || g.UploadedAt == nil {
			t.Error("导入的成绩应带有上传人与上传时间")
		}
	}
}

func TestUploadGrades_CSV(t *testing.T) {
	svc, m := setupTestService(t)
	t1 := seedUser(t, m, "t1", model.RoleTeacher, "")
	seedUser(t, m, "s1", model.RoleStudent, "2024001")
	seedCourse(t, m, t1.ID, "CS101", 3)

	csv := "student_id,course_code,component,marks,max_marks,weightage\n" +
		"2024001,CS101,midterm,40,50,30\n" +
		"2024001,CS101,final,x,100,70\n"

	resp, err := svc.Upload.UploadGrades(context.Background(), identityOf(t1), "grades.csv", strings.NewReader(csv))
	if err != nil {
		t.Fatalf("导入失败: %v", err)
	}
	if resp.Count != 1 || resp.Failed != 1 {
		t.Errorf("期望 count=1 failed=1，实际 %d/%d", resp.Count, resp.Failed)
	}
}

func TestUpload_FileErrors(t *testing.T) {
	svc, m := setupTestService(t)
	t1 := seedUser(t, m, "t1", model.RoleTeacher, "")
	s1 := seedUser(t, m, "s1", model.RoleStudent, "2024001")
	ctx := context.Background()

	tests := []struct {
		name    string
		upload  func() error
		wantErr error
	}{
		{"选课不支持 json", func() error {
			_, err := svc.Upload.UploadEnrollments(ctx, identityOf(t1), "e.json", strings.NewReader("[]"))
			return err
		}, ErrUnsupportedFile},
		{"成绩不支持 xlsx", func() error {
			_, err := svc.Upload.UploadGrades(ctx, identityOf(t1), "g.xlsx", strings.NewReader(""))
			return err
		}, ErrUnsupportedFile},
		{"只有表头", func() error {
			_, err := svc.Upload.UploadEnrollments(ctx, identityOf(t1), "e.csv", strings.NewReader("student_id,course_code\n"))
			return err
		}, ErrEmptyUpload},
		{"缺少必要列", func() error {
			_, err := svc.Upload.UploadEnrollments(ctx, identityOf(t1), "e.csv", strings.NewReader("name,email\na,b\n"))
			return err
		}, ErrUploadBadHeader},
		{"JSON 不是数组", func() error {
			_, err := svc.Upload.UploadGrades(ctx, identityOf(t1), "g.json", strings.NewReader(`{"a":1}`))
			return err
		}, ErrUploadMalformed},
		{"空 JSON 数组", func() error {
			_, err := svc.Upload.UploadGrades(ctx, identityOf(t1), "g.json", strings.NewReader(`[]`))
			return err
		}, ErrEmptyUpload},
		{"学生无权导入", func() error {
			_, err := svc.Upload.UploadGrades(ctx, identityOf(s1), "g.json", strings.NewReader(`[]`))
			return err
		}, auth.ErrForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.upload(); !errors.Is(err, tt.wantErr) {
				t.Errorf("期望 %v，实际 %v", tt.wantErr, err)
			}
		})
	}
}

func TestUpload_TooManyRows(t *testing.T) {
	repo, m := newMockRepository()
	t1 := seedUser(t, m, "t1", model.RoleTeacher, "")
	svc := NewUploadService(repo, 2, nopLogger())

	csv := "student_id,course_code\na,CS1\nb,CS1\nc,CS1\n"
	_, err := svc.UploadEnrollments(context.Background(), identityOf(t1), "e.csv", strings.NewReader(csv))
	if !errors.Is(err, ErrUploadTooManyRows) {
		t.Errorf("期望 ErrUploadTooManyRows，实际 %v", err)
	}
}

func TestUploadGrades_RejectsNonFiniteAndWeightage(t *testing.T) {
	tests := []struct {
		name   string
		row    string
		reason string
	}{
		{"满分为 Inf", "2024001,CS101,mid,50,Inf,30", `max_marks 不是数字: "Inf"`},
		{"得分为 NaN", "2024001,CS101,mid,NaN,100,30", `marks 不是数字: "NaN"`},
		{"得分为 -Inf", "2024001,CS101,mid,-Inf,100,30", `marks 不是数字: "-Inf"`},
		{"权重为负", "2024001,CS101,mid,40,50,-5", ErrInvalidWeightage.Error()},
		{"权重超过 100", "2024001,CS101,mid,40,50,120", ErrInvalidWeightage.Error()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, m := setupTestService(t)
			t1 := seedUser(t, m, "t1", model.RoleTeacher, "")
			seedUser(t, m, "s1", model.RoleStudent, "2024001")
			seedCourse(t, m, t1.ID, "CS101", 3)

			csv := "student_id,course_code,component,marks,max_marks,weightage\n" + tt.row + "\n"
			resp, err := svc.Upload.UploadGrades(context.Background(), identityOf(t1), "grades.csv", strings.NewReader(csv))
			if err != nil {
				t.Fatalf("导入失败: %v", err)
			}
			if resp.Count != 0 || len(resp.Errors) != 1 {
				t.Fatalf("期望该行被拒绝，实际 count=%d errors=%+v", resp.Count, resp.Errors)
			}
			if resp.Errors[0].Row != 1 || resp.Errors[0].Reason != tt.reason {
				t.Errorf("期望第 1 行 %q，实际 %+v", tt.reason, resp.Errors[0])
			}
		})
	}
}

func TestUploadGrades_JSONWeightageOutOfRange(t *testing.T) {
	svc, m := setupTestService(t)
	t1 := seedUser(t, m, "t1", model.RoleTeacher, "")
	seedUser(t, m, "s1", model.RoleStudent, "2024001")
	seedCourse(t, m, t1.ID, "CS101", 3)

	body := `[{"student_id": "2024001", "course_code": "CS101", "component": "mid", "marks": 40, "max_marks": 50, "weightage": -1}]`
	resp, err := svc.Upload.UploadGrades(context.Background(), identityOf(t1), "grades.json", strings.NewReader(body))
	if err != nil {
		t.Fatalf("导入失败: %v", err)
	}
	if resp.Count != 0 || len(resp.Errors) != 1 || resp.Errors[0].Reason != ErrInvalidWeightage.Error() {
		t.Errorf("负权重应被拒绝: count=%d errors=%+v", resp.Count, resp.Errors)
	}
}

func TestUpload_RowNumbersCountBlankRows(t *testing.T) {
	svc, m := setupTestService(t)
	t1 := seedUser(t, m, "t1", model.RoleTeacher, "")
	seedUser(t, m, "s1", model.RoleStudent, "2024001")
	seedCourse(t, m, t1.ID, "CS101", 3)

	csv := "student_id,course_code\n" +
		"2024001,CS101\n" +
		",\n" +
		"2024003,\n"

	resp, err := svc.Upload.UploadEnrollments(context.Background(), identityOf(t1), "e.csv", strings.NewReader(csv))
	if err != nil {
		t.Fatalf("导入失败: %v", err)
	}
	if resp.Total != 2 || resp.Count != 1 {
		t.Errorf("期望 total=2 count=1，实际 %d/%d", resp.Total, resp.Count)
	}
	if len(resp.Errors) != 1 || resp.Errors[0].Row != 3 || resp.Errors[0].Reason != "缺少 course_code" {
		t.Errorf("空行之后的错误应报告原始行号 3: %+v", resp.Errors)
	}
}
