package service

import (
	"bytes"
	"context"
	"fmt"
	"sort"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/priyanshuchauhan04/academics-analytics/internal/analytics"
	"github.com/priyanshuchauhan04/academics-analytics/internal/auth"
	"github.com/priyanshuchauhan04/academics-analytics/internal/model"
	"github.com/priyanshuchauhan04/academics-analytics/internal/repository"
)

// ExportService 导出业务接口
//
// 导出以 bytes.Buffer 返回，由 Handler 层设置 HTTP 响应头后写入 Response
type ExportService interface {
	// ExportGrades 导出某门课程的成绩表为 Excel
	ExportGrades(ctx context.Context, id *auth.Identity, courseID string) (*bytes.Buffer, string, error)
}

type exportService struct {
	repo   *repository.Repository
	scope  *scope
	logger *zap.Logger
}

// NewExportService 创建 ExportService 实例
func NewExportService(repo *repository.Repository, logger *zap.Logger) ExportService {
	return &exportService{repo: repo, scope: newScope(repo), logger: logger}
}

// ═══════════════════════════════════════════════════════════
// ExportGrades 导出课程成绩表
// ═══════════════════════════════════════════════════════════
//
// 输出格式：
//   - 标题行：课程代码 课程名称 - 学期
//   - 列头：学号 | 姓名 | 邮箱 | 各评分项（按名称排序）| 平均分 | 等级
//   - 每个选课学生一行，未录入的评分项为 "-"

func (s *exportService) ExportGrades(ctx context.Context, id *auth.Identity, courseID string) (*bytes.Buffer, string, error) {
	if err := auth.Authorize(id, model.RoleTeacher); err != nil {
		return nil, "", err
	}

	// 1. 课程归属
	course, err := s.scope.ownedCourse(ctx, id, courseID)
	if err != nil {
		return nil, "", err
	}

	// 2. 选课与成绩
	courseIDs := []string{course.ID}
	enrollments, err := s.repo.Enrollment.ListByCourses(ctx, courseIDs)
	if err != nil {
		s.logger.Error("查询选课失败", zap.Error(err))
		return nil, "", err
	}
	grades, err := s.repo.Grade.ListByCourses(ctx, courseIDs)
	if err != nil {
		s.logger.Error("查询成绩失败", zap.Error(err))
		return nil, "", err
	}

	// 3. 学生：在读学生 + 有成绩的学生
	studentSet := make(map[string]struct{})
	for _, e := range enrollments {
		if e.IsActive() {
			studentSet[e.StudentID] = struct{}{}
		}
	}
	gradesByStudent := make(map[string][]model.Grade)
	componentSet := make(map[string]struct{})
	for _, g := range grades {
		studentSet[g.StudentID] = struct{}{}
		gradesByStudent[g.StudentID] = append(gradesByStudent[g.StudentID], g)
		componentSet[g.Component] = struct{}{}
	}

	studentIDs := make([]string, 0, len(studentSet))
	for sid := range studentSet {
		studentIDs = append(studentIDs, sid)
	}
	students, err := s.repo.User.ListByIDs(ctx, studentIDs)
	if err != nil {
		s.logger.Error("查询学生信息失败", zap.Error(err))
		return nil, "", err
	}
	sort.Slice(students, func(i, j int) bool {
		return studentNumber(&students[i]) < studentNumber(&students[j])
	})

	components := make([]string, 0, len(componentSet))
	for c := range componentSet {
		components = append(components, c)
	}
	sort.Strings(components)

	// 4. 生成 Excel
	f := excelize.NewFile()
	defer f.Close()

	sheetName := "成绩表"
	idx, _ := f.NewSheet(sheetName)
	f.SetActiveSheet(idx)
	f.DeleteSheet("Sheet1")

	lastCol := colName(4 + len(components))

	f.SetColWidth(sheetName, "A", "A", 14)
	f.SetColWidth(sheetName, "B", "B", 18)
	f.SetColWidth(sheetName, "C", "C", 28)
	f.SetColWidth(sheetName, "D", lastCol, 12)

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})

	// 标题行
	f.SetCellValue(sheetName, "A1", fmt.Sprintf("%s %s - %s %d", course.Code, course.Title, course.Semester, course.Year))
	f.MergeCell(sheetName, "A1", cell(lastCol, 1))
	f.SetCellStyle(sheetName, "A1", "A1", headerStyle)

	// 表头
	row := 2
	headers := append([]string{"学号", "姓名", "邮箱"}, components...)
	headers = append(headers, "平均分", "等级")
	for i, h := range headers {
		f.SetCellValue(sheetName, cell(colName(i), row), h)
	}
	f.SetCellStyle(sheetName, cell("A", row), cell(lastCol, row), headerStyle)

	// 数据行
	for _, st := range students {
		row++
		f.SetCellValue(sheetName, cell("A", row), studentNumber(&st))
		f.SetCellValue(sheetName, cell("B", row), st.Name)
		f.SetCellValue(sheetName, cell("C", row), st.Email)

		gs := gradesByStudent[st.ID]
		byComponent := make(map[string]model.Grade, len(gs))
		for _, g := range gs {
			byComponent[g.Component] = g
		}
		for i, comp := range components {
			c := cell(colName(3+i), row)
			if g, ok := byComponent[comp]; ok {
				f.SetCellValue(sheetName, c, fmt.Sprintf("%g/%g", g.Marks, g.MaxMarks))
			} else {
				f.SetCellValue(sheetName, c, "-")
			}
		}

		avgCol := colName(3 + len(components))
		if len(gs) > 0 {
			avg := analytics.CourseAverage(gs, false)
			f.SetCellValue(sheetName, cell(avgCol, row), analytics.Round2(avg))
			f.SetCellValue(sheetName, cell(lastCol, row), analytics.LetterFor(avg))
		} else {
			f.SetCellValue(sheetName, cell(avgCol, row), "-")
			f.SetCellValue(sheetName, cell(lastCol, row), "-")
		}
	}

	// 写入 buffer
	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		s.logger.Error("写入 Excel 失败", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}

	filename := fmt.Sprintf("grades_%s_%s%d.xlsx", course.Code, course.Semester, course.Year)
	return buf, filename, nil
}

// ── 辅助函数 ──

func studentNumber(u *model.User) string {
	if u.StudentID != nil {
		return *u.StudentID
	}
	return u.ID
}

// colName 从 0 开始的列序号转为列名（0 -> A）
func colName(idx int) string {
	name, _ := excelize.ColumnNumberToName(idx + 1)
	return name
}

func cell(col string, row int) string {
	return fmt.Sprintf("%s%d", col, row)
}
