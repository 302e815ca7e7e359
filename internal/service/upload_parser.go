package service

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

// ── 批量导入文件解析 ──
//
// 选课：.csv / .xlsx，列 student_id, course_code|course_id, semester, year
// 成绩：.json（对象数组）/ .csv，列 student_id, course_code|course_id, component, marks, max_marks, weightage
// student_id 可以是学号，也可以是用户 ID

// EnrollmentRow 选课导入的一行
type EnrollmentRow struct {
	Row        int
	Student    string
	CourseID   string
	CourseCode string
	Semester   string
	Year       int
	Err        string // 解析阶段的错误，非空时该行直接拒绝
}

// GradeRow 成绩导入的一行
type GradeRow struct {
	Row        int
	Student    string
	CourseID   string
	CourseCode string
	Component  string
	Marks      float64
	MaxMarks   float64
	Weightage  float64
	Err        string
}

var columnAliases = map[string][]string{
	"student_id":  {"student_id", "student", "学号"},
	"course_id":   {"course_id"},
	"course_code": {"course_code", "code", "课程代码"},
	"semester":    {"semester", "学期"},
	"year":        {"year", "学年"},
	"component":   {"component", "评分项"},
	"marks":       {"marks", "得分"},
	"max_marks":   {"max_marks", "满分"},
	"weightage":   {"weightage", "weight", "权重"},
}

func fileExt(filename string) string {
	return strings.ToLower(filepath.Ext(filename))
}

// ParseEnrollmentFile 解析选课导入文件
func ParseEnrollmentFile(filename string, r io.Reader, maxRows int) ([]EnrollmentRow, error) {
	var table [][]string
	var err error
	switch fileExt(filename) {
	case ".csv":
		table, err = readCSV(r)
	case ".xlsx":
		table, err = readXLSX(r)
	default:
		return nil, ErrUnsupportedFile
	}
	if err != nil {
		return nil, err
	}

	header, body, err := splitTable(table, maxRows)
	if err != nil {
		return nil, err
	}
	if header["student_id"] < 0 || (header["course_code"] < 0 && header["course_id"] < 0) {
		return nil, fmt.Errorf("%w（student_id, course_code）", ErrUploadBadHeader)
	}

	rows := make([]EnrollmentRow, 0, len(body))
	for _, tr := range body {
		rec := tr.fields
		row := EnrollmentRow{
			Row:        tr.num,
			Student:    field(rec, header["student_id"]),
			CourseID:   field(rec, header["course_id"]),
			CourseCode: field(rec, header["course_code"]),
			Semester:   field(rec, header["semester"]),
		}
		if y := field(rec, header["year"]); y != "" {
			year, err := strconv.Atoi(y)
			if err != nil {
				row.Err = fmt.Sprintf("year 不是整数: %q", y)
			}
			row.Year = year
		}
		if row.Err == "" && row.Student == "" {
			row.Err = "缺少 student_id"
		}
		if row.Err == "" && row.CourseID == "" && row.CourseCode == "" {
			row.Err = "缺少 course_code"
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// ParseGradeFile 解析成绩导入文件
func ParseGradeFile(filename string, r io.Reader, maxRows int) ([]GradeRow, error) {
	switch fileExt(filename) {
	case ".json":
		return parseGradeJSON(r, maxRows)
	case ".csv":
		table, err := readCSV(r)
		if err != nil {
			return nil, err
		}
		return parseGradeTable(table, maxRows)
	default:
		return nil, ErrUnsupportedFile
	}
}

func parseGradeTable(table [][]string, maxRows int) ([]GradeRow, error) {
	header, body, err := splitTable(table, maxRows)
	if err != nil {
		return nil, err
	}
	for _, col := range []string{"student_id", "component", "marks", "max_marks"} {
		if header[col] < 0 {
			return nil, fmt.Errorf("%w（缺少 %s）", ErrUploadBadHeader, col)
		}
	}
	if header["course_code"] < 0 && header["course_id"] < 0 {
		return nil, fmt.Errorf("%w（缺少 course_code）", ErrUploadBadHeader)
	}

	rows := make([]GradeRow, 0, len(body))
	for _, tr := range body {
		rec := tr.fields
		row := GradeRow{
			Row:        tr.num,
			Student:    field(rec, header["student_id"]),
			CourseID:   field(rec, header["course_id"]),
			CourseCode: field(rec, header["course_code"]),
			Component:  field(rec, header["component"]),
		}
		var perr error
		row.Marks, perr = parseFloat("marks", field(rec, header["marks"]), true)
		if perr == nil {
			row.MaxMarks, perr = parseFloat("max_marks", field(rec, header["max_marks"]), true)
		}
		if perr == nil {
			row.Weightage, perr = parseFloat("weightage", field(rec, header["weightage"]), false)
		}
		if perr != nil {
			row.Err = perr.Error()
		}
		row.Err = firstNonEmpty(row.Err, row.missing())
		rows = append(rows, row)
	}
	return rows, nil
}

type jsonGradeRow struct {
	StudentID  string   `json:"student_id"`
	CourseID   string   `json:"course_id"`
	CourseCode string   `json:"course_code"`
	Component  string   `json:"component"`
	Marks      *float64 `json:"marks"`
	MaxMarks   *float64 `json:"max_marks"`
	Weightage  float64  `json:"weightage"`
}

func parseGradeJSON(r io.Reader, maxRows int) ([]GradeRow, error) {
	var items []json.RawMessage
	if err := json.NewDecoder(r).Decode(&items); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUploadMalformed, err)
	}
	if len(items) == 0 {
		return nil, ErrEmptyUpload
	}
	if len(items) > maxRows {
		return nil, fmt.Errorf("%w（%d 行）", ErrUploadTooManyRows, maxRows)
	}

	rows := make([]GradeRow, 0, len(items))
	for i, raw := range items {
		row := GradeRow{Row: i + 1}
		var item jsonGradeRow
		if err := json.Unmarshal(raw, &item); err != nil {
			row.Err = "无法解析该行: " + err.Error()
			rows = append(rows, row)
			continue
		}

		row.Student = strings.TrimSpace(item.StudentID)
		row.CourseID = strings.TrimSpace(item.CourseID)
		row.CourseCode = strings.TrimSpace(item.CourseCode)
		row.Component = strings.TrimSpace(item.Component)
		row.Weightage = item.Weightage
		switch {
		case item.Marks == nil:
			row.Err = "缺少 marks"
		case item.MaxMarks == nil:
			row.Err = "缺少 max_marks"
		default:
			row.Marks, row.MaxMarks = *item.Marks, *item.MaxMarks
		}
		row.Err = firstNonEmpty(row.Err, row.missing())
		rows = append(rows, row)
	}
	return rows, nil
}

func (r *GradeRow) missing() string {
	switch {
	case r.Student == "":
		return "缺少 student_id"
	case r.CourseID == "" && r.CourseCode == "":
		return "缺少 course_code"
	case r.Component == "":
		return "缺少 component"
	}
	return ""
}

// ── 表格读取 ──

func readCSV(r io.Reader) ([][]string, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true
	table, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUploadMalformed, err)
	}
	return table, nil
}

func readXLSX(r io.Reader) ([][]string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUploadMalformed, err)
	}
	defer f.Close()

	rows, err := f.GetRows(f.GetSheetName(0))
	if err != nil {
		return nil, fmt.Errorf("%w: 读取工作表失败: %v", ErrUploadMalformed, err)
	}
	return rows, nil
}

// tableRow 数据行及其行号（从 1 开始，不含表头，空行也计数）
type tableRow struct {
	num    int
	fields []string
}

// splitTable 解析表头并去掉全空行，保留原始行号
func splitTable(table [][]string, maxRows int) (map[string]int, []tableRow, error) {
	if len(table) < 2 {
		return nil, nil, ErrEmptyUpload
	}

	header := headerIndex(table[0])
	body := make([]tableRow, 0, len(table)-1)
	for i, rec := range table[1:] {
		if isBlank(rec) {
			continue
		}
		body = append(body, tableRow{num: i + 1, fields: rec})
	}

	if len(body) == 0 {
		return nil, nil, ErrEmptyUpload
	}
	if len(body) > maxRows {
		return nil, nil, fmt.Errorf("%w（%d 行）", ErrUploadTooManyRows, maxRows)
	}
	return header, body, nil
}

// headerIndex 列名 -> 列索引，未出现的列为 -1
func headerIndex(header []string) map[string]int {
	idx := make(map[string]int, len(columnAliases))
	for col := range columnAliases {
		idx[col] = -1
	}
	for i, h := range header {
		name := strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))
		for col, aliases := range columnAliases {
			for _, a := range aliases {
				if name == a {
					idx[col] = i
				}
			}
		}
	}
	return idx
}

func field(rec []string, idx int) string {
	if idx < 0 || idx >= len(rec) {
		return ""
	}
	return strings.TrimSpace(rec[idx])
}

func isBlank(rec []string) bool {
	for _, v := range rec {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

func parseFloat(name, v string, required bool) (float64, error) {
	if v == "" {
		if required {
			return 0, fmt.Errorf("缺少 %s", name)
		}
		return 0, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || math.IsInf(f, 0) || math.IsNaN(f) {
		return 0, errors.New(name + " 不是数字: " + strconv.Quote(v))
	}
	return f, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
