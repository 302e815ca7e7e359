// Package analytics 成绩聚合：GPA/CGPA 与教师课程统计。
//
// 所有函数均为纯函数：给定相同输入得到相同输出，不访问存储，空输入返回零值。
package analytics

import (
	"math"
	"sort"

	"github.com/priyanshuchauhan04/academics-analytics/internal/model"
)

// Scale 课程平均分到绩点的换算方式
type Scale string

const (
	// ScaleLinear points = max(0, (avg-50)/10)
	ScaleLinear Scale = "linear"
	// ScaleLetter 先映射为字母等级，再查表（A+=4.0 … F=0.0）
	ScaleLetter Scale = "letter"
)

// Options 聚合选项
type Options struct {
	Scale    Scale
	Weighted bool // true 时课程平均分按 weightage 加权
}

// CourseResult 单门课程的聚合结果
type CourseResult struct {
	CourseID   string  `json:"course_id"`
	Code       string  `json:"code"`
	Title      string  `json:"title"`
	Credits    int     `json:"credits"`
	Semester   string  `json:"semester"`
	Year       int     `json:"year"`
	Components int     `json:"components"`
	Average    float64 `json:"average"`
	Letter     string  `json:"letter"`
	Points     float64 `json:"points"`
}

// TermResult 单个学期的 GPA
type TermResult struct {
	Semester     string  `json:"semester"`
	Year         int     `json:"year"`
	GPA          float64 `json:"gpa"`
	TotalCredits int     `json:"total_credits"`
}

// GPAResult 学生绩点聚合结果
// GPA 为全部已评分课程的累计值（即 CGPA），保留全精度；展示时使用 Round2
type GPAResult struct {
	GPA          float64
	TotalCredits int
	Courses      []CourseResult
	Terms        []TermResult
}

// ComputeGPA 计算学生绩点
//
//  1. 按课程分组成绩；课程不在 courses 中的成绩被忽略
//  2. 课程平均分 = mean(marks/max_marks*100)，Weighted 时按 weightage 加权
//  3. 按 Scale 换算绩点
//  4. gpa = Σ(points*credits) / Σcredits，Σcredits 为 0 时 gpa = 0
func ComputeGPA(grades []model.Grade, courses []model.Course, opts Options) GPAResult {
	courseByID := make(map[string]model.Course, len(courses))
	for _, c := range courses {
		courseByID[c.ID] = c
	}

	byCourse := make(map[string][]model.Grade)
	for _, g := range grades {
		if _, ok := courseByID[g.CourseID]; !ok {
			continue
		}
		byCourse[g.CourseID] = append(byCourse[g.CourseID], g)
	}

	results := make([]CourseResult, 0, len(byCourse))
	for courseID, gs := range byCourse {
		c := courseByID[courseID]
		avg := CourseAverage(gs, opts.Weighted)
		results = append(results, CourseResult{
			CourseID:   c.ID,
			Code:       c.Code,
			Title:      c.Title,
			Credits:    c.Credits,
			Semester:   c.Semester,
			Year:       c.Year,
			Components: len(gs),
			Average:    avg,
			Letter:     LetterFor(avg),
			Points:     Points(avg, opts.Scale),
		})
	}
	sort.Slice(results, func(i, j int) bool {
		if results[i].Code != results[j].Code {
			return results[i].Code < results[j].Code
		}
		return results[i].CourseID < results[j].CourseID
	})

	gpa, credits := weightedPoints(results)

	return GPAResult{
		GPA:          gpa,
		TotalCredits: credits,
		Courses:      results,
		Terms:        termBreakdown(results),
	}
}

// CourseAverage 课程平均百分比
// weighted 为 true 且权重和大于 0 时返回 Σ(pct*w)/Σw，否则返回算术平均
func CourseAverage(grades []model.Grade, weighted bool) float64 {
	if len(grades) == 0 {
		return 0
	}

	var sum, wsum, wtotal float64
	for i := range grades {
		pct := grades[i].Percentage()
		sum += pct
		if grades[i].Weightage > 0 {
			wsum += pct * grades[i].Weightage
			wtotal += grades[i].Weightage
		}
	}

	if weighted && wtotal > 0 {
		return wsum / wtotal
	}
	return sum / float64(len(grades))
}

// Points 将课程平均分换算为绩点
func Points(avg float64, scale Scale) float64 {
	if scale == ScaleLetter {
		return letterPoints[LetterFor(avg)]
	}
	return math.Max(0, (avg-50)/10)
}

// Round2 四舍五入到两位小数（仅用于展示）
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func weightedPoints(results []CourseResult) (float64, int) {
	var points float64
	var credits int
	for _, r := range results {
		if r.Credits <= 0 {
			continue
		}
		points += r.Points * float64(r.Credits)
		credits += r.Credits
	}
	if credits == 0 {
		return 0, 0
	}
	return points / float64(credits), credits
}

func termBreakdown(results []CourseResult) []TermResult {
	type termKey struct {
		semester string
		year     int
	}

	grouped := make(map[termKey][]CourseResult)
	for _, r := range results {
		k := termKey{r.Semester, r.Year}
		grouped[k] = append(grouped[k], r)
	}

	terms := make([]TermResult, 0, len(grouped))
	for k, rs := range grouped {
		gpa, credits := weightedPoints(rs)
		terms = append(terms, TermResult{
			Semester:     k.semester,
			Year:         k.year,
			GPA:          Round2(gpa),
			TotalCredits: credits,
		})
	}
	sort.Slice(terms, func(i, j int) bool {
		if terms[i].Year != terms[j].Year {
			return terms[i].Year < terms[j].Year
		}
		return terms[i].Semester < terms[j].Semester
	})
	return terms
}
