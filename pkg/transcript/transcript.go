package transcript

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"
)

// Line 成绩单中的一行：左侧课程信息，右侧成绩
type Line struct {
	Left  string
	Right string
}

// Document 成绩单内容
type Document struct {
	Title   string
	Header  []string // 学生信息行
	Lines   []Line
	Summary []string // 页脚汇总（GPA、总学分）
}

const (
	pageBottom = 270.0
	lineHeight = 7.0
)

// Render 将成绩单渲染为 PDF 字节
func Render(doc Document) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(doc.Title, true)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, doc.Title)
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 11)
	for _, h := range doc.Header {
		pdf.Cell(0, 6, h)
		pdf.Ln(6)
	}
	pdf.Ln(4)
	pdf.SetDrawColor(160, 160, 160)
	pdf.Line(10, pdf.GetY(), 200, pdf.GetY())
	pdf.Ln(4)

	for _, l := range doc.Lines {
		if pdf.GetY() > pageBottom {
			pdf.AddPage()
		}
		pdf.CellFormat(140, lineHeight, l.Left, "", 0, "L", false, 0, "")
		pdf.CellFormat(0, lineHeight, l.Right, "", 1, "R", false, 0, "")
	}

	if len(doc.Summary) > 0 {
		pdf.Ln(4)
		pdf.SetFont("Helvetica", "B", 11)
		for _, s := range doc.Summary {
			pdf.Cell(0, 6, s)
			pdf.Ln(6)
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("生成 PDF 失败: %w", err)
	}
	return buf.Bytes(), nil
}
