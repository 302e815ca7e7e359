package transcript

import (
	"bytes"
	"fmt"
	"testing"
)

func TestRender(t *testing.T) {
	doc := Document{
		Title:  "Academic Transcript",
		Header: []string{"Student: Alice Johnson", "Student ID: STU2024001"},
		Lines: []Line{
			{Left: "CS101 - Introduction to Computer Science", Right: "85.00% (3.50)"},
		},
		Summary: []string{"GPA: 3.50", "Total credits: 4"},
	}

	out, err := Render(doc)
	if err != nil {
		t.Fatalf("Render 失败: %v", err)
	}
	if !bytes.HasPrefix(out, []byte("%PDF-")) {
		t.Error("输出应为 PDF 文件")
	}
}

func TestRender_ManyLines(t *testing.T) {
	doc := Document{Title: "Academic Transcript"}
	for i := 0; i < 120; i++ {
		doc.Lines = append(doc.Lines, Line{Left: fmt.Sprintf("C%03d", i), Right: "A"})
	}

	out, err := Render(doc)
	if err != nil {
		t.Fatalf("Render 失败: %v", err)
	}
	if !bytes.HasPrefix(out, []byte("%PDF-")) {
		t.Error("输出应为 PDF 文件")
	}
}
