package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/priyanshuchauhan04/academics-analytics/internal/analytics"
	"github.com/priyanshuchauhan04/academics-analytics/internal/auth"
	"github.com/priyanshuchauhan04/academics-analytics/internal/model"
	"github.com/priyanshuchauhan04/academics-analytics/internal/repository"
	"github.com/priyanshuchauhan04/academics-analytics/pkg/transcript"
)

// TranscriptService 成绩单业务接口
type TranscriptService interface {
	// Generate 生成学生本人的 PDF 成绩单，返回 PDF 内容与建议文件名
	Generate(ctx context.Context, id *auth.Identity) ([]byte, string, error)
}

type transcriptService struct {
	repo   *repository.Repository
	scope  *scope
	opts   analytics.Options
	now    func() time.Time
	logger *zap.Logger
}

// NewTranscriptService 创建 TranscriptService 实例
func NewTranscriptService(repo *repository.Repository, opts analytics.Options, logger *zap.Logger) TranscriptService {
	return &transcriptService{repo: repo, scope: newScope(repo), opts: opts, now: time.Now, logger: logger}
}

func (s *transcriptService) Generate(ctx context.Context, id *auth.Identity) ([]byte, string, error) {
	if err := auth.Authorize(id, model.RoleStudent); err != nil {
		return nil, "", err
	}

	user, err := s.repo.User.GetByID(ctx, id.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", ErrUserNotFound
		}
		return nil, "", err
	}

	courses, err := s.scope.courses(ctx, id)
	if err != nil {
		return nil, "", err
	}
	grades, err := s.scope.grades(ctx, id)
	if err != nil {
		return nil, "", err
	}

	result := analytics.ComputeGPA(grades, courses, s.opts)

	studentNo := "N/A"
	if user.StudentID != nil {
		studentNo = *user.StudentID
	}

	doc := transcript.Document{
		Title: "Academic Transcript",
		Header: []string{
			"Student: " + user.Name,
			"Student ID: " + studentNo,
			"Generated: " + s.now().Format("2006-01-02"),
		},
	}
	for _, c := range result.Courses {
		doc.Lines = append(doc.Lines, transcript.Line{
			Left:  fmt.Sprintf("%s - %s (%s %d, %d cr)", c.Code, c.Title, c.Semester, c.Year, c.Credits),
			Right: fmt.Sprintf("%s  %.2f%%", c.Letter, analytics.Round2(c.Average)),
		})
	}
	for _, t := range result.Terms {
		doc.Summary = append(doc.Summary, fmt.Sprintf("%s %d GPA: %.2f (%d credits)", t.Semester, t.Year, t.GPA, t.TotalCredits))
	}
	doc.Summary = append(doc.Summary,
		fmt.Sprintf("Cumulative GPA: %.2f", analytics.Round2(result.GPA)),
		fmt.Sprintf("Total Credits: %d", result.TotalCredits),
	)

	pdf, err := transcript.Render(doc)
	if err != nil {
		s.logger.Error("生成成绩单失败", zap.String("user_id", id.UserID), zap.Error(err))
		return nil, "", ErrTranscriptGenerateFail
	}

	return pdf, "transcript.pdf", nil
}
