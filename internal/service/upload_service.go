package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/priyanshuchauhan04/academics-analytics/internal/auth"
	"github.com/priyanshuchauhan04/academics-analytics/internal/dto"
	"github.com/priyanshuchauhan04/academics-analytics/internal/model"
	"github.com/priyanshuchauhan04/academics-analytics/internal/repository"
	pkgerrors "github.com/priyanshuchauhan04/academics-analytics/pkg/errors"
	"github.com/priyanshuchauhan04/academics-analytics/pkg/metrics"
)

const defaultMaxUploadRows = 5000

// UploadService 批量导入业务接口
//
// 每一行独立写入：单行失败不会中断整个批次，返回的 count 为实际写入的行数。
// 写入成功的记录都带有上传人与上传时间。
type UploadService interface {
	UploadEnrollments(ctx context.Context, id *auth.Identity, filename string, r io.Reader) (*dto.UploadResponse, error)
	UploadGrades(ctx context.Context, id *auth.Identity, filename string, r io.Reader) (*dto.UploadResponse, error)
}

type uploadService struct {
	repo    *repository.Repository
	scope   *scope
	maxRows int
	logger  *zap.Logger
}

// NewUploadService 创建 UploadService 实例，maxRows 非正时使用默认上限
func NewUploadService(repo *repository.Repository, maxRows int, logger *zap.Logger) UploadService {
	if maxRows <= 0 {
		maxRows = defaultMaxUploadRows
	}
	return &uploadService{repo: repo, scope: newScope(repo), maxRows: maxRows, logger: logger}
}

func (s *uploadService) UploadEnrollments(ctx context.Context, id *auth.Identity, filename string, r io.Reader) (*dto.UploadResponse, error) {
	if err := auth.Authorize(id, model.RoleTeacher); err != nil {
		return nil, err
	}

	rows, err := ParseEnrollmentFile(filename, r, s.maxRows)
	if err != nil {
		return nil, err
	}

	res := newResolver(s.scope, id)
	resp := &dto.UploadResponse{Total: len(rows)}
	meta := uploadMeta(id.UserID)

	for _, row := range rows {
		if row.Err != "" {
			resp.Reject(row.Row, row.Err)
			continue
		}

		student, err := res.student(ctx, row.Student)
		if err != nil {
			resp.Reject(row.Row, s.reason(err))
			continue
		}
		course, err := res.course(ctx, row.CourseID, row.CourseCode)
		if err != nil {
			resp.Reject(row.Row, s.reason(err))
			continue
		}

		enrollment := &model.Enrollment{
			StudentID:  student.ID,
			CourseID:   course.ID,
			Semester:   firstNonEmpty(row.Semester, course.Semester),
			Year:       row.Year,
			Status:     model.EnrollmentEnrolled,
			UploadMeta: meta,
		}
		if enrollment.Year == 0 {
			enrollment.Year = course.Year
		}

		if err := s.repo.Enrollment.Create(ctx, enrollment); err != nil {
			if errors.Is(err, pkgerrors.ErrDuplicateKey) {
				err = ErrEnrollmentExists
			}
			resp.Reject(row.Row, s.reason(err))
			continue
		}
		resp.Count++
	}

	resp.Message = fmt.Sprintf("成功导入 %d 条选课记录", resp.Count)
	s.finish(ctx, id, model.AuditEnrollmentUpload, "enrollments", filename, resp)
	return resp, nil
}

func (s *uploadService) UploadGrades(ctx context.Context, id *auth.Identity, filename string, r io.Reader) (*dto.UploadResponse, error) {
	if err := auth.Authorize(id, model.RoleTeacher); err != nil {
		return nil, err
	}

	rows, err := ParseGradeFile(filename, r, s.maxRows)
	if err != nil {
		return nil, err
	}

	res := newResolver(s.scope, id)
	resp := &dto.UploadResponse{Total: len(rows)}
	meta := uploadMeta(id.UserID)

	for _, row := range rows {
		if row.Err != "" {
			resp.Reject(row.Row, row.Err)
			continue
		}

		grade := &model.Grade{
			Component:  row.Component,
			Marks:      row.Marks,
			MaxMarks:   row.MaxMarks,
			Weightage:  row.Weightage,
			UploadMeta: meta,
		}
		if !grade.InRange() {
			resp.Reject(row.Row, ErrInvalidRange.Error())
			continue
		}
		if !grade.WeightageInRange() {
			resp.Reject(row.Row, ErrInvalidWeightage.Error())
			continue
		}

		student, err := res.student(ctx, row.Student)
		if err != nil {
			resp.Reject(row.Row, s.reason(err))
			continue
		}
		course, err := res.course(ctx, row.CourseID, row.CourseCode)
		if err != nil {
			resp.Reject(row.Row, s.reason(err))
			continue
		}
		grade.StudentID = student.ID
		grade.CourseID = course.ID

		if err := s.repo.Grade.Create(ctx, grade); err != nil {
			resp.Reject(row.Row, s.reason(err))
			continue
		}
		resp.Count++
	}

	resp.Message = fmt.Sprintf("成功导入 %d 条成绩记录", resp.Count)
	s.finish(ctx, id, model.AuditGradesUpload, "grades", filename, resp)
	return resp, nil
}

// finish 记录审计日志与指标
func (s *uploadService) finish(ctx context.Context, id *auth.Identity, action, kind, filename string, resp *dto.UploadResponse) {
	resp.Failed = len(resp.Errors)
	metrics.ObserveIngest(kind, resp.Count, resp.Failed)
	recordAudit(ctx, s.repo.AuditLog, s.logger, action, id.UserID, map[string]interface{}{
		"filename":     filename,
		"record_count": resp.Count,
		"failed":       resp.Failed,
	})
	s.logger.Info("批量导入完成",
		zap.String("kind", kind),
		zap.String("user_id", id.UserID),
		zap.String("filename", filename),
		zap.Int("total", resp.Total),
		zap.Int("count", resp.Count),
		zap.Int("failed", resp.Failed),
	)
}

// reason 业务错误直接展示，其余错误记录日志后返回通用描述
func (s *uploadService) reason(err error) string {
	for _, known := range []error{
		ErrStudentNotFound, ErrCourseNotFound, ErrCourseNotOwned,
		ErrEnrollmentExists, ErrInvalidRange, ErrInvalidWeightage,
	} {
		if errors.Is(err, known) {
			return known.Error()
		}
	}
	s.logger.Error("导入行写入失败", zap.Error(err))
	return "写入失败"
}

func uploadMeta(uploaderID string) model.UploadMeta {
	now := time.Now().UTC()
	return model.UploadMeta{UploadedBy: &uploaderID, UploadedAt: &now}
}

// ── 行引用解析（批次内缓存） ──

type resolver struct {
	scope    *scope
	identity *auth.Identity
	students map[string]*model.User
	courses  map[string]*model.Course
}

func newResolver(sc *scope, id *auth.Identity) *resolver {
	return &resolver{
		scope:    sc,
		identity: id,
		students: make(map[string]*model.User),
		courses:  make(map[string]*model.Course),
	}
}

// student ref 为 UUID 时按用户 ID 查询，否则按学号查询
func (r *resolver) student(ctx context.Context, ref string) (*model.User, error) {
	if u, ok := r.students[ref]; ok {
		return u, nil
	}

	var (
		user *model.User
		err  error
	)
	if _, perr := uuid.Parse(ref); perr == nil {
		user, err = r.scope.student(ctx, ref)
	} else {
		user, err = r.scope.repo.User.GetByStudentNumber(ctx, ref)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			err = ErrStudentNotFound
		}
	}
	if err != nil {
		return nil, err
	}

	r.students[ref] = user
	return user, nil
}

// course 优先按课程 ID 查询，否则在调用方名下按课程代码查询
func (r *resolver) course(ctx context.Context, courseID, code string) (*model.Course, error) {
	key := "id:" + courseID
	if courseID == "" {
		key = "code:" + code
	}
	if c, ok := r.courses[key]; ok {
		return c, nil
	}

	var (
		course *model.Course
		err    error
	)
	if courseID != "" {
		if _, perr := uuid.Parse(courseID); perr != nil {
			return nil, ErrCourseNotFound
		}
		course, err = r.scope.ownedCourse(ctx, r.identity, courseID)
	} else {
		course, err = r.scope.repo.Course.GetByTeacherAndCode(ctx, r.identity.UserID, strings.ToUpper(code))
		if errors.Is(err, gorm.ErrRecordNotFound) {
			err = ErrCourseNotFound
		}
	}
	if err != nil {
		return nil, err
	}

	r.courses[key] = course
	return course, nil
}
