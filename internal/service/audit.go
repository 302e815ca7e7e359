package service

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"
	"gorm.io/datatypes"

	"github.com/priyanshuchauhan04/academics-analytics/internal/model"
	"github.com/priyanshuchauhan04/academics-analytics/internal/repository"
)

// recordAudit 追加审计日志，写入失败只记录日志，不影响主流程
func recordAudit(ctx context.Context, repo repository.AuditLogRepository, logger *zap.Logger, action, userID string, extra map[string]interface{}) {
	entry := &model.AuditLog{Action: action, UserID: userID}
	if len(extra) > 0 {
		b, err := json.Marshal(extra)
		if err == nil {
			entry.Extra = datatypes.JSON(b)
		}
	}

	if err := repo.Create(ctx, entry); err != nil {
		logger.Warn("写入审计日志失败",
			zap.String("action", action),
			zap.String("user_id", userID),
			zap.Error(err),
		)
	}
}
