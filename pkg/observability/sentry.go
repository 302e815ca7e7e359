package observability

import (
	"time"

	"github.com/getsentry/sentry-go"
)

// InitSentry 初始化 Sentry，dsn 为空时返回空操作的 flush 函数
func InitSentry(dsn, env, release string) (func(), error) {
	if dsn == "" {
		return func() {}, nil
	}
	if err := sentry.Init(sentry.ClientOptions{
		Dsn:         dsn,
		Environment: env,
		Release:     release,
	}); err != nil {
		return func() {}, err
	}
	return func() { sentry.Flush(2 * time.Second) }, nil
}

// CaptureErr 上报错误，未初始化时为空操作
func CaptureErr(err error) {
	if err != nil {
		sentry.CaptureException(err)
	}
}

// CapturePanic 上报 panic 值
func CapturePanic(v interface{}) {
	if v != nil {
		sentry.CurrentHub().Recover(v)
	}
}
