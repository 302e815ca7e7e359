package errors

import "errors"

// ErrDuplicateKey 唯一约束冲突：记录已存在（邮箱、有效选课、同日考勤等）
var ErrDuplicateKey = errors.New("记录已存在")
