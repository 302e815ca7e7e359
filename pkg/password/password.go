package password

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// MaxBytes bcrypt 可处理的最大明文字节数
const MaxBytes = 72

// ErrTooLong 明文超过 MaxBytes 字节
var ErrTooLong = errors.New("密码超过 72 字节")

// Hasher bcrypt 密码哈希器，工作因子可配置
type Hasher struct {
	cost int
}

// NewHasher 创建 Hasher，cost 超出 bcrypt 允许范围时回落到默认值
func NewHasher(cost int) *Hasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &Hasher{cost: cost}
}

// Hash 生成带随机盐的哈希，相同明文每次结果不同
func (h *Hasher) Hash(plain string) (string, error) {
	if len(plain) > MaxBytes {
		return "", ErrTooLong
	}
	b, err := bcrypt.GenerateFromPassword([]byte(plain), h.cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Verify 校验明文与哈希是否匹配；哈希格式非法时返回 false
func (h *Hasher) Verify(plain, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}

// Cost 当前工作因子
func (h *Hasher) Cost() int { return h.cost }
