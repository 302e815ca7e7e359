package dto

import (
	"time"

	"github.com/priyanshuchauhan04/academics-analytics/internal/model"
)

// UserResponse 用户信息响应（脱敏）
type UserResponse struct {
	ID         string  `json:"id"`
	Email      string  `json:"email"`
	Name       string  `json:"name"`
	Role       string  `json:"role"`
	StudentID  *string `json:"student_id,omitempty"`
	EmployeeID *string `json:"employee_id,omitempty"`
	CreatedAt  string  `json:"created_at"`
}

// NewUserResponse 由模型构造响应，不包含密码哈希
func NewUserResponse(u *model.User) UserResponse {
	return UserResponse{
		ID:         u.ID,
		Email:      u.Email,
		Name:       u.Name,
		Role:       u.Role,
		StudentID:  u.StudentID,
		EmployeeID: u.EmployeeID,
		CreatedAt:  u.CreatedAt.Format(time.RFC3339),
	}
}

// NewUserResponses 批量构造
func NewUserResponses(users []model.User) []UserResponse {
	list := make([]UserResponse, 0, len(users))
	for i := range users {
		list = append(list, NewUserResponse(&users[i]))
	}
	return list
}
