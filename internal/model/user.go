package model

import "time"

// User 用户表，对应 users
type User struct {
	ID           string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Email        string    `gorm:"type:varchar(255);not null"                     json:"email"`
	Name         string    `gorm:"type:varchar(100);not null"                     json:"name"`
	Role         string    `gorm:"type:varchar(20);not null"                      json:"role"`
	PasswordHash string    `gorm:"type:varchar(255);not null"                     json:"-"`
	StudentID    *string   `gorm:"type:varchar(50)"                               json:"student_id,omitempty"`
	EmployeeID   *string   `gorm:"type:varchar(50)"                               json:"employee_id,omitempty"`
	CreatedAt    time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"             json:"created_at"`
	UpdatedAt    time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"             json:"updated_at"`
}

// TableName 指定表名
func (User) TableName() string { return "users" }

// IsTeacher 是否为教师
func (u *User) IsTeacher() bool { return u.Role == RoleTeacher }
