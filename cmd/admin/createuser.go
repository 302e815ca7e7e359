package main

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"github.com/priyanshuchauhan04/academics-analytics/internal/model"
	"github.com/priyanshuchauhan04/academics-analytics/pkg/password"
)

var (
	errEmailRequired = errors.New("--email 不能为空")
	errNameRequired  = errors.New("--name 不能为空")
	errInvalidRole   = errors.New("--role 必须为 student 或 teacher")
	errWeakPassword  = errors.New("密码长度需在 6-72 字节之间")
	errUserExists    = errors.New("该邮箱已存在")
)

type createUserOptions struct {
	email      string
	name       string
	role       string
	studentID  string
	employeeID string
}

func newCreateUserCmd(cli *commandLine) *cobra.Command {
	var opts createUserOptions

	cmd := &cobra.Command{
		Use:   "create-user",
		Short: "创建用户，密码从终端读取",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := opts.validate(); err != nil {
				return err
			}
			pwd, err := cli.promptPassword("请输入密码: ")
			if err != nil {
				return err
			}
			user, err := cli.createUser(cmd.Context(), opts, pwd)
			if err != nil {
				return err
			}
			fmt.Fprintf(cli.out, "已创建用户 %s (%s, %s)\n", user.Email, user.Role, user.ID)
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.email, "email", "", "登录邮箱")
	f.StringVar(&opts.name, "name", "", "姓名")
	f.StringVar(&opts.role, "role", model.RoleStudent, "角色：student | teacher")
	f.StringVar(&opts.studentID, "student-id", "", "学号（学生）")
	f.StringVar(&opts.employeeID, "employee-id", "", "工号（教师）")
	return cmd
}

func (o *createUserOptions) validate() error {
	o.email = strings.ToLower(strings.TrimSpace(o.email))
	o.name = strings.TrimSpace(o.name)
	switch {
	case o.email == "":
		return errEmailRequired
	case o.name == "":
		return errNameRequired
	case o.role != model.RoleStudent && o.role != model.RoleTeacher:
		return errInvalidRole
	}
	return nil
}

func (cli *commandLine) createUser(ctx context.Context, opts createUserOptions, pwd string) (*model.User, error) {
	if len(pwd) < 6 || len(pwd) > password.MaxBytes {
		return nil, errWeakPassword
	}

	if _, err := cli.repo.User.GetByEmail(ctx, opts.email); err == nil {
		return nil, errUserExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hash, err := cli.hasher.Hash(pwd)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Email:        opts.email,
		Name:         opts.name,
		Role:         opts.role,
		PasswordHash: hash,
		StudentID:    optional(opts.studentID),
		EmployeeID:   optional(opts.employeeID),
	}
	if err := cli.repo.User.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
