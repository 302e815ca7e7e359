package router

import (
	"fmt"
	"regexp"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// 课程代码：字母开头，2-20 位字母、数字、- 或 _
var courseCodePattern = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_-]{1,19}$`)

var (
	registerOnce sync.Once
	registerErr  error

	// bindingEngine 返回 gin 绑定使用的校验引擎，测试可替换
	bindingEngine = func() interface{} { return binding.Validator.Engine() }
)

// registerValidators 配置 gin 绑定引擎：拒绝未知 JSON 字段，注册自定义校验标签
// 只执行一次，首次的错误在之后每次调用时都会返回
func registerValidators() error {
	registerOnce.Do(func() {
		binding.EnableDecoderDisallowUnknownFields = true

		engine := bindingEngine()
		v, ok := engine.(*validator.Validate)
		if !ok {
			registerErr = fmt.Errorf("绑定校验引擎类型不支持: %T", engine)
			return
		}
		registerErr = v.RegisterValidation("course_code", validCourseCode)
	})
	return registerErr
}

func validCourseCode(fl validator.FieldLevel) bool {
	return courseCodePattern.MatchString(fl.Field().String())
}
