package handler

import (
	"errors"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/jamaicasolina/ClassSync/internal/service"
)

var registerOnce sync.Once

// RegisterValidators 注册自定义绑定校验：weekday（周一至周六）、clock（HH:MM 或 HH:MM:SS）
// 须在注册路由前调用
func RegisterValidators() error {
	var err error
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			err = errors.New("gin validator engine is not validator/v10")
			return
		}
		if err = v.RegisterValidation("weekday", func(fl validator.FieldLevel) bool {
			_, e := service.NormalizeWeekday(fl.Field().String())
			return e == nil
		}); err != nil {
			return
		}
		err = v.RegisterValidation("clock", func(fl validator.FieldLevel) bool {
			_, e := service.NormalizeClock(fl.Field().String())
			return e == nil
		})
	})
	return err
}

// bindErrorMessage 将绑定错误转为面向客户端的提示
func bindErrorMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return "Invalid request body"
	}
	for _, fe := range verrs {
		switch fe.Tag() {
		case "weekday":
			return service.ErrInvalidWeekday.Error()
		case "clock":
			return service.ErrInvalidTime.Error()
		}
	}
	if verrs[0].Tag() == "required" {
		return "Missing required fields"
	}
	return "Invalid value for " + verrs[0].Field()
}
