package validator

import (
	"errors"
	"fmt"
	"time"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/xiebiao/library/pkg/isbn"
	"github.com/xiebiao/library/pkg/response"
)

// Register 向gin的binding引擎注册自定义校验器
// 设计说明：
// 1. isbn: ISBN-10/ISBN-13格式（允许连字符分隔）
// 2. pubyear: 出版年份不能晚于当前年份
// 在main启动时调用一次
func Register() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return errors.New("binding引擎不是validator.Validate")
	}

	if err := v.RegisterValidation("isbn", validateISBN); err != nil {
		return err
	}
	if err := v.RegisterValidation("pubyear", validatePubYear); err != nil {
		return err
	}

	return nil
}

// validateISBN 校验ISBN格式
func validateISBN(fl validator.FieldLevel) bool {
	return isbn.IsValid(fl.Field().String())
}

// validatePubYear 校验出版年份不在未来
func validatePubYear(fl validator.FieldLevel) bool {
	year := fl.Field().Int()
	return year <= int64(time.Now().Year())
}

// FieldErrors 将binding错误转换为完整的字段错误列表
// 学习要点：
// 1. validator.ValidationErrors包含所有失败的字段，不是只有第一个
// 2. 非校验类错误（如JSON语法错误）退化为单条错误
func FieldErrors(err error) []response.FieldError {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []response.FieldError{{Field: "body", Message: err.Error()}}
	}

	out := make([]response.FieldError, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, response.FieldError{
			Field:   fe.Field(),
			Message: messageFor(fe),
		})
	}
	return out
}

// messageFor 按校验tag生成提示信息
func messageFor(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is mandatory", fe.Field())
	case "email":
		return "Invalid email format"
	case "isbn":
		return "Invalid ISBN format"
	case "pubyear":
		return "Publication year must not be in the future"
	case "max":
		return fmt.Sprintf("%s is too long (max %s)", fe.Field(), fe.Param())
	case "min":
		return fmt.Sprintf("%s is too short (min %s)", fe.Field(), fe.Param())
	default:
		return fmt.Sprintf("%s failed on '%s'", fe.Field(), fe.Tag())
	}
}
