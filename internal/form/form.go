// Package form 校验用户输入并映射为实体字段。校验是纯函数，不访问存储；
// 持久化由调用方在附加作者、时间等派生字段后单独执行。
package form

import (
	"errors"
	"reflect"
	"sort"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

// ValidationError 按字段聚合的错误信息
type ValidationError struct {
	Fields map[string][]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+strings.Join(e.Fields[k], "; "))
	}
	return "validation failed: " + strings.Join(parts, ", ")
}

// Add 追加字段错误
func (e *ValidationError) Add(field, msg string) {
	if e.Fields == nil {
		e.Fields = map[string][]string{}
	}
	e.Fields[field] = append(e.Fields[field], msg)
}

// Get 返回字段的第一条错误，模板中使用
func (e *ValidationError) Get(field string) string {
	if e == nil || len(e.Fields[field]) == 0 {
		return ""
	}
	return e.Fields[field][0]
}

func (e *ValidationError) empty() bool { return e == nil || len(e.Fields) == 0 }

// AsValidation 判断 err 是否为 *ValidationError
func AsValidation(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func validatorInstance() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(func(f reflect.StructField) string {
			name := strings.SplitN(f.Tag.Get("form"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
	})
	return validate
}

var messages = map[string]string{
	"required": "Обязательное поле.",
	"max":      "Слишком длинное значение.",
	"numeric":  "Выберите корректный вариант.",
	"min":      "Слишком короткое значение.",
	"email":    "Введите правильный адрес электронной почты.",
}

// check 运行结构体标签校验并转换为 ValidationError
func check(v interface{}) *ValidationError {
	err := validatorInstance().Struct(v)
	if err == nil {
		return nil
	}
	ve := &ValidationError{}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		ve.Add("__all__", err.Error())
		return ve
	}
	for _, fe := range fieldErrs {
		msg, ok := messages[fe.Tag()]
		if !ok {
			msg = "Некорректное значение."
		}
		ve.Add(fe.Field(), msg)
	}
	return ve
}
