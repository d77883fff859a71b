package receipt

import (
	"errors"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

// Issue describes one validation failure. Validation is advisory: the generator
// still produces a slip for an order with issues.
type Issue struct {
	Field string
	Tag   string
}

func (i Issue) String() string { return i.Field + ": " + i.Tag }

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func orderValidator() *validator.Validate {
	validateOnce.Do(func() {
		v := validator.New()
		// 错误里使用 JSON 字段名
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
		if err := v.RegisterValidation("amount", func(fl validator.FieldLevel) bool {
			_, ok := Amount(fl.Field().String()).Decimal()
			return ok
		}); err != nil {
			panic("receipt: 注册 amount 校验规则失败: " + err.Error())
		}
		validate = v
	})
	return validate
}

// Validate checks the order and returns validator.ValidationErrors on failure.
func Validate(order Order) error {
	return orderValidator().Struct(order)
}

// Issues flattens the result of Validate.
func Issues(err error) []Issue {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil
	}
	out := make([]Issue, 0, len(verrs))
	for _, e := range verrs {
		out = append(out, Issue{Field: e.Namespace(), Tag: e.Tag()})
	}
	return out
}
