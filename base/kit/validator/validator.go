package validator

import (
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	enTranslations "github.com/go-playground/validator/v10/translations/en"
	"github.com/pkg/errors"
)

// FieldError 单个字段的校验失败信息
type FieldError struct {
	Field string `json:"field"`
	Msg   string `json:"msg"`
}

// FieldErrors 结构体校验失败时返回, 保留所有字段的错误
type FieldErrors []FieldError

func (e FieldErrors) Error() string {
	msgs := make([]string, 0, len(e))
	for _, fe := range e {
		msgs = append(msgs, fe.Msg)
	}
	return strings.Join(msgs, "; ")
}

var (
	once     sync.Once
	validate *validator.Validate
	trans    ut.Translator
	mu       sync.Mutex
)

func instance() *validator.Validate {
	once.Do(func() {
		validate = validator.New()
		// 错误信息中使用 json 字段名, 与请求体保持一致
		validate.RegisterTagNameFunc(func(f reflect.StructField) string {
			for _, tag := range []string{"json", "mapstructure"} {
				name := strings.SplitN(f.Tag.Get(tag), ",", 2)[0]
				if name != "" && name != "-" {
					return name
				}
			}
			return f.Name
		})

		locale := en.New()
		trans, _ = ut.New(locale, locale).GetTranslator("en")
		_ = enTranslations.RegisterDefaultTranslations(validate, trans)
	})
	return validate
}

// RegisterValidation 注册自定义校验规则及其英文错误信息, msg 中 {0} 替换为字段名
func RegisterValidation(tag string, fn validator.Func, msg string) error {
	v := instance()
	mu.Lock()
	defer mu.Unlock()

	if err := v.RegisterValidation(tag, fn); err != nil {
		return errors.Wrapf(err, "failed on register validation %s", tag)
	}
	return v.RegisterTranslation(tag, trans,
		func(t ut.Translator) error {
			return t.Add(tag, msg, true)
		},
		func(t ut.Translator, fe validator.FieldError) string {
			s, _ := t.T(tag, fe.Field())
			return s
		})
}

// Verify 按 validate tag 校验结构体, 失败时返回 FieldErrors
func Verify(s interface{}) error {
	err := instance().Struct(s)
	if err == nil {
		return nil
	}

	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return err
	}

	res := make(FieldErrors, 0, len(ve))
	for _, fe := range ve {
		field := fe.Namespace()
		if i := strings.Index(field, "."); i >= 0 {
			field = field[i+1:]
		}
		res = append(res, FieldError{Field: field, Msg: fe.Translate(trans)})
	}
	return res
}
