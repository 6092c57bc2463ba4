package utils

import (
	"regexp"
	"sync"

	"github.com/go-playground/validator/v10"

	kitvalidator "github.com/ProjectsTask/TraitSigner/base/kit/validator"
)

type rule struct {
	fn  validator.Func
	msg string
}

var (
	// validatorM 自定义校验规则, key 为 validate tag 名称
	validatorM map[string]rule
	// patternM 正则类规则使用的表达式
	patternM map[string]*regexp.Regexp

	registerOnce sync.Once
	registerErr  error
)

func init() {
	patternM = map[string]*regexp.Regexp{
		// 以太坊地址: 0x 开头, 后接 40 位十六进制
		"address": regexp.MustCompile(`^0x[a-fA-F0-9]{40}$`),
		// 私钥: 64 位十六进制, 0x 可选
		"privkey": regexp.MustCompile(`^(0x)?[a-fA-F0-9]{64}$`),
	}
	validatorM = map[string]rule{
		"address": {regexpValidator, "{0} must be a 0x-prefixed 20 byte hex address"},
		"privkey": {regexpValidator, "{0} must be a 32 byte hex private key"},
		"decimal": {decimalValidator, "{0} must be a non-negative decimal with at most 18 fractional digits"},
	}
}

var (
	// regexpValidator 根据 tag 名称查找对应的正则并匹配
	regexpValidator validator.Func = func(fl validator.FieldLevel) bool {
		key, ok := fl.Field().Interface().(string)
		if !ok {
			return false
		}
		pattern, ok := patternM[fl.GetTag()]
		if !ok {
			return false
		}
		return pattern.MatchString(key)
	}

	decimalValidator validator.Func = func(fl validator.FieldLevel) bool {
		value, ok := fl.Field().Interface().(string)
		if !ok {
			return false
		}
		_, err := ParseFixed18(value)
		return err == nil
	}
)

// RegisterValidators 注册自定义 validate tag, 可重复调用
func RegisterValidators() error {
	registerOnce.Do(func() {
		for tag, r := range validatorM {
			if err := kitvalidator.RegisterValidation(tag, r.fn, r.msg); err != nil {
				registerErr = err
				return
			}
		}
	})
	return registerErr
}
