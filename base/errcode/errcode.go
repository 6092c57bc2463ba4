package errcode

import (
	"fmt"
	"net/http"
)

// Err 业务错误
// HTTPCode 决定响应状态码, Code/Msg 写入响应体
type Err struct {
	HTTPCode int    `json:"-"`
	Code     int    `json:"code"`
	Msg      string `json:"msg"`
}

func (e *Err) Error() string {
	return fmt.Sprintf("code: %d, msg: %s", e.Code, e.Msg)
}

func New(httpCode, code int, msg string) *Err {
	return &Err{HTTPCode: httpCode, Code: code, Msg: msg}
}

// NewCustomErr 参数类错误, 状态码 400, 消息由调用方指定
func NewCustomErr(msg string) *Err {
	return &Err{HTTPCode: http.StatusBadRequest, Code: CodeCustom, Msg: msg}
}

const (
	CodeUnexpected = 10000 + iota
	CodeCustom
	CodeInvalidParams
	CodeInvalidID
	CodeInvalidSignature
	CodeTokenMissing
	CodeTokenInvalid
	CodeAdminOnly
	CodeTraitNotFound
	CodeMalformedPayload
)

var (
	ErrUnexpected       = New(http.StatusInternalServerError, CodeUnexpected, "Server Error")
	ErrInvalidParams    = New(http.StatusBadRequest, CodeInvalidParams, "Invalid params")
	ErrInvalidID        = New(http.StatusBadRequest, CodeInvalidID, "Invalid ID")
	ErrInvalidSignature = New(http.StatusBadRequest, CodeInvalidSignature, "Invalid signature")
	ErrTokenMissing     = New(http.StatusUnauthorized, CodeTokenMissing, "No token, authorization denied")
	ErrTokenInvalid     = New(http.StatusUnauthorized, CodeTokenInvalid, "Token is not valid")
	ErrAdminOnly        = New(http.StatusForbidden, CodeAdminOnly, "Admin resources access denied")
	ErrTraitNotFound    = New(http.StatusNotFound, CodeTraitNotFound, "Trait not found")
	// 签名校验通过后, unsignedMsg 内容无法解析为 {id, value}
	ErrMalformedPayload = New(http.StatusInternalServerError, CodeMalformedPayload, "Malformed update message")
)
