// Package apperr 定義服務層的錯誤分類, 由 http 層轉換成對應的 status code
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

type Code int

const (
	InternalErrorCode     Code = iota // 儲存層或其他未預期錯誤
	ValidationCode                    // 輸入格式錯誤, 不會觸碰資料庫
	UnauthenticatedCode               // 匿名呼叫
	ForbiddenCode                     // 已登入但角色不足
	NotFoundCode                      // 資源不存在或呼叫者無權查看
	InsufficientStockCode             // 庫存不足
	TooManyRequestsCode               // 超過限流
)

var codeNames = map[Code]string{
	InternalErrorCode:     "internal error",
	ValidationCode:        "validation error",
	UnauthenticatedCode:   "unauthenticated",
	ForbiddenCode:         "forbidden",
	NotFoundCode:          "not found",
	InsufficientStockCode: "insufficient stock",
	TooManyRequestsCode:   "too many requests",
}

func (c Code) String() string {
	if s, ok := codeNames[c]; ok {
		return s
	}
	return fmt.Sprintf("code(%d)", int(c))
}

// HTTPStatus client 錯誤對應 4xx, 其餘為 500
func (c Code) HTTPStatus() int {
	switch c {
	case ValidationCode:
		return http.StatusBadRequest
	case UnauthenticatedCode:
		return http.StatusUnauthorized
	case ForbiddenCode:
		return http.StatusForbidden
	case NotFoundCode:
		return http.StatusNotFound
	case InsufficientStockCode:
		return http.StatusConflict
	case TooManyRequestsCode:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

type Error struct {
	Code     Code
	Message  string
	Resource string
	ID       int64
	Err      error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is 讓 errors.Is 可以用 code 比對, 例如 errors.Is(err, &Error{Code: NotFoundCode})
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Code == e.Code && (t.Resource == "" || t.Resource == e.Resource) && (t.ID == 0 || t.ID == e.ID)
}

func New(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

func Validation(format string, args ...any) *Error {
	return New(ValidationCode, format, args...)
}

func Unauthenticated(format string, args ...any) *Error {
	return New(UnauthenticatedCode, format, args...)
}

func Forbidden(format string, args ...any) *Error {
	return New(ForbiddenCode, format, args...)
}

func TooManyRequests(format string, args ...any) *Error {
	return New(TooManyRequestsCode, format, args...)
}

func NotFound(resource string, id int64) *Error {
	return &Error{
		Code:     NotFoundCode,
		Message:  fmt.Sprintf("%s %d not found", resource, id),
		Resource: resource,
		ID:       id,
	}
}

// Persistence 包裝儲存層錯誤
func Persistence(err error, format string, args ...any) *Error {
	return &Error{Code: InternalErrorCode, Message: fmt.Sprintf(format, args...), Err: err}
}

// InsufficientStockError 帶有商品與數量資訊, 呼叫端可據此調整購買數量
type InsufficientStockError struct {
	ProductID int64 `json:"product_id"`
	Available int   `json:"available"`
	Requested int   `json:"requested"`
}

func InsufficientStock(productID int64, available, requested int) *InsufficientStockError {
	return &InsufficientStockError{ProductID: productID, Available: available, Requested: requested}
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for product %d: available %d, requested %d", e.ProductID, e.Available, e.Requested)
}

// CodeOf 取得錯誤分類, 非本套件的錯誤一律視為 InternalErrorCode
func CodeOf(err error) Code {
	if err == nil {
		return InternalErrorCode
	}
	var stockErr *InsufficientStockError
	if errors.As(err, &stockErr) {
		return InsufficientStockCode
	}
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return InternalErrorCode
}

