package domain

import "github.com/pkg/errors"

// 地理编码失败的三类错误。适配器用 errors.Wrap 包装，调用方用 errors.Is 区分。
var (
	ErrLookupNotFound = errors.New("address lookup returned no results")
	ErrTransport      = errors.New("address lookup request failed")
	ErrParse          = errors.New("address lookup response is malformed")
)

// ErrEmptyPostalCode 只在 HTTP 边界使用，地理编码器本身不校验输入。
var ErrEmptyPostalCode = errors.New("postal code is required")
