package book

import (
	apperrors "github.com/xiebiao/library/pkg/errors"
)

// 图书领域错误定义
var (
	// ErrBookNotFound 图书不存在
	ErrBookNotFound = apperrors.ErrBookNotFound

	// ErrInvalidField 字段值类型不匹配(如year写入字符串)
	ErrInvalidField = apperrors.New(apperrors.ErrCodeInvalidArgument, "字段值类型不正确")
)
