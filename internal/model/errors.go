package model

import "errors"

// 业务错误分类，供 service 层包装具体信息、api 层映射状态码
var (
	ErrNotFound     = errors.New("resource not found")
	ErrInvalidState = errors.New("invalid state")
	ErrConflict     = errors.New("data conflicts with existing data")
)
