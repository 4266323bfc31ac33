package logic

import (
	"errors"
)

// 业务错误，handler层通过errors.Is映射为HTTP状态码
var (
	ErrProjectNotFound      = errors.New("项目不存在")
	ErrProjectNotActive     = errors.New("项目不在进行中，无法接受捐款")
	ErrDuplicateTransaction = errors.New("交易哈希已存在")
	ErrInvalidArgument      = errors.New("无效的请求参数")
	ErrStorageUnavailable   = errors.New("存储暂时不可用")
)
