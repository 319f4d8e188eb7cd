package xerr

import "errors"

var (
	// 通用错误
	ErrInternalServer = errors.New("服务器内部错误")

	// 客户端请求错误
	ErrInvalidParams      = errors.New("无效的请求参数")
	ErrFileTooLarge       = errors.New("上传文件过大，超出该类别限制")
	ErrContentTypeInvalid = errors.New("文件类型不在该类别允许范围内")
	ErrUnknownCategory    = errors.New("未知的上传类别")
	ErrStatusInvalid      = errors.New("上传记录状态异常，无法执行该操作")
	ErrSessionFull        = errors.New("上传会话计数已满")

	// 认证与授权错误
	ErrUnauthorized = errors.New("用户未授权")
	ErrTokenInvalid = errors.New("认证 Token 无效或已过期")

	// 资源未找到错误
	ErrUploadNotFound        = errors.New("上传记录不存在")
	ErrUploadSessionNotFound = errors.New("上传会话不存在")

	// 数据库与外部服务错误
	ErrDatabaseError    = errors.New("数据库操作失败")
	ErrStorageError     = errors.New("存储服务操作失败")
	ErrRecordSaveFailed = errors.New("上传记录保存失败，已签发的URL不可使用")
)
