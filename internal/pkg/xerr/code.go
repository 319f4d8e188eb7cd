package xerr

// 定义了统一的业务错误码
const (
	CodeSuccess = 20000 // 通用成功码

	// --- 客户端请求错误系列 (400xx) ---
	CodeInvalidParams       = 40000 // 无效的请求参数
	CodeValidationFailed    = 40001 // 参数验证失败
	CodeFileTooLarge        = 40003 // 文件大小超出类别限制
	CodeContentTypeInvalid  = 40004 // 文件类型不在类别允许范围内
	CodeUnknownCategory     = 40005 // 未知的上传类别
	CodeUploadStatusInvalid = 40006 // 上传记录状态异常，无法执行该操作
	CodeSessionFull         = 40007 // 上传会话计数已满

	// --- 认证与授权错误系列 (401xx) ---
	CodeUnauthorized = 40100 // 通用未授权
	CodeTokenInvalid = 40101 // Token 无效或过期

	// --- 资源未找到错误系列 (404xx) ---
	CodeNotFound              = 40400 // 通用资源未找到
	CodeUploadNotFound        = 40401 // 上传记录不存在或已删除
	CodeUploadSessionNotFound = 40402 // 上传会话不存在

	// --- 服务器内部错误系列 (500xx) ---
	CodeInternalServerError = 50000 // 服务器内部通用错误
	CodeDatabaseError       = 50001 // 数据库操作失败
	CodeStorageError        = 50002 // 对象存储服务操作失败
	CodeRecordSaveFailed    = 50003 // 签名URL已生成但记录保存失败, 调用方不应使用该URL
)
