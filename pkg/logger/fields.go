package logger

// 统一的日志字段命名常量
// 用于确保整个项目中日志字段命名的一致性，便于日志查询和分析
const (
	// FieldRunID 单次同步运行 ID
	FieldRunID = "runId"

	// FieldDirection 同步方向 push/pull
	FieldDirection = "direction"

	// FieldDomain 业务域
	FieldDomain = "domain"

	// FieldRecordID 记录 ID
	FieldRecordID = "recordId"

	// FieldProcessed 已处理记录数
	FieldProcessed = "processed"

	// FieldTotal 记录总数
	FieldTotal = "total"

	// FieldDuration 耗时字段
	FieldDuration = "duration"

	// FieldMethod 方法名称字段
	FieldMethod = "method"

	// FieldTask 定时任务名称
	FieldTask = "task"

	// FieldBucket 存储桶名称字段
	FieldBucket = "bucket"

	// FieldKey 对象键字段
	FieldKey = "key"
)
