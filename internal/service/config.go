// Package service implements the sync engine and its callers
// Package service 实现同步引擎及其调用方
package service

// Validation policies
// 校验策略
const (
	// ValidationAdvisory never blocks a push or pull
	// ValidationAdvisory 仅提示，不阻断同步
	ValidationAdvisory = "advisory"
	// ValidationBlock refuses to sync while validation reports issues
	// ValidationBlock 校验未通过时拒绝同步
	ValidationBlock = "block"
)

// ServiceConfig service layer configuration
// ServiceConfig 服务层配置
type ServiceConfig struct {
	Sync SyncServiceConfig
}

// SyncServiceConfig sync configuration
// SyncServiceConfig 同步配置
type SyncServiceConfig struct {
	ValidationPolicy string // advisory or block // 校验策略 advisory 或 block
}
