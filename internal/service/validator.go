package service

import (
	"context"

	"github.com/haierkeys/fast-ledger-sync-service/internal/domain"
)

// Validator runs Validate on every module and concatenates the issues
// Validator 汇总全部业务域的校验结果
type Validator struct {
	modules []SyncModule
}

// NewValidator 创建校验器
func NewValidator(modules []SyncModule) *Validator {
	return &Validator{modules: modules}
}

// ValidateAll 校验全部业务域
func (v *Validator) ValidateAll(ctx context.Context) (domain.ValidationReport, error) {
	report := domain.ValidationReport{OK: true}
	for _, m := range v.modules {
		r, err := m.Validate(ctx)
		if err != nil {
			return domain.ValidationReport{}, err
		}
		report.Merge(r)
	}
	return report, nil
}
