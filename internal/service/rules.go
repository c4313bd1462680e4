package service

import (
	"fmt"

	"github.com/haierkeys/fast-ledger-sync-service/internal/domain"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
)

// RecordValidator checks required fields through the validate struct tags of the domain records
// RecordValidator 基于结构体 validate 标签检查必填字段
type RecordValidator struct {
	validate *validator.Validate
	trans    ut.Translator
}

// NewRecordValidator 创建记录校验器
func NewRecordValidator() (*RecordValidator, error) {
	v := validator.New()
	uni := ut.New(en.New(), en.New())
	trans, _ := uni.GetTranslator("en")
	if err := en_translations.RegisterDefaultTranslations(v, trans); err != nil {
		return nil, err
	}
	return &RecordValidator{validate: v, trans: trans}, nil
}

// Check returns one issue per failing field of record
// Check 每个不合法字段返回一条问题
func (rv *RecordValidator) Check(name domain.Name, index int, record any, id string) []domain.ValidationIssue {
	err := rv.validate.Struct(record)
	if err == nil {
		return nil
	}

	label := id
	if label == "" {
		label = fmt.Sprintf("#%d", index+1)
	}

	errs, ok := err.(validator.ValidationErrors)
	if !ok {
		return []domain.ValidationIssue{domain.ValidationIssue(fmt.Sprintf("%s record %s: %v", name, label, err))}
	}

	issues := make([]domain.ValidationIssue, 0, len(errs))
	for _, fe := range errs {
		issues = append(issues, domain.ValidationIssue(fmt.Sprintf("%s record %s: %s", name, label, fe.Translate(rv.trans))))
	}
	return issues
}
