package domain

// StepFunc is called once after each record a module processes.
// Called as (1, n), (2, n) ... (n, n); never called for an empty domain.
type StepFunc func(processed, total int)

// ProgressFunc receives the overall fraction in [0,1] of a push or pull.
type ProgressFunc func(fraction float64)

// SyncResult summarizes what one domain module did.
type SyncResult struct {
	Domain    Name
	Processed int
	Created   int // push only
	Updated   int // push only
}

// ValidationIssue human readable structural problem in one domain's local records
type ValidationIssue string

// ValidationReport 校验结果
type ValidationReport struct {
	OK     bool              `json:"ok"`
	Issues []ValidationIssue `json:"issues"`
}

// Merge appends the issues of other and recomputes OK.
func (r *ValidationReport) Merge(other ValidationReport) {
	r.Issues = append(r.Issues, other.Issues...)
	r.OK = len(r.Issues) == 0
}
