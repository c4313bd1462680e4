package service

import (
	"context"
	"strings"
	"testing"

	"github.com/haierkeys/fast-ledger-sync-service/internal/domain"
	"github.com/haierkeys/fast-ledger-sync-service/internal/synctest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func newFuelModule(t *testing.T, local *synctest.Repository[domain.FuelEntry], remote *synctest.Ledger[domain.FuelEntry]) *DomainSync[domain.FuelEntry] {
	t.Helper()
	checker, err := NewRecordValidator()
	require.NoError(t, err)
	return NewDomainSync[domain.FuelEntry](domain.Fuel, local, remote, checker, nil)
}

func TestDomainSync_PushClassifiesCreateAndUpdate(t *testing.T) {
	local := synctest.NewRepository(domain.Fuel,
		domain.FuelEntry{ID: "a1", Date: "2024-01-01", TotalAmount: 100},
		domain.FuelEntry{ID: "a2", Date: "2024-01-02", TotalAmount: 50},
	)
	remote := synctest.NewLedger(domain.Fuel,
		domain.FuelEntry{ID: "a2", Date: "2023-12-31", TotalAmount: 1},
		domain.FuelEntry{ID: "z9", Date: "2023-01-01", TotalAmount: 9},
	)

	var steps [][2]int
	result, err := newFuelModule(t, local, remote).Push(context.Background(), func(p, total int) {
		steps = append(steps, [2]int{p, total})
	})
	require.NoError(t, err)

	assert.Equal(t, domain.SyncResult{Domain: domain.Fuel, Processed: 2, Created: 1, Updated: 1}, result)
	assert.Equal(t, [][2]int{{1, 2}, {2, 2}}, steps)
	assert.Equal(t, 1, remote.Calls("list"))

	// push never deletes remote records
	assert.Equal(t, []domain.FuelEntry{
		{ID: "a1", Date: "2024-01-01", TotalAmount: 100},
		{ID: "a2", Date: "2024-01-02", TotalAmount: 50},
		{ID: "z9", Date: "2023-01-01", TotalAmount: 9},
	}, remote.Records())
}

func TestDomainSync_PushAbortsOnFirstError(t *testing.T) {
	local := synctest.NewRepository(domain.Fuel,
		domain.FuelEntry{ID: "a1", Date: "2024-01-01", TotalAmount: 1},
		domain.FuelEntry{ID: "a2", Date: "2024-01-01", TotalAmount: 2},
		domain.FuelEntry{ID: "a3", Date: "2024-01-01", TotalAmount: 3},
	)
	remote := synctest.NewLedger[domain.FuelEntry](domain.Fuel).FailOn("upsert", 2)

	core, logs := observer.New(zapcore.DebugLevel)
	m := newFuelModule(t, local, remote)
	m.logger = zap.New(core)

	steps := 0
	result, err := m.Push(context.Background(), func(int, int) { steps++ })

	var te *domain.TransportError
	require.ErrorAs(t, err, &te)
	assert.ErrorIs(t, err, synctest.ErrInjected)
	assert.Equal(t, 1, steps)
	assert.Equal(t, 1, result.Processed)
	assert.Equal(t, 2, remote.Calls("upsert"))
	assert.Equal(t, []string{"a1"}, ids(remote.Records()))

	failed := logs.FilterMessage("record push failed").All()
	require.Len(t, failed, 1)
	assert.Equal(t, "a2", failed[0].ContextMap()["recordId"])
}

func TestDomainSync_PushListFailure(t *testing.T) {
	local := synctest.NewRepository(domain.Fuel, domain.FuelEntry{ID: "a1", Date: "2024-01-01", TotalAmount: 1})
	remote := synctest.NewLedger[domain.FuelEntry](domain.Fuel).FailOn("list", 1)

	_, err := newFuelModule(t, local, remote).Push(context.Background(), nil)
	assert.ErrorIs(t, err, synctest.ErrInjected)
	assert.Zero(t, remote.Calls("upsert"))
}

func TestDomainSync_PullRemoteWinsAndKeepsLocalOnly(t *testing.T) {
	local := synctest.NewRepository(domain.Fuel,
		domain.FuelEntry{ID: "a1", Date: "2024-01-01", TotalAmount: 100},
		domain.FuelEntry{ID: "local-only", Date: "2024-02-01", TotalAmount: 7},
	)
	remote := synctest.NewLedger(domain.Fuel,
		domain.FuelEntry{ID: "a1", Date: "2024-01-01", TotalAmount: 250, Station: "East"},
	)

	result, err := newFuelModule(t, local, remote).Pull(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Processed)

	assert.Equal(t, []domain.FuelEntry{
		{ID: "a1", Date: "2024-01-01", TotalAmount: 250, Station: "East"},
		{ID: "local-only", Date: "2024-02-01", TotalAmount: 7},
	}, local.Records())
	assert.Zero(t, remote.Calls("upsert"))
}

func TestDomainSync_EmptyDomainNeverSteps(t *testing.T) {
	m := newFuelModule(t, synctest.NewRepository[domain.FuelEntry](domain.Fuel), synctest.NewLedger[domain.FuelEntry](domain.Fuel))

	called := false
	_, err := m.Push(context.Background(), func(int, int) { called = true })
	require.NoError(t, err)
	_, err = m.Pull(context.Background(), func(int, int) { called = true })
	require.NoError(t, err)
	assert.False(t, called)
}

func TestDomainSync_Validate(t *testing.T) {
	tests := []struct {
		name    string
		records []domain.FuelEntry
		dups    []domain.FuelEntry
		want    []string
	}{
		{
			name:    "valid",
			records: []domain.FuelEntry{{ID: "a1", Date: "2024-01-01", TotalAmount: 100}},
		},
		{
			name:    "missing total amount",
			records: []domain.FuelEntry{{ID: "a1", Date: "2024-01-01"}},
			want:    []string{"fuel record a1: TotalAmount is a required field"},
		},
		{
			name:    "missing date and id",
			records: []domain.FuelEntry{{TotalAmount: 3}},
			want:    []string{"fuel record #1: ID is a required field", "fuel record #1: Date is a required field"},
		},
		{
			name:    "duplicate ids",
			records: []domain.FuelEntry{{ID: "a1", Date: "2024-01-01", TotalAmount: 1}},
			dups:    []domain.FuelEntry{{ID: "a1", Date: "2024-01-02", TotalAmount: 2}},
			want:    []string{`fuel: duplicate ids "a1"`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			local := synctest.NewRepository(domain.Fuel, tt.records...).WithDuplicates(tt.dups...)
			remote := synctest.NewLedger[domain.FuelEntry](domain.Fuel)

			report, err := newFuelModule(t, local, remote).Validate(context.Background())
			require.NoError(t, err)

			got := make([]string, 0, len(report.Issues))
			for _, i := range report.Issues {
				got = append(got, string(i))
			}
			if len(tt.want) == 0 {
				assert.True(t, report.OK)
				assert.Empty(t, got)
			} else {
				assert.False(t, report.OK)
				assert.Equal(t, tt.want, got)
			}
			assert.Zero(t, remote.Calls("list"))
		})
	}
}

func TestDomainSync_ValidateFinanceKind(t *testing.T) {
	checker, err := NewRecordValidator()
	require.NoError(t, err)

	local := synctest.NewRepository(domain.Finance, domain.FinanceEntry{ID: "f1", Date: "2024-01-01", Kind: "gift", Amount: 5})
	m := NewDomainSync[domain.FinanceEntry](domain.Finance, local, synctest.NewLedger[domain.FinanceEntry](domain.Finance), checker, nil)

	report, err := m.Validate(context.Background())
	require.NoError(t, err)
	require.Len(t, report.Issues, 1)
	assert.True(t, strings.HasPrefix(string(report.Issues[0]), "finance record f1: Kind must be one of"))
}

func TestDomainSync_ValidateReadFailure(t *testing.T) {
	local := synctest.NewRepository[domain.FuelEntry](domain.Fuel).FailOn("get all", 1)
	_, err := newFuelModule(t, local, synctest.NewLedger[domain.FuelEntry](domain.Fuel)).Validate(context.Background())
	assert.ErrorIs(t, err, synctest.ErrInjected)
}
