package domain_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/goosebones/pokemon/pkg/types"
)

func TestFeeReport_ListingFee(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		fees []domain.Fee
		want float64
	}{
		{name: "no fees", fees: nil, want: 0},
		{
			name: "listing fee absent",
			fees: []domain.Fee{{Name: "InsertionFee", Amount: 0.35}},
			want: 0,
		},
		{
			name: "zero listing fee",
			fees: []domain.Fee{{Name: "ListingFee", Amount: 0}, {Name: "GalleryFee", Amount: 0.1}},
			want: 0,
		},
		{
			name: "nonzero listing fee",
			fees: []domain.Fee{{Name: "InsertionFee", Amount: 0.35}, {Name: "ListingFee", Amount: 0.35}},
			want: 0.35,
		},
		{
			name: "last entry wins",
			fees: []domain.Fee{{Name: "ListingFee", Amount: 0.2}, {Name: "ListingFee", Amount: 0.3}},
			want: 0.3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			r := domain.FeeReport{Fees: tt.fees}
			assert.InDelta(t, tt.want, r.ListingFee(), 1e-9)
		})
	}
}

func TestFeeReport_ListingFeeEntry(t *testing.T) {
	t.Parallel()

	assert.Equal(t, domain.Fee{Name: domain.ListingFeeName}, domain.FeeReport{}.ListingFeeEntry())

	r := domain.FeeReport{Fees: []domain.Fee{
		{Name: domain.ListingFeeName, Amount: 0.1, Currency: "USD"},
		{Name: "InsertionFee", Amount: 0.35, Currency: "USD"},
		{Name: domain.ListingFeeName, Amount: 0.2, Currency: "EUR"},
	}}
	assert.Equal(t, domain.Fee{Name: domain.ListingFeeName, Amount: 0.2, Currency: "EUR"}, r.ListingFeeEntry())
	assert.InDelta(t, r.ListingFeeEntry().Amount, r.ListingFee(), 1e-9)
}

func TestRunSummary_Record(t *testing.T) {
	t.Parallel()

	row2 := &domain.CardRow{Index: 2, ExternalID: "A"}
	row3 := &domain.CardRow{Index: 3, ExternalID: "B"}
	row4 := &domain.CardRow{Index: 4, ExternalID: "C"}
	row5 := &domain.CardRow{Index: 5, ExternalID: "D"}

	var s domain.RunSummary
	s.Record(domain.Skipped(row2, domain.SkipAlreadyProcessed))
	s.Record(domain.Listed(row3, "110001", 0))
	s.Record(domain.Failed(row4, domain.StageUpload, errors.New("boom")))
	s.Record(domain.Listed(row5, "110002", 0.35))

	assert.Equal(t, 1, s.Skipped)
	assert.Equal(t, 2, s.Listed)
	assert.Equal(t, 1, s.Failed)
	assert.InDelta(t, 0.35, s.TotalFees, 1e-9)
	assert.Len(t, s.Outcomes, 4)

	require.True(t, s.BreakerTripped)
	require.NotNil(t, s.TrippedBy)
	assert.Equal(t, "D", s.TrippedBy.ExternalID)
	assert.Equal(t, "boom", s.Outcomes[2].Error)
}

func TestOutcome_TripsBreaker(t *testing.T) {
	t.Parallel()

	row := &domain.CardRow{Index: 2}
	zero := domain.Listed(row, "1", 0)
	paid := domain.Listed(row, "1", 0.01)
	failed := domain.Failed(row, domain.StageSubmission, errors.New("x"))

	assert.False(t, zero.TripsBreaker())
	assert.True(t, paid.TripsBreaker())
	assert.False(t, failed.TripsBreaker())
}

func TestRunSummary_Duration(t *testing.T) {
	t.Parallel()

	start := time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC)
	s := domain.RunSummary{StartedAt: start, FinishedAt: start.Add(90 * time.Second)}
	assert.Equal(t, 90*time.Second, s.Duration())
}
