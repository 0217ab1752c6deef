package cmd

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/goosebones/pokemon/pkg/types"
)

func TestPrintSummary(t *testing.T) {
	t.Parallel()

	start := time.Date(2026, 10, 17, 8, 0, 0, 0, time.UTC)
	sum := &domain.RunSummary{
		ID:         "run-1",
		StartedAt:  start,
		FinishedAt: start.Add(90 * time.Second),
	}
	sum.Record(domain.Skipped(&domain.CardRow{Index: 2, ExternalID: "A1"}, domain.SkipAlreadyProcessed))
	sum.Record(domain.Failed(&domain.CardRow{Index: 3, ExternalID: "A2"}, domain.StageUpload, errors.New("no pictures")))
	sum.Record(domain.Listed(&domain.CardRow{Index: 4, ExternalID: "A3"}, "110553001234", 0.35))

	var buf bytes.Buffer
	require.NoError(t, printSummary(&buf, sum))

	out := buf.String()
	assert.Contains(t, out, "run-1")
	assert.Contains(t, out, "1m30s")
	assert.Contains(t, out, "tripped by row 4 (A3), item 110553001234, fee 0.35")
	assert.Contains(t, out, "already_processed")
	assert.Contains(t, out, "upload: no pictures")
	assert.NotContains(t, out, "Canceled")
}

func TestPrintPreview(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, printPreview(&buf, []previewLine{
		{Row: 2, ExternalID: "A1", Title: "Pikachu", Length: 7, Fits: true},
		{Row: 3, ExternalID: "A2", Title: "x", Length: 81, Fits: false},
		{Row: 4, ExternalID: "A3", Title: "y", Length: 1, Fits: true, Processed: true},
	}))

	out := buf.String()
	assert.Contains(t, out, "ok")
	assert.Contains(t, out, "too long")
	assert.Contains(t, out, "processed")
}

func TestPrintItem(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, printItem(&buf, &domain.ListedItem{
		ItemID:        "110553001234",
		Title:         "Charizard",
		ListingStatus: "Active",
		CurrentPrice:  domain.Amount{Value: 12.5, Currency: "USD"},
		PictureURLs:   []string{"a", "b"},
	}))

	out := buf.String()
	assert.Contains(t, out, "12.50 USD")
	assert.Contains(t, out, "Active")
	assert.NotContains(t, out, "Start:")
}
