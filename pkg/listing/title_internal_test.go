package listing

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestApplySuffix_Tiers(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		length     int
		wantSuffix string
		wantLength int
	}{
		{name: "65 gets Pokemon Card", length: 65, wantSuffix: " Pokemon Card", wantLength: 78},
		{name: "67 gets Pokemon Card", length: 67, wantSuffix: " Pokemon Card", wantLength: 80},
		{name: "68 gets Pokemon", length: 68, wantSuffix: " Pokemon", wantLength: 76},
		{name: "70 gets Pokemon", length: 70, wantSuffix: " Pokemon", wantLength: 78},
		{name: "72 gets Pokemon", length: 72, wantSuffix: " Pokemon", wantLength: 80},
		{name: "73 gets Card", length: 73, wantSuffix: " Card", wantLength: 78},
		{name: "74 gets Card", length: 74, wantSuffix: " Card", wantLength: 79},
		{name: "75 gets Card", length: 75, wantSuffix: " Card", wantLength: 80},
		{name: "76 gets nothing", length: 76, wantSuffix: "", wantLength: 76},
		{name: "90 gets nothing", length: 90, wantSuffix: "", wantLength: 90},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			base := strings.Repeat("x", tt.length)
			got := applySuffix(base)

			assert.Equal(t, base+tt.wantSuffix, got)
			assert.Equal(t, tt.wantLength, TitleLength(got))
			assert.Equal(t, got, applySuffix(base), "suffixing must be deterministic")
		})
	}
}

func TestForceRejectFiller_ExceedsLimitAlone(t *testing.T) {
	t.Parallel()
	assert.Greater(t, TitleLength(forceRejectFiller), MaxTitleLength)
}
