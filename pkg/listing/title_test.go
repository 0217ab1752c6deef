package listing_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goosebones/pokemon/pkg/listing"
	domain "github.com/goosebones/pokemon/pkg/types"
)

func TestTitleFormatter_Format_Pikachu(t *testing.T) {
	t.Parallel()

	f := listing.NewTitleFormatter(listing.PolicyPassThrough)
	got := f.Format("Pikachu", "025/189", "Holo", "Crown Zenith", domain.ConditionNearMint)

	assert.Equal(t, "Pikachu 025/189 Holo Crown Zenith NM/M Near Mint Pokemon Card", got)
	assert.True(t, listing.TitleFits(got))
}

func TestTitleFormatter_Format_ConditionPhrases(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		cond domain.Condition
		want string
	}{
		{name: "mint", cond: domain.ConditionMint, want: "Charizard 4/102 Holo Base Set Mint Pokemon Card"},
		{name: "near mint", cond: domain.ConditionNearMint, want: "Charizard 4/102 Holo Base Set NM/M Near Mint Pokemon Card"},
		{name: "lightly played", cond: domain.ConditionLightlyPlayed, want: "Charizard 4/102 Holo Base Set LP Lightly Played Pokemon Card"},
		{
			name: "moderately played",
			cond: domain.ConditionModeratelyPlayed,
			want: "Charizard 4/102 Holo Base Set MP Moderately Played Pokemon Card",
		},
		{name: "heavily played", cond: domain.ConditionHeavilyPlayed, want: "Charizard 4/102 Holo Base Set HP Heavily Played Pokemon Card"},
		{name: "damaged", cond: domain.ConditionDamaged, want: "Charizard 4/102 Holo Base Set Damaged Pokemon Card"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			for _, policy := range []listing.UnknownConditionPolicy{
				listing.PolicyPassThrough,
				listing.PolicyForceReject,
			} {
				f := listing.NewTitleFormatter(policy)
				got := f.Format("Charizard", "4/102", "Holo", "Base Set", tt.cond)
				assert.Equal(t, tt.want, got, "policy %s", policy)
				assert.Contains(t, got, listing.TitlePhrase(tt.cond))
			}
		})
	}
}

func TestTitleFormatter_Format_UnknownCondition(t *testing.T) {
	t.Parallel()

	t.Run("pass-through appends nothing", func(t *testing.T) {
		t.Parallel()

		f := listing.NewTitleFormatter(listing.PolicyPassThrough)
		got := f.Format("Pikachu", "025/189", "Holo", "Crown Zenith", domain.ConditionUnknown)

		assert.Equal(t, "Pikachu 025/189 Holo Crown Zenith Pokemon Card", got)
		assert.True(t, listing.TitleFits(got))
	})

	t.Run("force-reject always exceeds the limit", func(t *testing.T) {
		t.Parallel()

		f := listing.NewTitleFormatter(listing.PolicyForceReject)
		got := f.Format("Mew", "1", "", "", domain.ConditionUnknown)

		assert.True(t, strings.HasPrefix(got, "Mew 1 "))
		assert.Greater(t, listing.TitleLength(got), listing.MaxTitleLength)
		assert.False(t, listing.TitleFits(got))
	})

	t.Run("zero policy behaves as pass-through", func(t *testing.T) {
		t.Parallel()

		var f listing.TitleFormatter
		got := f.Format("Mew", "1", "", "", domain.ConditionUnknown)
		assert.Equal(t, "Mew 1 Pokemon Card", got)
	})
}

func TestTitleFormatter_Format_SkipsEmptyParts(t *testing.T) {
	t.Parallel()

	f := listing.NewTitleFormatter(listing.PolicyPassThrough)
	got := f.Format("Eevee", "", "  ", "Evolving Skies", domain.ConditionLightlyPlayed)

	assert.Equal(t, "Eevee Evolving Skies LP Lightly Played Pokemon Card", got)
	assert.NotContains(t, got, "  ")
}

func TestTitleFormatter_Format_Deterministic(t *testing.T) {
	t.Parallel()

	f := listing.NewTitleFormatter(listing.PolicyPassThrough)
	row := &domain.CardRow{
		Name:          "Umbreon VMAX",
		CatalogNumber: "215/203",
		FoilVariant:   "Alternate Art Secret",
		SetName:       "Evolving Skies",
		Condition:     domain.ConditionNearMint,
	}

	first := f.FormatRow(row)
	second := f.FormatRow(row)
	assert.Equal(t, first, second)
}

func TestTitleFormatter_Format_LongTitleGetsNoSuffix(t *testing.T) {
	t.Parallel()

	f := listing.NewTitleFormatter(listing.PolicyPassThrough)
	got := f.Format(
		"Rayquaza VMAX",
		"218/203",
		"Alternate Art Secret Rare",
		"Evolving Skies",
		domain.ConditionModeratelyPlayed,
	)

	// 13+1+7+1+25+1+14+1+20 = 83 characters, over every suffix tier.
	assert.Equal(t, "Rayquaza VMAX 218/203 Alternate Art Secret Rare Evolving Skies MP Moderately Played", got)
	assert.False(t, listing.TitleFits(got))
}

func TestTitleFits(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		title string
		want  bool
	}{
		{name: "empty", title: "", want: true},
		{name: "exactly 80", title: strings.Repeat("a", 80), want: true},
		{name: "81", title: strings.Repeat("a", 81), want: false},
		{name: "80 multi-byte runes", title: strings.Repeat("é", 80), want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, listing.TitleFits(tt.title))
		})
	}
}

func TestParsePolicy(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input   string
		want    listing.UnknownConditionPolicy
		wantErr bool
	}{
		{input: "", want: listing.PolicyPassThrough},
		{input: "pass-through", want: listing.PolicyPassThrough},
		{input: " force-reject ", want: listing.PolicyForceReject},
		{input: "reject", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()

			got, err := listing.ParsePolicy(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "unknown condition policy")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
