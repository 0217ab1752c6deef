// Package listing turns card rows into marketplace listing payloads: titles
// under the 80 character budget, description bodies and the full payload with
// the seller's fixed defaults.
package listing

import (
	"strings"

	domain "github.com/goosebones/pokemon/pkg/types"
)

// conditionCodes maps sheet condition codes to domain conditions.
var conditionCodes = map[string]domain.Condition{
	// short codes
	"m":    domain.ConditionMint,
	"nm":   domain.ConditionNearMint,
	"nm/m": domain.ConditionNearMint,
	"lp":   domain.ConditionLightlyPlayed,
	"mp":   domain.ConditionModeratelyPlayed,
	"hp":   domain.ConditionHeavilyPlayed,
	"d":    domain.ConditionDamaged,
	"dmg":  domain.ConditionDamaged,
	// full names
	"mint":              domain.ConditionMint,
	"near mint":         domain.ConditionNearMint,
	"lightly played":    domain.ConditionLightlyPlayed,
	"moderately played": domain.ConditionModeratelyPlayed,
	"heavily played":    domain.ConditionHeavilyPlayed,
	"damaged":           domain.ConditionDamaged,
	// enum values (identity mappings)
	"near_mint":         domain.ConditionNearMint,
	"lightly_played":    domain.ConditionLightlyPlayed,
	"moderately_played": domain.ConditionModeratelyPlayed,
	"heavily_played":    domain.ConditionHeavilyPlayed,
}

// titlePhrases is the condition text appended to listing titles.
var titlePhrases = map[domain.Condition]string{
	domain.ConditionMint:             "Mint",
	domain.ConditionNearMint:         "NM/M Near Mint",
	domain.ConditionLightlyPlayed:    "LP Lightly Played",
	domain.ConditionModeratelyPlayed: "MP Moderately Played",
	domain.ConditionHeavilyPlayed:    "HP Heavily Played",
	domain.ConditionDamaged:          "Damaged",
}

// conditionWords is the spelled-out condition used in descriptions.
var conditionWords = map[domain.Condition]string{
	domain.ConditionMint:             "Mint",
	domain.ConditionNearMint:         "Near Mint",
	domain.ConditionLightlyPlayed:    "Lightly Played",
	domain.ConditionModeratelyPlayed: "Moderately Played",
	domain.ConditionHeavilyPlayed:    "Heavily Played",
	domain.ConditionDamaged:          "Damaged",
}

// ParseCondition maps a raw condition cell to a domain.Condition. Matching is
// case-insensitive and ignores surrounding whitespace. Anything unrecognized
// is ConditionUnknown.
func ParseCondition(raw string) domain.Condition {
	normalized := strings.ToLower(strings.TrimSpace(raw))
	if normalized == "" {
		return domain.ConditionUnknown
	}

	if c, ok := conditionCodes[normalized]; ok {
		return c
	}

	return domain.ConditionUnknown
}

// TitlePhrase returns the title text for c, or "" if c has none.
func TitlePhrase(c domain.Condition) string {
	return titlePhrases[c]
}

// ConditionWords returns the spelled-out name of c, or "" if c has none.
func ConditionWords(c domain.Condition) string {
	return conditionWords[c]
}
