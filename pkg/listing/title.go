package listing

import (
	"fmt"
	"strings"
	"unicode/utf8"

	domain "github.com/goosebones/pokemon/pkg/types"
)

// MaxTitleLength is the marketplace's hard limit on title length, in
// characters.
const MaxTitleLength = 80

// UnknownConditionPolicy controls what the title gets for a row whose
// condition code is not in the condition table.
type UnknownConditionPolicy string

// Unknown condition policies.
const (
	// PolicyPassThrough appends nothing for an unknown condition.
	PolicyPassThrough UnknownConditionPolicy = "pass-through"
	// PolicyForceReject appends a filler long enough that the title always
	// fails the length check, so the row is skipped until its code is fixed.
	PolicyForceReject UnknownConditionPolicy = "force-reject"
)

// ParsePolicy validates a policy name. An empty name is PolicyPassThrough.
func ParsePolicy(s string) (UnknownConditionPolicy, error) {
	switch p := UnknownConditionPolicy(strings.TrimSpace(s)); p {
	case "", PolicyPassThrough:
		return PolicyPassThrough, nil
	case PolicyForceReject:
		return PolicyForceReject, nil
	default:
		return "", fmt.Errorf(
			"unknown condition policy %q (want %s or %s)",
			s, PolicyPassThrough, PolicyForceReject,
		)
	}
}

// forceRejectFiller is longer than MaxTitleLength on its own.
var forceRejectFiller = strings.Repeat("?", MaxTitleLength+1)

// Length-tiered suffixes, applied to the first tier whose limit the title so
// far fits in.
var suffixTiers = []struct {
	maxLen int
	suffix string
}{
	{maxLen: 67, suffix: " Pokemon Card"},
	{maxLen: 72, suffix: " Pokemon"},
	{maxLen: 75, suffix: " Card"},
}

// TitleFormatter builds listing titles from card attributes.
type TitleFormatter struct {
	Policy UnknownConditionPolicy
}

// NewTitleFormatter returns a formatter using policy for unknown conditions.
func NewTitleFormatter(policy UnknownConditionPolicy) TitleFormatter {
	return TitleFormatter{Policy: policy}
}

// Format returns the title for a card. It never fails; the result may exceed
// MaxTitleLength and callers must check it with TitleFits. Parts are trimmed
// and empty ones dropped before joining, and the suffix tier is chosen from
// the length of that space-collapsed title.
func (f TitleFormatter) Format(
	name, catalogNumber, foilVariant, setName string,
	cond domain.Condition,
) string {
	phrase := TitlePhrase(cond)
	if phrase == "" && f.Policy == PolicyForceReject {
		phrase = forceRejectFiller
	}

	title := joinNonEmpty(name, catalogNumber, foilVariant, setName, phrase)
	return applySuffix(title)
}

// FormatRow is Format over the fields of row.
func (f TitleFormatter) FormatRow(row *domain.CardRow) string {
	return f.Format(row.Name, row.CatalogNumber, row.FoilVariant, row.SetName, row.Condition)
}

// TitleLength returns the title length the marketplace enforces.
func TitleLength(title string) int {
	return utf8.RuneCountInString(title)
}

// TitleFits reports whether title is within MaxTitleLength.
func TitleFits(title string) bool {
	return TitleLength(title) <= MaxTitleLength
}

func applySuffix(title string) string {
	n := TitleLength(title)
	for _, tier := range suffixTiers {
		if n <= tier.maxLen {
			return title + tier.suffix
		}
	}
	return title
}

func joinNonEmpty(parts ...string) string {
	kept := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, " ")
}
