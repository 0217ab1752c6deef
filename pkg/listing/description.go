package listing

import (
	"fmt"
	"strings"

	domain "github.com/goosebones/pokemon/pkg/types"
)

const (
	unknownConditionSentence = "Condition: please refer to the pictures for the exact condition of this card."

	shippingBoilerplate = "Shipping: cards ship within 1 business day in a penny sleeve and " +
		"top loader, sealed in a bubble mailer with tracking."

	marketingBoilerplate = "Check out my other listings for more singles, and message me with any " +
		"questions before bidding. Thanks for looking!"
)

// Description returns the listing body for a card. It is a pure function of
// its arguments.
func Description(title string, cond domain.Condition, defectNote, defectLocation string) string {
	lines := []string{
		title,
		"",
		conditionSentence(cond),
		fmt.Sprintf(
			"Defects: %s on the %s. Please see the pictures, which show the actual card you will receive.",
			defectNote, defectLocation,
		),
		"",
		shippingBoilerplate,
		marketingBoilerplate,
	}
	return strings.Join(lines, "\n")
}

// DescriptionForRow is Description over the fields of row.
func DescriptionForRow(title string, row *domain.CardRow) string {
	return Description(title, row.Condition, row.DefectNote, row.DefectLocation)
}

func conditionSentence(cond domain.Condition) string {
	words := ConditionWords(cond)
	if words == "" {
		return unknownConditionSentence
	}
	return fmt.Sprintf("Condition: this card is in %s condition.", words)
}
