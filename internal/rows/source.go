// Package rows reads card rows from the inventory and writes back the
// per-row processed flag. All pipeline code depends on the Source interface,
// never on a concrete backend.
package rows

import (
	"context"
	"strconv"
	"strings"

	"github.com/goosebones/pokemon/pkg/listing"
	domain "github.com/goosebones/pokemon/pkg/types"
)

// Source is the inventory the runner reads from and marks rows in.
type Source interface {
	// ReadAll returns every data row in sheet order.
	ReadAll(ctx context.Context) ([]domain.CardRow, error)
	// MarkProcessed persists the processed flag for the row at index.
	MarkProcessed(ctx context.Context, index int) error
	// Flush persists any buffered writes.
	Flush(ctx context.Context) error
	// Close releases the underlying resource.
	Close() error
}

// ImportRow is one inventory row as it appears in the sheet, condition code
// kept verbatim.
type ImportRow struct {
	Card          domain.CardRow
	ConditionCode string
}

// ProcessedMark is the value written to the processed column.
const ProcessedMark = "Y"

// FirstDataRow is the sheet row of the first card; row 1 is the header.
const FirstDataRow = 2

// Column order of the inventory, A through K.
const (
	colProcessed = iota
	colExternalID
	colName
	colCatalogNumber
	colFoil
	colRarity
	colSet
	colCondition
	colDefectNote
	colDefectLocation
	colStartPrice
	numColumns
)

// ParseProcessed reports whether a processed cell is truthy.
func ParseProcessed(raw string) bool {
	switch strings.ToUpper(strings.TrimSpace(raw)) {
	case "Y", "YES", "TRUE", "1", "X":
		return true
	default:
		return false
	}
}

// ParsePrice parses a start price cell such as "9.99", "$9.99" or "1,250".
// It reports false when the cell is not a number.
func ParsePrice(raw string) (float64, bool) {
	s := strings.TrimSpace(raw)
	s = strings.TrimPrefix(s, "$")
	s = strings.ReplaceAll(s, ",", "")
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// cells is one raw inventory row. Short rows read as empty trailing cells.
type cells []string

func (c cells) at(i int) string {
	if i >= len(c) {
		return ""
	}
	return strings.TrimSpace(c[i])
}

func (c cells) blank() bool {
	for i := range numColumns {
		if c.at(i) != "" {
			return false
		}
	}
	return true
}

// toCardRow converts raw cells at sheet row index. ok is false when the price
// cell is set but unparsable; the row is still returned with a zero price.
func (c cells) toCardRow(index int) (row domain.CardRow, ok bool) {
	price, ok := ParsePrice(c.at(colStartPrice))
	if c.at(colStartPrice) == "" {
		ok = true
	}
	return domain.CardRow{
		Index:          index,
		Processed:      ParseProcessed(c.at(colProcessed)),
		ExternalID:     c.at(colExternalID),
		Name:           c.at(colName),
		CatalogNumber:  c.at(colCatalogNumber),
		FoilVariant:    c.at(colFoil),
		Rarity:         c.at(colRarity),
		SetName:        c.at(colSet),
		Condition:      listing.ParseCondition(c.at(colCondition)),
		DefectNote:     c.at(colDefectNote),
		DefectLocation: c.at(colDefectLocation),
		StartPrice:     price,
	}, ok
}
