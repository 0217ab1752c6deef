package rows

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/xuri/excelize/v2"

	domain "github.com/goosebones/pokemon/pkg/types"
)

// XLSXSource reads rows from an Excel workbook. MarkProcessed saves the
// workbook straight away so a crash never loses a listed row's flag.
type XLSXSource struct {
	file  *excelize.File
	path  string
	sheet string
	dirty bool
	log   *slog.Logger
}

// XLSXOption configures an XLSXSource.
type XLSXOption func(*XLSXSource)

// WithXLSXLogger sets the logger.
func WithXLSXLogger(l *slog.Logger) XLSXOption {
	return func(s *XLSXSource) {
		s.log = l
	}
}

// OpenXLSX opens the workbook at path. An empty sheet selects the first one.
func OpenXLSX(path, sheet string, opts ...XLSXOption) (*XLSXSource, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("opening workbook %s: %w", path, err)
	}

	if sheet == "" {
		sheet = f.GetSheetName(0)
	}
	if idx, err := f.GetSheetIndex(sheet); err != nil || idx < 0 {
		_ = f.Close()
		return nil, fmt.Errorf("workbook %s has no sheet %q", path, sheet)
	}

	s := &XLSXSource{
		file:  f,
		path:  path,
		sheet: sheet,
		log:   slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// ReadAll implements Source. Blank rows are dropped.
func (s *XLSXSource) ReadAll(ctx context.Context) ([]domain.CardRow, error) {
	imported, err := s.ImportRows(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]domain.CardRow, 0, len(imported))
	for i := range imported {
		out = append(out, imported[i].Card)
	}
	return out, nil
}

// ImportRows is ReadAll with the raw condition codes kept, for loading the
// sheet into another backend.
func (s *XLSXSource) ImportRows(_ context.Context) ([]ImportRow, error) {
	raw, err := s.file.GetRows(s.sheet)
	if err != nil {
		return nil, fmt.Errorf("reading sheet %q: %w", s.sheet, err)
	}

	var out []ImportRow
	for i, r := range raw {
		index := i + 1
		if index < FirstDataRow {
			continue
		}
		c := cells(r)
		if c.blank() {
			continue
		}
		row, ok := c.toCardRow(index)
		if !ok {
			s.log.Warn("unparsable start price", "row", index, "value", c.at(colStartPrice))
		}
		out = append(out, ImportRow{Card: row, ConditionCode: c.at(colCondition)})
	}
	return out, nil
}

// MarkProcessed implements Source.
func (s *XLSXSource) MarkProcessed(_ context.Context, index int) error {
	if index < FirstDataRow {
		return fmt.Errorf("row %d is not a data row", index)
	}

	cell, err := excelize.CoordinatesToCellName(colProcessed+1, index)
	if err != nil {
		return fmt.Errorf("resolving cell for row %d: %w", index, err)
	}
	if err := s.file.SetCellValue(s.sheet, cell, ProcessedMark); err != nil {
		return fmt.Errorf("setting %s: %w", cell, err)
	}
	s.dirty = true

	return s.save()
}

// Flush implements Source.
func (s *XLSXSource) Flush(_ context.Context) error {
	if !s.dirty {
		return nil
	}
	return s.save()
}

// Close implements Source.
func (s *XLSXSource) Close() error {
	return s.file.Close()
}

func (s *XLSXSource) save() error {
	if err := s.file.Save(); err != nil {
		return fmt.Errorf("saving workbook %s: %w", s.path, err)
	}
	s.dirty = false
	return nil
}
