package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	domain "github.com/goosebones/pokemon/pkg/types"
)

// tabWriter wraps tabwriter with error tracking.
type tabWriter struct {
	*tabwriter.Writer
	err error
}

func newTabWriter(w io.Writer) *tabWriter {
	return &tabWriter{Writer: tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)}
}

func (tw *tabWriter) writef(format string, args ...any) {
	if tw.err != nil {
		return
	}
	_, tw.err = fmt.Fprintf(tw.Writer, format, args...)
}

func (tw *tabWriter) finish() error {
	if tw.err != nil {
		return tw.err
	}
	return tw.Flush()
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func printSummary(w io.Writer, sum *domain.RunSummary) error {
	tw := newTabWriter(w)
	tw.writef("Run:\t%s\n", sum.ID)
	tw.writef("Duration:\t%s\n", sum.Duration().Round(time.Millisecond))
	tw.writef("Listed:\t%d\n", sum.Listed)
	tw.writef("Skipped:\t%d\n", sum.Skipped)
	tw.writef("Failed:\t%d\n", sum.Failed)
	tw.writef("Fees:\t%.2f\n", sum.TotalFees)
	if sum.TrippedBy != nil {
		tw.writef("Breaker:\ttripped by row %d (%s), item %s, fee %.2f\n",
			sum.TrippedBy.Row, sum.TrippedBy.ExternalID, sum.TrippedBy.ItemID, sum.TrippedBy.ListingFee)
	}
	if sum.Canceled {
		tw.writef("Canceled:\ttrue\n")
	}
	if err := tw.finish(); err != nil {
		return err
	}

	if len(sum.Outcomes) == 0 {
		return nil
	}
	if _, err := fmt.Fprintln(w); err != nil {
		return err
	}
	return printOutcomes(w, sum.Outcomes)
}

func printOutcomes(w io.Writer, outcomes []domain.Outcome) error {
	tw := newTabWriter(w)
	tw.writef("ROW\tEXTERNAL ID\tRESULT\tITEM\tFEE\tDETAIL\n")
	for i := range outcomes {
		o := &outcomes[i]
		detail := string(o.SkipReason)
		if o.Kind == domain.OutcomeFailed {
			detail = string(o.Stage) + ": " + o.Error
		}
		tw.writef("%d\t%s\t%s\t%s\t%.2f\t%s\n",
			o.Row, o.ExternalID, o.Kind, o.ItemID, o.ListingFee, detail)
	}
	return tw.finish()
}

func printItem(w io.Writer, item *domain.ListedItem) error {
	tw := newTabWriter(w)
	tw.writef("Item:\t%s\n", item.ItemID)
	tw.writef("Title:\t%s\n", item.Title)
	tw.writef("Status:\t%s\n", item.ListingStatus)
	tw.writef("Price:\t%.2f %s\n", item.CurrentPrice.Value, item.CurrentPrice.Currency)
	tw.writef("URL:\t%s\n", item.ViewURL)
	if !item.StartTime.IsZero() {
		tw.writef("Start:\t%s\n", item.StartTime.Format(time.RFC3339))
	}
	if !item.EndTime.IsZero() {
		tw.writef("End:\t%s\n", item.EndTime.Format(time.RFC3339))
	}
	tw.writef("Pictures:\t%d\n", len(item.PictureURLs))
	return tw.finish()
}

// previewLine is one row of the preview output.
type previewLine struct {
	Row        int    `json:"row"`
	ExternalID string `json:"external_id"`
	Title      string `json:"title"`
	Length     int    `json:"length"`
	Fits       bool   `json:"fits"`
	Processed  bool   `json:"processed"`
}

func printPreview(w io.Writer, lines []previewLine) error {
	tw := newTabWriter(w)
	tw.writef("ROW\tEXTERNAL ID\tLEN\tSTATUS\tTITLE\n")
	for _, l := range lines {
		status := "ok"
		switch {
		case l.Processed:
			status = "processed"
		case !l.Fits:
			status = "too long"
		}
		tw.writef("%d\t%s\t%d\t%s\t%s\n", l.Row, l.ExternalID, l.Length, status, l.Title)
	}
	return tw.finish()
}
