package cmd

import (
	"github.com/spf13/cobra"

	"github.com/goosebones/pokemon/pkg/listing"
)

func previewCmd() *cobra.Command {
	var showAll bool

	cmd := &cobra.Command{
		Use:   "preview",
		Short: "Show the titles a run would submit, without calling eBay",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.Close()

			open, _, err := a.sourceOpener(cmd.Context())
			if err != nil {
				return err
			}
			src, err := open(cmd.Context())
			if err != nil {
				return err
			}
			defer func() { _ = src.Close() }()

			cards, err := src.ReadAll(cmd.Context())
			if err != nil {
				return err
			}

			titles := a.titleFormatter()
			lines := make([]previewLine, 0, len(cards))
			for i := range cards {
				row := &cards[i]
				if row.Processed && !showAll {
					continue
				}
				title := titles.FormatRow(row)
				lines = append(lines, previewLine{
					Row:        row.Index,
					ExternalID: row.ExternalID,
					Title:      title,
					Length:     listing.TitleLength(title),
					Fits:       listing.TitleFits(title),
					Processed:  row.Processed,
				})
			}

			if jsonOutput() {
				return printJSON(cmd.OutOrStdout(), lines)
			}
			return printPreview(cmd.OutOrStdout(), lines)
		},
	}

	cmd.Flags().BoolVar(&showAll, "all", false, "include rows already marked processed")

	return cmd
}
