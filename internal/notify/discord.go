package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	domain "github.com/goosebones/pokemon/pkg/types"
)

const (
	colorGreen  = 0x2ECC71 // clean run
	colorYellow = 0xF1C40F // run with failures
	colorRed    = 0xE74C3C // breaker tripped

	maxFailedLines = 10
)

// DiscordNotifier implements Notifier via Discord webhook.
type DiscordNotifier struct {
	webhookURL string
	client     *http.Client
}

// NewDiscordNotifier creates a new DiscordNotifier.
func NewDiscordNotifier(webhookURL string, opts ...DiscordOption) *DiscordNotifier {
	d := &DiscordNotifier{
		webhookURL: webhookURL,
		client:     http.DefaultClient,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// DiscordOption configures a DiscordNotifier.
type DiscordOption func(*DiscordNotifier)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(c *http.Client) DiscordOption {
	return func(d *DiscordNotifier) {
		d.client = c
	}
}

// discordWebhookPayload is the Discord webhook JSON structure.
type discordWebhookPayload struct {
	Embeds []discordEmbed `json:"embeds"`
}

type discordEmbed struct {
	Title       string              `json:"title"`
	Color       int                 `json:"color"`
	Description string              `json:"description,omitempty"`
	Fields      []discordEmbedField `json:"fields,omitempty"`
	Timestamp   string              `json:"timestamp,omitempty"`
}

type discordEmbedField struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Inline bool   `json:"inline"`
}

// SendBreakerTrip sends the trip as a red embed.
func (d *DiscordNotifier) SendBreakerTrip(ctx context.Context, trip *BreakerTrip) error {
	embed := discordEmbed{
		Title:       tripSubject(trip),
		Color:       colorRed,
		Description: "The batch stopped after this listing. Remaining rows were not attempted.",
		Fields: []discordEmbedField{
			{Name: "Item", Value: trip.ItemID, Inline: true},
			{Name: "Row", Value: strconv.Itoa(trip.Row), Inline: true},
			{Name: "External ID", Value: trip.ExternalID, Inline: true},
			{Name: "Fee", Value: fmt.Sprintf("%.2f %s", trip.ListingFee, trip.Currency), Inline: true},
			{Name: "Rows Left", Value: strconv.Itoa(trip.Remaining), Inline: true},
			{Name: "Run", Value: trip.RunID, Inline: false},
		},
	}
	return d.post(ctx, discordWebhookPayload{Embeds: []discordEmbed{embed}})
}

// SendRunSummary sends the run counters plus up to ten failed rows.
func (d *DiscordNotifier) SendRunSummary(ctx context.Context, sum *domain.RunSummary) error {
	embed := discordEmbed{
		Title: summarySubject(sum),
		Color: summaryColor(sum),
		Fields: []discordEmbedField{
			{Name: "Listed", Value: strconv.Itoa(sum.Listed), Inline: true},
			{Name: "Skipped", Value: strconv.Itoa(sum.Skipped), Inline: true},
			{Name: "Failed", Value: strconv.Itoa(sum.Failed), Inline: true},
			{Name: "Fees", Value: fmt.Sprintf("%.2f", sum.TotalFees), Inline: true},
			{Name: "Duration", Value: sum.Duration().Round(time.Second).String(), Inline: true},
			{Name: "Run", Value: sum.ID, Inline: false},
		},
	}
	if !sum.FinishedAt.IsZero() {
		embed.Timestamp = sum.FinishedAt.UTC().Format(time.RFC3339)
	}

	if failed := failedOutcomes(sum); len(failed) > 0 {
		var b strings.Builder
		limit := min(len(failed), maxFailedLines)
		for i := range limit {
			o := failed[i]
			fmt.Fprintf(&b, "row %d (%s) %s: %s\n", o.Row, o.ExternalID, o.Stage, o.Error)
		}
		if len(failed) > maxFailedLines {
			fmt.Fprintf(&b, "... and %d more", len(failed)-maxFailedLines)
		}
		embed.Description = strings.TrimRight(b.String(), "\n")
	}

	return d.post(ctx, discordWebhookPayload{Embeds: []discordEmbed{embed}})
}

func summaryColor(sum *domain.RunSummary) int {
	switch {
	case sum.BreakerTripped:
		return colorRed
	case sum.Failed > 0 || sum.Canceled:
		return colorYellow
	default:
		return colorGreen
	}
}

func (d *DiscordNotifier) post(ctx context.Context, payload discordWebhookPayload) (err error) {
	start := time.Now()
	defer func() { observe(start, err) }()

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshaling discord payload: %w", err)
	}

	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		d.webhookURL,
		bytes.NewReader(body),
	)
	if err != nil {
		return fmt.Errorf("creating discord request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := d.client.Do(req)
	if err != nil {
		return fmt.Errorf("sending discord webhook: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		return fmt.Errorf("discord rate limited (429)")
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, readErr := io.ReadAll(resp.Body)
		if readErr != nil {
			return fmt.Errorf("discord returned %d (body unreadable)", resp.StatusCode)
		}
		return fmt.Errorf("discord returned %d: %s", resp.StatusCode, respBody)
	}

	return nil
}
