package notify

import (
	"context"
	"errors"
	"fmt"
	"html"
	"strings"
	"time"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"

	domain "github.com/goosebones/pokemon/pkg/types"
)

const (
	defaultSendGridHost = "https://api.sendgrid.com"
	sendGridMailPath    = "/v3/mail/send"
	defaultFromName     = "card-lister"
)

// EmailNotifier implements Notifier with the SendGrid v3 mail API.
type EmailNotifier struct {
	apiKey string
	host   string
	from   *mail.Email
	to     *mail.Email
}

// EmailOption configures an EmailNotifier.
type EmailOption func(*EmailNotifier)

// WithSendGridHost overrides the SendGrid API host.
func WithSendGridHost(host string) EmailOption {
	return func(e *EmailNotifier) {
		e.host = strings.TrimRight(host, "/")
	}
}

// WithFromName sets the sender display name.
func WithFromName(name string) EmailOption {
	return func(e *EmailNotifier) {
		if name != "" {
			e.from.Name = name
		}
	}
}

// NewEmailNotifier creates a notifier sending from one address to another.
func NewEmailNotifier(apiKey, from, to string, opts ...EmailOption) (*EmailNotifier, error) {
	if apiKey == "" {
		return nil, errors.New("sendgrid api key is empty")
	}
	if from == "" {
		return nil, errors.New("from address is empty")
	}
	if to == "" {
		return nil, errors.New("to address is empty")
	}

	e := &EmailNotifier{
		apiKey: apiKey,
		host:   defaultSendGridHost,
		from:   mail.NewEmail(defaultFromName, from),
		to:     mail.NewEmail("", to),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// SendBreakerTrip implements Notifier.
func (e *EmailNotifier) SendBreakerTrip(ctx context.Context, trip *BreakerTrip) error {
	var b strings.Builder
	fmt.Fprintf(&b, "Run %s stopped after item %s was charged a listing fee.\n\n", trip.RunID, trip.ItemID)
	fmt.Fprintf(&b, "Row: %d\n", trip.Row)
	fmt.Fprintf(&b, "External ID: %s\n", trip.ExternalID)
	fmt.Fprintf(&b, "Listing fee: %.2f %s\n", trip.ListingFee, trip.Currency)
	fmt.Fprintf(&b, "Rows not attempted: %d\n", trip.Remaining)

	return e.send(ctx, tripSubject(trip), b.String())
}

// SendRunSummary implements Notifier.
func (e *EmailNotifier) SendRunSummary(ctx context.Context, sum *domain.RunSummary) error {
	var b strings.Builder
	fmt.Fprintf(&b, "Run %s\n", sum.ID)
	fmt.Fprintf(&b, "Started: %s\n", sum.StartedAt.UTC().Format(time.RFC3339))
	fmt.Fprintf(&b, "Duration: %s\n\n", sum.Duration().Round(time.Second))
	fmt.Fprintf(&b, "Listed: %d\nSkipped: %d\nFailed: %d\n", sum.Listed, sum.Skipped, sum.Failed)
	fmt.Fprintf(&b, "Listing fees: %.2f\n", sum.TotalFees)

	for _, o := range sum.Outcomes {
		switch o.Kind {
		case domain.OutcomeListed:
			fmt.Fprintf(&b, "\nrow %d (%s) listed as %s", o.Row, o.ExternalID, o.ItemID)
		case domain.OutcomeFailed:
			fmt.Fprintf(&b, "\nrow %d (%s) failed at %s: %s", o.Row, o.ExternalID, o.Stage, o.Error)
		case domain.OutcomeSkipped:
		}
	}

	return e.send(ctx, summarySubject(sum), b.String())
}

func (e *EmailNotifier) send(ctx context.Context, subject, body string) (err error) {
	start := time.Now()
	defer func() { observe(start, err) }()

	message := mail.NewSingleEmail(
		e.from,
		subject,
		e.to,
		body,
		"<pre>"+html.EscapeString(body)+"</pre>",
	)

	req := sendgrid.GetRequest(e.apiKey, sendGridMailPath, e.host)
	req.Method = "POST"
	req.Body = mail.GetRequestBody(message)

	resp, err := sendgrid.MakeRequestWithContext(ctx, req)
	if err != nil {
		return fmt.Errorf("sendgrid send error: %w", err)
	}
	if resp.StatusCode >= 400 {
		return fmt.Errorf("sendgrid send failed: status=%d, body=%s", resp.StatusCode, resp.Body)
	}
	return nil
}
