package notify

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goosebones/pokemon/internal/metrics"
	domain "github.com/goosebones/pokemon/pkg/types"
)

func testTrip() *BreakerTrip {
	return &BreakerTrip{
		RunID:      "run-1",
		Row:        3,
		ExternalID: "C2",
		ItemID:     "110553001234",
		ListingFee: 0.35,
		Currency:   "USD",
		Remaining:  4,
	}
}

func testSummary(failed int) *domain.RunSummary {
	start := time.Date(2025, 1, 15, 12, 0, 0, 0, time.UTC)
	sum := &domain.RunSummary{
		ID:         "run-1",
		StartedAt:  start,
		FinishedAt: start.Add(90 * time.Second),
	}
	sum.Record(domain.Listed(&domain.CardRow{Index: 2, ExternalID: "C1"}, "1001", 0))
	sum.Record(domain.Skipped(&domain.CardRow{Index: 3, ExternalID: "C2"}, domain.SkipAlreadyProcessed))
	for i := range failed {
		row := &domain.CardRow{Index: 4 + i, ExternalID: "F"}
		sum.Record(domain.Failed(row, domain.StageUpload, errors.New("missing folder")))
	}
	return sum
}

func discordServer(t *testing.T, status int, received *discordWebhookPayload) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.Equal(t, http.MethodPost, r.Method)
		assert.NoError(t, json.NewDecoder(r.Body).Decode(received))
		w.WriteHeader(status)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestDiscordNotifier_SendBreakerTrip(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		statusCode int
		wantErr    bool
		errMsg     string
	}{
		{name: "delivered", statusCode: http.StatusNoContent},
		{name: "discord returns 429 rate limited", statusCode: http.StatusTooManyRequests, wantErr: true, errMsg: "rate limited"},
		{name: "discord returns 400 error", statusCode: http.StatusBadRequest, wantErr: true, errMsg: "discord returned 400"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var received discordWebhookPayload
			srv := discordServer(t, tt.statusCode, &received)

			err := NewDiscordNotifier(srv.URL).SendBreakerTrip(context.Background(), testTrip())
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
				return
			}

			require.NoError(t, err)
			require.Len(t, received.Embeds, 1)
			embed := received.Embeds[0]
			assert.Equal(t, colorRed, embed.Color)
			assert.Contains(t, embed.Title, "0.35 USD")
			assert.Contains(t, embed.Title, "110553001234")

			fields := make(map[string]string)
			for _, f := range embed.Fields {
				fields[f.Name] = f.Value
			}
			assert.Equal(t, "3", fields["Row"])
			assert.Equal(t, "C2", fields["External ID"])
			assert.Equal(t, "4", fields["Rows Left"])
		})
	}
}

func TestDiscordNotifier_SendRunSummary(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		summary   func() *domain.RunSummary
		wantColor int
		wantDesc  string
	}{
		{
			name:      "clean run is green",
			summary:   func() *domain.RunSummary { return testSummary(0) },
			wantColor: colorGreen,
		},
		{
			name:      "failures are yellow and listed",
			summary:   func() *domain.RunSummary { return testSummary(2) },
			wantColor: colorYellow,
			wantDesc:  "row 4 (F) upload: missing folder",
		},
		{
			name:      "more than ten failures are truncated",
			summary:   func() *domain.RunSummary { return testSummary(12) },
			wantColor: colorYellow,
			wantDesc:  "... and 2 more",
		},
		{
			name: "breaker trip is red",
			summary: func() *domain.RunSummary {
				s := testSummary(0)
				s.Record(domain.Listed(&domain.CardRow{Index: 9, ExternalID: "C9"}, "1002", 0.35))
				return s
			},
			wantColor: colorRed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var received discordWebhookPayload
			srv := discordServer(t, http.StatusNoContent, &received)

			err := NewDiscordNotifier(srv.URL).SendRunSummary(context.Background(), tt.summary())
			require.NoError(t, err)
			require.Len(t, received.Embeds, 1)

			embed := received.Embeds[0]
			assert.Equal(t, tt.wantColor, embed.Color)
			assert.Equal(t, "2025-01-15T12:01:30Z", embed.Timestamp)
			if tt.wantDesc != "" {
				assert.Contains(t, embed.Description, tt.wantDesc)
			} else {
				assert.Empty(t, embed.Description)
			}
		})
	}
}

func TestDiscordNotifier_NetworkError(t *testing.T) {
	t.Parallel()

	d := NewDiscordNotifier("http://127.0.0.1:1") // nothing listening
	err := d.SendBreakerTrip(context.Background(), testTrip())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "sending discord webhook")
}

func TestDiscordNotifier_InvalidWebhookURL(t *testing.T) {
	t.Parallel()

	d := NewDiscordNotifier("://not-a-valid-url")
	err := d.SendRunSummary(context.Background(), testSummary(0))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "creating discord request")
}

func TestWithHTTPClient(t *testing.T) {
	t.Parallel()

	custom := &http.Client{}
	d := NewDiscordNotifier("https://example.com", WithHTTPClient(custom))
	assert.Same(t, custom, d.client)
}

func getNotificationHistogramSampleCount() uint64 {
	ch := make(chan prometheus.Metric, 1)
	metrics.NotificationDuration.Collect(ch)
	m := <-ch
	pb := &dto.Metric{}
	_ = m.Write(pb)
	return pb.GetHistogram().GetSampleCount()
}

func TestSendBreakerTrip_ObservesNotificationDuration(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	before := getNotificationHistogramSampleCount()

	err := NewDiscordNotifier(srv.URL).SendBreakerTrip(context.Background(), testTrip())
	require.NoError(t, err)

	after := getNotificationHistogramSampleCount()
	assert.Greater(t, after, before, "NotificationDuration histogram sample count should increase")
}
