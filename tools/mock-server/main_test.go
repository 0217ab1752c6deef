package main

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/goosebones/pokemon/internal/ebay"
	domain "github.com/goosebones/pokemon/pkg/types"
)

func TestTokenHandler_Success(t *testing.T) {
	handler := tokenHandler(testLogger())
	req := httptest.NewRequest(http.MethodPost, "/identity/v1/oauth2/token", http.NoBody)
	req.SetBasicAuth("app-id", "cert-id")
	w := httptest.NewRecorder()

	handler(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status=%d, want %d", w.Code, http.StatusOK)
	}

	var resp map[string]any
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if resp["access_token"] == nil || resp["access_token"] == "" {
		t.Error("expected non-empty access_token")
	}
	if resp["expires_in"] != float64(7200) {
		t.Errorf("expires_in=%v, want 7200", resp["expires_in"])
	}
}

func TestTokenHandler_MissingAuth(t *testing.T) {
	handler := tokenHandler(testLogger())
	req := httptest.NewRequest(http.MethodPost, "/identity/v1/oauth2/token", http.NoBody)
	w := httptest.NewRecorder()

	handler(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status=%d, want %d", w.Code, http.StatusUnauthorized)
	}

	var resp map[string]string
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if resp["error"] != "invalid_client" {
		t.Errorf("error=%s, want invalid_client", resp["error"])
	}
}

// newTestClient points a real Trading client at a mock server.
func newTestClient(t *testing.T, freeListings int, fee float64) *ebay.TradingClient {
	t.Helper()

	m := newMockTrading(testLogger(), "http://mock.test", freeListings, fee)
	srv := httptest.NewServer(m)
	t.Cleanup(srv.Close)

	return ebay.NewTradingClient(
		ebay.StaticToken("test-token"),
		ebay.WithTradingURL(srv.URL),
		ebay.WithTradingLogger(testLogger()),
	)
}

func testPayload(title string) *domain.ListingPayload {
	return &domain.ListingPayload{
		Title:       title,
		Description: "desc",
		StartPrice:  domain.Amount{Value: 4.99, Currency: "USD"},
		CategoryID:  "183454",
		Quantity:    1,
		Duration:    "GTC",
		ListingType: "FixedPriceItem",
	}
}

func TestAddItem_FeesAfterFreeListings(t *testing.T) {
	c := newTestClient(t, 1, 0.35)
	ctx := context.Background()

	first, err := c.AddItem(ctx, testPayload("Pikachu 025/198 Scarlet & Violet"))
	if err != nil {
		t.Fatalf("first AddItem: %v", err)
	}
	if fee := first.Fees.ListingFee(); fee != 0 {
		t.Errorf("first listing fee=%v, want 0", fee)
	}

	second, err := c.AddItem(ctx, testPayload("Charizard 006/165 151"))
	if err != nil {
		t.Fatalf("second AddItem: %v", err)
	}
	if fee := second.Fees.ListingFee(); fee != 0.35 {
		t.Errorf("second listing fee=%v, want 0.35", fee)
	}
	if first.ItemID == second.ItemID {
		t.Errorf("item ids should differ, both %s", first.ItemID)
	}
}

func TestAddItem_TitleTooLong(t *testing.T) {
	c := newTestClient(t, 5, 0.35)

	_, err := c.AddItem(context.Background(), testPayload(strings.Repeat("x", 81)))

	var apiErr *ebay.APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("err=%v, want *ebay.APIError", err)
	}
	if !apiErr.HasCode("70") {
		t.Errorf("error codes=%v, want 70", apiErr.Errors)
	}
}

func TestGetItem(t *testing.T) {
	c := newTestClient(t, 5, 0.35)
	ctx := context.Background()

	res, err := c.AddItem(ctx, testPayload("Mew 151/165 151"))
	if err != nil {
		t.Fatalf("AddItem: %v", err)
	}

	item, err := c.GetItem(ctx, res.ItemID)
	if err != nil {
		t.Fatalf("GetItem: %v", err)
	}
	if item.Title != "Mew 151/165 151" {
		t.Errorf("title=%q", item.Title)
	}
	if item.ListingStatus != "Active" {
		t.Errorf("status=%q, want Active", item.ListingStatus)
	}
	if item.CurrentPrice.Value != 4.99 {
		t.Errorf("price=%v, want 4.99", item.CurrentPrice.Value)
	}
	if !strings.HasSuffix(item.ViewURL, "/itm/"+res.ItemID) {
		t.Errorf("view url=%q", item.ViewURL)
	}

	_, err = c.GetItem(ctx, "1")
	var apiErr *ebay.APIError
	if !errors.As(err, &apiErr) || !apiErr.HasCode("17") {
		t.Errorf("unknown item err=%v, want code 17", err)
	}
}

func TestUploadPicture(t *testing.T) {
	c := newTestClient(t, 5, 0.35)

	u, err := c.Put(context.Background(), "SV01-025/front.jpg", []byte("\xff\xd8\xff\xe0jpeg"))
	if err != nil {
		t.Fatalf("Put: %v", err)
	}
	if u != "http://mock.test/pictures/1/SV01-025/front.jpg" {
		t.Errorf("url=%q", u)
	}
}

func TestUploadPicture_Empty(t *testing.T) {
	c := newTestClient(t, 5, 0.35)

	_, err := c.Put(context.Background(), "empty.jpg", nil)
	if err == nil {
		t.Fatal("expected error for empty picture")
	}
}

func TestUnsupportedCall(t *testing.T) {
	m := newMockTrading(testLogger(), "http://mock.test", 0, 0)
	req := httptest.NewRequest(http.MethodPost, "/ws/api.dll", strings.NewReader("<x/>"))
	req.Header.Set("X-EBAY-API-CALL-NAME", "ReviseItem")
	w := httptest.NewRecorder()

	m.ServeHTTP(w, req)

	body := w.Body.String()
	if !strings.Contains(body, "<ReviseItemResponse>") || !strings.Contains(body, "<Ack>Failure</Ack>") {
		t.Errorf("body=%s", body)
	}
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
