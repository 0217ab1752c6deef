// Package main implements a mock eBay Trading API server for local
// development. It accepts AddItem, GetItem and UploadSiteHostedPictures calls
// and the OAuth token endpoint without requiring real eBay credentials.
package main

import (
	"encoding/json"
	"encoding/xml"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"mime/multipart"
	"net/http"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/goosebones/pokemon/internal/ebay"
)

const firstItemID = 110553000000

func main() {
	port := flag.Int("port", 8089, "port to listen on")
	freeListings := flag.Int("free-listings", 5, "number of AddItem calls charged no listing fee")
	fee := flag.Float64("fee", 0.35, "listing fee charged once the free listings are used up")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	addr := fmt.Sprintf(":%d", *port)
	trading := newMockTrading(logger, "http://localhost"+addr, *freeListings, *fee)

	mux := http.NewServeMux()
	mux.HandleFunc("POST /identity/v1/oauth2/token", tokenHandler(logger))
	mux.HandleFunc("POST /ws/api.dll", trading.ServeHTTP)

	logger.Info("starting mock eBay server", "addr", addr, "free_listings", *freeListings, "fee", *fee)

	srv := &http.Server{
		Addr:         addr,
		Handler:      requestLogger(logger, mux),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}
	if err := srv.ListenAndServe(); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func requestLogger(logger *slog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"call", r.Header.Get("X-EBAY-API-CALL-NAME"),
		)
		next.ServeHTTP(w, r)
	})
}

func tokenHandler(logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		// Validate Basic Auth header is present (don't verify creds).
		if _, _, ok := r.BasicAuth(); !ok {
			logger.Warn("token request missing Basic Auth header")
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			//nolint:errcheck,gosec // best-effort write to HTTP response in mock server
			json.NewEncoder(w).Encode(map[string]string{
				"error":             "invalid_client",
				"error_description": "client authentication failed",
			})
			return
		}

		w.Header().Set("Content-Type", "application/json")
		//nolint:errcheck,gosec // best-effort write to HTTP response in mock server
		json.NewEncoder(w).Encode(map[string]any{
			"access_token": "mock-token-v1-" + strconv.FormatInt(int64(os.Getpid()), 16),
			"expires_in":   7200,
			"token_type":   "User Access Token",
		})
		logger.Info("issued mock token")
	}
}

// mockTrading keeps listed items in memory. The first freeListings AddItem
// calls are charged no listing fee; every later one is charged fee.
type mockTrading struct {
	log          *slog.Logger
	baseURL      string
	freeListings int
	fee          float64

	mu       sync.Mutex
	nextID   int64
	listed   int
	pictures int
	items    map[string]ebay.Item
}

func newMockTrading(logger *slog.Logger, baseURL string, freeListings int, fee float64) *mockTrading {
	return &mockTrading{
		log:          logger,
		baseURL:      baseURL,
		freeListings: freeListings,
		fee:          fee,
		nextID:       firstItemID,
		items:        make(map[string]ebay.Item),
	}
}

func (m *mockTrading) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	call := r.Header.Get("X-EBAY-API-CALL-NAME")

	var (
		resp any
		err  error
	)
	switch call {
	case ebay.CallAddItem:
		resp, err = m.addItem(r)
	case ebay.CallGetItem:
		resp, err = m.getItem(r)
	case ebay.CallUploadSiteHostedPictures:
		resp, err = m.uploadPicture(r)
	default:
		resp, err = nil, fmt.Errorf("unsupported call %q", call)
	}

	if err != nil {
		m.log.Warn("trading call failed", "call", call, "error", err)
		resp = failure(call, "2", err.Error())
	}

	w.Header().Set("Content-Type", "text/xml; charset=utf-8")
	//nolint:errcheck,gosec // best-effort write to HTTP response in mock server
	io.WriteString(w, xml.Header)
	//nolint:errcheck,gosec // best-effort write to HTTP response in mock server
	xml.NewEncoder(w).Encode(resp)
}

func (m *mockTrading) addItem(r *http.Request) (any, error) {
	var req ebay.AddItemRequest
	if err := xml.NewDecoder(r.Body).Decode(&req); err != nil {
		return nil, fmt.Errorf("decoding AddItem: %w", err)
	}
	if req.Item.Title == "" {
		return failure(ebay.CallAddItem, "37", "Title is required."), nil
	}
	if len([]rune(req.Item.Title)) > 80 {
		return failure(ebay.CallAddItem, "70", "The title may not be more than 80 characters."), nil
	}

	m.mu.Lock()
	m.nextID++
	m.listed++
	itemID := strconv.FormatInt(m.nextID, 10)
	listingFee := 0.0
	if m.listed > m.freeListings {
		listingFee = m.fee
	}
	now := time.Now().UTC()
	item := req.Item
	item.ItemID = itemID
	item.SellingStatus = &ebay.SellingStatus{
		CurrentPrice:  derefAmount(req.Item.StartPrice),
		ListingStatus: "Active",
	}
	item.ListingDetails = &ebay.ListingDetails{
		StartTime:   now,
		EndTime:     now.Add(7 * 24 * time.Hour),
		ViewItemURL: m.baseURL + "/itm/" + itemID,
	}
	m.items[itemID] = item
	m.mu.Unlock()

	m.log.Info("listed item", "item_id", itemID, "title", req.Item.Title, "listing_fee", listingFee)

	currency := req.Item.Currency
	return &ebay.AddItemResponse{
		ResponseHeader: success(),
		ItemID:         itemID,
		StartTime:      now.Format(time.RFC3339),
		EndTime:        now.Add(7 * 24 * time.Hour).Format(time.RFC3339),
		Fees: ebay.Fees{Fee: []ebay.FeeType{
			{Name: "InsertionFee", Fee: ebay.AmountType{Value: listingFee, CurrencyID: currency}},
			{Name: "ListingFee", Fee: ebay.AmountType{Value: listingFee, CurrencyID: currency}},
		}},
	}, nil
}

func (m *mockTrading) getItem(r *http.Request) (any, error) {
	var req ebay.GetItemRequest
	if err := xml.NewDecoder(r.Body).Decode(&req); err != nil {
		return nil, fmt.Errorf("decoding GetItem: %w", err)
	}

	m.mu.Lock()
	item, ok := m.items[req.ItemID]
	m.mu.Unlock()
	if !ok {
		return failure(ebay.CallGetItem, "17", "This item cannot be accessed because the listing has been deleted or you are not the seller."), nil
	}

	return &ebay.GetItemResponse{ResponseHeader: success(), Item: item}, nil
}

func (m *mockTrading) uploadPicture(r *http.Request) (any, error) {
	mediaType, params, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if err != nil || !strings.HasPrefix(mediaType, "multipart/") {
		return nil, errors.New("picture upload must be multipart")
	}

	var (
		req  ebay.UploadSiteHostedPicturesRequest
		size int64
	)
	mr := multipart.NewReader(r.Body, params["boundary"])
	for {
		part, err := mr.NextPart()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading multipart body: %w", err)
		}
		switch part.FormName() {
		case "XML Payload":
			if err := xml.NewDecoder(part).Decode(&req); err != nil {
				return nil, fmt.Errorf("decoding UploadSiteHostedPictures: %w", err)
			}
		case "image":
			if size, err = io.Copy(io.Discard, part); err != nil {
				return nil, fmt.Errorf("reading image part: %w", err)
			}
		}
	}
	if size == 0 {
		return failure(ebay.CallUploadSiteHostedPictures, "21916587", "No picture data was received."), nil
	}

	m.mu.Lock()
	m.pictures++
	n := m.pictures
	m.mu.Unlock()

	fullURL := fmt.Sprintf("%s/pictures/%d/%s", m.baseURL, n, req.PictureName)
	m.log.Info("hosted picture", "name", req.PictureName, "bytes", size, "url", fullURL)

	return &ebay.UploadSiteHostedPicturesResponse{
		ResponseHeader: success(),
		SiteHostedPictureDetails: ebay.SiteHostedPictureDetails{
			PictureName: req.PictureName,
			PictureSet:  req.PictureSet,
			FullURL:     fullURL,
		},
	}, nil
}

func success() ebay.ResponseHeader {
	return ebay.ResponseHeader{
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Ack:       ebay.AckSuccess,
		Version:   "1131",
	}
}

// failureResponse is a generic Trading API error envelope; the element name
// follows the call.
type failureResponse struct {
	XMLName xml.Name
	ebay.ResponseHeader
}

func failure(call, code, msg string) *failureResponse {
	h := success()
	h.Ack = ebay.AckFailure
	h.Errors = []ebay.ErrorType{{
		ShortMessage: msg,
		LongMessage:  msg,
		ErrorCode:    code,
		SeverityCode: "Error",
	}}
	name := call + "Response"
	if call == "" {
		name = "ErrorResponse"
	}
	return &failureResponse{XMLName: xml.Name{Local: name}, ResponseHeader: h}
}

func derefAmount(a *ebay.AmountType) ebay.AmountType {
	if a == nil {
		return ebay.AmountType{}
	}
	return *a
}
