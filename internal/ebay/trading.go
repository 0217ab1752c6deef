package ebay

import (
	"bytes"
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strconv"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/goosebones/pokemon/internal/metrics"
	"github.com/goosebones/pokemon/internal/tracing"
	domain "github.com/goosebones/pokemon/pkg/types"
)

const (
	defaultTradingURL  = "https://api.ebay.com/ws/api.dll"
	defaultCompatLevel = 1131
	defaultPictureSet  = "Supersize"
)

// Trading API call names.
const (
	CallAddItem                  = "AddItem"
	CallGetItem                  = "GetItem"
	CallUploadSiteHostedPictures = "UploadSiteHostedPictures"
)

// TradingClient implements ListingClient and ItemGetter against the eBay
// Trading API. It also hosts pictures on eBay Picture Services.
type TradingClient struct {
	tokens          TokenProvider
	tradingURL      string
	siteID          int
	compatLevel     int
	bodyCredentials bool
	client          *http.Client
	rateLimiter     *RateLimiter
	log             *slog.Logger
}

// TradingOption configures the TradingClient.
type TradingOption func(*TradingClient)

// WithTradingURL overrides the default Trading API endpoint.
func WithTradingURL(u string) TradingOption {
	return func(c *TradingClient) {
		c.tradingURL = u
	}
}

// WithTradingHTTPClient overrides the default HTTP client.
func WithTradingHTTPClient(hc *http.Client) TradingOption {
	return func(c *TradingClient) {
		c.client = hc
	}
}

// WithSiteID sets the marketplace site (0 is eBay US).
func WithSiteID(id int) TradingOption {
	return func(c *TradingClient) {
		c.siteID = id
	}
}

// WithCompatLevel sets the X-EBAY-API-COMPATIBILITY-LEVEL header.
func WithCompatLevel(level int) TradingOption {
	return func(c *TradingClient) {
		if level > 0 {
			c.compatLevel = level
		}
	}
}

// WithRequesterCredentials sends the token as an Auth'n'Auth
// RequesterCredentials element instead of the OAuth header.
func WithRequesterCredentials() TradingOption {
	return func(c *TradingClient) {
		c.bodyCredentials = true
	}
}

// WithRateLimiter injects a rate limiter that controls per-second and daily
// API call limits. When set, every call goes through Wait() first.
func WithRateLimiter(r *RateLimiter) TradingOption {
	return func(c *TradingClient) {
		c.rateLimiter = r
	}
}

// WithTradingLogger sets the logger for call tracing.
func WithTradingLogger(l *slog.Logger) TradingOption {
	return func(c *TradingClient) {
		c.log = l
	}
}

// NewTradingClient creates a new eBay Trading API client.
func NewTradingClient(tokens TokenProvider, opts ...TradingOption) *TradingClient {
	c := &TradingClient{
		tokens:      tokens,
		tradingURL:  defaultTradingURL,
		compatLevel: defaultCompatLevel,
		client:      &http.Client{Timeout: 60 * time.Second},
		log:         slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type tradingRequest interface {
	requestHeader() *RequestHeader
}

type tradingResponse interface {
	responseHeader() *ResponseHeader
}

// AddItem implements ListingClient.AddItem.
func (c *TradingClient) AddItem(
	ctx context.Context,
	p *domain.ListingPayload,
) (*domain.SubmitResult, error) {
	req := &AddItemRequest{Item: ToItem(p)}
	req.ErrorLanguage = "en_US"
	req.WarningLevel = "High"

	var resp AddItemResponse
	if err := c.call(ctx, CallAddItem, req, nil, &resp); err != nil {
		return nil, err
	}
	if resp.ItemID == "" {
		return nil, fmt.Errorf("%s response has no ItemID", CallAddItem)
	}

	return ToSubmitResult(&resp), nil
}

// GetItem implements ItemGetter.GetItem.
func (c *TradingClient) GetItem(ctx context.Context, itemID string) (*domain.ListedItem, error) {
	req := &GetItemRequest{ItemID: itemID, DetailLevel: "ReturnAll"}

	var resp GetItemResponse
	if err := c.call(ctx, CallGetItem, req, nil, &resp); err != nil {
		return nil, err
	}

	return ToListedItem(&resp.Item), nil
}

// Put uploads one picture to eBay Picture Services and returns its hosted
// URL. It satisfies media.PictureStore.
func (c *TradingClient) Put(ctx context.Context, name string, data []byte) (string, error) {
	req := &UploadSiteHostedPicturesRequest{
		PictureName: name,
		PictureSet:  defaultPictureSet,
	}

	var resp UploadSiteHostedPicturesResponse
	if err := c.call(ctx, CallUploadSiteHostedPictures, req, &picture{name: name, data: data}, &resp); err != nil {
		return "", err
	}

	u := resp.SiteHostedPictureDetails.FullURL
	if u == "" {
		return "", fmt.Errorf("%s response has no FullURL for %s", CallUploadSiteHostedPictures, name)
	}
	return u, nil
}

type picture struct {
	name string
	data []byte
}

func (c *TradingClient) call(
	ctx context.Context,
	callName string,
	req tradingRequest,
	pic *picture,
	resp tradingResponse,
) (err error) {
	ctx, span := tracing.Start(ctx, "ebay."+callName,
		attribute.String("ebay.call", callName),
		attribute.Int("ebay.site_id", c.siteID),
	)
	defer func() { tracing.End(span, err) }()

	err = c.attempt(ctx, callName, req, pic, resp)

	// A rejected token means eBay did nothing with the request, so one retry
	// with a fresh token is safe even for AddItem.
	if inv, ok := c.tokens.(TokenInvalidator); ok && isTokenRejected(err) {
		c.log.Info("trading API rejected token, refreshing", "call", callName)
		inv.Invalidate()
		resp.responseHeader().Errors = nil
		span.AddEvent("token refreshed")
		err = c.attempt(ctx, callName, req, pic, resp)
	}

	span.SetAttributes(attribute.String("ebay.ack", resp.responseHeader().Ack))
	return err
}

func (c *TradingClient) attempt(
	ctx context.Context,
	callName string,
	req tradingRequest,
	pic *picture,
	resp tradingResponse,
) error {
	if c.rateLimiter != nil {
		if err := c.rateLimiter.Wait(ctx); err != nil {
			if errors.Is(err, ErrDailyLimitReached) {
				metrics.EbayDailyLimitHits.Inc()
			}
			return fmt.Errorf("rate limit: %w", err)
		}
		metrics.EbayDailyUsage.Set(float64(c.rateLimiter.DailyCount()))
	}
	metrics.EbayAPICallsTotal.WithLabelValues(callName).Inc()

	token, err := c.tokens.Token(ctx)
	if err != nil {
		return fmt.Errorf("getting auth token: %w", err)
	}

	if c.bodyCredentials {
		req.requestHeader().RequesterCredentials = &RequesterCredentials{EBayAuthToken: token}
	}

	body, contentType, err := encodeRequest(req, pic)
	if err != nil {
		return fmt.Errorf("encoding %s request: %w", callName, err)
	}

	start := time.Now()
	err = c.do(ctx, callName, token, contentType, body, resp)
	c.log.Debug("trading API call",
		"call", callName,
		"duration", time.Since(start),
		"ack", resp.responseHeader().Ack,
		"error", err,
	)
	if err != nil {
		metrics.EbayAPIErrorsTotal.WithLabelValues(callName).Inc()
	}
	return err
}

func (c *TradingClient) do(
	ctx context.Context,
	callName, token, contentType string,
	body []byte,
	resp tradingResponse,
) error {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.tradingURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("creating HTTP request: %w", err)
	}

	httpReq.Header.Set("Content-Type", contentType)
	httpReq.Header.Set("X-EBAY-API-CALL-NAME", callName)
	httpReq.Header.Set("X-EBAY-API-SITEID", strconv.Itoa(c.siteID))
	httpReq.Header.Set("X-EBAY-API-COMPATIBILITY-LEVEL", strconv.Itoa(c.compatLevel))
	if !c.bodyCredentials {
		httpReq.Header.Set("X-EBAY-API-IAF-TOKEN", token)
	}

	httpResp, err := c.client.Do(httpReq)
	if err != nil {
		return fmt.Errorf("executing %s request: %w", callName, err)
	}
	defer httpResp.Body.Close()

	respBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return fmt.Errorf("reading response body: %w", err)
	}

	if httpResp.StatusCode != http.StatusOK {
		return fmt.Errorf(
			"eBay API error (status %d): %s",
			httpResp.StatusCode,
			string(respBody),
		)
	}

	if err := xml.Unmarshal(respBody, resp); err != nil {
		return fmt.Errorf("parsing %s response: %w", callName, err)
	}

	return c.checkAck(callName, resp.responseHeader())
}

func (c *TradingClient) checkAck(callName string, h *ResponseHeader) error {
	switch h.Ack {
	case AckSuccess:
		return nil
	case AckWarning:
		for _, e := range h.Errors {
			c.log.Warn("trading API warning", "call", callName, "code", e.ErrorCode, "message", e.LongMessage)
		}
		return nil
	case AckFailure, AckPartialFailure:
		return &APIError{Call: callName, Ack: h.Ack, Errors: h.Errors}
	default:
		return fmt.Errorf("%s: unexpected Ack %q", callName, h.Ack)
	}
}

// encodeRequest renders req as an XML document. With a picture it becomes the
// first part of a multipart body whose second part is the raw image.
func encodeRequest(req tradingRequest, pic *picture) ([]byte, string, error) {
	payload, err := xml.Marshal(req)
	if err != nil {
		return nil, "", err
	}
	payload = append([]byte(xml.Header), payload...)

	if pic == nil {
		return payload, "text/xml; charset=utf-8", nil
	}

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	xmlPart, err := mw.CreatePart(textproto.MIMEHeader{
		"Content-Disposition": {`form-data; name="XML Payload"`},
		"Content-Type":        {"text/xml; charset=utf-8"},
	})
	if err != nil {
		return nil, "", err
	}
	if _, err := xmlPart.Write(payload); err != nil {
		return nil, "", err
	}

	imgPart, err := mw.CreatePart(textproto.MIMEHeader{
		"Content-Disposition":       {fmt.Sprintf(`form-data; name="image"; filename=%q`, pic.name)},
		"Content-Type":              {"application/octet-stream"},
		"Content-Transfer-Encoding": {"binary"},
	})
	if err != nil {
		return nil, "", err
	}
	if _, err := imgPart.Write(pic.data); err != nil {
		return nil, "", err
	}

	if err := mw.Close(); err != nil {
		return nil, "", err
	}

	return buf.Bytes(), mw.FormDataContentType(), nil
}
