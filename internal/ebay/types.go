package ebay

import (
	"encoding/xml"
	"errors"
	"fmt"
	"strings"
	"time"
)

// Ack values returned by every Trading API call.
const (
	AckSuccess        = "Success"
	AckWarning        = "Warning"
	AckFailure        = "Failure"
	AckPartialFailure = "PartialFailure"
)

// RequesterCredentials carries an Auth'n'Auth token inside the request body.
type RequesterCredentials struct {
	EBayAuthToken string `xml:"eBayAuthToken"`
}

// RequestHeader holds the fields shared by every Trading API request.
type RequestHeader struct {
	RequesterCredentials *RequesterCredentials `xml:"RequesterCredentials,omitempty"`
	ErrorLanguage        string                `xml:"ErrorLanguage,omitempty"`
	WarningLevel         string                `xml:"WarningLevel,omitempty"`
}

func (h *RequestHeader) requestHeader() *RequestHeader { return h }

// ResponseHeader holds the fields shared by every Trading API response.
type ResponseHeader struct {
	Timestamp     string      `xml:"Timestamp"`
	Ack           string      `xml:"Ack"`
	CorrelationID string      `xml:"CorrelationID"`
	Version       string      `xml:"Version"`
	Build         string      `xml:"Build"`
	Errors        []ErrorType `xml:"Errors"`
}

func (h *ResponseHeader) responseHeader() *ResponseHeader { return h }

// ErrorType is one entry of a response's Errors list.
type ErrorType struct {
	ShortMessage        string `xml:"ShortMessage"`
	LongMessage         string `xml:"LongMessage"`
	ErrorCode           string `xml:"ErrorCode"`
	SeverityCode        string `xml:"SeverityCode"` // Error, Warning
	ErrorClassification string `xml:"ErrorClassification"`
}

func (e ErrorType) String() string {
	msg := e.LongMessage
	if msg == "" {
		msg = e.ShortMessage
	}
	return e.ErrorCode + ": " + msg
}

// APIError is returned when a call's Ack is Failure or PartialFailure.
type APIError struct {
	Call   string
	Ack    string
	Errors []ErrorType
}

func (e *APIError) Error() string {
	msgs := make([]string, 0, len(e.Errors))
	for _, et := range e.Errors {
		if et.SeverityCode == "Warning" {
			continue
		}
		msgs = append(msgs, et.String())
	}
	if len(msgs) == 0 {
		return fmt.Sprintf("%s failed (%s)", e.Call, e.Ack)
	}
	return fmt.Sprintf("%s failed (%s): %s", e.Call, e.Ack, strings.Join(msgs, "; "))
}

// HasCode reports whether any error entry has the given code.
func (e *APIError) HasCode(code string) bool {
	for _, et := range e.Errors {
		if et.ErrorCode == code {
			return true
		}
	}
	return false
}

// Error codes eBay returns when the auth token is invalid, expired or
// revoked.
var tokenErrorCodes = []string{"931", "932", "16110", "21917053"}

func isTokenRejected(err error) bool {
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		return false
	}
	for _, code := range tokenErrorCodes {
		if apiErr.HasCode(code) {
			return true
		}
	}
	return false
}

// AmountType is a money value with its currency attribute.
type AmountType struct {
	Value      float64 `xml:",chardata"`
	CurrencyID string  `xml:"currencyID,attr,omitempty"`
}

// Category identifies a marketplace category.
type Category struct {
	CategoryID string `xml:"CategoryID"`
}

// PictureDetails lists the pictures shown on a listing.
type PictureDetails struct {
	PictureURL []string `xml:"PictureURL"`
}

// ReturnPolicy is the inline return policy block.
type ReturnPolicy struct {
	ReturnsAcceptedOption string `xml:"ReturnsAcceptedOption"`
}

// ShippingServiceOption is one domestic shipping service.
type ShippingServiceOption struct {
	ShippingServicePriority int         `xml:"ShippingServicePriority"`
	ShippingService         string      `xml:"ShippingService"`
	ShippingServiceCost     *AmountType `xml:"ShippingServiceCost,omitempty"`
	FreeShipping            bool        `xml:"FreeShipping,omitempty"`
	ExpeditedService        bool        `xml:"ExpeditedService,omitempty"`
}

// ShippingDetails is the inline shipping block.
type ShippingDetails struct {
	ShippingType           string                  `xml:"ShippingType"`
	ShippingServiceOptions []ShippingServiceOption `xml:"ShippingServiceOptions"`
}

// SellerProfiles references the seller's business policies.
type SellerProfiles struct {
	SellerPaymentProfile  *SellerPaymentProfile  `xml:"SellerPaymentProfile,omitempty"`
	SellerShippingProfile *SellerShippingProfile `xml:"SellerShippingProfile,omitempty"`
	SellerReturnProfile   *SellerReturnProfile   `xml:"SellerReturnProfile,omitempty"`
}

// SellerPaymentProfile references a payment business policy.
type SellerPaymentProfile struct {
	PaymentProfileID int64 `xml:"PaymentProfileID"`
}

// SellerShippingProfile references a shipping business policy.
type SellerShippingProfile struct {
	ShippingProfileID int64 `xml:"ShippingProfileID"`
}

// SellerReturnProfile references a return business policy.
type SellerReturnProfile struct {
	ReturnProfileID int64 `xml:"ReturnProfileID"`
}

// NameValueList is one item specific.
type NameValueList struct {
	Name  string   `xml:"Name"`
	Value []string `xml:"Value"`
}

// ItemSpecifics lists an item's specifics.
type ItemSpecifics struct {
	NameValueList []NameValueList `xml:"NameValueList"`
}

// SellingStatus is returned by GetItem.
type SellingStatus struct {
	CurrentPrice  AmountType `xml:"CurrentPrice"`
	ListingStatus string     `xml:"ListingStatus"`
}

// ListingDetails is returned by GetItem.
type ListingDetails struct {
	StartTime   time.Time `xml:"StartTime"`
	EndTime     time.Time `xml:"EndTime"`
	ViewItemURL string    `xml:"ViewItemURL"`
}

// Item is the Trading API ItemType. Request-only and response-only fields
// share the struct; unset fields are omitted on the wire.
type Item struct {
	ItemID             string           `xml:"ItemID,omitempty"`
	Title              string           `xml:"Title,omitempty"`
	Description        string           `xml:"Description,omitempty"`
	PrimaryCategory    *Category        `xml:"PrimaryCategory,omitempty"`
	StartPrice         *AmountType      `xml:"StartPrice,omitempty"`
	ConditionID        int              `xml:"ConditionID,omitempty"`
	Country            string           `xml:"Country,omitempty"`
	Currency           string           `xml:"Currency,omitempty"`
	DispatchTimeMax    int              `xml:"DispatchTimeMax,omitempty"`
	ListingDuration    string           `xml:"ListingDuration,omitempty"`
	ListingType        string           `xml:"ListingType,omitempty"`
	Location           string           `xml:"Location,omitempty"`
	PaymentMethods     []string         `xml:"PaymentMethods,omitempty"`
	PayPalEmailAddress string           `xml:"PayPalEmailAddress,omitempty"`
	PictureDetails     *PictureDetails  `xml:"PictureDetails,omitempty"`
	Quantity           int              `xml:"Quantity,omitempty"`
	ScheduleTime       string           `xml:"ScheduleTime,omitempty"`
	ReturnPolicy       *ReturnPolicy    `xml:"ReturnPolicy,omitempty"`
	ShippingDetails    *ShippingDetails `xml:"ShippingDetails,omitempty"`
	SellerProfiles     *SellerProfiles  `xml:"SellerProfiles,omitempty"`
	ItemSpecifics      *ItemSpecifics   `xml:"ItemSpecifics,omitempty"`
	SellingStatus      *SellingStatus   `xml:"SellingStatus,omitempty"`
	ListingDetails     *ListingDetails  `xml:"ListingDetails,omitempty"`
}

// AddItemRequest creates one listing.
type AddItemRequest struct {
	XMLName xml.Name `xml:"urn:ebay:apis:eBLBaseComponents AddItemRequest"`
	RequestHeader
	Item Item `xml:"Item"`
}

// FeeType is one fee entry.
type FeeType struct {
	Name string     `xml:"Name"`
	Fee  AmountType `xml:"Fee"`
}

// Fees is the fee breakdown of an AddItem response.
type Fees struct {
	Fee []FeeType `xml:"Fee"`
}

// AddItemResponse is the AddItem result.
type AddItemResponse struct {
	XMLName xml.Name `xml:"AddItemResponse"`
	ResponseHeader
	ItemID    string `xml:"ItemID"`
	StartTime string `xml:"StartTime"`
	EndTime   string `xml:"EndTime"`
	Fees      Fees   `xml:"Fees"`
}

// GetItemRequest fetches one listing.
type GetItemRequest struct {
	XMLName xml.Name `xml:"urn:ebay:apis:eBLBaseComponents GetItemRequest"`
	RequestHeader
	ItemID      string `xml:"ItemID"`
	DetailLevel string `xml:"DetailLevel,omitempty"`
}

// GetItemResponse is the GetItem result.
type GetItemResponse struct {
	XMLName xml.Name `xml:"GetItemResponse"`
	ResponseHeader
	Item Item `xml:"Item"`
}

// UploadSiteHostedPicturesRequest is the XML part of a picture upload. The
// binary part follows it in the same multipart body.
type UploadSiteHostedPicturesRequest struct {
	XMLName xml.Name `xml:"urn:ebay:apis:eBLBaseComponents UploadSiteHostedPicturesRequest"`
	RequestHeader
	PictureName     string `xml:"PictureName,omitempty"`
	PictureSet      string `xml:"PictureSet,omitempty"`
	ExtensionInDays int    `xml:"ExtensionInDays,omitempty"`
}

// SiteHostedPictureDetails describes an uploaded picture.
type SiteHostedPictureDetails struct {
	PictureName   string `xml:"PictureName"`
	PictureSet    string `xml:"PictureSet"`
	PictureFormat string `xml:"PictureFormat"`
	FullURL       string `xml:"FullURL"`
	BaseURL       string `xml:"BaseURL"`
}

// UploadSiteHostedPicturesResponse is the picture upload result.
type UploadSiteHostedPicturesResponse struct {
	XMLName xml.Name `xml:"UploadSiteHostedPicturesResponse"`
	ResponseHeader
	SiteHostedPictureDetails SiteHostedPictureDetails `xml:"SiteHostedPictureDetails"`
}
