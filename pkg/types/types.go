// Package domain defines the core business types for the card lister.
package domain

import (
	"time"
)

// Condition represents the graded condition of a single card.
type Condition string

// Condition constants.
const (
	ConditionMint             Condition = "mint"
	ConditionNearMint         Condition = "near_mint"
	ConditionLightlyPlayed    Condition = "lightly_played"
	ConditionModeratelyPlayed Condition = "moderately_played"
	ConditionHeavilyPlayed    Condition = "heavily_played"
	ConditionDamaged          Condition = "damaged"
	ConditionUnknown          Condition = "unknown"
)

// CardRow is one unit of sale read from the inventory sheet. Index is the
// 1-based sheet row; row 1 is the header so data rows start at 2.
type CardRow struct {
	Index          int       `json:"index"           db:"row_index"`
	Processed      bool      `json:"processed"       db:"processed"`
	ExternalID     string    `json:"external_id"     db:"external_id"`
	Name           string    `json:"name"            db:"name"`
	CatalogNumber  string    `json:"catalog_number"  db:"catalog_number"`
	FoilVariant    string    `json:"foil_variant"    db:"foil_variant"`
	Rarity         string    `json:"rarity"          db:"rarity"`
	SetName        string    `json:"set_name"        db:"set_name"`
	Condition      Condition `json:"condition"       db:"condition_code"`
	DefectNote     string    `json:"defect_note"     db:"defect_note"`
	DefectLocation string    `json:"defect_location" db:"defect_location"`
	StartPrice     float64   `json:"start_price"     db:"start_price"`
}

// Amount is a monetary value in a given currency.
type Amount struct {
	Value    float64 `json:"value"`
	Currency string  `json:"currency"`
}

// NameValue is a single item-specific attribute.
type NameValue struct {
	Name   string   `json:"name"`
	Values []string `json:"values"`
}

// ShippingOption is one carrier service offered on a listing.
type ShippingOption struct {
	Service   string `json:"service"`
	Cost      Amount `json:"cost"`
	Expedited bool   `json:"expedited"`
	Free      bool   `json:"free"`
}

// ShippingDetails describes how a listing ships.
type ShippingDetails struct {
	Type    string           `json:"type"` // "Flat"
	Options []ShippingOption `json:"options"`
}

// SellerProfiles references business policies configured on the seller
// account. When set, they replace the payment, shipping and return blocks.
type SellerProfiles struct {
	PaymentProfileID  int64 `json:"payment_profile_id"`
	ShippingProfileID int64 `json:"shipping_profile_id"`
	ReturnProfileID   int64 `json:"return_profile_id"`
}

// ListingPayload is the complete description of one listing submission.
// It is built per row and never persisted.
type ListingPayload struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	StartPrice  Amount `json:"start_price"`

	CategoryID   string     `json:"category_id"`
	ConditionID  int        `json:"condition_id"`
	ListingType  string     `json:"listing_type"`
	Quantity     int        `json:"quantity"`
	Duration     string     `json:"duration"`
	ScheduleTime *time.Time `json:"schedule_time,omitempty"`
	Location     string     `json:"location"`
	Country      string     `json:"country"`

	PaymentMethods  []string         `json:"payment_methods,omitempty"`
	PayPalEmail     string           `json:"paypal_email,omitempty"`
	DispatchTimeMax int              `json:"dispatch_time_max"`
	Shipping        *ShippingDetails `json:"shipping,omitempty"`
	ReturnPolicy    string           `json:"return_policy,omitempty"`
	SellerProfiles  *SellerProfiles  `json:"seller_profiles,omitempty"`

	ItemSpecifics []NameValue `json:"item_specifics"`
	PictureURLs   []string    `json:"picture_urls"`
}

// ListingFeeName is the fee entry inspected by the fee circuit breaker.
const ListingFeeName = "ListingFee"

// Fee is a single named fee charged for a submission.
type Fee struct {
	Name     string  `json:"name"`
	Amount   float64 `json:"amount"`
	Currency string  `json:"currency"`
}

// FeeReport is the fee breakdown returned for a successful submission.
type FeeReport struct {
	Fees []Fee `json:"fees"`
}

// ListingFeeEntry returns the ListingFee entry of the report. If the entry
// appears more than once the last one wins; when it is absent the result has
// a zero amount and no currency.
func (r FeeReport) ListingFeeEntry() Fee {
	fee := Fee{Name: ListingFeeName}
	for _, f := range r.Fees {
		if f.Name == ListingFeeName {
			fee = f
		}
	}
	return fee
}

// ListingFee returns the amount of the ListingFee entry, or 0 when the report
// has none.
func (r FeeReport) ListingFee() float64 {
	return r.ListingFeeEntry().Amount
}

// SubmitResult is what the marketplace returns for a created listing.
type SubmitResult struct {
	ItemID string    `json:"item_id"`
	Fees   FeeReport `json:"fees"`
}

// ListedItem is a listing as reported back by the marketplace.
type ListedItem struct {
	ItemID        string    `json:"item_id"`
	Title         string    `json:"title"`
	CurrentPrice  Amount    `json:"current_price"`
	ListingStatus string    `json:"listing_status"`
	ViewURL       string    `json:"view_url"`
	PictureURLs   []string  `json:"picture_urls"`
	StartTime     time.Time `json:"start_time"`
	EndTime       time.Time `json:"end_time"`
}

// OutcomeKind is the tag of a per-row Outcome.
type OutcomeKind string

// Outcome kinds.
const (
	OutcomeSkipped OutcomeKind = "skipped"
	OutcomeListed  OutcomeKind = "listed"
	OutcomeFailed  OutcomeKind = "failed"
)

// SkipReason explains a skipped row.
type SkipReason string

// Skip reasons.
const (
	SkipAlreadyProcessed SkipReason = "already_processed"
	SkipTitleTooLong     SkipReason = "title_too_long"
)

// Stage names the remote step a failed row was in.
type Stage string

// Failure stages.
const (
	StageUpload     Stage = "upload"
	StageSubmission Stage = "submission"
)

// Outcome is the result of processing one row.
type Outcome struct {
	Row        int         `json:"row"`
	ExternalID string      `json:"external_id"`
	Kind       OutcomeKind `json:"kind"`
	SkipReason SkipReason  `json:"skip_reason,omitempty"`
	Stage      Stage       `json:"stage,omitempty"`
	ItemID     string      `json:"item_id,omitempty"`
	ListingFee float64     `json:"listing_fee,omitempty"`
	Error      string      `json:"error,omitempty"`

	Err error `json:"-"`
}

// Skipped returns a skipped outcome for row.
func Skipped(row *CardRow, reason SkipReason) Outcome {
	return Outcome{
		Row:        row.Index,
		ExternalID: row.ExternalID,
		Kind:       OutcomeSkipped,
		SkipReason: reason,
	}
}

// Listed returns a listed outcome for row.
func Listed(row *CardRow, itemID string, fee float64) Outcome {
	return Outcome{
		Row:        row.Index,
		ExternalID: row.ExternalID,
		Kind:       OutcomeListed,
		ItemID:     itemID,
		ListingFee: fee,
	}
}

// Failed returns a failed outcome for row.
func Failed(row *CardRow, stage Stage, err error) Outcome {
	return Outcome{
		Row:        row.Index,
		ExternalID: row.ExternalID,
		Kind:       OutcomeFailed,
		Stage:      stage,
		Error:      err.Error(),
		Err:        err,
	}
}

// TripsBreaker reports whether the outcome carries a nonzero listing fee.
func (o *Outcome) TripsBreaker() bool {
	return o.Kind == OutcomeListed && o.ListingFee > 0
}

// RunSummary records everything a single batch run did.
type RunSummary struct {
	ID             string    `json:"id"`
	StartedAt      time.Time `json:"started_at"`
	FinishedAt     time.Time `json:"finished_at"`
	Listed         int       `json:"listed"`
	Skipped        int       `json:"skipped"`
	Failed         int       `json:"failed"`
	TotalFees      float64   `json:"total_fees"`
	BreakerTripped bool      `json:"breaker_tripped"`
	TrippedBy      *Outcome  `json:"tripped_by,omitempty"`
	Canceled       bool      `json:"canceled"`
	Outcomes       []Outcome `json:"outcomes"`
}

// Record appends o and updates the counters.
func (s *RunSummary) Record(o Outcome) {
	s.Outcomes = append(s.Outcomes, o)
	switch o.Kind {
	case OutcomeListed:
		s.Listed++
		s.TotalFees += o.ListingFee
	case OutcomeSkipped:
		s.Skipped++
	case OutcomeFailed:
		s.Failed++
	}
	if o.TripsBreaker() && !s.BreakerTripped {
		s.BreakerTripped = true
		tripped := o
		s.TrippedBy = &tripped
	}
}

// Duration returns how long the run took.
func (s *RunSummary) Duration() time.Duration {
	return s.FinishedAt.Sub(s.StartedAt)
}
