package listing

import (
	"time"

	domain "github.com/goosebones/pokemon/pkg/types"
)

// Defaults holds the fixed listing fields shared by every row.
type Defaults struct {
	CategoryID   string
	ConditionID  int
	ListingType  string
	Duration     string
	ScheduleTime *time.Time
	Location     string
	Country      string
	Currency     string

	PayPalEmail     string
	DispatchTimeMax int
	ShippingService string
	ShippingCost    float64
	ReturnPolicy    string

	// SellerProfiles, when non-nil, replaces the payment, shipping and
	// return blocks with the account's business policies.
	SellerProfiles *domain.SellerProfiles
}

// StandardDefaults returns the defaults used when nothing is configured.
func StandardDefaults() Defaults {
	return Defaults{
		CategoryID:      "2611",
		ConditionID:     3000,
		ListingType:     "Chinese",
		Duration:        "Days_7",
		Location:        "Rochester, New York",
		Country:         "US",
		Currency:        "USD",
		DispatchTimeMax: 1,
		ShippingService: "USPSFirstClass",
		ShippingCost:    2.95,
		ReturnPolicy:    "ReturnsNotAccepted",
	}
}

// Builder assembles listing payloads from rows.
type Builder struct {
	defaults Defaults
}

// NewBuilder creates a Builder with the given defaults.
func NewBuilder(d Defaults) *Builder {
	return &Builder{defaults: d}
}

// Build merges row-derived fields with the fixed defaults. It does no
// validation; missing row fields propagate as empty values.
func (b *Builder) Build(
	row *domain.CardRow,
	title, description string,
	pictureURLs []string,
) *domain.ListingPayload {
	d := b.defaults

	p := &domain.ListingPayload{
		Title:       title,
		Description: description,
		StartPrice:  domain.Amount{Value: row.StartPrice, Currency: d.Currency},

		CategoryID:   d.CategoryID,
		ConditionID:  d.ConditionID,
		ListingType:  d.ListingType,
		Quantity:     1,
		Duration:     d.Duration,
		ScheduleTime: d.ScheduleTime,
		Location:     d.Location,
		Country:      d.Country,

		DispatchTimeMax: d.DispatchTimeMax,
		ItemSpecifics:   itemSpecifics(row),
		PictureURLs:     append([]string(nil), pictureURLs...),
	}

	if d.SellerProfiles != nil {
		profiles := *d.SellerProfiles
		p.SellerProfiles = &profiles
		return p
	}

	p.PaymentMethods = []string{"PayPal"}
	p.PayPalEmail = d.PayPalEmail
	p.Shipping = &domain.ShippingDetails{
		Type: "Flat",
		Options: []domain.ShippingOption{
			{
				Service: d.ShippingService,
				Cost:    domain.Amount{Value: d.ShippingCost, Currency: d.Currency},
			},
		},
	}
	p.ReturnPolicy = d.ReturnPolicy

	return p
}

func itemSpecifics(row *domain.CardRow) []domain.NameValue {
	return []domain.NameValue{
		{Name: "Set", Values: []string{row.SetName}},
		{Name: "Rarity", Values: []string{row.Rarity}},
		{Name: "Features", Values: []string{row.FoilVariant}},
		{Name: "Featured Cards", Values: []string{row.Name}},
		{Name: "Quantity", Values: []string{"1"}},
	}
}
