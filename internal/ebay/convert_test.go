package ebay_test

import (
	"encoding/xml"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goosebones/pokemon/internal/ebay"
	domain "github.com/goosebones/pokemon/pkg/types"
)

func TestToItem_InlinePolicies(t *testing.T) {
	t.Parallel()

	start := time.Date(2020, 5, 11, 0, 30, 0, 0, time.UTC)
	p := testPayload()
	p.ScheduleTime = &start
	p.PaymentMethods = []string{"PayPal"}
	p.PayPalEmail = "seller@example.com"
	p.DispatchTimeMax = 1
	p.ReturnPolicy = "ReturnsNotAccepted"
	p.Shipping = &domain.ShippingDetails{
		Type: "Flat",
		Options: []domain.ShippingOption{
			{Service: "USPSFirstClass", Cost: domain.Amount{Value: 2.95, Currency: "USD"}},
		},
	}
	p.ItemSpecifics = []domain.NameValue{
		{Name: "Set", Values: []string{"Crown Zenith"}},
		{Name: "Quantity", Values: []string{"1"}},
	}

	item := ebay.ToItem(p)

	assert.Equal(t, p.Title, item.Title)
	require.NotNil(t, item.PrimaryCategory)
	assert.Equal(t, "2611", item.PrimaryCategory.CategoryID)
	require.NotNil(t, item.StartPrice)
	assert.Equal(t, ebay.AmountType{Value: 9.99, CurrencyID: "USD"}, *item.StartPrice)
	assert.Equal(t, "USD", item.Currency)
	assert.Equal(t, "Days_7", item.ListingDuration)
	assert.Equal(t, "2020-05-11T00:30:00.000Z", item.ScheduleTime)
	assert.Equal(t, []string{"PayPal"}, item.PaymentMethods)
	assert.Equal(t, "seller@example.com", item.PayPalEmailAddress)
	require.NotNil(t, item.ReturnPolicy)
	assert.Equal(t, "ReturnsNotAccepted", item.ReturnPolicy.ReturnsAcceptedOption)
	require.NotNil(t, item.ShippingDetails)
	assert.Equal(t, "Flat", item.ShippingDetails.ShippingType)
	require.Len(t, item.ShippingDetails.ShippingServiceOptions, 1)
	opt := item.ShippingDetails.ShippingServiceOptions[0]
	assert.Equal(t, 1, opt.ShippingServicePriority)
	assert.Equal(t, "USPSFirstClass", opt.ShippingService)
	assert.Nil(t, item.SellerProfiles)
	require.NotNil(t, item.ItemSpecifics)
	assert.Len(t, item.ItemSpecifics.NameValueList, 2)
	require.NotNil(t, item.PictureDetails)
	assert.Equal(t, p.PictureURLs, item.PictureDetails.PictureURL)
}

func TestToItem_SellerProfiles(t *testing.T) {
	t.Parallel()

	p := testPayload()
	p.PaymentMethods = []string{"PayPal"}
	p.ReturnPolicy = "ReturnsNotAccepted"
	p.SellerProfiles = &domain.SellerProfiles{
		PaymentProfileID:  11,
		ShippingProfileID: 22,
		ReturnProfileID:   33,
	}

	item := ebay.ToItem(p)

	require.NotNil(t, item.SellerProfiles)
	assert.Equal(t, int64(11), item.SellerProfiles.SellerPaymentProfile.PaymentProfileID)
	assert.Equal(t, int64(22), item.SellerProfiles.SellerShippingProfile.ShippingProfileID)
	assert.Equal(t, int64(33), item.SellerProfiles.SellerReturnProfile.ReturnProfileID)
	assert.Empty(t, item.PaymentMethods)
	assert.Nil(t, item.ReturnPolicy)
	assert.Nil(t, item.ShippingDetails)
}

func TestToItem_OmitsEmptyBlocks(t *testing.T) {
	t.Parallel()

	p := testPayload()
	p.PictureURLs = nil

	out, err := xml.Marshal(ebay.AddItemRequest{Item: ebay.ToItem(p)})
	require.NoError(t, err)

	s := string(out)
	assert.NotContains(t, s, "PictureDetails")
	assert.NotContains(t, s, "ScheduleTime")
	assert.NotContains(t, s, "SellerProfiles")
	assert.NotContains(t, s, "ItemSpecifics")
	assert.Contains(t, s, "<Quantity>1</Quantity>")
}

func TestToSubmitResult(t *testing.T) {
	t.Parallel()

	resp := &ebay.AddItemResponse{
		ItemID: "110553001234",
		Fees: ebay.Fees{Fee: []ebay.FeeType{
			{Name: "InsertionFee", Fee: ebay.AmountType{Value: 0.35, CurrencyID: "USD"}},
			{Name: "ListingFee", Fee: ebay.AmountType{Value: 0.35, CurrencyID: "USD"}},
		}},
	}

	res := ebay.ToSubmitResult(resp)

	assert.Equal(t, "110553001234", res.ItemID)
	require.Len(t, res.Fees.Fees, 2)
	assert.Equal(t, domain.Fee{Name: "InsertionFee", Amount: 0.35, Currency: "USD"}, res.Fees.Fees[0])
	assert.InDelta(t, 0.35, res.Fees.ListingFee(), 1e-9)
}

func TestToListedItem_MissingBlocks(t *testing.T) {
	t.Parallel()

	li := ebay.ToListedItem(&ebay.Item{ItemID: "1", Title: "t"})

	assert.Equal(t, "1", li.ItemID)
	assert.Empty(t, li.ViewURL)
	assert.Empty(t, li.PictureURLs)
	assert.True(t, li.StartTime.IsZero())
}
