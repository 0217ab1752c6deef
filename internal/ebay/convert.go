package ebay

import (
	domain "github.com/goosebones/pokemon/pkg/types"
)

const scheduleTimeLayout = "2006-01-02T15:04:05.000Z"

// ToItem converts a listing payload into the Trading API item block.
func ToItem(p *domain.ListingPayload) Item {
	item := Item{
		Title:           p.Title,
		Description:     p.Description,
		PrimaryCategory: &Category{CategoryID: p.CategoryID},
		StartPrice:      toAmount(p.StartPrice),
		ConditionID:     p.ConditionID,
		Country:         p.Country,
		Currency:        p.StartPrice.Currency,
		DispatchTimeMax: p.DispatchTimeMax,
		ListingDuration: p.Duration,
		ListingType:     p.ListingType,
		Location:        p.Location,
		Quantity:        p.Quantity,
	}

	if p.ScheduleTime != nil {
		item.ScheduleTime = p.ScheduleTime.UTC().Format(scheduleTimeLayout)
	}

	if len(p.PictureURLs) > 0 {
		item.PictureDetails = &PictureDetails{
			PictureURL: append([]string(nil), p.PictureURLs...),
		}
	}

	if len(p.ItemSpecifics) > 0 {
		specifics := &ItemSpecifics{}
		for _, nv := range p.ItemSpecifics {
			specifics.NameValueList = append(specifics.NameValueList, NameValueList{
				Name:  nv.Name,
				Value: nv.Values,
			})
		}
		item.ItemSpecifics = specifics
	}

	// Business policies and the inline payment/shipping/return blocks are
	// mutually exclusive.
	if sp := p.SellerProfiles; sp != nil {
		item.SellerProfiles = &SellerProfiles{
			SellerPaymentProfile:  &SellerPaymentProfile{PaymentProfileID: sp.PaymentProfileID},
			SellerShippingProfile: &SellerShippingProfile{ShippingProfileID: sp.ShippingProfileID},
			SellerReturnProfile:   &SellerReturnProfile{ReturnProfileID: sp.ReturnProfileID},
		}
		return item
	}

	item.PaymentMethods = p.PaymentMethods
	item.PayPalEmailAddress = p.PayPalEmail

	if p.ReturnPolicy != "" {
		item.ReturnPolicy = &ReturnPolicy{ReturnsAcceptedOption: p.ReturnPolicy}
	}

	if p.Shipping != nil {
		sd := &ShippingDetails{ShippingType: p.Shipping.Type}
		for i, opt := range p.Shipping.Options {
			sd.ShippingServiceOptions = append(sd.ShippingServiceOptions, ShippingServiceOption{
				ShippingServicePriority: i + 1,
				ShippingService:         opt.Service,
				ShippingServiceCost:     toAmount(opt.Cost),
				FreeShipping:            opt.Free,
				ExpeditedService:        opt.Expedited,
			})
		}
		item.ShippingDetails = sd
	}

	return item
}

// ToSubmitResult converts an AddItem response into the domain result.
func ToSubmitResult(resp *AddItemResponse) *domain.SubmitResult {
	res := &domain.SubmitResult{ItemID: resp.ItemID}
	for _, f := range resp.Fees.Fee {
		res.Fees.Fees = append(res.Fees.Fees, domain.Fee{
			Name:     f.Name,
			Amount:   f.Fee.Value,
			Currency: f.Fee.CurrencyID,
		})
	}
	return res
}

// ToListedItem converts a GetItem item block into the domain view.
func ToListedItem(item *Item) *domain.ListedItem {
	li := &domain.ListedItem{
		ItemID: item.ItemID,
		Title:  item.Title,
	}

	if item.SellingStatus != nil {
		li.CurrentPrice = domain.Amount{
			Value:    item.SellingStatus.CurrentPrice.Value,
			Currency: item.SellingStatus.CurrentPrice.CurrencyID,
		}
		li.ListingStatus = item.SellingStatus.ListingStatus
	}

	if item.ListingDetails != nil {
		li.ViewURL = item.ListingDetails.ViewItemURL
		li.StartTime = item.ListingDetails.StartTime
		li.EndTime = item.ListingDetails.EndTime
	}

	if item.PictureDetails != nil {
		li.PictureURLs = append([]string(nil), item.PictureDetails.PictureURL...)
	}

	return li
}

func toAmount(a domain.Amount) *AmountType {
	return &AmountType{Value: a.Value, CurrencyID: a.Currency}
}
