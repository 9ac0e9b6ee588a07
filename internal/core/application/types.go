package application

import (
	"strings"

	"github.com/shopspring/decimal"
)

// FilterAll is the sentinel value that bypasses a ListOffers filter field.
const FilterAll = "all"

// CreateOfferReq carries the fields of a post-ad action.
type CreateOfferReq struct {
	OwnerId         string
	OwnerName       string
	Type            string
	CryptoSymbol    string
	FiatCurrency    string
	Price           decimal.Decimal
	LimitMin        decimal.Decimal
	LimitMax        decimal.Decimal
	AvailableAmount decimal.Decimal
	PaymentMethods  []string
	PaymentDetails  map[string]string
	Terms           string
}

// ListOffersFilter narrows the offers returned by ListOffers. Crypto, fiat
// and payment method are matched case-insensitively, the free-text query is
// a substring match on the advertiser name. Empty fields and the FilterAll
// sentinel bypass the corresponding filter.
type ListOffersFilter struct {
	Type          string
	Crypto        string
	Fiat          string
	PaymentMethod string
	Query         string
}

func filterIsAll(value string) bool {
	return value == "" || strings.EqualFold(value, FilterAll)
}
