package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func init() {
	decimal.DivisionPrecision = 8
}

// Limits is the fiat range an order placed against an offer must fall into.
type Limits struct {
	Min decimal.Decimal
	Max decimal.Decimal
}

// Offer is the data structure representing a standing buy/sell listing with
// price and liquidity posted by an advertiser.
type Offer struct {
	Id              string
	OwnerId         string
	OwnerName       string
	Type            string
	CryptoSymbol    string
	FiatCurrency    string
	Price           decimal.Decimal
	Limits          Limits
	AvailableAmount decimal.Decimal
	PaymentMethods  []string
	PaymentDetails  map[string]string
	Terms           string
	Active          bool
	CreatedAt       int64
}

// OfferPatch carries the partial-field updates an owner can apply to an
// offer. Nil fields are left untouched.
type OfferPatch struct {
	Price           *decimal.Decimal
	LimitMin        *decimal.Decimal
	LimitMax        *decimal.Decimal
	AvailableAmount *decimal.Decimal
	PaymentMethods  []string
	PaymentDetails  map[string]string
	Terms           *string
}

// NewOffer returns a new active offer after validating the provided fields.
func NewOffer(
	ownerId, ownerName, offerType, cryptoSymbol, fiatCurrency string,
	price decimal.Decimal, limits Limits, availableAmount decimal.Decimal,
	paymentMethods []string, paymentDetails map[string]string, terms string,
) (*Offer, error) {
	if ownerId == "" {
		return nil, ErrOfferMissingOwner
	}
	if offerType != TradeTypeBuy && offerType != TradeTypeSell {
		return nil, ErrOfferInvalidType
	}
	if cryptoSymbol == "" || fiatCurrency == "" {
		return nil, ErrOfferMissingAssets
	}
	if !price.IsPositive() {
		return nil, ErrOfferInvalidPrice
	}
	if limits.Min.GreaterThan(limits.Max) {
		return nil, ErrOfferInvalidLimits
	}
	if availableAmount.IsNegative() {
		return nil, ErrOfferInvalidAmount
	}
	if len(paymentMethods) <= 0 {
		return nil, ErrOfferNoPaymentMethods
	}

	details := make(map[string]string, len(paymentDetails))
	for k, v := range paymentDetails {
		details[k] = v
	}

	return &Offer{
		Id:              uuid.New().String(),
		OwnerId:         ownerId,
		OwnerName:       ownerName,
		Type:            offerType,
		CryptoSymbol:    strings.ToUpper(cryptoSymbol),
		FiatCurrency:    strings.ToUpper(fiatCurrency),
		Price:           price,
		Limits:          limits,
		AvailableAmount: availableAmount,
		PaymentMethods:  paymentMethods,
		PaymentDetails:  details,
		Terms:           terms,
		Active:          true,
		CreatedAt:       time.Now().UnixMilli(),
	}, nil
}

// Edit applies a partial patch to the offer. Only active offers can be
// edited. The patched fields are validated with the same rules of NewOffer.
func (o *Offer) Edit(patch OfferPatch) error {
	if !o.Active {
		return ErrOfferInactive
	}

	price := o.Price
	if patch.Price != nil {
		price = *patch.Price
	}
	if !price.IsPositive() {
		return ErrOfferInvalidPrice
	}

	limits := o.Limits
	if patch.LimitMin != nil {
		limits.Min = *patch.LimitMin
	}
	if patch.LimitMax != nil {
		limits.Max = *patch.LimitMax
	}
	if limits.Min.GreaterThan(limits.Max) {
		return ErrOfferInvalidLimits
	}

	availableAmount := o.AvailableAmount
	if patch.AvailableAmount != nil {
		availableAmount = *patch.AvailableAmount
	}
	if availableAmount.IsNegative() {
		return ErrOfferInvalidAmount
	}

	if patch.PaymentMethods != nil && len(patch.PaymentMethods) <= 0 {
		return ErrOfferNoPaymentMethods
	}

	o.Price = price
	o.Limits = limits
	o.AvailableAmount = availableAmount
	if patch.PaymentMethods != nil {
		o.PaymentMethods = patch.PaymentMethods
	}
	if patch.PaymentDetails != nil {
		details := make(map[string]string, len(patch.PaymentDetails))
		for k, v := range patch.PaymentDetails {
			details[k] = v
		}
		o.PaymentDetails = details
	}
	if patch.Terms != nil {
		o.Terms = *patch.Terms
	}
	return nil
}

// Deactivate soft-deletes the offer. The record is kept around because
// placed orders reference it. Calling it on an inactive offer is a no-op.
func (o *Offer) Deactivate() {
	o.Active = false
}

// Reserve decrements the available amount by the crypto amount consumed by a
// placed order. The available amount never goes negative.
func (o *Offer) Reserve(cryptoAmount decimal.Decimal) error {
	if !o.Active {
		return ErrOfferInactive
	}
	if cryptoAmount.GreaterThan(o.AvailableAmount) {
		return ErrOfferInsufficientLiquidity
	}
	o.AvailableAmount = o.AvailableAmount.Sub(cryptoAmount)
	return nil
}

// IsOwner returns whether the given user posted the offer.
func (o *Offer) IsOwner(userId string) bool {
	return o.OwnerId == userId
}

// AcceptsPaymentMethod returns whether the offer lists the given payment
// method, compared case-insensitively.
func (o *Offer) AcceptsPaymentMethod(method string) bool {
	for _, m := range o.PaymentMethods {
		if strings.EqualFold(m, method) {
			return true
		}
	}
	return false
}
