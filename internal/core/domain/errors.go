package domain

import "errors"

var (
	// ErrOfferInvalidPrice ...
	ErrOfferInvalidPrice = errors.New("offer price must be a positive amount")
	// ErrOfferInvalidLimits ...
	ErrOfferInvalidLimits = errors.New("offer lower limit must not exceed the upper limit")
	// ErrOfferInvalidAmount ...
	ErrOfferInvalidAmount = errors.New("offer available amount must not be negative")
	// ErrOfferMissingOwner ...
	ErrOfferMissingOwner = errors.New("offer owner must not be null")
	// ErrOfferMissingAssets ...
	ErrOfferMissingAssets = errors.New("offer crypto symbol and fiat currency must not be null")
	// ErrOfferInvalidType ...
	ErrOfferInvalidType = errors.New("offer type must be either buy or sell")
	// ErrOfferNoPaymentMethods ...
	ErrOfferNoPaymentMethods = errors.New("offer must list at least one payment method")
	// ErrOfferInactive is thrown when trying to trade against or edit a
	// deactivated offer.
	ErrOfferInactive = errors.New("offer is not active")
	// ErrOfferInsufficientLiquidity is thrown when reserving more crypto than
	// the offer makes available.
	ErrOfferInsufficientLiquidity = errors.New("offer has not enough available amount")

	// ErrOrderInvalidAmount ...
	ErrOrderInvalidAmount = errors.New("order amount must be a positive number")
	// ErrOrderIllegalTransition is thrown for any status change not listed in
	// the order transition table.
	ErrOrderIllegalTransition = errors.New("illegal order status transition")
	// ErrOrderMustBePending ...
	ErrOrderMustBePending = errors.New("order must be in pending status to perform this operation")
	// ErrOrderMustBeAwaitingRelease ...
	ErrOrderMustBeAwaitingRelease = errors.New("order must be in awaiting release status to perform this operation")
	// ErrOrderIsTerminal ...
	ErrOrderIsTerminal = errors.New("order reached a terminal status and cannot change anymore")
	// ErrOrderOnlyBuyerCanMarkPaid ...
	ErrOrderOnlyBuyerCanMarkPaid = errors.New("only the buyer can mark the order as paid")
	// ErrOrderOnlySellerCanRelease ...
	ErrOrderOnlySellerCanRelease = errors.New("only the seller can release the crypto amount")
	// ErrOrderNotParticipant ...
	ErrOrderNotParticipant = errors.New("user is not a participant of the order")

	// ErrChatEmptyMessage ...
	ErrChatEmptyMessage = errors.New("chat message text must not be empty")
	// ErrChatMissingSender ...
	ErrChatMissingSender = errors.New("chat message sender must not be null")

	// ErrNotificationMissingRecipient ...
	ErrNotificationMissingRecipient = errors.New("notification recipient must not be null")
)
