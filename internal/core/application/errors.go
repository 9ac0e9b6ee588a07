package application

import (
	"errors"

	"github.com/peerdex-network/peerdex-engine/internal/core/domain"
)

var (
	// ErrOfferNotFound ...
	ErrOfferNotFound = errors.New("offer not found")
	// ErrOrderNotFound ...
	ErrOrderNotFound = errors.New("order not found")
	// ErrNotificationNotFound ...
	ErrNotificationNotFound = errors.New("notification not found")
	// ErrNotOfferOwner is thrown when a non-owner attempts to edit or
	// deactivate an offer.
	ErrNotOfferOwner = errors.New("only the offer owner can perform this operation")
	// ErrInvalidAmount ...
	ErrInvalidAmount = errors.New("amount must be a positive number")
	// ErrAmountOutOfLimits ...
	ErrAmountOutOfLimits = errors.New("amount is outside the offer limits")
	// ErrInsufficientLiquidity is thrown when, even after clamping, the
	// requested amount exceeds the offer's available amount.
	ErrInsufficientLiquidity = errors.New("offer has not enough liquidity for the requested amount")
	// ErrPaymentMethodNotAccepted ...
	ErrPaymentMethodNotAccepted = errors.New("payment method is not accepted by the offer")
	// ErrServiceUnavailable is the generic message for storage failures, the
	// only category for which the caller may retry.
	ErrServiceUnavailable = errors.New("service is unavailable, try again later")
)

// ErrorKind groups the failures of the engine operations so that callers can
// render distinct messages for bad input, operations not allowed in the
// current state, missing records and retryable storage failures.
type ErrorKind int

const (
	ErrorKindValidation ErrorKind = iota + 1
	ErrorKindState
	ErrorKindNotFound
	ErrorKindStore
)

var validationErrors = []error{
	ErrInvalidAmount,
	ErrAmountOutOfLimits,
	ErrPaymentMethodNotAccepted,
	domain.ErrOfferInvalidPrice,
	domain.ErrOfferInvalidLimits,
	domain.ErrOfferInvalidAmount,
	domain.ErrOfferMissingOwner,
	domain.ErrOfferMissingAssets,
	domain.ErrOfferInvalidType,
	domain.ErrOfferNoPaymentMethods,
	domain.ErrChatEmptyMessage,
	domain.ErrChatMissingSender,
	domain.ErrNotificationMissingRecipient,
}

var stateErrors = []error{
	ErrNotOfferOwner,
	ErrInsufficientLiquidity,
	domain.ErrOfferInactive,
	domain.ErrOfferInsufficientLiquidity,
	domain.ErrOrderIllegalTransition,
	domain.ErrOrderMustBePending,
	domain.ErrOrderMustBeAwaitingRelease,
	domain.ErrOrderIsTerminal,
	domain.ErrOrderOnlyBuyerCanMarkPaid,
	domain.ErrOrderOnlySellerCanRelease,
	domain.ErrOrderNotParticipant,
}

var notFoundErrors = []error{
	ErrOfferNotFound,
	ErrOrderNotFound,
	ErrNotificationNotFound,
}

// KindOf classifies an error returned by any engine operation. Unrecognized
// errors come from the storage layer and are reported as retryable.
func KindOf(err error) ErrorKind {
	for _, target := range validationErrors {
		if errors.Is(err, target) {
			return ErrorKindValidation
		}
	}
	for _, target := range stateErrors {
		if errors.Is(err, target) {
			return ErrorKindState
		}
	}
	for _, target := range notFoundErrors {
		if errors.Is(err, target) {
			return ErrorKindNotFound
		}
	}
	return ErrorKindStore
}

// UserMessage returns the human-readable message for an engine failure,
// keeping bad input, illegal state, missing records and retryable failures
// distinguishable.
func UserMessage(err error) string {
	switch KindOf(err) {
	case ErrorKindValidation:
		return "Invalid input: " + err.Error()
	case ErrorKindState:
		return "Not allowed now: " + err.Error()
	case ErrorKindNotFound:
		return err.Error()
	default:
		return ErrServiceUnavailable.Error()
	}
}
