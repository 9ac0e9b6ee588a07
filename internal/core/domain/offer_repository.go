package domain

import "context"

// OfferRepository is the abstraction for any kind of database intended to
// persist Offers.
type OfferRepository interface {
	// AddOffer persists a new offer.
	AddOffer(ctx context.Context, offer *Offer) error
	// GetOffer returns the offer with the given id, or nil if not found.
	GetOffer(ctx context.Context, offerId string) (*Offer, error)
	// GetAllOffers returns all the offers stored in the repository, active
	// and inactive ones.
	GetAllOffers(ctx context.Context) ([]*Offer, error)
	// GetOffersForOwner returns all the offers posted by the given user.
	GetOffersForOwner(ctx context.Context, ownerId string) ([]*Offer, error)
	// UpdateOffer commits the changes made by updateFn to the offer in a
	// transactional way. It is the only mutation path, so concurrent
	// read-modify-write cycles against the same offer are serialized by the
	// implementation.
	UpdateOffer(
		ctx context.Context,
		offerId string,
		updateFn func(o *Offer) (*Offer, error),
	) error
}
