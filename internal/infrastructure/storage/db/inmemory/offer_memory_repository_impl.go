package inmemory

import (
	"context"
	"errors"

	"github.com/peerdex-network/peerdex-engine/internal/core/domain"
)

type offerRepositoryImpl struct {
	store *offerInmemoryStore
}

func newOfferRepositoryImpl(store *offerInmemoryStore) domain.OfferRepository {
	return &offerRepositoryImpl{store}
}

func (r *offerRepositoryImpl) AddOffer(
	_ context.Context, offer *domain.Offer,
) error {
	r.store.locker.Lock()
	defer r.store.locker.Unlock()

	if _, ok := r.store.offers[offer.Id]; ok {
		return nil
	}
	r.store.offers[offer.Id] = *offer
	r.store.ids = append(r.store.ids, offer.Id)
	return nil
}

func (r *offerRepositoryImpl) GetOffer(
	_ context.Context, offerId string,
) (*domain.Offer, error) {
	r.store.locker.Lock()
	defer r.store.locker.Unlock()

	return r.getOffer(offerId), nil
}

func (r *offerRepositoryImpl) GetAllOffers(
	_ context.Context,
) ([]*domain.Offer, error) {
	r.store.locker.Lock()
	defer r.store.locker.Unlock()

	offers := make([]*domain.Offer, 0, len(r.store.ids))
	for _, id := range r.store.ids {
		offer := r.store.offers[id]
		offers = append(offers, &offer)
	}
	return offers, nil
}

func (r *offerRepositoryImpl) GetOffersForOwner(
	_ context.Context, ownerId string,
) ([]*domain.Offer, error) {
	r.store.locker.Lock()
	defer r.store.locker.Unlock()

	offers := make([]*domain.Offer, 0)
	for _, id := range r.store.ids {
		offer := r.store.offers[id]
		if offer.OwnerId == ownerId {
			offers = append(offers, &offer)
		}
	}
	return offers, nil
}

func (r *offerRepositoryImpl) UpdateOffer(
	_ context.Context,
	offerId string,
	updateFn func(o *domain.Offer) (*domain.Offer, error),
) error {
	r.store.locker.Lock()
	defer r.store.locker.Unlock()

	currentOffer := r.getOffer(offerId)
	if currentOffer == nil {
		return errors.New("offer not found")
	}

	updatedOffer, err := updateFn(currentOffer)
	if err != nil {
		return err
	}

	r.store.offers[offerId] = *updatedOffer
	return nil
}

func (r *offerRepositoryImpl) getOffer(offerId string) *domain.Offer {
	offer, ok := r.store.offers[offerId]
	if !ok {
		return nil
	}
	return &offer
}
