package dbbadger

import (
	"context"
	"errors"

	"github.com/dgraph-io/badger/v3"
	"github.com/timshannon/badgerhold/v4"

	"github.com/peerdex-network/peerdex-engine/internal/core/domain"
)

type offerRepositoryImpl struct {
	db *repoManager
}

func newOfferRepositoryImpl(db *repoManager) domain.OfferRepository {
	return offerRepositoryImpl{db}
}

func (r offerRepositoryImpl) AddOffer(
	ctx context.Context, offer *domain.Offer,
) error {
	return r.insertOffer(ctx, *offer)
}

func (r offerRepositoryImpl) GetOffer(
	ctx context.Context, offerId string,
) (*domain.Offer, error) {
	return r.getOffer(ctx, offerId)
}

func (r offerRepositoryImpl) GetAllOffers(
	ctx context.Context,
) ([]*domain.Offer, error) {
	query := badgerhold.Where("Id").Ne("")
	offers, err := r.findOffers(ctx, query)
	if err != nil {
		return nil, err
	}

	list := make([]*domain.Offer, 0, len(offers))
	for i := range offers {
		list = append(list, &offers[i])
	}
	return list, nil
}

func (r offerRepositoryImpl) GetOffersForOwner(
	ctx context.Context, ownerId string,
) ([]*domain.Offer, error) {
	query := badgerhold.Where("OwnerId").Eq(ownerId)
	offers, err := r.findOffers(ctx, query)
	if err != nil {
		return nil, err
	}

	list := make([]*domain.Offer, 0, len(offers))
	for i := range offers {
		list = append(list, &offers[i])
	}
	return list, nil
}

func (r offerRepositoryImpl) UpdateOffer(
	ctx context.Context,
	offerId string,
	updateFn func(o *domain.Offer) (*domain.Offer, error),
) error {
	return r.db.runInTransaction(ctx, func(ctx context.Context) error {
		currentOffer, err := r.getOffer(ctx, offerId)
		if err != nil {
			return err
		}
		if currentOffer == nil {
			return errors.New("offer not found")
		}

		updatedOffer, err := updateFn(currentOffer)
		if err != nil {
			return err
		}

		return r.updateOffer(ctx, offerId, *updatedOffer)
	})
}

func (r offerRepositoryImpl) findOffers(
	ctx context.Context, query *badgerhold.Query,
) ([]domain.Offer, error) {
	var offers []domain.Offer
	var err error
	if ctx.Value("tx") != nil {
		tx := ctx.Value("tx").(*badger.Txn)
		err = r.db.store.TxFind(tx, &offers, query)
	} else {
		err = r.db.store.Find(&offers, query)
	}

	return offers, err
}

func (r offerRepositoryImpl) getOffer(
	ctx context.Context, offerId string,
) (*domain.Offer, error) {
	var offer domain.Offer
	var err error
	if ctx.Value("tx") != nil {
		tx := ctx.Value("tx").(*badger.Txn)
		err = r.db.store.TxGet(tx, offerId, &offer)
	} else {
		err = r.db.store.Get(offerId, &offer)
	}
	if err != nil {
		if err == badgerhold.ErrNotFound {
			return nil, nil
		}
		return nil, err
	}

	return &offer, nil
}

func (r offerRepositoryImpl) insertOffer(
	ctx context.Context, offer domain.Offer,
) error {
	var err error
	if ctx.Value("tx") != nil {
		tx := ctx.Value("tx").(*badger.Txn)
		err = r.db.store.TxInsert(tx, offer.Id, &offer)
	} else {
		err = r.db.store.Insert(offer.Id, &offer)
	}
	if err != nil {
		if err != badgerhold.ErrKeyExists {
			return err
		}
	}
	return nil
}

func (r offerRepositoryImpl) updateOffer(
	ctx context.Context, offerId string, offer domain.Offer,
) error {
	if ctx.Value("tx") != nil {
		tx := ctx.Value("tx").(*badger.Txn)
		return r.db.store.TxUpdate(tx, offerId, offer)
	}
	return r.db.store.Update(offerId, offer)
}
