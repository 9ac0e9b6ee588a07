package application

import (
	"context"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/peerdex-network/peerdex-engine/internal/core/domain"
	"github.com/peerdex-network/peerdex-engine/internal/core/ports"
)

// OfferService exposes the CRUD operations over the advertiser-posted
// listings. Edit and deactivation are owner-only.
type OfferService interface {
	CreateOffer(ctx context.Context, req CreateOfferReq) (*domain.Offer, error)
	UpdateOffer(
		ctx context.Context, actorId, offerId string, patch domain.OfferPatch,
	) (*domain.Offer, error)
	DeactivateOffer(ctx context.Context, actorId, offerId string) error
	GetOffer(ctx context.Context, offerId string) (*domain.Offer, error)
	ListOffers(ctx context.Context, filter ListOffersFilter) ([]*domain.Offer, error)
	ListOffersForOwner(ctx context.Context, ownerId string) ([]*domain.Offer, error)
}

type offerService struct {
	repoManager ports.RepoManager
}

// NewOfferService returns an OfferService backed by the given storage.
func NewOfferService(repoManager ports.RepoManager) OfferService {
	return &offerService{repoManager}
}

func (s *offerService) CreateOffer(
	ctx context.Context, req CreateOfferReq,
) (*domain.Offer, error) {
	offer, err := domain.NewOffer(
		req.OwnerId, req.OwnerName, req.Type, req.CryptoSymbol,
		req.FiatCurrency, req.Price,
		domain.Limits{Min: req.LimitMin, Max: req.LimitMax},
		req.AvailableAmount, req.PaymentMethods, req.PaymentDetails, req.Terms,
	)
	if err != nil {
		return nil, err
	}

	if err := s.repoManager.OfferRepository().AddOffer(ctx, offer); err != nil {
		return nil, err
	}

	log.Debugf("offer %s posted by %s", offer.Id, offer.OwnerId)
	return offer, nil
}

func (s *offerService) UpdateOffer(
	ctx context.Context, actorId, offerId string, patch domain.OfferPatch,
) (*domain.Offer, error) {
	if _, err := s.GetOffer(ctx, offerId); err != nil {
		return nil, err
	}

	var updated *domain.Offer
	err := s.repoManager.OfferRepository().UpdateOffer(
		ctx, offerId,
		func(o *domain.Offer) (*domain.Offer, error) {
			if !o.IsOwner(actorId) {
				return nil, ErrNotOfferOwner
			}
			if err := o.Edit(patch); err != nil {
				return nil, err
			}
			updated = o
			return o, nil
		},
	)
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *offerService) DeactivateOffer(
	ctx context.Context, actorId, offerId string,
) error {
	if _, err := s.GetOffer(ctx, offerId); err != nil {
		return err
	}

	return s.repoManager.OfferRepository().UpdateOffer(
		ctx, offerId,
		func(o *domain.Offer) (*domain.Offer, error) {
			if !o.IsOwner(actorId) {
				return nil, ErrNotOfferOwner
			}
			o.Deactivate()
			return o, nil
		},
	)
}

func (s *offerService) GetOffer(
	ctx context.Context, offerId string,
) (*domain.Offer, error) {
	offer, err := s.repoManager.OfferRepository().GetOffer(ctx, offerId)
	if err != nil {
		return nil, err
	}
	if offer == nil {
		return nil, ErrOfferNotFound
	}
	return offer, nil
}

func (s *offerService) ListOffers(
	ctx context.Context, filter ListOffersFilter,
) ([]*domain.Offer, error) {
	offers, err := s.repoManager.OfferRepository().GetAllOffers(ctx)
	if err != nil {
		return nil, err
	}

	filtered := make([]*domain.Offer, 0, len(offers))
	for _, o := range offers {
		if matchesFilter(o, filter) {
			filtered = append(filtered, o)
		}
	}
	return filtered, nil
}

func (s *offerService) ListOffersForOwner(
	ctx context.Context, ownerId string,
) ([]*domain.Offer, error) {
	return s.repoManager.OfferRepository().GetOffersForOwner(ctx, ownerId)
}

func matchesFilter(o *domain.Offer, f ListOffersFilter) bool {
	if !o.Active {
		return false
	}
	if !filterIsAll(f.Type) && !strings.EqualFold(o.Type, f.Type) {
		return false
	}
	if !filterIsAll(f.Crypto) && !strings.EqualFold(o.CryptoSymbol, f.Crypto) {
		return false
	}
	if !filterIsAll(f.Fiat) && !strings.EqualFold(o.FiatCurrency, f.Fiat) {
		return false
	}
	if !filterIsAll(f.PaymentMethod) && !o.AcceptsPaymentMethod(f.PaymentMethod) {
		return false
	}
	if f.Query != "" && !strings.Contains(
		strings.ToLower(o.OwnerName), strings.ToLower(f.Query),
	) {
		return false
	}
	return true
}
