package dbbadger

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/dgraph-io/badger/v3"
	"github.com/timshannon/badgerhold/v4"

	"github.com/peerdex-network/peerdex-engine/internal/core/domain"
	"github.com/peerdex-network/peerdex-engine/internal/core/ports"
)

// repoManager holds all the badgerhold stores in a single data structure.
// Offers, orders, chat messages and notifications share the main store,
// prices live in a dedicated one.
type repoManager struct {
	store      *badgerhold.Store
	priceStore *badgerhold.Store

	offerRepository        domain.OfferRepository
	orderRepository        domain.OrderRepository
	chatRepository         domain.ChatRepository
	notificationRepository domain.NotificationRepository
	prices                 ports.PriceStore
}

// NewRepoManager opens (or creates if not exists) the badger stores on disk
// under the given base data dir and an optional logger. It returns the repo
// manager together with the price cache backed by the dedicated store.
func NewRepoManager(
	baseDbDir string, logger badger.Logger,
) (ports.RepoManager, ports.PriceStore, error) {
	mainDb, err := createDb(baseDbDir+"/main", logger)
	if err != nil {
		return nil, nil, fmt.Errorf("opening main db: %w", err)
	}

	priceDb, err := createDb(baseDbDir+"/prices", logger)
	if err != nil {
		return nil, nil, fmt.Errorf("opening prices db: %w", err)
	}

	rm := &repoManager{
		store:      mainDb,
		priceStore: priceDb,
	}
	rm.offerRepository = newOfferRepositoryImpl(rm)
	rm.orderRepository = newOrderRepositoryImpl(rm)
	rm.chatRepository = newChatRepositoryImpl(rm)
	rm.notificationRepository = newNotificationRepositoryImpl(rm)
	rm.prices = newPriceStoreImpl(rm)
	return rm, rm.prices, nil
}

func (d *repoManager) OfferRepository() domain.OfferRepository {
	return d.offerRepository
}

func (d *repoManager) OrderRepository() domain.OrderRepository {
	return d.orderRepository
}

func (d *repoManager) ChatRepository() domain.ChatRepository {
	return d.chatRepository
}

func (d *repoManager) NotificationRepository() domain.NotificationRepository {
	return d.notificationRepository
}

func (d *repoManager) Close() {
	d.store.Close()
	d.priceStore.Close()
}

// RunTransaction runs the handler against a single badger transaction,
// injected in the context so that every repository call inside the handler
// participates in it.
func (d *repoManager) RunTransaction(
	ctx context.Context,
	readOnly bool,
	handler func(ctx context.Context) (interface{}, error),
) (interface{}, error) {
	tx := d.store.Badger().NewTransaction(!readOnly)
	defer tx.Discard()

	res, err := handler(context.WithValue(ctx, "tx", tx))
	if err != nil {
		return nil, err
	}

	if !readOnly {
		if err := tx.Commit(); err != nil {
			return nil, err
		}
	}
	return res, nil
}

// runInTransaction executes update against a single main-store transaction
// injected in the context, unless the caller already runs inside one. Badger
// transactions are optimistic: a commit that conflicts with a concurrent
// writer is retried against the fresh state, so read-modify-write cycles on
// the same record are serialized instead of losing updates.
func (d *repoManager) runInTransaction(
	ctx context.Context, update func(ctx context.Context) error,
) error {
	if ctx.Value("tx") != nil {
		return update(ctx)
	}

	for {
		tx := d.store.Badger().NewTransaction(true)
		err := update(context.WithValue(ctx, "tx", tx))
		if err == nil {
			err = tx.Commit()
		}
		tx.Discard()
		if err != badger.ErrConflict {
			return err
		}
	}
}

// JSONEncode is a custom JSON based encoder for badger
func JSONEncode(value interface{}) ([]byte, error) {
	var buff bytes.Buffer

	en := json.NewEncoder(&buff)

	err := en.Encode(value)
	if err != nil {
		return nil, err
	}

	return buff.Bytes(), nil
}

// JSONDecode is a custom JSON based decoder for badger
func JSONDecode(data []byte, value interface{}) error {
	var buff bytes.Buffer
	de := json.NewDecoder(&buff)

	_, err := buff.Write(data)
	if err != nil {
		return err
	}

	return de.Decode(value)
}

func createDb(dbDir string, logger badger.Logger) (db *badgerhold.Store, err error) {
	opts := badger.DefaultOptions(dbDir)
	opts.Logger = logger

	db, err = badgerhold.Open(badgerhold.Options{
		Encoder:          JSONEncode,
		Decoder:          JSONDecode,
		SequenceBandwith: 100,
		Options:          opts,
	})

	return
}
