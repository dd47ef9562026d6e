// Package cardcache decorates a cash card store with a redis read-through cache.
package cardcache

import (
	"context"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"

	"github.com/lemuel-sousa/CashCard-spring-academy/internal/domain"
	"github.com/lemuel-sousa/CashCard-spring-academy/pkg/cachepkg"
)

// Store is the cash card store being cached.
type Store interface {
	Create(ctx context.Context, owner string, amount decimal.Decimal) (domain.CashCard, error)
	Get(ctx context.Context, id int64) (domain.CashCard, error)
	List(ctx context.Context, owner string, page domain.PageRequest) ([]domain.CashCard, error)
	Update(ctx context.Context, id int64, owner string, amount decimal.Decimal) (domain.CashCard, error)
	Delete(ctx context.Context, id int64, owner string) error
}

// Repo caches point lookups of Store by id.
//
// Lists are not cached, they always hit the store.
type Repo struct {
	next  Store
	cache *cachepkg.JSONCache[domain.CashCard]
}

// New returns Repo wrapping next.
func New(next Store, client *redis.Client, ttl time.Duration) *Repo {
	return &Repo{
		next:  next,
		cache: cachepkg.NewJSONCache[domain.CashCard](client, ttl),
	}
}

// invalidationHold is how long a changed card stays uncacheable, long enough
// for any read that started before the change to finish.
const invalidationHold = 10 * time.Second

func key(id int64) string {
	return "cashcard:" + strconv.FormatInt(id, 10)
}

// Create stores the card and caches it.
func (r *Repo) Create(ctx context.Context, owner string, amount decimal.Decimal) (domain.CashCard, error) {
	card, err := r.next.Create(ctx, owner, amount)
	if err != nil {
		return card, err
	}

	r.cache.Set(ctx, key(card.ID), card)

	return card, nil
}

// Get serves the card from the cache, falling back to the store on a miss.
//
// A recently invalidated card is read from the store and not cached again
// until the invalidation expires.
func (r *Repo) Get(ctx context.Context, id int64) (domain.CashCard, error) {
	if card, ok := r.cache.Get(ctx, key(id)); ok {
		return card, nil
	}

	card, err := r.next.Get(ctx, id)
	if err != nil {
		return card, err
	}

	r.cache.Fill(ctx, key(id), card)

	return card, nil
}

// List delegates to the store.
func (r *Repo) List(ctx context.Context, owner string, page domain.PageRequest) ([]domain.CashCard, error) {
	return r.next.List(ctx, owner, page)
}

// Update updates the card in the store and invalidates the cached copy.
//
// The entry is invalidated whether or not the store call succeeds.
func (r *Repo) Update(ctx context.Context, id int64, owner string, amount decimal.Decimal) (domain.CashCard, error) {
	card, err := r.next.Update(ctx, id, owner, amount)

	r.cache.Invalidate(ctx, key(id), invalidationHold)

	return card, err
}

// Delete removes the card from the store and invalidates the cached copy,
// whether or not the store call succeeds.
func (r *Repo) Delete(ctx context.Context, id int64, owner string) error {
	err := r.next.Delete(ctx, id, owner)

	r.cache.Invalidate(ctx, key(id), invalidationHold)

	return err
}
