package services

import (
	"context"
	"encoding/json"
	"log"
	"strconv"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"luxe-commerce/models"
)

const cartKeyPrefix = "cart:"

// SessionKey maps an authenticated user to their cart session.
func SessionKey(userID int) string {
	return strconv.Itoa(userID)
}

// CartStore owns every live session cart. It is constructed once and handed
// to whatever needs it; carts live in memory and are mirrored to Redis with
// a session TTL so they survive restarts within a browsing session. A nil
// Redis client disables the mirror.
type CartStore struct {
	mu    sync.RWMutex
	carts map[string]*models.Cart
	rdb   *redis.Client
	ttl   time.Duration
}

func NewCartStore(rdb *redis.Client, ttl time.Duration) *CartStore {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &CartStore{
		carts: make(map[string]*models.Cart),
		rdb:   rdb,
		ttl:   ttl,
	}
}

// Get returns a copy of the session's cart, restoring it from Redis if the
// process has not seen the session yet. An unknown session yields an empty
// cart.
func (s *CartStore) Get(ctx context.Context, session string) *models.Cart {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load(ctx, session).Clone()
}

// AddItem merges the candidate into the cart: an existing line with the
// same identity key has its quantity incremented, otherwise the line is
// appended. Candidates with a non-positive quantity are ignored.
func (s *CartStore) AddItem(ctx context.Context, session string, item models.CartItem) *models.Cart {
	if item.Quantity < 1 {
		return s.Get(ctx, session)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	cart := s.load(ctx, session)
	key := item.Key()
	merged := false
	for i := range cart.Items {
		if cart.Items[i].Key() == key {
			cart.Items[i].Quantity += item.Quantity
			merged = true
			break
		}
	}
	if !merged {
		cart.Items = append(cart.Items, item)
	}

	s.persist(ctx, session, cart)
	return cart.Clone()
}

// UpdateQuantity sets the quantity of the identified line. A quantity of
// zero or less removes the line; an absent key is a no-op.
func (s *CartStore) UpdateQuantity(ctx context.Context, session string, key models.CartKey, quantity int) *models.Cart {
	s.mu.Lock()
	defer s.mu.Unlock()

	cart := s.load(ctx, session)
	for i := range cart.Items {
		if cart.Items[i].Key() != key {
			continue
		}
		if quantity <= 0 {
			cart.Items = append(cart.Items[:i], cart.Items[i+1:]...)
		} else {
			cart.Items[i].Quantity = quantity
		}
		s.persist(ctx, session, cart)
		break
	}
	return cart.Clone()
}

// RemoveItem deletes the identified line; absent keys are a no-op.
func (s *CartStore) RemoveItem(ctx context.Context, session string, key models.CartKey) *models.Cart {
	s.mu.Lock()
	defer s.mu.Unlock()

	cart := s.load(ctx, session)
	for i := range cart.Items {
		if cart.Items[i].Key() == key {
			cart.Items = append(cart.Items[:i], cart.Items[i+1:]...)
			s.persist(ctx, session, cart)
			break
		}
	}
	return cart.Clone()
}

// Clear empties the session's cart. Called after a successful payment
// submission and on explicit user request.
func (s *CartStore) Clear(ctx context.Context, session string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.carts, session)
	if s.rdb != nil {
		if err := s.rdb.Del(ctx, cartKeyPrefix+session).Err(); err != nil {
			log.Println("cart store: failed to clear redis mirror:", err)
		}
	}
}

// load must be called with the write lock held.
func (s *CartStore) load(ctx context.Context, session string) *models.Cart {
	if cart, ok := s.carts[session]; ok {
		return cart
	}

	cart := &models.Cart{Items: []models.CartItem{}}
	if s.rdb != nil {
		data, err := s.rdb.Get(ctx, cartKeyPrefix+session).Bytes()
		if err == nil {
			var restored models.Cart
			if jsonErr := json.Unmarshal(data, &restored); jsonErr == nil {
				cart = &restored
				if cart.Items == nil {
					cart.Items = []models.CartItem{}
				}
			}
		} else if err != redis.Nil {
			log.Println("cart store: redis read failed:", err)
		}
	}

	s.carts[session] = cart
	return cart
}

// persist must be called with the write lock held.
func (s *CartStore) persist(ctx context.Context, session string, cart *models.Cart) {
	s.carts[session] = cart
	if s.rdb == nil {
		return
	}
	data, err := json.Marshal(cart)
	if err != nil {
		return
	}
	if err := s.rdb.Set(ctx, cartKeyPrefix+session, data, s.ttl).Err(); err != nil {
		log.Println("cart store: redis write failed:", err)
	}
}
