package recommend

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"os"
	"sort"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/vasiliy-maslov/ecommerce-microservices/ml-service/internal/catalog"
)

const (
	maxRecommendations  = 4
	topCategoryLimit    = 3
	categoriesUsed      = 2
	productsPerCategory = 3
	generalPoolSize     = 8
)

var defaultSeedPaths = []string{
	"/app/seed/seed_products.json",
	"./seed/seed_products.json",
	"../../infra/seed/seed_products.json",
}

// Catalog is the subset of the catalog client the engine depends on.
// Both calls return empty results instead of errors on failure.
type Catalog interface {
	FetchUserOrders(ctx context.Context, userID string) []catalog.Order
	FetchProducts(ctx context.Context, category string) []catalog.Product
}

// Service is the rule-based recommendation engine. It walks a chain of
// fallback tiers — order-history categories, the general product list, a
// local seed file, a hardcoded list — and the first tier that yields
// anything wins. It never fails: the terminal tier is deterministic.
type Service struct {
	catalog   Catalog
	mu        sync.Mutex // guards rng; one engine serves all requests
	rng       *rand.Rand
	seedPaths []string
}

type Option func(*Service)

// WithRand replaces the shuffle source, for reproducible selections.
func WithRand(rng *rand.Rand) Option {
	return func(s *Service) { s.rng = rng }
}

// WithSeedPaths replaces the seed file candidate locations.
func WithSeedPaths(paths []string) Option {
	return func(s *Service) { s.seedPaths = paths }
}

func NewService(c Catalog, opts ...Option) *Service {
	s := &Service{
		catalog:   c,
		rng:       rand.New(rand.NewSource(time.Now().UnixNano())),
		seedPaths: defaultSeedPaths,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Recommendations returns up to four product ids for the user, based on
// the categories they buy from most. The error return exists for the
// HTTP boundary contract; this implementation degrades through fallback
// tiers instead of producing one.
func (s *Service) Recommendations(ctx context.Context, userID string) ([]string, error) {
	orders := s.catalog.FetchUserOrders(ctx, userID)
	if len(orders) > 0 {
		categories := topCategories(orders)
		if items := s.categoryRecommendations(ctx, categories); len(items) > 0 {
			return items, nil
		}
	}

	log.Debug().Str("user_id", userID).Msg("recommend: no usable order history, using fallback")
	return s.FallbackRecommendations(ctx), nil
}

// FallbackRecommendations is used when no personalized result is
// available: a random pick from the general product list, then the seed
// file, then a fixed literal list. Never returns an empty slice.
func (s *Service) FallbackRecommendations(ctx context.Context) []string {
	products := s.catalog.FetchProducts(ctx, "")
	if len(products) > 0 {
		if len(products) > generalPoolSize {
			products = products[:generalPoolSize]
		}
		ids := make([]string, len(products))
		for i, p := range products {
			ids[i] = p.ID
		}
		s.shuffle(len(ids), func(i, j int) { ids[i], ids[j] = ids[j], ids[i] })
		if len(ids) > maxRecommendations {
			ids = ids[:maxRecommendations]
		}
		return ids
	}

	return s.seedRecommendations()
}

// categoryRecommendations collects product ids from the user's top
// categories: up to three products from each of the first two
// categories, capped at four ids overall.
func (s *Service) categoryRecommendations(ctx context.Context, categories []string) []string {
	if len(categories) > categoriesUsed {
		categories = categories[:categoriesUsed]
	}

	var items []string
	for _, category := range categories {
		products := s.catalog.FetchProducts(ctx, category)
		for i, p := range products {
			if i == productsPerCategory {
				break
			}
			items = append(items, p.ID)
		}
	}

	if len(items) > maxRecommendations {
		items = items[:maxRecommendations]
	}
	return items
}

// topCategories ranks the categories appearing across the order line
// items by frequency, most frequent first. Ties keep first-appearance
// order. At most three categories are returned. Line items without an
// expanded product or without a category are skipped.
func topCategories(orders []catalog.Order) []string {
	counts := make(map[string]int)
	var ranked []string

	for _, o := range orders {
		for _, item := range o.Items {
			if item.Product == nil || item.Product.Category == "" {
				continue
			}
			if counts[item.Product.Category] == 0 {
				ranked = append(ranked, item.Product.Category)
			}
			counts[item.Product.Category]++
		}
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return counts[ranked[i]] > counts[ranked[j]]
	})

	if len(ranked) > topCategoryLimit {
		ranked = ranked[:topCategoryLimit]
	}
	return ranked
}

// shuffle serializes draws from the shared rand source. *rand.Rand is
// not safe for concurrent use.
func (s *Service) shuffle(n int, swap func(i, j int)) {
	s.mu.Lock()
	s.rng.Shuffle(n, swap)
	s.mu.Unlock()
}

// seedRecommendations is the terminal tier. It loads the first seed file
// it finds, shuffles the entries and returns one placeholder id per
// selected entry. The ids are synthetic mock-N strings, not the seed
// product ids — kept as-is to match the established API behavior.
func (s *Service) seedRecommendations() []string {
	for _, path := range s.seedPaths {
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}

		var seed []json.RawMessage
		if err := json.Unmarshal(data, &seed); err != nil {
			log.Warn().Err(err).Str("path", path).Msg("recommend: malformed seed file")
			break
		}
		if len(seed) == 0 {
			break
		}

		s.shuffle(len(seed), func(i, j int) { seed[i], seed[j] = seed[j], seed[i] })

		n := len(seed)
		if n > maxRecommendations {
			n = maxRecommendations
		}
		items := make([]string, n)
		for i := range items {
			items[i] = fmt.Sprintf("mock-%d", i)
		}
		return items
	}

	return []string{"mock-1", "mock-2", "mock-3", "mock-4"}
}
