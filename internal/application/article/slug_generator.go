package article

import (
	"context"
	"fmt"
	"strconv"

	domain "github.com/pipelinecrm/crm-server/internal/domain/article"
	"github.com/rs/zerolog/log"
)

const DefaultSlugMaxAttempts = 500

// SlugGenerator picks the first free slug among base, base-2, base-3, ...
// within one company.
type SlugGenerator struct {
	lookup      domain.SlugLookup
	maxAttempts int
}

// NewSlugGenerator probes at most maxAttempts candidates; a non-positive value
// means DefaultSlugMaxAttempts.
func NewSlugGenerator(lookup domain.SlugLookup, maxAttempts int) *SlugGenerator {
	if maxAttempts <= 0 {
		maxAttempts = DefaultSlugMaxAttempts
	}
	return &SlugGenerator{lookup: lookup, maxAttempts: maxAttempts}
}

// Generate slugifies title and returns the first candidate not used by another
// article of companyID. excludeID lets an article keep its own slug.
func (g *SlugGenerator) Generate(ctx context.Context, title, companyID, excludeID string) (string, error) {
	base := domain.Slugify(title)

	for attempt := 1; attempt <= g.maxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return "", fmt.Errorf("%w: %v", ErrSlugLookup, err)
		}

		candidate := base
		if attempt > 1 {
			candidate = base + "-" + strconv.Itoa(attempt)
		}

		exists, err := g.lookup.SlugExists(ctx, companyID, candidate, excludeID)
		if err != nil {
			return "", fmt.Errorf("%w: %v", ErrSlugLookup, err)
		}
		if !exists {
			log.Debug().Str("company_id", companyID).Str("slug", candidate).Int("attempts", attempt).Msg("slug chosen")
			return candidate, nil
		}
	}

	log.Warn().Str("company_id", companyID).Str("base", base).Int("attempts", g.maxAttempts).Msg("slug candidates exhausted")
	return "", fmt.Errorf("%w: %q after %d attempts", ErrSlugExhausted, base, g.maxAttempts)
}
