package feed

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/bilgisen/mrzgang/internal/logger"
	"github.com/bilgisen/mrzgang/internal/models"
)

// DefaultMaxResults is used when the caller gives no usable limit
const DefaultMaxResults = 8

// Processor fetches a channel feed and normalizes it. It keeps no state
// between calls.
type Processor struct {
	fetcher *Fetcher
	parser  *Parser
	maxCap  int
}

func NewProcessor(fetcher *Fetcher, maxCap int) *Processor {
	return &Processor{
		fetcher: fetcher,
		parser:  NewParser(),
		maxCap:  maxCap,
	}
}

// ParseMaxResults reads a raw maxResults value. Fractional values are
// truncated toward zero ("3.5" is 3). Absent, non-numeric and values below
// 1 after truncation fall back to DefaultMaxResults.
func ParseMaxResults(raw string) int {
	f, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return DefaultMaxResults
	}
	if f > math.MaxInt32 {
		return math.MaxInt32
	}
	n := int(f)
	if n <= 0 {
		return DefaultMaxResults
	}
	return n
}

// FetchAndNormalize returns up to maxResults summaries of the channel's feed,
// in feed order.
func (p *Processor) FetchAndNormalize(ctx context.Context, channelID string, maxResults int) ([]models.VideoSummary, error) {
	channelID = strings.TrimSpace(channelID)
	if channelID == "" {
		return nil, fmt.Errorf("%w: missing channelId", ErrInvalidRequest)
	}
	if maxResults <= 0 {
		maxResults = DefaultMaxResults
	}
	if p.maxCap > 0 && maxResults > p.maxCap {
		maxResults = p.maxCap
	}

	log := logger.Get()
	start := time.Now()

	body, err := p.fetcher.FetchFeed(ctx, channelID)
	if err != nil {
		log.Error().
			Err(err).
			Str("channel_id", channelID).
			Dur("duration", time.Since(start)).
			Msg("Error fetching channel feed")
		return nil, err
	}

	items, err := p.parser.Parse(body, maxResults)
	if err != nil {
		log.Error().
			Err(err).
			Str("channel_id", channelID).
			Int("body_bytes", len(body)).
			Msg("Error parsing channel feed")
		return nil, err
	}

	log.Debug().
		Str("channel_id", channelID).
		Int("items", len(items)).
		Int("max_results", maxResults).
		Dur("duration", time.Since(start)).
		Msg("Normalized channel feed")

	return items, nil
}
