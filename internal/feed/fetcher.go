package feed

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/bilgisen/mrzgang/internal/logger"
	"github.com/go-resty/resty/v2"
)

// FetcherOptions configures the outbound feed request
type FetcherOptions struct {
	// URLTemplate has a single %s verb that receives the escaped channel id
	URLTemplate string
	UserAgent   string
	Timeout     time.Duration
	// Revalidate is sent as the max-age of the Cache-Control request header
	Revalidate time.Duration
	// Transport replaces the HTTP transport, mainly for tests
	Transport http.RoundTripper
}

type Fetcher struct {
	client      *resty.Client
	urlTemplate string
	revalidate  time.Duration
}

func NewFetcher(opts FetcherOptions) *Fetcher {
	client := resty.New().
		SetTimeout(opts.Timeout).
		SetRetryCount(0).
		SetHeader("User-Agent", opts.UserAgent).
		SetHeader("Accept", "application/atom+xml, application/rss+xml, application/xml;q=0.9, */*;q=0.8").
		SetLogger(logger.RestyLogger{Logger: logger.Get()})

	if opts.Transport != nil {
		client.SetTransport(opts.Transport)
	}

	return &Fetcher{
		client:      client,
		urlTemplate: opts.URLTemplate,
		revalidate:  opts.Revalidate,
	}
}

// FeedURL builds the canonical feed URL for a channel
func (f *Fetcher) FeedURL(channelID string) string {
	return fmt.Sprintf(f.urlTemplate, url.QueryEscape(channelID))
}

// FetchFeed issues exactly one GET for the channel's feed and returns the raw body.
// Non-success responses and transport failures become *UpstreamError.
func (f *Fetcher) FetchFeed(ctx context.Context, channelID string) ([]byte, error) {
	feedURL := f.FeedURL(channelID)

	req := f.client.R().SetContext(ctx)
	if f.revalidate > 0 {
		req.SetHeader("Cache-Control", fmt.Sprintf("max-age=%d", int(f.revalidate.Seconds())))
	}

	resp, err := req.Get(feedURL)
	if err != nil {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("fetch feed from %s: %w", feedURL, ctx.Err())
		}
		return nil, &UpstreamError{
			StatusCode: http.StatusBadGateway,
			Body:       err.Error(),
		}
	}

	if !resp.IsSuccess() {
		return nil, &UpstreamError{
			StatusCode: resp.StatusCode(),
			Body:       string(resp.Body()),
		}
	}

	return resp.Body(), nil
}
