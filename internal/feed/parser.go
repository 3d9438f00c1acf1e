package feed

import (
	"bytes"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/bilgisen/mrzgang/internal/logger"
	"github.com/bilgisen/mrzgang/internal/models"
	"github.com/mmcdole/gofeed"
)

const (
	thumbnailTemplate = "https://i.ytimg.com/vi/%s/hqdefault.jpg"
	watchTemplate     = "https://www.youtube.com/watch?v=%s"
	atomVideoIDPrefix = "yt:video:"
)

var errMissingVideoID = errors.New("entry has no video id")

// Parser turns a raw feed document into normalized video summaries
type Parser struct{}

func NewParser() *Parser {
	return &Parser{}
}

// Parse reads at most maxResults summaries from an Atom or RSS document in
// feed order. Entries that cannot be normalized are skipped and do not count
// towards the limit.
func (p *Parser) Parse(data []byte, maxResults int) ([]models.VideoSummary, error) {
	if maxResults <= 0 {
		maxResults = DefaultMaxResults
	}

	feedType := gofeed.DetectFeedType(bytes.NewReader(data))

	var entryPath []string
	switch feedType {
	case gofeed.FeedTypeAtom:
		entryPath = []string{"feed", "entry"}
	case gofeed.FeedTypeRSS:
		entryPath = []string{"rss", "channel", "item"}
	default:
		return nil, &ParseError{Err: errors.New("document is not an Atom or RSS feed")}
	}

	tree, err := ParseTree(data)
	if err != nil {
		return nil, &ParseError{Err: err}
	}

	entries := AsList(tree.Path(entryPath...))

	items := make([]models.VideoSummary, 0, min(len(entries), maxResults))
	for i, raw := range entries {
		if len(items) >= maxResults {
			break
		}

		summary, err := NormalizeEntry(AsNode(raw))
		if err != nil {
			logger.Get().Warn().
				Err(err).
				Int("entry_index", i).
				Msg("Skipping malformed feed entry")
			continue
		}
		items = append(items, summary)
	}

	return items, nil
}

// NormalizeEntry maps a single feed entry to a VideoSummary
func NormalizeEntry(entry Node) (models.VideoSummary, error) {
	if entry == nil {
		return models.VideoSummary{}, errors.New("entry is not an element")
	}

	id := videoID(entry)
	if id == "" {
		return models.VideoSummary{}, errMissingVideoID
	}

	published := Text(entry["published"])
	if published == "" {
		published = Text(entry["pubDate"])
	}

	thumbnail := firstThumbnailURL(entry)
	if thumbnail == "" {
		thumbnail = ThumbnailURL(id)
	}

	return models.VideoSummary{
		ID:           id,
		Title:        Text(entry["title"]),
		PublishedAt:  published,
		ThumbnailURL: thumbnail,
		WatchURL:     WatchURL(id),
	}, nil
}

// ThumbnailURL is the fallback thumbnail location for a video
func ThumbnailURL(id string) string {
	return fmt.Sprintf(thumbnailTemplate, url.PathEscape(id))
}

// WatchURL is the watch page location for a video
func WatchURL(id string) string {
	return fmt.Sprintf(watchTemplate, url.QueryEscape(id))
}

func videoID(entry Node) string {
	if id := strings.TrimSpace(Text(entry["yt:videoId"])); id != "" {
		return id
	}
	for _, key := range []string{"id", "guid"} {
		if raw := strings.TrimSpace(Text(entry[key])); strings.HasPrefix(raw, atomVideoIDPrefix) {
			return strings.TrimPrefix(raw, atomVideoIDPrefix)
		}
	}
	return ""
}

func firstThumbnailURL(entry Node) string {
	thumbnails := AsList(entry.Path("media:group", "media:thumbnail"))
	if len(thumbnails) == 0 {
		thumbnails = AsList(entry["media:thumbnail"])
	}
	if len(thumbnails) == 0 {
		return ""
	}
	thumb := AsNode(thumbnails[0])
	if thumb == nil {
		return ""
	}
	u, _ := thumb["url"].(string)
	return strings.TrimSpace(u)
}
