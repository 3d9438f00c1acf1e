package calendar

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/bilgisen/mrzgang/internal/models"
)

const (
	// MimeType is the content type of generated documents
	MimeType = "text/calendar; charset=utf-8"

	dateLayout   = "2006-01-02"
	stampLayout  = "20060102T150405Z"
	anchorHour   = 12
	lineEnding   = "\r\n"
	maxLineBytes = 75
)

// ErrInvalidDate is returned for a date that is not a YYYY-MM-DD calendar day
var ErrInvalidDate = errors.New("date must be a calendar day in YYYY-MM-DD format")

// Options configures a Builder
type Options struct {
	ProdID             string
	UIDDomain          string
	FilePrefix         string
	DefaultTitle       string
	DefaultDescription string
	// Now defaults to time.Now
	Now func() time.Time
}

// Builder renders single-event calendar documents
type Builder struct {
	opts Options
}

func NewBuilder(opts Options) *Builder {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Builder{opts: opts}
}

// Build renders the event as a downloadable calendar artifact. The event
// starts at noon UTC on its date.
func (b *Builder) Build(event models.CalendarEvent) (*models.CalendarArtifact, error) {
	now := b.opts.Now().UTC()

	title := strings.TrimSpace(event.Title)
	if title == "" {
		title = b.opts.DefaultTitle
	}
	description := strings.TrimSpace(event.Description)
	if description == "" {
		description = b.opts.DefaultDescription
	}

	day := now
	if date := strings.TrimSpace(event.Date); date != "" {
		parsed, err := time.Parse(dateLayout, date)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", ErrInvalidDate, event.Date)
		}
		day = parsed
	}
	start := time.Date(day.Year(), day.Month(), day.Day(), anchorHour, 0, 0, 0, time.UTC)

	stamp := now.UnixMilli()
	uid := fmt.Sprintf("%d@%s", stamp, b.opts.UIDDomain)

	lines := []string{
		"BEGIN:VCALENDAR",
		"VERSION:2.0",
		"PRODID:" + b.opts.ProdID,
		"CALSCALE:GREGORIAN",
		"METHOD:PUBLISH",
		"BEGIN:VEVENT",
		"UID:" + uid,
		"DTSTAMP:" + now.Format(stampLayout),
		"DTSTART:" + start.Format(stampLayout),
		"SUMMARY:" + EscapeText(title),
		"DESCRIPTION:" + EscapeText(description),
		"END:VEVENT",
		"END:VCALENDAR",
	}

	var doc strings.Builder
	for _, line := range lines {
		doc.WriteString(FoldLine(line))
		doc.WriteString(lineEnding)
	}

	return &models.CalendarArtifact{
		UID:               uid,
		Document:          doc.String(),
		SuggestedFilename: fmt.Sprintf("%s-%d.ics", b.opts.FilePrefix, stamp),
		MimeType:          MimeType,
	}, nil
}

// ContentDisposition returns the attachment header value for an artifact
func ContentDisposition(artifact *models.CalendarArtifact) string {
	return fmt.Sprintf("attachment; filename=%q", artifact.SuggestedFilename)
}

var textEscaper = strings.NewReplacer(
	`\`, `\\`,
	`;`, `\;`,
	`,`, `\,`,
	"\r\n", `\n`,
	"\n", `\n`,
	"\r", `\n`,
)

// EscapeText escapes a TEXT property value
func EscapeText(s string) string {
	return textEscaper.Replace(s)
}

// FoldLine splits a content line into chunks of at most 75 octets, each
// continuation starting with a single space. Multi-byte characters are
// never split.
func FoldLine(line string) string {
	if len(line) <= maxLineBytes {
		return line
	}

	var out strings.Builder
	limit := maxLineBytes
	width := 0
	for _, r := range line {
		size := len(string(r))
		if width+size > limit {
			out.WriteString(lineEnding)
			out.WriteByte(' ')
			// the leading space counts towards the next line
			limit = maxLineBytes - 1
			width = 0
		}
		out.WriteRune(r)
		width += size
	}
	return out.String()
}
