package calendar

import (
	"strings"
	"testing"
	"time"

	"github.com/bilgisen/mrzgang/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2025, 9, 30, 8, 15, 42, 123000000, time.UTC)

func newTestBuilder() *Builder {
	return NewBuilder(Options{
		ProdID:             "-//MRZ Gang//Events//EN",
		UIDDomain:          "mrzgang",
		FilePrefix:         "mrz",
		DefaultTitle:       "MRZ Event",
		DefaultDescription: "MRZ Gang Event",
		Now:                func() time.Time { return fixedNow },
	})
}

// properties unfolds a document and returns its lines keyed by property name
func properties(t *testing.T, doc string) map[string]string {
	t.Helper()
	require.True(t, strings.HasSuffix(doc, "\r\n"))

	unfolded := strings.ReplaceAll(doc, "\r\n ", "")
	props := map[string]string{}
	for _, line := range strings.Split(strings.TrimSuffix(unfolded, "\r\n"), "\r\n") {
		name, value, ok := strings.Cut(line, ":")
		require.True(t, ok, "line without colon: %q", line)
		if name == "BEGIN" || name == "END" {
			props[name+":"+value] = ""
			continue
		}
		props[name] = value
	}
	return props
}

func TestBuildWithAllParameters(t *testing.T) {
	artifact, err := newTestBuilder().Build(models.CalendarEvent{
		Title:       "Launch",
		Date:        "2025-10-05",
		Description: "Opening",
	})
	require.NoError(t, err)

	props := properties(t, artifact.Document)
	assert.Equal(t, "Launch", props["SUMMARY"])
	assert.Equal(t, "Opening", props["DESCRIPTION"])
	assert.Equal(t, "20251005T120000Z", props["DTSTART"])
	assert.Equal(t, "20250930T081542Z", props["DTSTAMP"])
	assert.Equal(t, "1759220142123@mrzgang", props["UID"])
	assert.Equal(t, "2.0", props["VERSION"])
	assert.Equal(t, "-//MRZ Gang//Events//EN", props["PRODID"])

	start, err := time.Parse("20060102T150405Z", props["DTSTART"])
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 10, 5, 12, 0, 0, 0, time.UTC), start)

	assert.Equal(t, "mrz-1759220142123.ics", artifact.SuggestedFilename)
	assert.Equal(t, "1759220142123@mrzgang", artifact.UID)
	assert.Equal(t, MimeType, artifact.MimeType)
}

func TestBuildDefaults(t *testing.T) {
	artifact, err := newTestBuilder().Build(models.CalendarEvent{})
	require.NoError(t, err)

	doc := artifact.Document
	assert.True(t, strings.HasPrefix(doc, "BEGIN:VCALENDAR\r\n"))
	assert.True(t, strings.HasSuffix(doc, "END:VCALENDAR\r\n"))
	assert.Contains(t, doc, "\r\nBEGIN:VEVENT\r\n")
	assert.Contains(t, doc, "\r\nEND:VEVENT\r\n")
	assert.NotContains(t, doc, `\r\n`)

	props := properties(t, doc)
	assert.NotEmpty(t, props["UID"])
	assert.Equal(t, "MRZ Event", props["SUMMARY"])
	assert.Equal(t, "MRZ Gang Event", props["DESCRIPTION"])
	assert.Equal(t, "20250930T120000Z", props["DTSTART"])
}

func TestBuildIsDeterministicForFixedClock(t *testing.T) {
	event := models.CalendarEvent{Title: "Meetup", Date: "2026-01-15"}

	a, err := newTestBuilder().Build(event)
	require.NoError(t, err)
	b, err := newTestBuilder().Build(event)
	require.NoError(t, err)

	assert.Equal(t, a, b)
}

func TestBuildRejectsInvalidDates(t *testing.T) {
	for _, date := range []string{"tomorrow", "2025-13-01", "2025-02-30", "05-10-2025", "2025/10/05"} {
		_, err := newTestBuilder().Build(models.CalendarEvent{Date: date})
		assert.ErrorIs(t, err, ErrInvalidDate, "date=%q", date)
	}
}

func TestBuildEscapesText(t *testing.T) {
	artifact, err := newTestBuilder().Build(models.CalendarEvent{
		Title:       "MRZ Berlin; doors 7pm, free",
		Description: "Line one\nLine two \\ end",
	})
	require.NoError(t, err)

	props := properties(t, artifact.Document)
	assert.Equal(t, `MRZ Berlin\; doors 7pm\, free`, props["SUMMARY"])
	assert.Equal(t, `Line one\nLine two \\ end`, props["DESCRIPTION"])
}

func TestBuildFoldsLongLines(t *testing.T) {
	long := strings.Repeat("Ünïcödé stream night ", 10)
	artifact, err := newTestBuilder().Build(models.CalendarEvent{Description: long})
	require.NoError(t, err)

	for _, line := range strings.Split(artifact.Document, "\r\n") {
		assert.LessOrEqual(t, len(line), 75, "line %q", line)
	}

	props := properties(t, artifact.Document)
	assert.Equal(t, strings.TrimSpace(long), props["DESCRIPTION"])
}

func TestFoldLineKeepsShortLines(t *testing.T) {
	assert.Equal(t, "SUMMARY:short", FoldLine("SUMMARY:short"))
}

func TestContentDisposition(t *testing.T) {
	artifact := &models.CalendarArtifact{SuggestedFilename: "mrz-1.ics"}
	assert.Equal(t, `attachment; filename="mrz-1.ics"`, ContentDisposition(artifact))
}
