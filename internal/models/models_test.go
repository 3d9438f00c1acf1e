package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVideoSummaryJSONFields(t *testing.T) {
	list := VideoList{Items: []VideoSummary{{
		ID:           "abc123",
		Title:        "Stream night",
		PublishedAt:  "2025-10-01T18:00:00+00:00",
		ThumbnailURL: "https://i.ytimg.com/vi/abc123/hqdefault.jpg",
		WatchURL:     "https://www.youtube.com/watch?v=abc123",
	}}}

	data, err := json.Marshal(list)
	require.NoError(t, err)

	var result map[string][]map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &result))
	require.Len(t, result["items"], 1)

	item := result["items"][0]
	assert.Equal(t, "abc123", item["id"])
	assert.Equal(t, "2025-10-01T18:00:00+00:00", item["publishedAt"])
	assert.Equal(t, "https://i.ytimg.com/vi/abc123/hqdefault.jpg", item["thumbnailUrl"])
	assert.Equal(t, "https://www.youtube.com/watch?v=abc123", item["watchUrl"])
}

func TestEmptyVideoListEncodesEmptyArray(t *testing.T) {
	data, err := json.Marshal(VideoList{Items: []VideoSummary{}})
	require.NoError(t, err)
	assert.JSONEq(t, `{"items":[]}`, string(data))
}

func TestCollabRequestHoneypot(t *testing.T) {
	assert.False(t, (&CollabRequest{Name: "A"}).IsSpam())
	assert.True(t, (&CollabRequest{Website: "http://spam.example"}).IsSpam())
}
