package imagecache

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFetchURL(t *testing.T) {
	cache := NewCache(nil, "https://res.example-cdn.com/demo/")

	url := cache.FetchURL("https://images.example.com/tamago.jpg")
	assert.Equal(t,
		"https://res.example-cdn.com/demo/image/fetch/https%3A%2F%2Fimages.example.com%2Ftamago.jpg",
		url)
}

func TestCachedURLWithoutCDNPassesThrough(t *testing.T) {
	cache := NewCache(nil, "")

	source := "https://images.example.com/tamago.jpg"
	assert.Equal(t, source, cache.CachedURL(context.Background(), "4901234567894", source))
}

func TestCachedURLBlankSource(t *testing.T) {
	cache := NewCache(nil, "https://res.example-cdn.com/demo")

	assert.Empty(t, cache.CachedURL(context.Background(), "4901234567894", ""))
}
