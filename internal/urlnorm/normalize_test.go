package urlnorm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestNormalizer(t *testing.T) *Normalizer {
	t.Helper()
	n, err := New("https://example.com/city/")
	require.NoError(t, err)
	return n
}

func TestNormalizeDropsQueryAndFragment(t *testing.T) {
	n := newTestNormalizer(t)

	want := "https://example.com/a/b"
	assert.Equal(t, want, n.Normalize("https://example.com/a/b?page=2"))
	assert.Equal(t, want, n.Normalize("https://example.com/a/b#section"))
	assert.Equal(t, want, n.Normalize("https://example.com/a/b?x=1&y=2#frag"))
}

func TestNormalizeUnusableSchemes(t *testing.T) {
	n := newTestNormalizer(t)

	assert.Empty(t, n.Normalize("javascript:void(0)"))
	assert.Empty(t, n.Normalize("mailto:a@b.com"))
	assert.Empty(t, n.Normalize("JavaScript:alert(1)"))
	assert.Empty(t, n.Normalize("tel:+15551234567"))
	assert.Empty(t, n.Normalize(""))
	assert.Empty(t, n.Normalize("   "))
}

func TestNormalizeHostAndPathCleanup(t *testing.T) {
	n := newTestNormalizer(t)

	assert.Equal(t, "https://example.com/a/b", n.Normalize("HTTP://WWW.Example.com//a//b/"))
	assert.Equal(t, "https://example.com", n.Normalize("https://www.example.com/"))
	assert.Equal(t, "https://example.com/x", n.Normalize("  https://Example.COM/x  "))
}

func TestNormalizeResolvesRelativeAgainstOrigin(t *testing.T) {
	n := newTestNormalizer(t)

	assert.Equal(t, "https://example.com/units/123", n.Normalize("/units/123"))
	assert.Equal(t, "https://example.com/city/units/123", n.Normalize("units/123"))
}

func TestNormalizeParseFailure(t *testing.T) {
	n := newTestNormalizer(t)

	assert.Empty(t, n.Normalize("https://example.com/%zz\x7f"))
}

func TestNormalizeIsStableKey(t *testing.T) {
	n := newTestNormalizer(t)

	variants := []string{
		"https://www.example.com/units/123?src=a",
		"http://example.com//units/123/",
		"/units/123#photos",
	}
	for _, v := range variants {
		assert.Equal(t, "https://example.com/units/123", n.Normalize(v), "variant %q", v)
	}
}
