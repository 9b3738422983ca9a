package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeISBN(t *testing.T) {
	assert.Equal(t, "9781402894626", NormalizeISBN("978-1-4028-9462-6"))
	assert.Equal(t, "9781402894626", NormalizeISBN("  9781402894626 "))
	assert.Equal(t, "140289462X", NormalizeISBN("1-4028-9462-X"))
}

func TestIsISBN(t *testing.T) {
	assert.True(t, IsISBN("9781402894626"))
	assert.True(t, IsISBN("978-1-4028-9462-6"))
	assert.True(t, IsISBN("140289462X"))
	assert.False(t, IsISBN("12345"))
	assert.False(t, IsISBN(""))
}

func TestClassifyBookIdentifier(t *testing.T) {
	id, isbn, ok := ClassifyBookIdentifier("978-1-4028-9462-6")
	assert.True(t, ok)
	assert.Zero(t, id)
	assert.Equal(t, "9781402894626", isbn)

	id, isbn, ok = ClassifyBookIdentifier("42")
	assert.True(t, ok)
	assert.Equal(t, int64(42), id)
	assert.Empty(t, isbn)

	_, _, ok = ClassifyBookIdentifier("not-a-book")
	assert.False(t, ok)

	_, _, ok = ClassifyBookIdentifier("-1")
	assert.False(t, ok)

	// hyphenated junk must not collapse into a different valid id
	_, _, ok = ClassifyBookIdentifier("4-2")
	assert.False(t, ok)

	id, isbn, ok = ClassifyBookIdentifier("  42  ")
	assert.True(t, ok)
	assert.Equal(t, int64(42), id)
	assert.Empty(t, isbn)
}
