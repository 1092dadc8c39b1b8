package notion

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFindTitleProperty(t *testing.T) {
	db := &database{Properties: map[string]propertySchema{
		"이름":    {Type: "title"},
		"원문 링크": {Type: "url"},
	}}

	name, ok := findTitleProperty(db)
	assert.True(t, ok)
	assert.Equal(t, "이름", name)

	_, ok = findTitleProperty(&database{Properties: map[string]propertySchema{
		"원문 링크": {Type: "url"},
	}})
	assert.False(t, ok)
}

func TestFindPropertyByName(t *testing.T) {
	db := &database{Properties: map[string]propertySchema{
		"원문 링크":  {Type: "url"},
		" 후기 작성일 ": {Type: "date"},
	}}

	name, ok := findPropertyByName(db, "원문 링크", "url")
	assert.True(t, ok)
	assert.Equal(t, "원문 링크", name)

	// Whitespace-insensitive match against the stored key.
	name, ok = findPropertyByName(db, "후기 작성일", "date")
	assert.True(t, ok)
	assert.Equal(t, " 후기 작성일 ", name)

	// Type must match even when the name does.
	_, ok = findPropertyByName(db, "원문 링크", "date")
	assert.False(t, ok)

	_, ok = findPropertyByName(db, "없는 속성", "url")
	assert.False(t, ok)
}

func TestFindPropertyByNameCaseInsensitive(t *testing.T) {
	db := &database{Properties: map[string]propertySchema{
		"Source URL": {Type: "url"},
	}}

	name, ok := findPropertyByName(db, "source url", "url")
	assert.True(t, ok)
	assert.Equal(t, "Source URL", name)
}
