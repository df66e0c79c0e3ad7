package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidator(t *testing.T) {
	v := New()
	assert.True(t, v.Valid())

	v.Check(true, "title", "title must be provided")
	assert.True(t, v.Valid())

	v.Check(false, "title", "title must be provided")
	v.Check(false, "title", "title is too long")
	assert.False(t, v.Valid())
	assert.Equal(t, map[string]string{"title": "title must be provided"}, v.Errors)
}

func TestIn(t *testing.T) {
	assert.True(t, In("weekly", "daily", "weekly"))
	assert.False(t, In("yearly", "daily", "weekly"))
	assert.False(t, In("daily"))
}
