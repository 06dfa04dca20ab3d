package translate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatch(t *testing.T) {
	assert := assert.New(t)

	assert.Equal(Fallback, Match())
	assert.Equal(Language(), Language())
	assert.NotPanics(func() { Match("fr-FR", "en-US") })
}

func TestFrom(t *testing.T) {
	assert := assert.New(t)

	assert.Equal("line 3: no such label", From("line %d: %v", 3, "no such label"))
	assert.Equal("plain", From("plain"))
}
