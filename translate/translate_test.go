package translate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFrom(t *testing.T) {
	assert := assert.New(t)

	SetLanguage("en-US")
	assert.Equal("line 3 failed", From("line %d %v", 3, "failed"))

	SetLanguage()
	assert.Equal("no arguments", From("no arguments"))

	// Unknown tags fall back to a supported language.
	SetLanguage("xx")
	assert.Equal("BZ=7", From("BZ=%d", 7))
}
