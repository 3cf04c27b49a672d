package history

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOffset(t *testing.T) {
	assert.Equal(t, 0, Offset(0, 20))
	assert.Equal(t, 0, Offset(1, 20))
	assert.Equal(t, 20, Offset(2, 20))
	assert.Equal(t, 0, Offset(5, 0))

	// huge page numbers are clamped instead of overflowing
	assert.Equal(t, (MaxPage-1)*20, Offset(math.MaxInt, 20))
	assert.Equal(t, math.MaxInt, Offset(MaxPage, math.MaxInt))
	assert.GreaterOrEqual(t, Offset(math.MaxInt, math.MaxInt/2), 0)
}
