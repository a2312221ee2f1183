package task

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTimeIDSource_StrictlyIncreasing(t *testing.T) {
	ids := TimeIDSource()

	prev := ids()
	for i := 0; i < 1000; i++ {
		next := ids()
		assert.Greater(t, next, prev)
		prev = next
	}
}

func TestSequentialIDSource_CountsFromStart(t *testing.T) {
	ids := SequentialIDSource(7)

	assert.Equal(t, int64(7), ids())
	assert.Equal(t, int64(8), ids())
	assert.Equal(t, int64(9), ids())
}
