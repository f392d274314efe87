package determinism

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOrderedMapKeepsInsertionOrder(t *testing.T) {
	m := NewOrderedMap[string, int]()
	m.Set("mass", 1)
	m.Set("length", 2)
	m.Set("time", 3)
	m.Set("length", 20)

	assert.Equal(t, []string{"mass", "length", "time"}, m.Keys())
	assert.Equal(t, 3, m.Len())
	v, ok := m.Get("length")
	assert.True(t, ok)
	assert.Equal(t, 20, v)
	assert.False(t, m.Has("speed"))

	var seen []string
	m.Range(func(k string, _ int) bool {
		seen = append(seen, k)
		return k != "length"
	})
	assert.Equal(t, []string{"mass", "length"}, seen)
}
