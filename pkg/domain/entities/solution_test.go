package entities

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSolution_Sets(t *testing.T) {
	sol := NewSolution([]int{3, 1, 2}, []int{7, 0})

	assert.Equal(t, 3, sol.NumOrders())
	assert.Equal(t, 2, sol.NumAisles())
	assert.True(t, sol.HasOrder(2))
	assert.False(t, sol.HasOrder(5))
	assert.True(t, sol.HasAisle(7))
	assert.False(t, sol.HasAisle(1))
	assert.Equal(t, []int{1, 2, 3}, sol.OrderIDs())
	assert.Equal(t, []int{0, 7}, sol.AisleIDs())
}

func TestSolution_DuplicatesCollapse(t *testing.T) {
	sol := NewSolution([]int{4, 4, 4}, []int{2, 2})

	assert.Equal(t, 1, sol.NumOrders())
	assert.Equal(t, 1, sol.NumAisles())
	assert.Equal(t, []int{4}, sol.OrderIDs())
	assert.Equal(t, []int{2}, sol.AisleIDs())
}

func TestSolution_Empty(t *testing.T) {
	sol := NewSolution(nil, nil)

	assert.Equal(t, 0, sol.NumOrders())
	assert.Equal(t, 0, sol.NumAisles())
	assert.Empty(t, sol.OrderIDs())
	assert.Empty(t, sol.AisleIDs())
}
