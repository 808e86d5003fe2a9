package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClampRating(t *testing.T) {
	assert.Equal(t, 5.0, ClampRating(7))
	assert.Equal(t, 1.0, ClampRating(0))
	assert.Equal(t, 1.0, ClampRating(-3))
	assert.Equal(t, 3.5, ClampRating(3.5))
	assert.Equal(t, 5.0, ClampRating(5))
	assert.Equal(t, 1.0, ClampRating(1))
}

func TestAggregateRating(t *testing.T) {
	assert.Equal(t, 0.0, AggregateRating(nil))
	assert.Equal(t, 0.0, AggregateRating([]Review{}))

	assert.Equal(t, 4.5, AggregateRating([]Review{
		{Rating: 5},
		{Rating: 4},
	}))

	// 4.333... rounds to one decimal
	assert.Equal(t, 4.3, AggregateRating([]Review{
		{Rating: 5},
		{Rating: 4},
		{Rating: 4},
	}))

	assert.Equal(t, 3.0, AggregateRating([]Review{{Rating: 3}}))
}
