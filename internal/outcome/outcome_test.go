package outcome_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"reqlens/internal/outcome"
)

func TestSuccess(t *testing.T) {
	o := outcome.Success([]string{"a", "b"})

	assert.Equal(t, outcome.StatusSuccess, o.Status)
	assert.True(t, o.Usable())
	assert.False(t, o.Failed())
	assert.Equal(t, []string{"a", "b"}, o.Value)
	assert.Empty(t, o.MissingFields)
}

func TestPartial(t *testing.T) {
	o := outcome.Partial(42, []string{"score"})

	assert.Equal(t, outcome.StatusPartial, o.Status)
	assert.True(t, o.Usable())
	assert.False(t, o.Failed())
	assert.Equal(t, 42, o.Value)
	assert.Equal(t, []string{"score"}, o.MissingFields)
}

func TestFailure(t *testing.T) {
	o := outcome.Failure[int]("nothing parsed")

	assert.Equal(t, outcome.StatusFailure, o.Status)
	assert.False(t, o.Usable())
	assert.True(t, o.Failed())
	assert.Equal(t, "nothing parsed", o.Reason)
	assert.Zero(t, o.Value)
}
