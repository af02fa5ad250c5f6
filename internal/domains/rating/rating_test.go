package rating

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRateRequestValidate(t *testing.T) {
	assert.Error(t, RateRequest{}.Validate())
	assert.Error(t, RateRequest{Rating: 0}.Validate())
	assert.Error(t, RateRequest{Rating: 6}.Validate())

	for score := 1; score <= 5; score++ {
		assert.NoError(t, RateRequest{Rating: score}.Validate())
	}
}
