package lending

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBorrowRequestValidate(t *testing.T) {
	assert.Error(t, BorrowRequest{}.Validate())
	assert.Error(t, BorrowRequest{Title: strings.Repeat("x", 256)}.Validate())
	assert.NoError(t, BorrowRequest{Title: "Dune"}.Validate())
}

func TestReturnRequestValidate(t *testing.T) {
	assert.Error(t, ReturnRequest{}.Validate())
	assert.NoError(t, ReturnRequest{Title: "Dune"}.Validate())
}
