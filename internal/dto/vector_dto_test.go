package dto

import (
	"errors"
	"testing"

	"ai-writingassistant-be/internal/pkg/serverutils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearchPassagesRequestValidation(t *testing.T) {
	err := serverutils.ValidateRequest(SearchPassagesRequest{K: 3})
	require.Error(t, err)

	var badReq *serverutils.BadRequestError
	require.True(t, errors.As(err, &badReq))
	assert.Contains(t, badReq.Message, "Query")

	assert.NoError(t, serverutils.ValidateRequest(SearchPassagesRequest{Query: "loose pages"}))
	// k stays optional; the controller applies the default.
	assert.NoError(t, serverutils.ValidateRequest(SearchPassagesRequest{Query: "loose pages", K: 0}))
}
