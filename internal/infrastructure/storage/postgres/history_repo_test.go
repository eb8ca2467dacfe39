package postgres

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHistoryRepo_CompressionRoundTrip(t *testing.T) {
	repo, err := NewHistoryRepo(nil)
	require.NoError(t, err)

	description := strings.Repeat("cep 01310-100 -> 01310-200 ", 2000)
	require.Greater(t, len(description), repo.compressThreshold)

	compressed := repo.encoder.EncodeAll([]byte(description), nil)
	assert.Less(t, len(compressed), len(description))

	decompressed, err := repo.decoder.DecodeAll(compressed, nil)
	require.NoError(t, err)
	assert.Equal(t, description, string(decompressed))
}

func TestHistoryRepo_ShortDescriptionsStayUncompressed(t *testing.T) {
	repo, err := NewHistoryRepo(nil)
	require.NoError(t, err)

	assert.LessOrEqual(t, len("User alice changed: test A -> B"), repo.compressThreshold)
}
