package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestLogCountsEmptyResults(t *testing.T) {
	server, err := NewSearchServer(nil)
	require.NoError(t, err)
	require.NoError(t, server.AddDocument(1, "cat", StatusActual, nil))

	log := NewRequestLog(server)
	_, err = log.AddFindRequest("cat")
	require.NoError(t, err)
	_, err = log.AddFindRequest("dog")
	require.NoError(t, err)
	_, err = log.AddFindRequest("dog")
	require.NoError(t, err)

	assert.Equal(t, 2, log.NoResultRequests())
}

func TestRequestLogEvictsOldestBeyondWindow(t *testing.T) {
	server, err := NewSearchServer(nil)
	require.NoError(t, err)
	require.NoError(t, server.AddDocument(1, "cat", StatusActual, nil))

	log := NewRequestLog(server)
	for i := 0; i < RollingWindowSize; i++ {
		_, err := log.AddFindRequest("dog")
		require.NoError(t, err)
	}
	assert.Equal(t, RollingWindowSize, log.NoResultRequests())

	_, err = log.AddFindRequest("cat")
	require.NoError(t, err)
	assert.Equal(t, RollingWindowSize-1, log.NoResultRequests())
}

func TestRequestLogPropagatesQueryError(t *testing.T) {
	server, err := NewSearchServer(nil)
	require.NoError(t, err)

	log := NewRequestLog(server)
	_, err = log.AddFindRequest("-")
	assert.ErrorIs(t, err, ErrInvalidQuery)
	assert.Equal(t, 0, log.NoResultRequests(), "a failed query should not be recorded")
}
