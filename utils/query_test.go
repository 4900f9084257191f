package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseQueryPlusAndMinusWords(t *testing.T) {
	server, err := NewSearchServer("the")
	require.NoError(t, err)

	query, err := server.parseQuery("cat -dog the bird -dog", true)
	require.NoError(t, err)
	assert.Equal(t, []string{"bird", "cat"}, query.PlusWords)
	assert.Equal(t, []string{"dog"}, query.MinusWords)
}

func TestParseQueryNoNormalizeKeepsDuplicatesAndOrder(t *testing.T) {
	server, err := NewSearchServer(nil)
	require.NoError(t, err)

	query, err := server.parseQuery("dog cat dog", false)
	require.NoError(t, err)
	assert.Equal(t, []string{"dog", "cat", "dog"}, query.PlusWords)
}

func TestParseQueryWordRejectsEmptyBareAndDoubleMinus(t *testing.T) {
	server, err := NewSearchServer(nil)
	require.NoError(t, err)

	_, err = server.parseQueryWord("")
	assert.ErrorIs(t, err, ErrInvalidQuery)

	_, err = server.parseQueryWord("-")
	assert.ErrorIs(t, err, ErrInvalidQuery)

	_, err = server.parseQueryWord("--cat")
	assert.ErrorIs(t, err, ErrInvalidQuery)
}

func TestParseQueryWordClassifiesMinusAndStop(t *testing.T) {
	server, err := NewSearchServer("the")
	require.NoError(t, err)

	qw, err := server.parseQueryWord("-cat")
	require.NoError(t, err)
	assert.Equal(t, "cat", qw.Data)
	assert.True(t, qw.IsMinus)
	assert.False(t, qw.IsStop)

	qw, err = server.parseQueryWord("the")
	require.NoError(t, err)
	assert.True(t, qw.IsStop)
}
