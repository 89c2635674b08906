package rpc

import (
	"bufio"
	"strings"
	"testing"

	"github.com/MrPickle311/database/lib/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadRequest(t *testing.T) {
	br := bufio.NewReader(strings.NewReader("CREATE STR a 1;STR GET a|"))
	body, err := ReadRequest(br)
	require.NoError(t, err)
	assert.Equal(t, "CREATE STR a 1;STR GET a", body)
}

func TestReadRequestMissingTerminator(t *testing.T) {
	br := bufio.NewReader(strings.NewReader("STR GET a"))
	_, err := ReadRequest(br)
	assert.Error(t, err)
}

func TestFormatReply(t *testing.T) {
	assert.Equal(t, "[1][hello_world][]\n", FormatReply("hello_world"))

	// the frame always ends with a newline, even for an empty payload
	assert.Equal(t, "[1][][]\n", FormatReply(""))
}

func TestFormatError(t *testing.T) {
	assert.Equal(t,
		"[0][greeting already exists][KEY_EXISTS]\n",
		FormatError(db.ErrKeyExists("greeting")))
	assert.Equal(t,
		"[0][missing does not exist][KEY_NOT_FOUND]\n",
		FormatError(db.ErrKeyNotFound("missing")))
}
