package exec

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitStatements(t *testing.T) {
	assert.Equal(t,
		[]string{"CREATE STR a 1", "STR GET a"},
		SplitStatements("CREATE STR a 1;STR GET a"))

	// empty statements survive the split, the dispatcher drops them
	assert.Equal(t, []string{"", "STR GET a", ""}, SplitStatements(";STR GET a;"))
	assert.Equal(t, []string{""}, SplitStatements(""))
}

func TestSplitTokens(t *testing.T) {
	assert.Equal(t, []string{"STR", "GET", "a"}, SplitTokens("STR GET a"))

	// runs of spaces produce empty tokens that are filtered out
	assert.Equal(t, []string{"STR", "GET", "a"}, SplitTokens("  STR   GET  a "))

	assert.Empty(t, SplitTokens(""))
	assert.Empty(t, SplitTokens("    "))
}
