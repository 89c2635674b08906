package exec

import (
	"testing"

	"github.com/MrPickle311/database/lib/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseStatement(t *testing.T, statement string) (Op, *db.Error) {
	t.Helper()
	return NewTree().Parse(SplitTokens(statement))
}

func TestTreeBuildsOps(t *testing.T) {
	valid := []string{
		"CREATE STR k v", "CREATE SET k", "CREATE HASH k", "CREATE QUEUE k",
		"STR GET k", "STR EXISTS k", "STR LEN k", "STR SUB k 0 5",
		"STR APPEND k v", "STR PREPEND k v", "STR INSERT k 3 v",
		"STR TRIM k 0 2", "STR LTRIM k 1", "STR RTRIM k 1",
		"SET ADD k v", "SET LEN k", "SET INTER a b c", "SET DIFF a b",
		"SET UNION a b", "SET CONTAINS k v", "SET GETALL k", "SET POP k v",
		"HASH DEL k f", "HASH EXISTS k f", "HASH GET k f", "HASH GETALL k",
		"HASH GETKEYS k", "HASH SET k f v", "HASH LEN k", "HASH SEARCH k q",
		"QUEUE PUSH k v", "QUEUE POP k",
		"DEL k", "KEYS", "KEYS pat",
	}
	for _, statement := range valid {
		op, err := parseStatement(t, statement)
		require.Nilf(t, err, "statement %q", statement)
		require.NotNilf(t, op, "statement %q", statement)
	}
}

func TestTreeUnknownKeywords(t *testing.T) {
	for _, statement := range []string{"NOPE k", "STR NOPE k", "CREATE LIST k", "QUEUE POLL k"} {
		_, err := parseStatement(t, statement)
		require.NotNilf(t, err, "statement %q", statement)
		assert.Equalf(t, db.CodeCmdUnknown, err.Code, "statement %q", statement)
	}
}

func TestTreeArgCount(t *testing.T) {
	for _, statement := range []string{
		"CREATE STR k", "STR SUB k 0", "SET INTER a", "SET DIFF a",
		"HASH SET k f", "QUEUE PUSH k", "DEL", "STR",
	} {
		_, err := parseStatement(t, statement)
		require.NotNilf(t, err, "statement %q", statement)
		assert.Equalf(t, db.CodeBadArgLen, err.Code, "statement %q", statement)
	}
}

func TestTreeBadCast(t *testing.T) {
	for _, statement := range []string{
		"STR SUB k zero 5", "STR SUB k 0 five", "STR INSERT k x v",
		"STR LTRIM k -1", "STR RTRIM k 1.5", "STR TRIM k 0 99999999999",
	} {
		_, err := parseStatement(t, statement)
		require.NotNilf(t, err, "statement %q", statement)
		assert.Equalf(t, db.CodeBadCast, err.Code, "statement %q", statement)
	}
}

func TestTreeKeysDefaultsToStar(t *testing.T) {
	op, err := parseStatement(t, "KEYS")
	require.Nil(t, err)
	assert.Equal(t, keysOp{pattern: "*"}, op)

	op, err = parseStatement(t, "KEYS user")
	require.Nil(t, err)
	assert.Equal(t, keysOp{pattern: "user"}, op)
}
