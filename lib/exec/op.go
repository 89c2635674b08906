package exec

import (
	"strconv"
	"strings"

	"github.com/MrPickle311/database/lib/db"
)

// --------------------------------------------------------------------------
// Op
// --------------------------------------------------------------------------

// Op is a validated, fully typed command ready to run against the stores.
// Run returns the rendered reply payload or a structured error; errors
// bubble unchanged to the wire.
type Op interface {
	Run(s *db.Stores) (string, *db.Error)
}

// okReply is the payload of mutations that produce no value.
const okReply = "OK"

// --------------------------------------------------------------------------
// Reply Rendering
// --------------------------------------------------------------------------

// renderBool renders a boolean as "true"/"false".
func renderBool(b bool) string {
	return strconv.FormatBool(b)
}

// renderUint renders an unsigned integer as decimal.
func renderUint(n uint32) string {
	return strconv.FormatUint(uint64(n), 10)
}

// renderList renders a sequence as "[ e1 e2 ]". The trailing space before
// the closing bracket is part of the wire contract.
func renderList(items []string) string {
	var sb strings.Builder
	sb.WriteString("[ ")
	for _, item := range items {
		sb.WriteString(item)
		sb.WriteString(" ")
	}
	sb.WriteString("]")
	return sb.String()
}

// renderPairs renders hash mappings as "[ {k1 : v1} {k2 : v2} ]".
func renderPairs(pairs []db.Pair) string {
	var sb strings.Builder
	sb.WriteString("[ ")
	for _, pair := range pairs {
		sb.WriteString("{")
		sb.WriteString(pair.Field)
		sb.WriteString(" : ")
		sb.WriteString(pair.Value)
		sb.WriteString("} ")
	}
	sb.WriteString("]")
	return sb.String()
}
