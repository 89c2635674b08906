package exec

import (
	"fmt"
	"strings"

	"github.com/MrPickle311/database/lib/db"
)

// --------------------------------------------------------------------------
// Executor
// --------------------------------------------------------------------------

// Executor parses requests against a command tree and runs the resulting
// ops against the stores. It is stateless and safe for concurrent use.
type Executor struct {
	tree   *Tree
	stores *db.Stores
}

// NewExecutor creates an executor bound to the given stores.
func NewExecutor(stores *db.Stores) *Executor {
	return &Executor{
		tree:   NewTree(),
		stores: stores,
	}
}

// Parse turns a raw request body (without the terminator) into the ordered
// list of ops. Whitespace-only statements are discarded. The first parse
// failure aborts the whole request.
func (e *Executor) Parse(input string) ([]Op, *db.Error) {
	statements := SplitStatements(input)
	ops := make([]Op, 0, len(statements))
	for _, statement := range statements {
		if strings.TrimSpace(statement) == "" {
			continue
		}
		op, err := e.tree.Parse(SplitTokens(statement))
		if err != nil {
			return nil, err
		}
		ops = append(ops, op)
	}
	return ops, nil
}

// Execute runs the ops in order. The final statement's reply is the batch
// reply; the first error short-circuits the batch and surfaces as-is.
func (e *Executor) Execute(ops []Op) (reply string, err *db.Error) {
	// Anything escaping a store is a defect surfaced as UNKNOWN rather
	// than a dead worker.
	defer func() {
		if r := recover(); r != nil {
			reply = ""
			err = db.NewError(db.CodeUnknown, fmt.Sprintf("internal error: %v", r))
		}
	}()

	for _, op := range ops {
		reply, err = op.Run(e.stores)
		if err != nil {
			return "", err
		}
	}
	return reply, nil
}

// Run parses and executes one request body.
func (e *Executor) Run(input string) (string, *db.Error) {
	ops, err := e.Parse(input)
	if err != nil {
		return "", err
	}
	return e.Execute(ops)
}
