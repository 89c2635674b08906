package exec

import (
	"fmt"
	"strconv"

	"github.com/MrPickle311/database/lib/db"
)

// --------------------------------------------------------------------------
// Command Tree
// --------------------------------------------------------------------------

// The command tree is a static two-level trie of case-sensitive keywords.
// Level one selects a category (CREATE, STR, SET, HASH, QUEUE) or a
// top-level leaf (DEL, KEYS); level two selects the operation. Each leaf
// carries the minimum argument count and a builder that turns the
// remaining tokens into a typed Op.

// builder maps the tokens after the keyword path to a typed Op.
type builder func(args []string) (Op, *db.Error)

// leaf is one registered operation.
type leaf struct {
	minArgs int
	build   builder
}

// Tree is the dispatch trie. It is immutable after construction and safe
// for concurrent use.
type Tree struct {
	categories map[string]map[string]leaf
	top        map[string]leaf
}

// NewTree builds the full command catalog.
func NewTree() *Tree {
	t := &Tree{
		categories: make(map[string]map[string]leaf),
		top:        make(map[string]leaf),
	}

	t.categories["CREATE"] = map[string]leaf{
		"STR": {2, func(args []string) (Op, *db.Error) {
			return createStrOp{key: args[0], value: args[1]}, nil
		}},
		"SET": {1, func(args []string) (Op, *db.Error) {
			return createSetOp{key: args[0]}, nil
		}},
		"HASH": {1, func(args []string) (Op, *db.Error) {
			return createHashOp{key: args[0]}, nil
		}},
		"QUEUE": {1, func(args []string) (Op, *db.Error) {
			return createQueueOp{key: args[0]}, nil
		}},
	}

	t.categories["STR"] = map[string]leaf{
		"GET": {1, func(args []string) (Op, *db.Error) {
			return strGetOp{key: args[0]}, nil
		}},
		"EXISTS": {1, func(args []string) (Op, *db.Error) {
			return strExistsOp{key: args[0]}, nil
		}},
		"LEN": {1, func(args []string) (Op, *db.Error) {
			return strLenOp{key: args[0]}, nil
		}},
		"SUB": {3, func(args []string) (Op, *db.Error) {
			start, err := parseUint(args[1])
			if err != nil {
				return nil, err
			}
			end, err := parseUint(args[2])
			if err != nil {
				return nil, err
			}
			return strSubOp{key: args[0], start: start, end: end}, nil
		}},
		"APPEND": {2, func(args []string) (Op, *db.Error) {
			return strAppendOp{key: args[0], value: args[1]}, nil
		}},
		"PREPEND": {2, func(args []string) (Op, *db.Error) {
			return strPrependOp{key: args[0], value: args[1]}, nil
		}},
		"INSERT": {3, func(args []string) (Op, *db.Error) {
			index, err := parseUint(args[1])
			if err != nil {
				return nil, err
			}
			return strInsertOp{key: args[0], index: index, value: args[2]}, nil
		}},
		"TRIM": {3, func(args []string) (Op, *db.Error) {
			start, err := parseUint(args[1])
			if err != nil {
				return nil, err
			}
			end, err := parseUint(args[2])
			if err != nil {
				return nil, err
			}
			return strTrimOp{key: args[0], start: start, end: end}, nil
		}},
		"LTRIM": {2, func(args []string) (Op, *db.Error) {
			count, err := parseUint(args[1])
			if err != nil {
				return nil, err
			}
			return strLTrimOp{key: args[0], count: count}, nil
		}},
		"RTRIM": {2, func(args []string) (Op, *db.Error) {
			count, err := parseUint(args[1])
			if err != nil {
				return nil, err
			}
			return strRTrimOp{key: args[0], count: count}, nil
		}},
	}

	t.categories["SET"] = map[string]leaf{
		"ADD": {2, func(args []string) (Op, *db.Error) {
			return setAddOp{key: args[0], value: args[1]}, nil
		}},
		"LEN": {1, func(args []string) (Op, *db.Error) {
			return setLenOp{key: args[0]}, nil
		}},
		"INTER": {2, func(args []string) (Op, *db.Error) {
			return setInterOp{keys: args}, nil
		}},
		"DIFF": {2, func(args []string) (Op, *db.Error) {
			return setDiffOp{a: args[0], b: args[1]}, nil
		}},
		"UNION": {2, func(args []string) (Op, *db.Error) {
			return setUnionOp{keys: args}, nil
		}},
		"CONTAINS": {2, func(args []string) (Op, *db.Error) {
			return setContainsOp{key: args[0], value: args[1]}, nil
		}},
		"GETALL": {1, func(args []string) (Op, *db.Error) {
			return setGetAllOp{key: args[0]}, nil
		}},
		"POP": {2, func(args []string) (Op, *db.Error) {
			return setPopOp{key: args[0], value: args[1]}, nil
		}},
	}

	t.categories["HASH"] = map[string]leaf{
		"DEL": {2, func(args []string) (Op, *db.Error) {
			return hashDelOp{key: args[0], field: args[1]}, nil
		}},
		"EXISTS": {2, func(args []string) (Op, *db.Error) {
			return hashExistsOp{key: args[0], field: args[1]}, nil
		}},
		"GET": {2, func(args []string) (Op, *db.Error) {
			return hashGetOp{key: args[0], field: args[1]}, nil
		}},
		"GETALL": {1, func(args []string) (Op, *db.Error) {
			return hashGetAllOp{key: args[0]}, nil
		}},
		"GETKEYS": {1, func(args []string) (Op, *db.Error) {
			return hashGetKeysOp{key: args[0]}, nil
		}},
		"SET": {3, func(args []string) (Op, *db.Error) {
			return hashSetOp{key: args[0], field: args[1], value: args[2]}, nil
		}},
		"LEN": {1, func(args []string) (Op, *db.Error) {
			return hashLenOp{key: args[0]}, nil
		}},
		"SEARCH": {2, func(args []string) (Op, *db.Error) {
			return hashSearchOp{key: args[0], query: args[1]}, nil
		}},
	}

	t.categories["QUEUE"] = map[string]leaf{
		"PUSH": {2, func(args []string) (Op, *db.Error) {
			return queuePushOp{key: args[0], value: args[1]}, nil
		}},
		"POP": {1, func(args []string) (Op, *db.Error) {
			return queuePopOp{key: args[0]}, nil
		}},
	}

	t.top["DEL"] = leaf{1, func(args []string) (Op, *db.Error) {
		return delOp{key: args[0]}, nil
	}}
	t.top["KEYS"] = leaf{0, func(args []string) (Op, *db.Error) {
		pattern := "*"
		if len(args) > 0 {
			pattern = args[0]
		}
		return keysOp{pattern: pattern}, nil
	}}

	return t
}

// Parse walks one statement's tokens through the trie and yields the Op.
func (t *Tree) Parse(tokens []string) (Op, *db.Error) {
	if len(tokens) == 0 {
		return nil, db.NewError(db.CodeCmdUnknown, "empty command")
	}

	keyword := tokens[0]

	if l, ok := t.top[keyword]; ok {
		return l.apply(keyword, tokens[1:])
	}

	ops, ok := t.categories[keyword]
	if !ok {
		return nil, db.NewError(db.CodeCmdUnknown, fmt.Sprintf("unknown command %s", keyword))
	}
	if len(tokens) < 2 {
		return nil, db.NewError(db.CodeBadArgLen, fmt.Sprintf("missing subcommand for %s", keyword))
	}

	sub := tokens[1]
	l, ok := ops[sub]
	if !ok {
		return nil, db.NewError(db.CodeCmdUnknown, fmt.Sprintf("unknown command %s %s", keyword, sub))
	}
	return l.apply(keyword+" "+sub, tokens[2:])
}

// apply checks the argument-count precondition and invokes the builder.
func (l leaf) apply(path string, args []string) (Op, *db.Error) {
	if len(args) < l.minArgs {
		return nil, db.NewError(db.CodeBadArgLen,
			fmt.Sprintf("%s expects at least %d arguments, got %d", path, l.minArgs, len(args)))
	}
	return l.build(args)
}

// parseUint parses a numeric token as an unsigned 32-bit integer.
func parseUint(token string) (uint32, *db.Error) {
	n, err := strconv.ParseUint(token, 10, 32)
	if err != nil {
		return 0, db.NewError(db.CodeBadCast, fmt.Sprintf("%s is not an unsigned integer", token))
	}
	return uint32(n), nil
}
