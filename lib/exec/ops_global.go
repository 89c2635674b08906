package exec

import "github.com/MrPickle311/database/lib/db"

// Top-level ops that span all collections.

type delOp struct {
	key string
}

func (o delOp) Run(s *db.Stores) (string, *db.Error) {
	s.Delete(o.key)
	return okReply, nil
}

type keysOp struct {
	pattern string
}

func (o keysOp) Run(s *db.Stores) (string, *db.Error) {
	return renderList(s.Keys(o.pattern)), nil
}
