package exec

import "github.com/MrPickle311/database/lib/db"

// Ops behind the QUEUE category.

type queuePushOp struct {
	key   string
	value string
}

func (o queuePushOp) Run(s *db.Stores) (string, *db.Error) {
	if err := s.Queues.Push(o.key, o.value); err != nil {
		return "", err
	}
	return okReply, nil
}

type queuePopOp struct {
	key string
}

func (o queuePopOp) Run(s *db.Stores) (string, *db.Error) {
	return s.Queues.Pop(o.key)
}
