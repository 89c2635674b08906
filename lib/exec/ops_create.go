package exec

import "github.com/MrPickle311/database/lib/db"

// Ops behind the CREATE category. Every successful create claims the key
// in the shared key space and the target store together.

type createStrOp struct {
	key   string
	value string
}

func (o createStrOp) Run(s *db.Stores) (string, *db.Error) {
	if err := s.Strings.Create(o.key, o.value); err != nil {
		return "", err
	}
	return okReply, nil
}

type createSetOp struct {
	key string
}

func (o createSetOp) Run(s *db.Stores) (string, *db.Error) {
	if err := s.Sets.Create(o.key); err != nil {
		return "", err
	}
	return okReply, nil
}

type createHashOp struct {
	key string
}

func (o createHashOp) Run(s *db.Stores) (string, *db.Error) {
	if err := s.Hashes.Create(o.key); err != nil {
		return "", err
	}
	return okReply, nil
}

type createQueueOp struct {
	key string
}

func (o createQueueOp) Run(s *db.Stores) (string, *db.Error) {
	if err := s.Queues.Create(o.key); err != nil {
		return "", err
	}
	return okReply, nil
}
