package exec

import "github.com/MrPickle311/database/lib/db"

// Ops behind the HASH category.

type hashDelOp struct {
	key   string
	field string
}

func (o hashDelOp) Run(s *db.Stores) (string, *db.Error) {
	if err := s.Hashes.Del(o.key, o.field); err != nil {
		return "", err
	}
	return okReply, nil
}

type hashExistsOp struct {
	key   string
	field string
}

func (o hashExistsOp) Run(s *db.Stores) (string, *db.Error) {
	ok, err := s.Hashes.Exists(o.key, o.field)
	if err != nil {
		return "", err
	}
	return renderBool(ok), nil
}

type hashGetOp struct {
	key   string
	field string
}

func (o hashGetOp) Run(s *db.Stores) (string, *db.Error) {
	return s.Hashes.Get(o.key, o.field)
}

type hashGetAllOp struct {
	key string
}

func (o hashGetAllOp) Run(s *db.Stores) (string, *db.Error) {
	pairs, err := s.Hashes.GetAll(o.key)
	if err != nil {
		return "", err
	}
	return renderPairs(pairs), nil
}

type hashGetKeysOp struct {
	key string
}

func (o hashGetKeysOp) Run(s *db.Stores) (string, *db.Error) {
	fields, err := s.Hashes.GetKeys(o.key)
	if err != nil {
		return "", err
	}
	return renderList(fields), nil
}

type hashSetOp struct {
	key   string
	field string
	value string
}

func (o hashSetOp) Run(s *db.Stores) (string, *db.Error) {
	if err := s.Hashes.Set(o.key, o.field, o.value); err != nil {
		return "", err
	}
	return okReply, nil
}

type hashLenOp struct {
	key string
}

func (o hashLenOp) Run(s *db.Stores) (string, *db.Error) {
	length, err := s.Hashes.Len(o.key)
	if err != nil {
		return "", err
	}
	return renderUint(length), nil
}

type hashSearchOp struct {
	key   string
	query string
}

func (o hashSearchOp) Run(s *db.Stores) (string, *db.Error) {
	fields, err := s.Hashes.Search(o.key, o.query)
	if err != nil {
		return "", err
	}
	return renderList(fields), nil
}
