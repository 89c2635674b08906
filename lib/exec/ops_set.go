package exec

import "github.com/MrPickle311/database/lib/db"

// Ops behind the SET category.

type setAddOp struct {
	key   string
	value string
}

func (o setAddOp) Run(s *db.Stores) (string, *db.Error) {
	if err := s.Sets.Add(o.key, o.value); err != nil {
		return "", err
	}
	return okReply, nil
}

type setLenOp struct {
	key string
}

func (o setLenOp) Run(s *db.Stores) (string, *db.Error) {
	length, err := s.Sets.Len(o.key)
	if err != nil {
		return "", err
	}
	return renderUint(length), nil
}

type setInterOp struct {
	keys []string
}

func (o setInterOp) Run(s *db.Stores) (string, *db.Error) {
	result, err := s.Sets.Intersection(o.keys)
	if err != nil {
		return "", err
	}
	return renderList(result), nil
}

type setDiffOp struct {
	a string
	b string
}

func (o setDiffOp) Run(s *db.Stores) (string, *db.Error) {
	result, err := s.Sets.Difference(o.a, o.b)
	if err != nil {
		return "", err
	}
	return renderList(result), nil
}

type setUnionOp struct {
	keys []string
}

func (o setUnionOp) Run(s *db.Stores) (string, *db.Error) {
	result, err := s.Sets.Union(o.keys)
	if err != nil {
		return "", err
	}
	return renderList(result), nil
}

type setContainsOp struct {
	key   string
	value string
}

func (o setContainsOp) Run(s *db.Stores) (string, *db.Error) {
	ok, err := s.Sets.Contains(o.key, o.value)
	if err != nil {
		return "", err
	}
	return renderBool(ok), nil
}

type setGetAllOp struct {
	key string
}

func (o setGetAllOp) Run(s *db.Stores) (string, *db.Error) {
	members, err := s.Sets.GetAll(o.key)
	if err != nil {
		return "", err
	}
	return renderList(members), nil
}

type setPopOp struct {
	key   string
	value string
}

func (o setPopOp) Run(s *db.Stores) (string, *db.Error) {
	if err := s.Sets.Pop(o.key, o.value); err != nil {
		return "", err
	}
	return o.value, nil
}
