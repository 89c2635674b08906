package exec

import "github.com/MrPickle311/database/lib/db"

// Ops behind the STR category.

type strGetOp struct {
	key string
}

func (o strGetOp) Run(s *db.Stores) (string, *db.Error) {
	return s.Strings.Get(o.key)
}

type strExistsOp struct {
	key string
}

func (o strExistsOp) Run(s *db.Stores) (string, *db.Error) {
	return renderBool(s.Strings.Exists(o.key)), nil
}

type strLenOp struct {
	key string
}

func (o strLenOp) Run(s *db.Stores) (string, *db.Error) {
	length, err := s.Strings.Length(o.key)
	if err != nil {
		return "", err
	}
	return renderUint(length), nil
}

type strSubOp struct {
	key   string
	start uint32
	end   uint32
}

func (o strSubOp) Run(s *db.Stores) (string, *db.Error) {
	return s.Strings.Substring(o.key, o.start, o.end)
}

type strAppendOp struct {
	key   string
	value string
}

func (o strAppendOp) Run(s *db.Stores) (string, *db.Error) {
	if err := s.Strings.Append(o.key, o.value); err != nil {
		return "", err
	}
	return okReply, nil
}

type strPrependOp struct {
	key   string
	value string
}

func (o strPrependOp) Run(s *db.Stores) (string, *db.Error) {
	if err := s.Strings.Prepend(o.key, o.value); err != nil {
		return "", err
	}
	return okReply, nil
}

type strInsertOp struct {
	key   string
	index uint32
	value string
}

func (o strInsertOp) Run(s *db.Stores) (string, *db.Error) {
	if err := s.Strings.Insert(o.key, o.value, o.index); err != nil {
		return "", err
	}
	return okReply, nil
}

type strTrimOp struct {
	key   string
	start uint32
	end   uint32
}

func (o strTrimOp) Run(s *db.Stores) (string, *db.Error) {
	if err := s.Strings.Trim(o.key, o.start, o.end); err != nil {
		return "", err
	}
	return okReply, nil
}

type strLTrimOp struct {
	key   string
	count uint32
}

func (o strLTrimOp) Run(s *db.Stores) (string, *db.Error) {
	if err := s.Strings.LTrim(o.key, o.count); err != nil {
		return "", err
	}
	return okReply, nil
}

type strRTrimOp struct {
	key   string
	count uint32
}

func (o strRTrimOp) Run(s *db.Stores) (string, *db.Error) {
	if err := s.Strings.RTrim(o.key, o.count); err != nil {
		return "", err
	}
	return okReply, nil
}
