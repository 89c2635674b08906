package db

import (
	"strings"
	"testing"
)

func newStringStore() *StringStore {
	return NewStringStore(NewKeySpace())
}

func TestStringCreateGet(t *testing.T) {
	s := newStringStore()

	if err := s.Create("greeting", "hello"); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	value, err := s.Get("greeting")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if value != "hello" {
		t.Errorf("Expected hello, got %s", value)
	}

	if err := s.Create("greeting", "again"); err == nil || err.Code != CodeKeyExists {
		t.Errorf("Expected KEY_EXISTS, got %v", err)
	}
	if _, err := s.Get("missing"); err == nil || err.Code != CodeKeyNotFound {
		t.Errorf("Expected KEY_NOT_FOUND, got %v", err)
	}
	if err := s.Create("greeting", "again"); err != nil && err.Msg != "greeting already exists" {
		t.Errorf("Unexpected message: %s", err.Msg)
	}
}

func TestStringExistsLength(t *testing.T) {
	s := newStringStore()
	s.Create("k", "value")

	if !s.Exists("k") {
		t.Errorf("Expected k to exist")
	}
	if s.Exists("other") {
		t.Errorf("Expected other to not exist")
	}

	length, err := s.Length("k")
	if err != nil {
		t.Fatalf("Length failed: %v", err)
	}
	if length != 5 {
		t.Errorf("Expected length 5, got %d", length)
	}
}

func TestStringSubstring(t *testing.T) {
	s := newStringStore()
	s.Create("k", "hello_world")

	sub, err := s.Substring("k", 0, 5)
	if err != nil {
		t.Fatalf("Substring failed: %v", err)
	}
	if sub != "hello" {
		t.Errorf("Expected hello, got %s", sub)
	}

	// s == e yields the empty string
	if sub, _ := s.Substring("k", 3, 3); sub != "" {
		t.Errorf("Expected empty substring, got %s", sub)
	}

	// the full range equals the current value
	length, _ := s.Length("k")
	if full, _ := s.Substring("k", 0, length); full != "hello_world" {
		t.Errorf("Expected full value, got %s", full)
	}

	if _, err := s.Substring("k", 5, 3); err == nil || err.Code != CodeInvalidArguments {
		t.Errorf("Expected INVALID_ARGUMENTS for inverted range, got %v", err)
	}
	if _, err := s.Substring("k", 0, 100); err == nil || err.Code != CodeInvalidArguments {
		t.Errorf("Expected INVALID_ARGUMENTS for out-of-bounds end, got %v", err)
	}
}

func TestStringAppendPrependLength(t *testing.T) {
	s := newStringStore()
	s.Create("k", "base")

	parts := []string{"_one", "_two", "pre_", "_three"}
	expected := len("base")
	for i, part := range parts {
		if i%2 == 0 {
			s.Append("k", part)
		} else {
			s.Prepend("k", part)
		}
		expected += len(part)
	}

	length, _ := s.Length("k")
	if int(length) != expected {
		t.Errorf("Expected length %d, got %d", expected, length)
	}

	value, _ := s.Get("k")
	if !strings.Contains(value, "base") {
		t.Errorf("Expected base to survive edits, got %s", value)
	}
}

func TestStringInsert(t *testing.T) {
	s := newStringStore()
	s.Create("k", "helloworld")

	if err := s.Insert("k", "_", 5); err != nil {
		t.Fatalf("Insert failed: %v", err)
	}
	value, _ := s.Get("k")
	if value != "hello_world" {
		t.Errorf("Expected hello_world, got %s", value)
	}

	if err := s.Insert("k", "!", 100); err == nil || err.Code != CodeInvalidArguments {
		t.Errorf("Expected INVALID_ARGUMENTS, got %v", err)
	}

	// insert at the exact end is an append
	length, _ := s.Length("k")
	if err := s.Insert("k", "!", length); err != nil {
		t.Errorf("Insert at end failed: %v", err)
	}
	if value, _ := s.Get("k"); value != "hello_world!" {
		t.Errorf("Expected hello_world!, got %s", value)
	}
}

func TestStringTrims(t *testing.T) {
	s := newStringStore()

	s.Create("trim", "hello_world")
	if err := s.Trim("trim", 5, 6); err != nil {
		t.Fatalf("Trim failed: %v", err)
	}
	if value, _ := s.Get("trim"); value != "helloworld" {
		t.Errorf("Expected helloworld, got %s", value)
	}
	if err := s.Trim("trim", 8, 4); err == nil || err.Code != CodeInvalidArguments {
		t.Errorf("Expected INVALID_ARGUMENTS, got %v", err)
	}

	s.Create("left", "abcdef")
	s.LTrim("left", 2)
	if value, _ := s.Get("left"); value != "cdef" {
		t.Errorf("Expected cdef, got %s", value)
	}

	s.Create("right", "abcdef")
	s.RTrim("right", 2)
	if value, _ := s.Get("right"); value != "abcd" {
		t.Errorf("Expected abcd, got %s", value)
	}

	// n == length yields the empty string
	s.Create("all", "abc")
	if err := s.LTrim("all", 3); err != nil {
		t.Fatalf("LTrim full failed: %v", err)
	}
	if value, _ := s.Get("all"); value != "" {
		t.Errorf("Expected empty string, got %s", value)
	}

	// n > length is an error
	if err := s.RTrim("right", 100); err == nil || err.Code != CodeInvalidArguments {
		t.Errorf("Expected INVALID_ARGUMENTS, got %v", err)
	}
}
