package persistence

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/MrPickle311/database/lib/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func populated() *db.Stores {
	stores := db.NewStores()

	stores.Strings.Create("greeting", "hello_world")
	stores.Strings.Create("empty", "")

	stores.Sets.Create("tags")
	stores.Sets.Add("tags", "red")
	stores.Sets.Add("tags", "green")
	stores.Sets.Create("empty_set")

	stores.Hashes.Create("user")
	stores.Hashes.Set("user", "name", "bob")
	stores.Hashes.Set("user", "mail", "bob@example.com")

	stores.Queues.Create("jobs")
	stores.Queues.Push("jobs", "transient")

	return stores
}

func TestSnapshotRoundTrip(t *testing.T) {
	src := populated()

	var buf bytes.Buffer
	require.NoError(t, Save(src, &buf))

	dst := db.NewStores()
	require.NoError(t, Load(dst, bytes.NewReader(buf.Bytes())))

	value, derr := dst.Strings.Get("greeting")
	require.Nil(t, derr)
	assert.Equal(t, "hello_world", value)

	value, derr = dst.Strings.Get("empty")
	require.Nil(t, derr)
	assert.Equal(t, "", value)

	members, derr := dst.Sets.GetAll("tags")
	require.Nil(t, derr)
	assert.Equal(t, []string{"green", "red"}, members)

	length, derr := dst.Sets.Len("empty_set")
	require.Nil(t, derr)
	assert.Equal(t, uint32(0), length)

	pairs, derr := dst.Hashes.GetAll("user")
	require.Nil(t, derr)
	assert.Equal(t, []db.Pair{{Field: "mail", Value: "bob@example.com"}, {Field: "name", Value: "bob"}}, pairs)

	// queues are not part of the format
	assert.False(t, dst.KeySpace.Contains("jobs"))

	// a second encode of the restored state is byte-identical
	var buf2 bytes.Buffer
	require.NoError(t, Save(dst, &buf2))
	assert.Equal(t, buf.Bytes(), buf2.Bytes())
}

func TestSnapshotEmptyStores(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Save(db.NewStores(), &buf))

	dst := db.NewStores()
	require.NoError(t, Load(dst, bytes.NewReader(buf.Bytes())))
	assert.Equal(t, 0, dst.KeySpace.Size())
}

func TestSnapshotHeaderMismatch(t *testing.T) {
	err := Load(db.NewStores(), bytes.NewReader([]byte("NOTADUMP\x00rest")))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "header")
}

func TestSnapshotTruncated(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Save(populated(), &buf))

	full := buf.Bytes()
	for _, cut := range []int{5, len(full) / 3, len(full) - 1} {
		err := Load(db.NewStores(), bytes.NewReader(full[:cut]))
		assert.Errorf(t, err, "cut at %d", cut)
	}
}

func TestSnapshotTrailerMismatch(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Save(populated(), &buf))

	corrupted := buf.Bytes()
	corrupted[len(corrupted)-1] ^= 0xff
	err := Load(db.NewStores(), bytes.NewReader(corrupted))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "trailer")
}

func TestDumperRestoreMissingFile(t *testing.T) {
	dumper := NewDumper(db.NewStores(), filepath.Join(t.TempDir(), "absent.db"), time.Second)
	assert.NoError(t, dumper.Restore())
}

func TestDumperDumpRestoreFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.db")

	src := populated()
	dumper := NewDumper(src, path, time.Second)
	require.NoError(t, dumper.Dump())

	// the file starts with the header magic
	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(raw, []byte("[HEADER]\x00")))
	assert.True(t, bytes.HasSuffix(raw, []byte("[FOOTER]\x03")))

	dst := db.NewStores()
	restorer := NewDumper(dst, path, time.Second)
	require.NoError(t, restorer.Restore())

	value, derr := dst.Strings.Get("greeting")
	require.Nil(t, derr)
	assert.Equal(t, "hello_world", value)
}

func TestDumperRestoreCorruptFileFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.db")
	require.NoError(t, os.WriteFile(path, []byte("garbage"), 0o644))

	dumper := NewDumper(db.NewStores(), path, time.Second)
	assert.Error(t, dumper.Restore())
}

func TestDumperPeriodicLoop(t *testing.T) {
	path := filepath.Join(t.TempDir(), "loop.db")

	stores := db.NewStores()
	stores.Strings.Create("k", "v")

	dumper := NewDumper(stores, path, 20*time.Millisecond)
	dumper.Start()
	time.Sleep(70 * time.Millisecond)
	dumper.Stop()

	dst := db.NewStores()
	require.NoError(t, NewDumper(dst, path, time.Second).Restore())
	value, derr := dst.Strings.Get("k")
	require.Nil(t, derr)
	assert.Equal(t, "v", value)
}
