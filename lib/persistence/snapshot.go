package persistence

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"sort"

	"github.com/MrPickle311/database/lib/db"
)

// Constants for the snapshot file format
const (
	headerMagic = "[HEADER]\x00" // File format identifier
	footerMagic = "[FOOTER]\x03" // End-of-file marker
)

// --------------------------------------------------------------------------
// Encoding
// --------------------------------------------------------------------------

// Save writes a full dump of the persistent stores (strings, sets, hashes)
// to the writer. Queues are intentionally absent from the format.
//
// Each section starts with an entry count taken once, and every entry is
// captured under its per-entry read lock, so a single value is never
// half-written. Writers concurrent with a dump land either in this dump
// or the next.
//
// Thread-safety: This function allows concurrent store operations. It
// takes per-entry snapshots without blocking modifications.
func Save(stores *db.Stores, w io.Writer) error {
	// Use a buffered writer for better performance
	bw := bufio.NewWriterSize(w, 1024*1024) // 1 MB buffer

	// Write file header
	if _, err := bw.WriteString(headerMagic); err != nil {
		return err
	}

	// Strings section. Entries are written in name order so that equal
	// states always produce identical files.
	strItems := stores.Strings.Items()
	sort.Slice(strItems, func(i, j int) bool { return strItems[i].Name < strItems[j].Name })
	if err := binary.Write(bw, binary.LittleEndian, uint32(len(strItems))); err != nil {
		return err
	}
	for _, item := range strItems {
		if err := writeBytes(bw, []byte(item.Name)); err != nil {
			return err
		}
		if err := writeBytes(bw, item.Value); err != nil {
			return err
		}
	}

	// Sets section
	setItems := stores.Sets.Items()
	sort.Slice(setItems, func(i, j int) bool { return setItems[i].Name < setItems[j].Name })
	if err := binary.Write(bw, binary.LittleEndian, uint32(len(setItems))); err != nil {
		return err
	}
	for _, item := range setItems {
		if err := writeBytes(bw, []byte(item.Name)); err != nil {
			return err
		}
		if err := binary.Write(bw, binary.LittleEndian, uint32(len(item.Members))); err != nil {
			return err
		}
		for _, member := range item.Members {
			if err := writeBytes(bw, []byte(member)); err != nil {
				return err
			}
		}
	}

	// Hashes section
	hashItems := stores.Hashes.Items()
	sort.Slice(hashItems, func(i, j int) bool { return hashItems[i].Name < hashItems[j].Name })
	if err := binary.Write(bw, binary.LittleEndian, uint32(len(hashItems))); err != nil {
		return err
	}
	for _, item := range hashItems {
		if err := writeBytes(bw, []byte(item.Name)); err != nil {
			return err
		}
		if err := binary.Write(bw, binary.LittleEndian, uint32(len(item.Fields))); err != nil {
			return err
		}
		for _, pair := range item.Fields {
			if err := writeBytes(bw, []byte(pair.Field)); err != nil {
				return err
			}
			if err := writeBytes(bw, []byte(pair.Value)); err != nil {
				return err
			}
		}
	}

	// Write trailer
	if _, err := bw.WriteString(footerMagic); err != nil {
		return err
	}

	// Flush buffer to ensure all data is written
	return bw.Flush()
}

// writeBytes writes one length-prefixed byte-string: u32 little-endian
// length, the bytes, one trailing NUL.
func writeBytes(bw *bufio.Writer, data []byte) error {
	if err := binary.Write(bw, binary.LittleEndian, uint32(len(data))); err != nil {
		return err
	}
	if _, err := bw.Write(data); err != nil {
		return err
	}
	return bw.WriteByte(0)
}

// --------------------------------------------------------------------------
// Decoding
// --------------------------------------------------------------------------

// Load restores a dump into the given stores. Decoding is strict: a
// missing or mismatched header is a format error and a truncated section
// aborts the load. The key space is reconstructed as a side-effect of
// inserting each loaded entry.
//
// Thread-safety: This function is not thread-safe. It is meant to run at
// startup before the server accepts connections.
func Load(stores *db.Stores, r io.Reader) error {
	// Use a buffered reader for better performance
	br := bufio.NewReaderSize(r, 1024*1024) // 1 MB buffer

	// Read and verify magic number
	magic := make([]byte, len(headerMagic))
	if _, err := io.ReadFull(br, magic); err != nil {
		return fmt.Errorf("invalid snapshot: cannot read header: %v", err)
	}
	if string(magic) != headerMagic {
		return fmt.Errorf("invalid snapshot: header mismatch")
	}

	// Strings section
	strCount, err := readCount(br)
	if err != nil {
		return fmt.Errorf("invalid snapshot: strings section: %v", err)
	}
	for i := uint32(0); i < strCount; i++ {
		name, err := readBytes(br)
		if err != nil {
			return fmt.Errorf("invalid snapshot: strings section: %v", err)
		}
		value, err := readBytes(br)
		if err != nil {
			return fmt.Errorf("invalid snapshot: strings section: %v", err)
		}
		if derr := stores.Strings.Create(string(name), string(value)); derr != nil {
			return fmt.Errorf("invalid snapshot: %v", derr)
		}
	}

	// Sets section
	setCount, err := readCount(br)
	if err != nil {
		return fmt.Errorf("invalid snapshot: sets section: %v", err)
	}
	for i := uint32(0); i < setCount; i++ {
		name, err := readBytes(br)
		if err != nil {
			return fmt.Errorf("invalid snapshot: sets section: %v", err)
		}
		if derr := stores.Sets.Create(string(name)); derr != nil {
			return fmt.Errorf("invalid snapshot: %v", derr)
		}
		elems, err := readCount(br)
		if err != nil {
			return fmt.Errorf("invalid snapshot: sets section: %v", err)
		}
		for j := uint32(0); j < elems; j++ {
			member, err := readBytes(br)
			if err != nil {
				return fmt.Errorf("invalid snapshot: sets section: %v", err)
			}
			if derr := stores.Sets.Add(string(name), string(member)); derr != nil {
				return fmt.Errorf("invalid snapshot: %v", derr)
			}
		}
	}

	// Hashes section
	hashCount, err := readCount(br)
	if err != nil {
		return fmt.Errorf("invalid snapshot: hashes section: %v", err)
	}
	for i := uint32(0); i < hashCount; i++ {
		name, err := readBytes(br)
		if err != nil {
			return fmt.Errorf("invalid snapshot: hashes section: %v", err)
		}
		if derr := stores.Hashes.Create(string(name)); derr != nil {
			return fmt.Errorf("invalid snapshot: %v", derr)
		}
		fields, err := readCount(br)
		if err != nil {
			return fmt.Errorf("invalid snapshot: hashes section: %v", err)
		}
		for j := uint32(0); j < fields; j++ {
			field, err := readBytes(br)
			if err != nil {
				return fmt.Errorf("invalid snapshot: hashes section: %v", err)
			}
			value, err := readBytes(br)
			if err != nil {
				return fmt.Errorf("invalid snapshot: hashes section: %v", err)
			}
			if derr := stores.Hashes.Set(string(name), string(field), string(value)); derr != nil {
				return fmt.Errorf("invalid snapshot: %v", derr)
			}
		}
	}

	// Read and verify trailer
	trailer := make([]byte, len(footerMagic))
	if _, err := io.ReadFull(br, trailer); err != nil {
		return fmt.Errorf("invalid snapshot: cannot read trailer: %v", err)
	}
	if string(trailer) != footerMagic {
		return fmt.Errorf("invalid snapshot: trailer mismatch")
	}

	return nil
}

// readCount reads one u32 little-endian section or element count.
func readCount(br *bufio.Reader) (uint32, error) {
	var count uint32
	if err := binary.Read(br, binary.LittleEndian, &count); err != nil {
		return 0, err
	}
	return count, nil
}

// readBytes reads one length-prefixed byte-string and discards the
// trailing NUL.
func readBytes(br *bufio.Reader) ([]byte, error) {
	length, err := readCount(br)
	if err != nil {
		return nil, err
	}
	data := make([]byte, length)
	if _, err := io.ReadFull(br, data); err != nil {
		return nil, err
	}
	if _, err := br.ReadByte(); err != nil {
		return nil, err
	}
	return data, nil
}
