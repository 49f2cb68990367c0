package buffer

import (
	"crypto/sha256"
	"encoding/hex"
	"io"
	"os"
)

// Buffer is the full, read-only content of one file.
type Buffer struct {
	filename string
	data     []byte
	hash     string
}

// Open reads the whole file into memory.
func Open(filename string) (*Buffer, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, err
	}

	return FromBytes(filename, data), nil
}

// FromBytes wraps data that was already read. The buffer keeps data as is.
func FromBytes(filename string, data []byte) *Buffer {
	return &Buffer{
		filename: filename,
		data:     data,
		hash:     digest(data),
	}
}

func digest(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

func (b *Buffer) Filename() string {
	return b.filename
}

func (b *Buffer) Size() int64 {
	return int64(len(b.data))
}

func (b *Buffer) Data() []byte {
	return b.data
}

// Hash is the hex SHA-256 of the content.
func (b *Buffer) Hash() string {
	return b.hash
}

// ByteAt returns the byte behind grid index i.
func (b *Buffer) ByteAt(i int) (byte, bool) {
	if i < 0 || i >= len(b.data) {
		return 0, false
	}
	return b.data[i], true
}

// HasChangedOnDisk reports whether the file content differs from what was read.
func (b *Buffer) HasChangedOnDisk() (bool, error) {
	if b.filename == "" {
		return false, nil
	}

	f, err := os.Open(b.filename)
	if err != nil {
		return false, err
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return false, err
	}

	return digest(data) != b.hash, nil
}
