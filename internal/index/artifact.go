// CineMood - Conversational Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemood

package index

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
)

// Artifact layout, little endian:
//
//	[8]byte  magic "CMEMB001"
//	uint32   rows
//	uint32   dim
//	rows*dim float32
const (
	artifactMagic      = "CMEMB001"
	artifactHeaderSize = len(artifactMagic) + 8
)

// ErrCorruptArtifact is returned when the artifact header or size is invalid.
var ErrCorruptArtifact = errors.New("corrupt embedding artifact")

// Header describes an artifact without loading its data.
type Header struct {
	Rows int
	Dim  int
}

// ReadHeader reads and validates the artifact header at path, including
// that the file size matches rows*dim. A missing file returns an error
// satisfying errors.Is(err, os.ErrNotExist).
func ReadHeader(path string) (Header, error) {
	f, err := os.Open(path)
	if err != nil {
		return Header{}, err
	}
	defer f.Close()

	h, err := readHeader(f)
	if err != nil {
		return Header{}, err
	}

	st, err := f.Stat()
	if err != nil {
		return Header{}, err
	}
	want := int64(artifactHeaderSize) + int64(h.Rows)*int64(h.Dim)*4
	if st.Size() != want {
		return Header{}, fmt.Errorf("%s: size %d, want %d: %w", path, st.Size(), want, ErrCorruptArtifact)
	}
	return h, nil
}

func readHeader(r io.Reader) (Header, error) {
	buf := make([]byte, artifactHeaderSize)
	if _, err := io.ReadFull(r, buf); err != nil {
		return Header{}, fmt.Errorf("read header: %w", ErrCorruptArtifact)
	}
	if string(buf[:len(artifactMagic)]) != artifactMagic {
		return Header{}, fmt.Errorf("bad magic: %w", ErrCorruptArtifact)
	}
	rows := binary.LittleEndian.Uint32(buf[len(artifactMagic):])
	dim := binary.LittleEndian.Uint32(buf[len(artifactMagic)+4:])
	if dim == 0 {
		return Header{}, fmt.Errorf("zero dimension: %w", ErrCorruptArtifact)
	}
	return Header{Rows: int(rows), Dim: int(dim)}, nil
}

// ReadArtifact loads the whole matrix at path.
func ReadArtifact(path string) (*Matrix, error) {
	if _, err := ReadHeader(path); err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	br := bufio.NewReaderSize(f, 1<<16)
	h, err := readHeader(br)
	if err != nil {
		return nil, err
	}

	m := NewMatrix(h.Rows, h.Dim)
	var word [4]byte
	for i := range m.Data {
		if _, err := io.ReadFull(br, word[:]); err != nil {
			return nil, fmt.Errorf("read row data: %w", ErrCorruptArtifact)
		}
		m.Data[i] = math.Float32frombits(binary.LittleEndian.Uint32(word[:]))
	}
	return m, nil
}

// WriteArtifact persists m to path atomically: the data is written to a
// temporary file in the same directory, synced, then renamed over path.
// On any error path is left untouched.
func WriteArtifact(path string, m *Matrix) (err error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create artifact dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp artifact: %w", err)
	}
	tmpName := tmp.Name()
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmpName)
		}
	}()

	bw := bufio.NewWriterSize(tmp, 1<<16)
	header := make([]byte, artifactHeaderSize)
	copy(header, artifactMagic)
	binary.LittleEndian.PutUint32(header[len(artifactMagic):], uint32(m.Rows))
	binary.LittleEndian.PutUint32(header[len(artifactMagic)+4:], uint32(m.Dim))
	if _, err = bw.Write(header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	var word [4]byte
	for _, x := range m.Data {
		binary.LittleEndian.PutUint32(word[:], math.Float32bits(x))
		if _, err = bw.Write(word[:]); err != nil {
			return fmt.Errorf("write row data: %w", err)
		}
	}
	if err = bw.Flush(); err != nil {
		return fmt.Errorf("flush artifact: %w", err)
	}
	if err = tmp.Sync(); err != nil {
		return fmt.Errorf("sync artifact: %w", err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("close artifact: %w", err)
	}
	if err = os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("publish artifact: %w", err)
	}
	return nil
}
