package renderer

import (
	"bytes"
	"compress/gzip"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

const (
	meshMagic   = uint32(0x4D455348) // "MESH"
	meshVersion = uint32(2)

	// Upper bound on the elements of one stream, 64 MiB of float32.
	maxStreamLength = 1 << 24
	streamChunk     = 1 << 16
)

// EncodeMesh encodes every stream of mesh to a gzip compressed binary blob.
// The id and changed flags are not stored.
func EncodeMesh(mesh *Mesh) ([]byte, error) {
	var buf bytes.Buffer

	gzWriter := gzip.NewWriter(&buf)

	// Write header magic number
	if err := binary.Write(gzWriter, binary.LittleEndian, meshMagic); err != nil {
		return nil, err
	}

	// Write version
	if err := binary.Write(gzWriter, binary.LittleEndian, meshVersion); err != nil {
		return nil, err
	}

	for _, stream := range [][]float32{mesh.Vertices, mesh.UVs, mesh.Normals, mesh.Tangents, mesh.Bitangents, mesh.Colors} {
		if err := writeFloat32Slice(gzWriter, stream); err != nil {
			return nil, err
		}
	}
	if err := writeUint32Slice(gzWriter, mesh.Indices); err != nil {
		return nil, err
	}

	if err := gzWriter.Close(); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// DecodeMesh decodes a blob written by EncodeMesh into a mesh with the
// given id, marked changed so the next draw uploads it.
func DecodeMesh(data []byte, id int) (*Mesh, error) {
	gzReader, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to create gzip reader: %w", err)
	}
	defer gzReader.Close()

	// Read header magic
	var magic uint32
	if err := binary.Read(gzReader, binary.LittleEndian, &magic); err != nil {
		return nil, err
	}
	if magic != meshMagic {
		return nil, fmt.Errorf("invalid mesh file magic: %x", magic)
	}

	// Read version
	var version uint32
	if err := binary.Read(gzReader, binary.LittleEndian, &version); err != nil {
		return nil, err
	}
	if version != meshVersion {
		return nil, fmt.Errorf("unsupported mesh version: %d", version)
	}

	mesh := &Mesh{ID: id, Changed: true}
	for _, stream := range []*[]float32{&mesh.Vertices, &mesh.UVs, &mesh.Normals, &mesh.Tangents, &mesh.Bitangents, &mesh.Colors} {
		if *stream, err = readFloat32Slice(gzReader); err != nil {
			return nil, err
		}
	}
	if mesh.Indices, err = readUint32Slice(gzReader); err != nil {
		return nil, err
	}

	return mesh, nil
}

// Helper functions for binary encoding
func writeFloat32Slice(w io.Writer, data []float32) error {
	if err := binary.Write(w, binary.LittleEndian, int32(len(data))); err != nil {
		return err
	}
	return binary.Write(w, binary.LittleEndian, data)
}

func writeUint32Slice(w io.Writer, data []uint32) error {
	if err := binary.Write(w, binary.LittleEndian, int32(len(data))); err != nil {
		return err
	}
	return binary.Write(w, binary.LittleEndian, data)
}

func readCount(r io.Reader) (int, error) {
	var count int32
	if err := binary.Read(r, binary.LittleEndian, &count); err != nil {
		return 0, err
	}
	if count < 0 || count > maxStreamLength {
		return 0, fmt.Errorf("stream length %d out of range: %w", count, ErrCorruptMesh)
	}
	return int(count), nil
}

func readFloat32Slice(r io.Reader) ([]float32, error) {
	return readStream[float32](r)
}

func readUint32Slice(r io.Reader) ([]uint32, error) {
	return readStream[uint32](r)
}

// readStream grows the slice one chunk at a time so a length prefix larger
// than the data behind it fails before allocating for it.
func readStream[T float32 | uint32](r io.Reader) ([]T, error) {
	count, err := readCount(r)
	if err != nil || count == 0 {
		return nil, err
	}
	data := make([]T, 0, min(count, streamChunk))
	for len(data) < count {
		n := min(count-len(data), streamChunk)
		chunk := make([]T, n)
		if err := binary.Read(r, binary.LittleEndian, chunk); err != nil {
			if errors.Is(err, io.EOF) {
				err = io.ErrUnexpectedEOF
			}
			return nil, fmt.Errorf("stream truncated at %d of %d: %w", len(data), count, err)
		}
		data = append(data, chunk...)
	}
	return data, nil
}
