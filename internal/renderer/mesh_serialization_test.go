package renderer

import (
	"bytes"
	"compress/gzip"
	"encoding/binary"
	"errors"
	"io"
	"math"
	"testing"
)

func TestMeshSerialization(t *testing.T) {
	original := withNormals(withColors(testCube(4)))
	original.UVs = make([]float32, 16)

	data, err := EncodeMesh(original)
	if err != nil {
		t.Fatalf("EncodeMesh failed: %v", err)
	}
	if len(data) == 0 {
		t.Fatal("Encoded data is empty")
	}

	restored, err := DecodeMesh(data, 9)
	if err != nil {
		t.Fatalf("DecodeMesh failed: %v", err)
	}

	if restored.ID != 9 {
		t.Errorf("Expected id 9, got %d", restored.ID)
	}
	if !restored.Changed {
		t.Error("Decoded mesh should be marked changed")
	}
	if len(restored.Vertices) != len(original.Vertices) {
		t.Errorf("Vertices length mismatch: got %d, want %d", len(restored.Vertices), len(original.Vertices))
	}
	for i := range original.Indices {
		if restored.Indices[i] != original.Indices[i] {
			t.Fatalf("Index %d mismatch: got %d, want %d", i, restored.Indices[i], original.Indices[i])
		}
	}
	if restored.HasTangents() || restored.HasBitangents() {
		t.Error("Absent streams should stay empty")
	}
	if Fingerprint(&DrawCall{Mesh: restored, Models: identities(1)}) != Fingerprint(&DrawCall{Mesh: original, Models: identities(1)}) {
		t.Error("Round trip changed the mesh shape")
	}
}

func TestDecodeMeshRejectsGarbage(t *testing.T) {
	if _, err := DecodeMesh([]byte("not a mesh"), 0); err == nil {
		t.Error("Expected an error for invalid data")
	}
}

// meshBlob gzips raw little endian words behind the mesh header.
func meshBlob(t *testing.T, words ...uint32) []byte {
	t.Helper()
	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	header := []uint32{meshMagic, meshVersion}
	if err := binary.Write(gz, binary.LittleEndian, append(header, words...)); err != nil {
		t.Fatal(err)
	}
	if err := gz.Close(); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func TestDecodeMeshRejectsOversizedLength(t *testing.T) {
	_, err := DecodeMesh(meshBlob(t, math.MaxInt32), 0)
	if !errors.Is(err, ErrCorruptMesh) {
		t.Errorf("Expected ErrCorruptMesh, got %v", err)
	}
}

func TestDecodeMeshRejectsTruncatedStream(t *testing.T) {
	// Claims 1<<20 vertices but carries three floats.
	_, err := DecodeMesh(meshBlob(t, 1<<20, 0, 0, 0), 0)
	if !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Errorf("Expected io.ErrUnexpectedEOF, got %v", err)
	}

	data, err := EncodeMesh(testCube(0))
	if err != nil {
		t.Fatal(err)
	}
	raw, err := io.ReadAll(mustGzipReader(t, data))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := DecodeMesh(regzip(t, raw[:len(raw)-4]), 0); err == nil {
		t.Error("Expected an error for a mesh missing its last index")
	}
}

func mustGzipReader(t *testing.T, data []byte) io.Reader {
	t.Helper()
	r, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		t.Fatal(err)
	}
	return r
}

func regzip(t *testing.T, raw []byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	if _, err := gz.Write(raw); err != nil {
		t.Fatal(err)
	}
	if err := gz.Close(); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}
