package util

import (
	"bytes"
	"encoding/gob"
	"os"
	"path/filepath"
)

// SaveGob serializes v to path with gob, creating parent directories.
func SaveGob(path string, v interface{}) error {
	if err := EnsureDir(filepath.Dir(path)); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return gob.NewEncoder(f).Encode(v)
}

// LoadGob decodes the gob file at path into v.
func LoadGob(path string, v interface{}) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return gob.NewDecoder(f).Decode(v)
}

// EncodeGob serializes v to a byte slice.
func EncodeGob(v interface{}) ([]byte, error) {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// DecodeGob deserializes bs into v.
func DecodeGob(bs []byte, v interface{}) error {
	return gob.NewDecoder(bytes.NewReader(bs)).Decode(v)
}
