package store

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
)

// JSONCache mirrors raw provider payloads on disk so a draft can be
// replayed or debugged without re-fetching.
type JSONCache struct {
	Root string // e.g. "data/raw"
}

func NewJSONCache(root string) *JSONCache {
	return &JSONCache{Root: root}
}

func (c *JSONCache) Path(rel string) string {
	return filepath.Join(c.Root, rel)
}

func (c *JSONCache) Exists(rel string) bool {
	_, err := os.Stat(c.Path(rel))
	return err == nil
}

// Write stores body at rel. Valid JSON is re-indented so the mirror stays
// diffable across polls; anything else is stored verbatim.
func (c *JSONCache) Write(rel string, body []byte) error {
	path := c.Path(rel)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, indentJSON(body), 0o644)
}

func (c *JSONCache) Read(rel string) ([]byte, error) {
	return os.ReadFile(c.Path(rel))
}

func indentJSON(body []byte) []byte {
	var v any
	if err := json.Unmarshal(body, &v); err != nil {
		return body
	}
	buf := &bytes.Buffer{}
	enc := json.NewEncoder(buf)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return body
	}
	return buf.Bytes()
}
