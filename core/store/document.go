package store

import (
	"context"
	"encoding/json"
	"fmt"
)

// backend reads and writes the raw JSON document. A nil slice means "no document yet".
type backend interface {
	read(ctx context.Context) ([]byte, error)
	write(ctx context.Context, data []byte) error
	close() error
}

// DocumentStore keeps every key in one JSON object and rewrites it on each change.
type DocumentStore struct {
	backend backend
}

func (s *DocumentStore) load(ctx context.Context) (map[string]json.RawMessage, error) {
	data, err := s.backend.read(ctx)
	if err != nil {
		return nil, err
	}
	doc := make(map[string]json.RawMessage)
	if len(data) == 0 {
		return doc, nil
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse store document: %w", err)
	}
	return doc, nil
}

func (s *DocumentStore) save(ctx context.Context, doc map[string]json.RawMessage) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode store document: %w", err)
	}
	return s.backend.write(ctx, data)
}

// Get implements Store.
func (s *DocumentStore) Get(ctx context.Context, key string, out any) (bool, error) {
	doc, err := s.load(ctx)
	if err != nil {
		return false, err
	}
	raw, ok := doc[key]
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return false, fmt.Errorf("failed to decode store key %q: %w", key, err)
	}
	return true, nil
}

// Set implements Store.
func (s *DocumentStore) Set(ctx context.Context, key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode store key %q: %w", key, err)
	}
	doc, err := s.load(ctx)
	if err != nil {
		return err
	}
	doc[key] = raw
	return s.save(ctx, doc)
}

// Delete implements Store.
func (s *DocumentStore) Delete(ctx context.Context, key string) error {
	doc, err := s.load(ctx)
	if err != nil {
		return err
	}
	if _, ok := doc[key]; !ok {
		return nil
	}
	delete(doc, key)
	return s.save(ctx, doc)
}

// Close implements Store.
func (s *DocumentStore) Close() error {
	return s.backend.close()
}
