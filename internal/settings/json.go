package settings

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

// LoadJSON decodes the stored value for key into out. A missing key leaves
// out untouched and returns ErrNotFound, so callers keep their default.
func LoadJSON(ctx context.Context, store Store, key string, out any) error {
	raw, err := store.Load(ctx, key)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("loading %q: %w", key, err)
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decoding %q: %w", key, err)
	}
	return nil
}

// SaveJSON encodes v and stores it under key.
func SaveJSON(ctx context.Context, store Store, key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encoding %q: %w", key, err)
	}
	return store.Save(ctx, key, raw)
}

// MarshalValue encodes v for inclusion in a SaveMany batch.
func MarshalValue(key string, v any) ([]byte, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encoding %q: %w", key, err)
	}
	return raw, nil
}
