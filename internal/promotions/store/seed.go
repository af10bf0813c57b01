package store

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/angelmondragon/packfinderz-promotions/internal/promotions"
)

// ReadSeed decodes a JSON array of promotions in their wire format.
func ReadSeed(r io.Reader) ([]promotions.Promotion, error) {
	var promos []promotions.Promotion
	decoder := json.NewDecoder(r)
	if err := decoder.Decode(&promos); err != nil {
		return nil, fmt.Errorf("decoding seed: %w", err)
	}
	return promos, nil
}

// SeedFile loads path and upserts every promotion it lists.
func (r *Repository) SeedFile(ctx context.Context, path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("opening seed file: %w", err)
	}
	defer f.Close()

	promos, err := ReadSeed(f)
	if err != nil {
		return 0, err
	}
	if err := r.Upsert(ctx, promos); err != nil {
		return 0, err
	}
	return len(promos), nil
}
