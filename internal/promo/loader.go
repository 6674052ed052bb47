package promo

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/rs/zerolog"
)

// fileLoader implements Loader for reading promo catalog files from the
// local file system.
type fileLoader struct {
	logger zerolog.Logger
}

// NewFileLoader creates a new file-based catalog loader.
func NewFileLoader(logger zerolog.Logger) Loader {
	return &fileLoader{
		logger: logger.With().Str("component", "promo-loader").Logger(),
	}
}

// Load reads a promo catalog JSON document and validates its entries.
func (l *fileLoader) Load(ctx context.Context, path string) (*Catalog, error) {
	l.logger.Info().Str("file", path).Msg("loading promo catalog")

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		l.logger.Error().Err(err).Str("file", path).Msg("failed to read promo catalog")
		return nil, fmt.Errorf("failed to read promo catalog %s: %w", path, err)
	}

	catalog, err := decodeCatalog(data)
	if err != nil {
		l.logger.Error().Err(err).Str("file", path).Msg("failed to decode promo catalog")
		return nil, fmt.Errorf("failed to decode promo catalog %s: %w", path, err)
	}

	l.logger.Info().
		Str("file", path).
		Int("promos_loaded", len(catalog.Promos)).
		Msg("promo catalog loaded successfully")

	return catalog, nil
}

// decodeCatalog parses catalog JSON and rejects structurally unusable
// entries early, before they reach the registry.
func decodeCatalog(data []byte) (*Catalog, error) {
	var catalog Catalog
	if err := json.Unmarshal(data, &catalog); err != nil {
		return nil, err
	}

	for i := range catalog.Promos {
		p := &catalog.Promos[i]
		if p.Code == "" {
			return nil, fmt.Errorf("promo at index %d has an empty code", i)
		}
		if p.EndDate.Before(p.StartDate) {
			return nil, fmt.Errorf("promo %s: end date precedes start date", p.Code)
		}
	}

	return &catalog, nil
}
