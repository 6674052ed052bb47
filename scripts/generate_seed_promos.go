package main

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"remitdesk/internal/promo"
)

// generateSeedPromos writes the built-in demo promo catalog to a JSON file
// suitable for PROMO_SEED_PATH or for uploading to the S3 seed bucket.
func main() {
	outPath := "data/promos/seed_promos.json"
	if len(os.Args) > 1 {
		outPath = os.Args[1]
	}

	if err := os.MkdirAll(filepath.Dir(outPath), 0755); err != nil {
		log.Fatalf("Failed to create directory: %v", err)
	}

	catalog := promo.DefaultCatalog()

	data, err := json.MarshalIndent(catalog, "", "  ")
	if err != nil {
		log.Fatalf("Failed to marshal catalog: %v", err)
	}

	if err := os.WriteFile(outPath, data, 0644); err != nil {
		log.Fatalf("Failed to write %s: %v", outPath, err)
	}

	fmt.Printf("Created %s with %d promo codes:\n", outPath, len(catalog.Promos))
	for _, p := range catalog.Promos {
		fmt.Printf("  - %-10s %s %.2f (min %.2f)\n", p.Code, p.Kind, p.Value, p.MinThreshold)
	}
}
