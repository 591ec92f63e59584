// Command gensample writes the bundled sample loan application dataset
// to a CSV file for local development and demos.
package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/fairlens/fairlens/infrastructure/dataset"
)

func main() {
	outputPath := flag.String("output", "data/loan_applications.csv", "Output CSV file path")
	flag.Parse()

	if err := dataset.WriteSample(*outputPath); err != nil {
		log.Fatalf("Failed to write sample dataset: %v", err)
	}

	loader, err := dataset.NewLoader(*outputPath)
	if err != nil {
		log.Fatalf("Failed to open generated dataset: %v", err)
	}
	records, err := loader.Load(0)
	if err != nil {
		log.Fatalf("Failed to read generated dataset: %v", err)
	}

	fmt.Printf("Generated sample dataset:\n")
	fmt.Printf("- Path: %s\n", *outputPath)
	fmt.Printf("- Applications: %d\n", len(records))
	for _, rec := range records {
		fmt.Printf("  - %s\n", rec.String())
	}
}
