// cmd/tools/worker-generator/main.go
package main

import (
	"flag"
	"fmt"
	"os"

	"numerology-workers/pkg/registry"
)

func main() {
	activity := flag.String("activity", "", "Task type from the registry (e.g. match-professions)")
	outputDir := flag.String("output", "./internal/workers/", "Root directory for generated workers")
	registryPath := flag.String("registry", "configs/activity-registry.json", "Path to the activity registry JSON file")
	flag.Parse()

	if *activity == "" {
		fmt.Println("Usage: worker-generator --activity <task-type> [--output <dir>] [--registry <path>]")
		os.Exit(1)
	}

	reg, err := registry.LoadRegistry(*registryPath)
	if err != nil {
		fmt.Printf("Error loading registry from %s: %v\n", *registryPath, err)
		os.Exit(1)
	}

	act, ok := reg.Find(*activity)
	if !ok {
		fmt.Printf("Activity '%s' not found in registry %s\n", *activity, *registryPath)
		os.Exit(1)
	}

	written, err := Generate(act, *outputDir)
	for _, path := range written {
		fmt.Printf("generated %s\n", path)
	}
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("\nNext steps:")
	fmt.Println("  1. Implement execute in handler.go")
	fmt.Println("  2. Add the worker to internal/workers/activities.go and cmd/worker-manager/workers.go")
	fmt.Println("  3. Add its settings under workers: in configs/config.yaml")
}
