/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: writer.go
Description: Writes JSON results into an output directory with timestamped,
versioned, kind-specific file names.
*/

package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// WriteJSON writes result to <dir>/<kind>/<timestamp>_<kind>_v<version>.json and returns the path
func WriteJSON(dir, kind, version string, result interface{}) (string, error) {
	outDir := filepath.Join(dir, kind)
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	// 2024-06-11_01-30-00_enumerate_v1.0.0.json
	timestamp := time.Now().Format("2006-01-02_15-04-05")
	filename := fmt.Sprintf("%s_%s_v%s.json", timestamp, kind, version)
	path := filepath.Join(outDir, filename)

	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal result: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write result file: %w", err)
	}

	return path, nil
}
