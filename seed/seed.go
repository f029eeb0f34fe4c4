// Package seed ships the demo collections the stores start from.
package seed

import (
	_ "embed"
	"fmt"

	"github.com/bytedance/sonic"

	"github.com/flowdrop/flowdrop-go/types"
)

//go:embed files.json
var filesJSON []byte

//go:embed uploads.json
var uploadsJSON []byte

// Files decodes the embedded initial file collection.
func Files() ([]types.FileRecord, error) {
	var files []types.FileRecord
	if err := sonic.Unmarshal(filesJSON, &files); err != nil {
		return nil, fmt.Errorf("decode seed files: %w", err)
	}
	return files, nil
}

// Sessions decodes the embedded initial session collection.
func Sessions() ([]types.SessionRecord, error) {
	var sessions []types.SessionRecord
	if err := sonic.Unmarshal(uploadsJSON, &sessions); err != nil {
		return nil, fmt.Errorf("decode seed sessions: %w", err)
	}
	return sessions, nil
}
