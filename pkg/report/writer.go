package report

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dukex/sonda/pkg/models"
)

// Writer persists execution results under a root directory, one JSON
// file per execution.
type Writer struct {
	root   string
	logger *slog.Logger
}

func NewWriter(root string, logger *slog.Logger) *Writer {
	cleanRoot := strings.Replace(root, "file://", "", 1)

	return &Writer{
		root:   cleanRoot,
		logger: logger.With("module", "report"),
	}
}

// Save writes the result as indented JSON and returns the file path.
func (w *Writer) Save(result *models.ExecutionResult) (string, error) {
	err := os.MkdirAll(w.root, 0o755)
	if err != nil {
		return "", fmt.Errorf("failed to create reports directory: %w", err)
	}

	filename := fmt.Sprintf("%s-%s.json", result.ExecutionID, time.Now().UTC().Format("20060102T150405"))
	path := filepath.Join(w.root, filename)

	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode result: %w", err)
	}

	err = os.WriteFile(path, data, 0o600)
	if err != nil {
		return "", fmt.Errorf("failed to write report: %w", err)
	}

	w.logger.Info("Execution report saved", "path", path)

	return path, nil
}
