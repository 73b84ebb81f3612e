package storage

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/trustburn79-droid/TburnChain-sub019/internal/model"
)

// JSONLJournal appends outcome records to a JSONL file.
type JSONLJournal struct {
	path string
	mu   sync.Mutex
}

// NewJSONLJournal creates a journal appending to path.
func NewJSONLJournal(path string) *JSONLJournal {
	return &JSONLJournal{path: path}
}

// PutOutcomes appends a batch of records as JSON lines.
func (s *JSONLJournal) PutOutcomes(_ context.Context, records []model.OutcomeRecord) error {
	if len(records) == 0 {
		return nil
	}

	dir := filepath.Dir(s.path)
	if dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create journal dir: %w", err)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	file, err := os.OpenFile(s.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("open journal: %w", err)
	}
	defer file.Close()

	writer := bufio.NewWriter(file)
	for _, record := range records {
		line, err := json.Marshal(record)
		if err != nil {
			return fmt.Errorf("marshal outcome: %w", err)
		}
		if _, err := writer.Write(line); err != nil {
			return fmt.Errorf("write outcome: %w", err)
		}
		if err := writer.WriteByte('\n'); err != nil {
			return fmt.Errorf("write newline: %w", err)
		}
	}

	if err := writer.Flush(); err != nil {
		return fmt.Errorf("flush journal: %w", err)
	}
	return file.Sync()
}
