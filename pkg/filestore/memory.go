package filestore

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/buger/jsonparser"
	"github.com/jensneuse/abstractlogger"
)

// MemoryCollection keeps raw JSON file records in memory.
type MemoryCollection struct {
	mu      sync.RWMutex
	records map[string]*File
	log     abstractlogger.Logger
}

func NewMemoryCollection(log abstractlogger.Logger) *MemoryCollection {
	if log == nil {
		log = abstractlogger.NoopLogger
	}
	return &MemoryCollection{
		records: map[string]*File{},
		log:     log,
	}
}

// Insert decodes a JSON file record and stores it, replacing any record with the same _id.
func (m *MemoryCollection) Insert(raw []byte) (*File, error) {
	file, err := decodeFile(raw)
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	m.records[file.ID] = file
	m.mu.Unlock()

	m.log.Debug("MemoryCollection.Insert",
		abstractlogger.String("id", file.ID),
		abstractlogger.String("name", file.Name),
	)
	return file, nil
}

// LoadJSON inserts every record of a JSON array and returns the number of records inserted.
// Records before a failing one stay inserted.
func (m *MemoryCollection) LoadJSON(data []byte) (int, error) {
	var (
		count     int
		insertErr error
	)
	_, err := jsonparser.ArrayEach(data, func(value []byte, dataType jsonparser.ValueType, offset int, err error) {
		if insertErr != nil {
			return
		}
		if err != nil {
			insertErr = err
			return
		}
		if dataType != jsonparser.Object {
			insertErr = fmt.Errorf("filestore: record at offset %d is %s, expected object", offset, dataType)
			return
		}
		if _, err := m.Insert(value); err != nil {
			insertErr = err
			return
		}
		count++
	})
	if err != nil {
		return count, fmt.Errorf("filestore: load records: %w", err)
	}
	return count, insertErr
}

func (m *MemoryCollection) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.records)
}

func (m *MemoryCollection) FindByIDs(ctx context.Context, ids []string) ([]*File, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	files := make([]*File, 0, len(ids))
	for _, id := range ids {
		if file, ok := m.records[id]; ok {
			files = append(files, file)
		}
	}
	return files, nil
}

func decodeFile(raw []byte) (*File, error) {
	id, err := jsonparser.GetString(raw, "_id")
	if errors.Is(err, jsonparser.KeyPathNotFoundError) || (err == nil && id == "") {
		return nil, ErrMissingID
	}
	if err != nil {
		return nil, fmt.Errorf("filestore: decode _id: %w", err)
	}

	stored := make([]byte, len(raw))
	copy(stored, raw)
	file := &File{
		ID:  id,
		Raw: stored,
	}

	if file.Name, err = optionalString(raw, "name"); err != nil {
		return nil, err
	}
	if file.Type, err = optionalString(raw, "type"); err != nil {
		return nil, err
	}
	if file.URL, err = optionalString(raw, "url"); err != nil {
		return nil, err
	}
	size, err := jsonparser.GetInt(raw, "size")
	switch {
	case err == nil:
		file.Size = size
	case !errors.Is(err, jsonparser.KeyPathNotFoundError):
		return nil, fmt.Errorf("filestore: decode size: %w", err)
	}

	return file, nil
}

func optionalString(raw []byte, key string) (string, error) {
	value, err := jsonparser.GetString(raw, key)
	if errors.Is(err, jsonparser.KeyPathNotFoundError) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("filestore: decode %s: %w", key, err)
	}
	return value, nil
}
