package file

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/tiwariParth/go-task-tracker/internal/models"
	"github.com/tiwariParth/go-task-tracker/internal/storage"
)

// DefaultFilename is used when no path is configured. It is relative to the
// working directory.
const DefaultFilename = "tasks.json"

const (
	indent       = "    "
	lockSuffix   = ".lock"
	backupSuffix = ".backup."
	backupLayout = "20060102150405"
)

// FileStore implements the storage.Backend interface on a single JSON file
type FileStore struct {
	filePath string
	schema   *jsonschema.Schema
	flk      *flock.Flock
	now      func() time.Time
}

// NewFileStore creates a new instance of FileStore. The file itself is not
// touched until the first Load or Save.
func NewFileStore(filePath string) (*FileStore, error) {
	if filePath == "" {
		filePath = DefaultFilename
	}

	// Ensure directory exists
	dir := filepath.Dir(filePath)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("%w: create directory %s: %v", storage.ErrStorageIO, dir, err)
		}
	}

	schema, err := compileSchema()
	if err != nil {
		return nil, err
	}

	return &FileStore{
		filePath: filePath,
		schema:   schema,
		flk:      flock.New(filePath + lockSuffix),
		now:      time.Now,
	}, nil
}

// Path returns the backing file path.
func (f *FileStore) Path() string {
	return f.filePath
}

// Load reads the task array from the file. A missing file yields an empty
// collection. Malformed JSON or a document that is not an array of tasks
// yields an error wrapping storage.ErrCorruptStore.
func (f *FileStore) Load() ([]models.Task, error) {
	data, err := os.ReadFile(f.filePath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []models.Task{}, nil
		}
		return nil, fmt.Errorf("%w: read %s: %v", storage.ErrStorageIO, f.filePath, err)
	}

	var doc interface{}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", storage.ErrCorruptStore, f.filePath, err)
	}
	if err := f.schema.Validate(doc); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", storage.ErrCorruptStore, f.filePath, firstSchemaError(err))
	}

	tasks := []models.Task{}
	if err := json.Unmarshal(data, &tasks); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", storage.ErrCorruptStore, f.filePath, err)
	}
	return tasks, nil
}

// Save overwrites the file with tasks as an indented JSON array. The data is
// written to a temporary file in the same directory and renamed into place.
func (f *FileStore) Save(tasks []models.Task) error {
	data, err := marshalTasks(tasks)
	if err != nil {
		return err
	}
	return writeFileAtomic(f.filePath, data)
}

// Backup writes tasks to a timestamped copy next to the backing file and
// returns its path.
func (f *FileStore) Backup(tasks []models.Task) (string, error) {
	backupPath := f.filePath + backupSuffix + f.now().Format(backupLayout)

	data, err := marshalTasks(tasks)
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(backupPath, data, 0644); err != nil {
		return "", fmt.Errorf("%w: write backup file: %v", storage.ErrStorageIO, err)
	}
	return backupPath, nil
}

// Lock acquires an exclusive lock on the sidecar lock file, blocking until
// it is available.
func (f *FileStore) Lock() error {
	if err := f.flk.Lock(); err != nil {
		return fmt.Errorf("%w: lock %s: %v", storage.ErrStorageIO, f.flk.Path(), err)
	}
	return nil
}

// Unlock releases the lock taken by Lock.
func (f *FileStore) Unlock() error {
	if err := f.flk.Unlock(); err != nil {
		return fmt.Errorf("%w: unlock %s: %v", storage.ErrStorageIO, f.flk.Path(), err)
	}
	return nil
}

func marshalTasks(tasks []models.Task) ([]byte, error) {
	if tasks == nil {
		tasks = []models.Task{}
	}
	data, err := json.MarshalIndent(tasks, "", indent)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal tasks: %w", err)
	}
	return data, nil
}

func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("%w: create temporary file: %v", storage.ErrStorageIO, err)
	}
	tmpPath := tmp.Name()
	defer func() { _ = os.Remove(tmpPath) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("%w: write %s: %v", storage.ErrStorageIO, tmpPath, err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("%w: sync %s: %v", storage.ErrStorageIO, tmpPath, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("%w: close %s: %v", storage.ErrStorageIO, tmpPath, err)
	}
	if err := os.Chmod(tmpPath, 0644); err != nil {
		return fmt.Errorf("%w: chmod %s: %v", storage.ErrStorageIO, tmpPath, err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("%w: rename %s to %s: %v", storage.ErrStorageIO, tmpPath, path, err)
	}
	return nil
}
