package twitsent

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"
	"sync"
)

// modelFormat is bumped whenever the Model wire format changes.
const modelFormat = "maxent1"

// ModelVersion returns the key trained models are stored under. It combines
// the Go major version with the model format, e.g. "model_go1_maxent1".
func ModelVersion() string {
	major := strings.TrimPrefix(runtime.Version(), "go")
	if i := strings.IndexAny(major, ".-+ "); i >= 0 {
		major = major[:i]
	}
	if major == "" || strings.HasPrefix(runtime.Version(), "devel") {
		major = "devel"
	}
	return "model_go" + major + "_" + modelFormat
}

// A ModelRepository loads and saves trained models by version key. Load
// returns ErrModelNotFound when nothing is stored under version.
type ModelRepository interface {
	Load(ctx context.Context, version string) (*Model, error)
	Save(ctx context.Context, version string, m *Model) error
}

var versionRE = regexp.MustCompile(`^[A-Za-z0-9._-]+$`)

// ValidateVersion reports whether version is usable as a storage key.
func ValidateVersion(version string) error {
	if !versionRE.MatchString(version) || version == "." || version == ".." {
		return fmt.Errorf("invalid model version %q", version)
	}
	return nil
}

// FileRepository stores each model as <dir>/<version>.gob.
type FileRepository struct {
	dir string
}

// NewFileRepository creates a repository rooted at dir. The directory is
// created on first save.
func NewFileRepository(dir string) *FileRepository {
	return &FileRepository{dir: dir}
}

func (r *FileRepository) path(version string) string {
	return filepath.Join(r.dir, version+".gob")
}

// Load implements ModelRepository.
func (r *FileRepository) Load(ctx context.Context, version string) (*Model, error) {
	if err := ValidateVersion(version); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	b, err := os.ReadFile(r.path(version))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrModelNotFound
		}
		return nil, fmt.Errorf("read model %s: %w", version, err)
	}

	m := new(Model)
	if err := m.UnmarshalBinary(b); err != nil {
		return nil, fmt.Errorf("load model %s: %w", version, err)
	}
	return m, nil
}

// Save implements ModelRepository. The file is written to a temporary file
// in the same directory and renamed into place.
func (r *FileRepository) Save(ctx context.Context, version string, m *Model) error {
	if err := ValidateVersion(version); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	b, err := m.MarshalBinary()
	if err != nil {
		return err
	}
	if err := writeFileAtomic(r.path(version), b, 0o644); err != nil {
		return fmt.Errorf("save model %s: %w", version, err)
	}
	return nil
}

func writeFileAtomic(path string, data []byte, mode fs.FileMode) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, ".tmp_model_*.gob")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer func() {
		_ = os.Remove(tmpName)
	}()

	if err := tmp.Chmod(mode); err != nil {
		_ = tmp.Close()
		return err
	}
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmpName, path)
}

// MemoryRepository keeps encoded models in memory.
type MemoryRepository struct {
	mu     sync.RWMutex
	models map[string][]byte
}

// NewMemoryRepository creates an empty MemoryRepository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{models: make(map[string][]byte)}
}

// Load implements ModelRepository.
func (r *MemoryRepository) Load(_ context.Context, version string) (*Model, error) {
	r.mu.RLock()
	b, found := r.models[version]
	r.mu.RUnlock()
	if !found {
		return nil, ErrModelNotFound
	}

	m := new(Model)
	if err := m.UnmarshalBinary(b); err != nil {
		return nil, fmt.Errorf("load model %s: %w", version, err)
	}
	return m, nil
}

// Save implements ModelRepository.
func (r *MemoryRepository) Save(_ context.Context, version string, m *Model) error {
	b, err := m.MarshalBinary()
	if err != nil {
		return err
	}
	r.mu.Lock()
	r.models[version] = b
	r.mu.Unlock()
	return nil
}

// Len returns the number of stored models.
func (r *MemoryRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.models)
}
