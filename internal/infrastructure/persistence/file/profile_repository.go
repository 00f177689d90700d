// Package file provides the JSON snapshot implementation of the profile
// repository: the whole profile lives in one document on disk, loaded at
// startup and rewritten on every save, last write wins.
package file

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/nourishly/v1/internal/domain/profile"
	"github.com/nourishly/v1/internal/ports/outbound"
	"go.uber.org/zap"
)

// ProfileRepository implements outbound.ProfileRepository on a single
// JSON file.
type ProfileRepository struct {
	path   string
	logger *zap.Logger
	now    func() time.Time
	mutex  sync.Mutex
}

// NewProfileRepository creates a file-backed profile repository.
func NewProfileRepository(path string, logger *zap.Logger) outbound.ProfileRepository {
	return &ProfileRepository{
		path:   path,
		logger: logger.Named("profile-store"),
		now:    time.Now,
	}
}

// Load reads the stored profile. When no file exists yet, or the stored
// document is unreadable, it returns the deterministic default profile
// so the application always starts with a usable state.
func (r *ProfileRepository) Load(ctx context.Context) (*profile.Profile, error) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	data, err := os.ReadFile(r.path)
	if err != nil {
		if os.IsNotExist(err) {
			r.logger.Info("No stored profile, seeding default", zap.String("path", r.path))
			return profile.Default(r.now()), nil
		}
		return nil, fmt.Errorf("read profile: %w", err)
	}

	var prof profile.Profile
	if err := json.Unmarshal(data, &prof); err != nil {
		r.logger.Warn("Stored profile is corrupt, seeding default", zap.Error(err))
		return profile.Default(r.now()), nil
	}

	if err := prof.Validate(); err != nil {
		r.logger.Warn("Stored profile failed validation, seeding default", zap.Error(err))
		return profile.Default(r.now()), nil
	}

	return &prof, nil
}

// Save writes the whole profile atomically: marshal to a temp file in
// the same directory, then rename over the target.
func (r *ProfileRepository) Save(ctx context.Context, prof *profile.Profile) error {
	if err := prof.Validate(); err != nil {
		return fmt.Errorf("refusing to persist invalid profile: %w", err)
	}

	r.mutex.Lock()
	defer r.mutex.Unlock()

	data, err := json.MarshalIndent(prof, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal profile: %w", err)
	}

	dir := filepath.Dir(r.path)
	tmp, err := os.CreateTemp(dir, ".profile-*.json")
	if err != nil {
		return fmt.Errorf("create temp profile: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write profile: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close profile: %w", err)
	}

	if err := os.Rename(tmpName, r.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replace profile: %w", err)
	}

	r.logger.Debug("Profile persisted", zap.String("path", r.path), zap.Int("bytes", len(data)))
	return nil
}
