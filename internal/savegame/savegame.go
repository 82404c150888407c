// Package savegame reads and writes the YAML save file that carries a
// business between sessions.
package savegame

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/jonboulle/clockwork"
	"gopkg.in/yaml.v3"

	"github.com/appengine-ltd/scooter-rentals/internal/game"
)

const CurrentVersion = 1

var (
	ErrNoSave             = errors.New("no saved game")
	ErrUnsupportedVersion = errors.New("unsupported save version")
)

type SaveFile struct {
	Version int       `yaml:"version"`
	SavedAt time.Time `yaml:"saved_at"`

	game.Snapshot `yaml:",inline"`
}

// FromState captures state as a save file stamped with clock's time.
func FromState(state *game.RunState, clock clockwork.Clock) *SaveFile {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &SaveFile{
		Version:  CurrentVersion,
		SavedAt:  clock.Now().UTC(),
		Snapshot: state.Snapshot(),
	}
}

// Restore rebuilds a run. The business name in the save wins over the
// one in config.
func (s *SaveFile) Restore(config game.RunConfig) (*game.RunState, error) {
	state, err := game.RestoreRunState(s.Snapshot, config)
	if err != nil {
		return nil, fmt.Errorf("restore save: %w", err)
	}
	return state, nil
}

// Load reads the save at path. A missing file is reported as ErrNoSave.
func Load(path string) (*SaveFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrNoSave
		}
		return nil, fmt.Errorf("read save %s: %w", path, err)
	}

	var save SaveFile
	if err := yaml.Unmarshal(data, &save); err != nil {
		return nil, fmt.Errorf("parse save %s: %w", path, err)
	}
	if save.Version > CurrentVersion {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedVersion, save.Version)
	}
	if save.Version == 0 {
		save.Version = CurrentVersion
	}
	return &save, nil
}

// Write replaces the save at path. The file is written next to its final
// location and renamed into place so a crash never leaves half a save.
func Write(path string, save *SaveFile) error {
	data, err := yaml.Marshal(save)
	if err != nil {
		return fmt.Errorf("encode save: %w", err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create save dir: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".save-*.yaml")
	if err != nil {
		return fmt.Errorf("create temp save: %w", err)
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write temp save: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp save: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("replace save %s: %w", path, err)
	}
	return nil
}
