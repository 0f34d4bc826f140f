// Package storage keeps saved games as JSON files, one per named slot.
package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/benbeisheim/macanchess-backend/internal/model"
)

var (
	ErrSlotNotFound = errors.New("save slot not found")
	ErrInvalidSlot  = errors.New("invalid save slot name")
)

var slotName = regexp.MustCompile(`^[A-Za-z0-9_-]{1,64}$`)

const ext = ".json"

type Store struct {
	dir string
}

func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create save dir: %w", err)
	}
	return &Store{dir: dir}, nil
}

func (s *Store) path(slot string) (string, error) {
	if !slotName.MatchString(slot) {
		return "", fmt.Errorf("%w: %q", ErrInvalidSlot, slot)
	}
	return filepath.Join(s.dir, slot+ext), nil
}

// Save writes rec to slot, replacing any earlier save.
func (s *Store) Save(slot string, rec model.Record) error {
	path, err := s.path(slot)
	if err != nil {
		return err
	}
	data, err := json.MarshalIndent(rec, "", "    ")
	if err != nil {
		return fmt.Errorf("marshal record: %w", err)
	}
	tmp, err := os.CreateTemp(s.dir, slot+"-*.tmp")
	if err != nil {
		return fmt.Errorf("save %s: %w", slot, err)
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("save %s: %w", slot, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("save %s: %w", slot, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("save %s: %w", slot, err)
	}
	return nil
}

// Load reads the record in slot. The record is not validated; model.Decode does that.
func (s *Store) Load(slot string) (model.Record, error) {
	path, err := s.path(slot)
	if err != nil {
		return model.Record{}, err
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return model.Record{}, fmt.Errorf("%w: %s", ErrSlotNotFound, slot)
	}
	if err != nil {
		return model.Record{}, fmt.Errorf("load %s: %w", slot, err)
	}
	return model.ParseRecord(data)
}

func (s *Store) List() ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("list saves: %w", err)
	}
	slots := []string{}
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, ext) {
			continue
		}
		if slot := strings.TrimSuffix(name, ext); slotName.MatchString(slot) {
			slots = append(slots, slot)
		}
	}
	sort.Strings(slots)
	return slots, nil
}

func (s *Store) Delete(slot string) error {
	path, err := s.path(slot)
	if err != nil {
		return err
	}
	if err := os.Remove(path); errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w: %s", ErrSlotNotFound, slot)
	} else if err != nil {
		return fmt.Errorf("delete %s: %w", slot, err)
	}
	return nil
}
