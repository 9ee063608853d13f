package database

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/ds124wfegd/WB_L3/6/internal/entity"
	"github.com/ds124wfegd/WB_L3/6/internal/pkg/storage"
)

func NewPackRepository(storage storage.FileStorage) PackRepository {
	return &filePackRepository{storage: storage}
}

// Add дочитывает пак пользователя и дописывает запись в конец
func (r *filePackRepository) Add(user string, entry entity.PackEntry) error {
	entries, err := r.List(user)
	if err != nil {
		return err
	}

	entries = append(entries, entry)

	data, err := json.Marshal(entries)
	if err != nil {
		return err
	}

	return r.storage.Save(r.getPackPath(user), bytes.NewReader(data))
}

func (r *filePackRepository) List(user string) ([]entity.PackEntry, error) {
	reader, err := r.storage.Get(r.getPackPath(user))
	if err != nil {
		if os.IsNotExist(err) {
			return []entity.PackEntry{}, nil
		}
		return nil, err
	}
	defer reader.Close()

	var entries []entity.PackEntry
	if err := json.NewDecoder(reader).Decode(&entries); err != nil {
		return nil, err
	}

	return entries, nil
}

func (r *filePackRepository) getPackPath(user string) string {
	return filepath.Join("packs", user+".json")
}
