package database

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/ds124wfegd/WB_L3/6/internal/entity"
	"github.com/ds124wfegd/WB_L3/6/internal/pkg/storage"
)

func NewJobRepository(storage storage.FileStorage) JobRepository {
	return &fileJobRepository{storage: storage}
}

func (r *fileJobRepository) Save(job *entity.RenderJob) error {
	data, err := json.Marshal(job)
	if err != nil {
		return err
	}

	return r.storage.Save(r.getJobMetadataPath(job.ID), bytes.NewReader(data))
}

func (r *fileJobRepository) FindByID(id string) (*entity.RenderJob, error) {
	reader, err := r.storage.Get(r.getJobMetadataPath(id))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	defer reader.Close()

	var job entity.RenderJob
	decoder := json.NewDecoder(reader)
	if err := decoder.Decode(&job); err != nil {
		return nil, err
	}

	return &job, nil
}

// UpdateStatus перечитывает метаданные и записывает новый статус.
// Для завершённой задачи заодно фиксируется путь к результату.
func (r *fileJobRepository) UpdateStatus(id string, status string, errMsg string) error {
	job, err := r.FindByID(id)
	if err != nil {
		return err
	}
	if job == nil {
		return fmt.Errorf("render job %s not found", id)
	}

	job.Status = status
	job.Error = errMsg
	if status == entity.StatusCompleted {
		job.ResultPath = r.getResultPath(id)
	}

	return r.Save(job)
}

func (r *fileJobRepository) SaveOriginal(id string, file io.Reader) error {
	return r.storage.Save(r.getOriginalPath(id), file)
}

func (r *fileJobRepository) SaveResult(id string, data []byte) error {
	return r.storage.SaveBytes(r.getResultPath(id), data)
}

func (r *fileJobRepository) GetOriginal(id string) ([]byte, error) {
	return r.storage.GetBytes(r.getOriginalPath(id))
}

func (r *fileJobRepository) GetResult(id string) ([]byte, error) {
	return r.storage.GetBytes(r.getResultPath(id))
}

func (r *fileJobRepository) Delete(id string) error {
	if err := r.storage.Delete(r.getJobMetadataPath(id)); err != nil && !os.IsNotExist(err) {
		return err
	}

	if err := r.storage.Delete(r.getOriginalPath(id)); err != nil && !os.IsNotExist(err) {
		return err
	}

	if err := r.storage.Delete(r.getResultPath(id)); err != nil && !os.IsNotExist(err) {
		return err
	}

	return nil
}

func (r *fileJobRepository) getJobMetadataPath(id string) string {
	return filepath.Join("metadata", id+".json")
}

func (r *fileJobRepository) getOriginalPath(id string) string {
	return filepath.Join("original", id)
}

func (r *fileJobRepository) getResultPath(id string) string {
	return filepath.Join("rendered", id+".png")
}
