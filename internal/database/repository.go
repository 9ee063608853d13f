package database

import (
	"io"

	"github.com/ds124wfegd/WB_L3/6/internal/entity"
	"github.com/ds124wfegd/WB_L3/6/internal/pkg/storage"
)

type JobRepository interface {
	Save(job *entity.RenderJob) error
	FindByID(id string) (*entity.RenderJob, error)
	UpdateStatus(id string, status string, errMsg string) error
	SaveOriginal(id string, file io.Reader) error
	SaveResult(id string, data []byte) error
	GetOriginal(id string) ([]byte, error)
	GetResult(id string) ([]byte, error)
	Delete(id string) error
}

type PackRepository interface {
	Add(user string, entry entity.PackEntry) error
	List(user string) ([]entity.PackEntry, error)
}

type fileJobRepository struct {
	storage storage.FileStorage
}

type filePackRepository struct {
	storage storage.FileStorage
}
