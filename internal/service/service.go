package service

import (
	"errors"
	"mime/multipart"

	"github.com/ds124wfegd/WB_L3/6/internal/database"
	"github.com/ds124wfegd/WB_L3/6/internal/entity"
	"github.com/ds124wfegd/WB_L3/6/internal/pkg/kafka"
	"github.com/ds124wfegd/WB_L3/6/internal/pkg/stats"
)

var (
	ErrJobNotFound = errors.New("render job not found")
	ErrJobNotReady = errors.New("render job is not completed")
)

type StickerService interface {
	CreateMeme(id string, user string, text string, file *multipart.FileHeader) (string, error)
	CreateQuote(id string, user string, text string, author string) (string, error)
	CreateFilter(id string, user string, filter string, file *multipart.FileHeader) (string, error)
	CreateSticker(id string, user string, square bool, file *multipart.FileHeader) (string, error)
	GetJob(id string) (*entity.RenderJob, error)
	GetResult(id string) (*entity.RenderJob, []byte, error)
	DeleteJob(id string) error
	AddToPack(user string, jobID string) error
	GetPack(user string) ([]entity.PackEntry, error)
	GetUserStats(user string) (*entity.UserStats, error)
	GetTotalStats() (map[string]int64, error)
}

type stickerService struct {
	repo     database.JobRepository
	packs    database.PackRepository
	producer kafka.Producer
	counter  stats.Counter
}

func NewStickerService(repo database.JobRepository, packs database.PackRepository, producer kafka.Producer, counter stats.Counter) StickerService {
	return &stickerService{
		repo:     repo,
		packs:    packs,
		producer: producer,
		counter:  counter,
	}
}
