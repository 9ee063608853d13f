package service

import (
	"mime/multipart"
	"time"

	"github.com/ds124wfegd/WB_L3/6/internal/entity"
	"github.com/ds124wfegd/WB_L3/6/internal/pkg/render"
)

func (s *stickerService) CreateMeme(id string, user string, text string, file *multipart.FileHeader) (string, error) {
	task := entity.RenderTask{
		JobID: id,
		Kind:  string(render.KindMeme),
		Text:  text,
		User:  user,
	}
	return s.createJob(id, user, task, file)
}

func (s *stickerService) CreateQuote(id string, user string, text string, author string) (string, error) {
	task := entity.RenderTask{
		JobID:  id,
		Kind:   string(render.KindQuote),
		Text:   text,
		Author: author,
		User:   user,
	}
	return s.createJob(id, user, task, nil)
}

func (s *stickerService) CreateFilter(id string, user string, filter string, file *multipart.FileHeader) (string, error) {
	task := entity.RenderTask{
		JobID:  id,
		Kind:   string(render.KindFilter),
		Filter: filter,
		User:   user,
	}
	return s.createJob(id, user, task, file)
}

func (s *stickerService) CreateSticker(id string, user string, square bool, file *multipart.FileHeader) (string, error) {
	task := entity.RenderTask{
		JobID:  id,
		Kind:   string(render.KindSticker),
		Square: square,
		User:   user,
	}
	return s.createJob(id, user, task, file)
}

// createJob сохраняет метаданные и исходник, затем отправляет задачу в очередь
func (s *stickerService) createJob(id string, user string, task entity.RenderTask, file *multipart.FileHeader) (string, error) {
	job := &entity.RenderJob{
		ID:        id,
		Kind:      task.Kind,
		Status:    entity.StatusQueued,
		User:      user,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.repo.Save(job); err != nil {
		return "", err
	}

	// Сохраняем исходное изображение, если оно есть
	if file != nil {
		src, err := file.Open()
		if err != nil {
			return "", err
		}
		defer src.Close()

		if err := s.repo.SaveOriginal(id, src); err != nil {
			return "", err
		}
	}

	// Отправляем в Kafka для рендеринга
	if err := s.producer.SendMessage(task); err != nil {
		return "", err
	}

	return id, nil
}

func (s *stickerService) GetJob(id string) (*entity.RenderJob, error) {
	return s.repo.FindByID(id)
}

func (s *stickerService) GetResult(id string) (*entity.RenderJob, []byte, error) {
	job, err := s.repo.FindByID(id)
	if err != nil || job == nil {
		return job, nil, err
	}

	if job.Status != entity.StatusCompleted {
		return job, nil, nil
	}

	data, err := s.repo.GetResult(id)
	if err != nil {
		return job, nil, err
	}

	return job, data, nil
}

func (s *stickerService) DeleteJob(id string) error {
	return s.repo.Delete(id)
}

func (s *stickerService) AddToPack(user string, jobID string) error {
	job, err := s.repo.FindByID(jobID)
	if err != nil {
		return err
	}
	if job == nil {
		return ErrJobNotFound
	}
	if job.Status != entity.StatusCompleted {
		return ErrJobNotReady
	}

	entry := entity.PackEntry{
		JobID:   jobID,
		Kind:    job.Kind,
		AddedAt: time.Now().UTC(),
	}
	return s.packs.Add(user, entry)
}

func (s *stickerService) GetPack(user string) ([]entity.PackEntry, error) {
	return s.packs.List(user)
}

func (s *stickerService) GetUserStats(user string) (*entity.UserStats, error) {
	return s.counter.UserStats(user)
}

func (s *stickerService) GetTotalStats() (map[string]int64, error) {
	return s.counter.TotalStats()
}
