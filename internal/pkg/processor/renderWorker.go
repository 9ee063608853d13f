package processor

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/sirupsen/logrus"

	"github.com/ds124wfegd/WB_L3/6/internal/database"
	"github.com/ds124wfegd/WB_L3/6/internal/entity"
	"github.com/ds124wfegd/WB_L3/6/internal/pkg/render"
	"github.com/ds124wfegd/WB_L3/6/internal/pkg/stats"
)

type RenderWorker interface {
	Process(task entity.RenderTask) error
}

type renderWorker struct {
	repo    database.JobRepository
	engine  *render.Engine
	counter stats.Counter
}

func NewRenderWorker(repo database.JobRepository, engine *render.Engine, counter stats.Counter) RenderWorker {
	return &renderWorker{repo: repo, engine: engine, counter: counter}
}

func (p *renderWorker) Process(task entity.RenderTask) error {
	logrus.Infof("Rendering job %s (%s)", task.JobID, task.Kind)

	// Переводим задачу в работу
	if err := p.repo.UpdateStatus(task.JobID, entity.StatusProcessing, ""); err != nil {
		return fmt.Errorf("failed to mark job as processing: %v", err)
	}

	req := render.CompositionRequest{
		Kind:   render.Kind(task.Kind),
		Text:   task.Text,
		Author: task.Author,
		Filter: task.Filter,
		Square: task.Square,
	}

	// Карточке цитаты исходное изображение не нужно
	if req.Kind != render.KindQuote {
		original, err := p.repo.GetOriginal(task.JobID)
		if err != nil {
			return p.fail(task.JobID, fmt.Errorf("failed to load original: %v", err))
		}
		req.Image = original
	}

	data, err := p.engine.Render(req)
	if err != nil {
		return p.fail(task.JobID, err)
	}

	if err := p.repo.SaveResult(task.JobID, data); err != nil {
		return p.fail(task.JobID, fmt.Errorf("failed to save result: %v", err))
	}

	// Статус обновляем после записи результата
	if err := p.repo.UpdateStatus(task.JobID, entity.StatusCompleted, ""); err != nil {
		return fmt.Errorf("failed to update status: %v", err)
	}

	if op := opForKind(req.Kind); op != "" {
		if err := p.counter.IncrOp(task.User, op); err != nil {
			logrus.Warnf("Failed to bump usage counters for %s: %v", task.User, err)
		}
	}

	logrus.Infof("Completed render job: %s", task.JobID)
	return nil
}

// fail фиксирует ошибку в метаданных задачи и возвращает её вызывающему
func (p *renderWorker) fail(jobID string, cause error) error {
	if err := p.repo.UpdateStatus(jobID, entity.StatusFailed, cause.Error()); err != nil {
		logrus.Errorf("Failed to mark job %s as failed: %v", jobID, err)
	}
	return cause
}

func opForKind(kind render.Kind) string {
	switch kind {
	case render.KindMeme:
		return stats.OpMeme
	case render.KindQuote:
		return stats.OpQuote
	case render.KindFilter:
		return stats.OpFilter
	case render.KindSticker:
		return stats.OpSticker
	}
	return ""
}

func StartRenderConsumer(brokers []string, topic, groupID string, worker RenderWorker) {

	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:        brokers,
		Topic:          topic,
		GroupID:        groupID,
		MinBytes:       10e3, // 10KB
		MaxBytes:       10e6, // 10MB
		CommitInterval: time.Second,
		StartOffset:    kafka.FirstOffset,
	})

	defer reader.Close()

	logrus.Info("Render consumer started...")
	logrus.Infof("Connected to Kafka brokers: %s", brokers)

	for {
		ctx := context.Background()
		msg, err := reader.ReadMessage(ctx)
		if err != nil {
			logrus.Errorf("Error reading message from Kafka: %v", err)
			continue
		}

		logrus.Infof("Received message from topic %s [partition %d, offset %d]: %s",
			msg.Topic, msg.Partition, msg.Offset, string(msg.Value))

		var task entity.RenderTask
		if err := json.Unmarshal(msg.Value, &task); err != nil {
			logrus.Errorf("Failed to parse task: %v", err)
			continue
		}

		go func(t entity.RenderTask) {
			if err := worker.Process(t); err != nil {
				logrus.Errorf("Rendering failed for %s: %v", t.JobID, err)
			}
		}(task)
	}
}
