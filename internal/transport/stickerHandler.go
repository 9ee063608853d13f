package transport

import (
	"errors"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/ds124wfegd/WB_L3/6/internal/entity"
	"github.com/ds124wfegd/WB_L3/6/internal/pkg/render"
	"github.com/ds124wfegd/WB_L3/6/internal/service"
)

func (h *StickerHandler) CreateMeme(c *gin.Context) {
	file, ok := requireImage(c)
	if !ok {
		return
	}

	text := normalizeBreaks(c.PostForm("text"))
	if strings.TrimSpace(text) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No caption text provided"})
		return
	}

	user, ok := requestUser(c)
	if !ok {
		return
	}

	// Генерация ID
	id := uuid.New().String()

	jobID, err := h.service.CreateMeme(id, user, text, file)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusAccepted, entity.EnqueueResponse{
		ID:     jobID,
		Status: entity.StatusQueued,
	})
}

func (h *StickerHandler) CreateQuote(c *gin.Context) {
	text := normalizeBreaks(c.PostForm("text"))
	if strings.TrimSpace(text) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No quote text provided"})
		return
	}

	// Автор из формы, иначе имя отправителя
	author := c.PostForm("author")
	if author == "" {
		author = c.PostForm("sender_name")
	}
	if strings.TrimSpace(author) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No author provided"})
		return
	}

	user, ok := requestUser(c)
	if !ok {
		return
	}

	id := uuid.New().String()

	jobID, err := h.service.CreateQuote(id, user, text, author)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusAccepted, entity.EnqueueResponse{
		ID:     jobID,
		Status: entity.StatusQueued,
	})
}

func (h *StickerHandler) CreateFilter(c *gin.Context) {
	file, ok := requireImage(c)
	if !ok {
		return
	}

	// Имя фильтра проверяем до постановки в очередь
	name := c.PostForm("filter")
	if !render.IsSupportedFilter(name) {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     "Unsupported filter: " + name,
			"supported": render.SupportedFilters(),
		})
		return
	}

	user, ok := requestUser(c)
	if !ok {
		return
	}

	id := uuid.New().String()

	jobID, err := h.service.CreateFilter(id, user, name, file)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusAccepted, entity.EnqueueResponse{
		ID:     jobID,
		Status: entity.StatusQueued,
	})
}

func (h *StickerHandler) CreateSticker(c *gin.Context) {
	file, ok := requireImage(c)
	if !ok {
		return
	}

	square, _ := strconv.ParseBool(c.PostForm("square"))

	user, ok := requestUser(c)
	if !ok {
		return
	}

	id := uuid.New().String()

	jobID, err := h.service.CreateSticker(id, user, square, file)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusAccepted, entity.EnqueueResponse{
		ID:     jobID,
		Status: entity.StatusQueued,
	})
}

func (h *StickerHandler) GetJob(c *gin.Context) {
	id := c.Param("id")

	job, err := h.service.GetJob(id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if job == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Job not found"})
		return
	}

	c.JSON(http.StatusOK, entity.JobResponse{
		ID:        job.ID,
		Kind:      job.Kind,
		Status:    job.Status,
		Error:     job.Error,
		CreatedAt: job.CreatedAt,
	})
}

func (h *StickerHandler) GetResult(c *gin.Context) {
	id := c.Param("id")

	job, data, err := h.service.GetResult(id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if job == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Job not found"})
		return
	}
	if job.Status != entity.StatusCompleted {
		c.JSON(http.StatusConflict, gin.H{
			"id":     job.ID,
			"status": job.Status,
			"error":  job.Error,
		})
		return
	}

	c.Data(http.StatusOK, "image/png", data)
}

func (h *StickerHandler) DeleteJob(c *gin.Context) {
	id := c.Param("id")

	// Удаление идемпотентно: отсутствие задачи не ошибка, ошибка здесь —
	// это сбой хранилища
	if err := h.service.DeleteJob(id); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Job deleted successfully"})
}

func (h *StickerHandler) AddToPack(c *gin.Context) {
	user, ok := requestUser(c)
	if !ok {
		return
	}

	jobID := c.PostForm("job_id")
	if jobID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No job_id provided"})
		return
	}

	err := h.service.AddToPack(user, jobID)
	switch {
	case errors.Is(err, service.ErrJobNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrJobNotReady):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusOK, gin.H{"message": "Added to pack", "user": user, "job_id": jobID})
	}
}

func (h *StickerHandler) GetPack(c *gin.Context) {
	user := c.Param("user")
	if !isValidUser(user) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user name"})
		return
	}

	entries, err := h.service.GetPack(user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user":    user,
		"entries": entries,
		"count":   len(entries),
	})
}

func (h *StickerHandler) GetUserStats(c *gin.Context) {
	user := c.Param("user")
	if !isValidUser(user) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user name"})
		return
	}

	userStats, err := h.service.GetUserStats(user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, userStats)
}

func (h *StickerHandler) GetTotalStats(c *gin.Context) {
	totals, err := h.service.GetTotalStats()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"totals": totals})
}

// requireImage достаёт файл из формы и проверяет расширение
func requireImage(c *gin.Context) (*multipart.FileHeader, bool) {
	file, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No image file provided"})
		return nil, false
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !isValidImageType(ext) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid image type. Supported: jpg, jpeg, png, gif"})
		return nil, false
	}

	return file, true
}

// requestUser берёт имя пользователя из формы, по умолчанию anonymous
func requestUser(c *gin.Context) (string, bool) {
	user := c.PostForm("user")
	if user == "" {
		return "anonymous", true
	}
	if !isValidUser(user) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user name"})
		return "", false
	}
	return user, true
}

var userNamePattern = regexp.MustCompile(`^[A-Za-z0-9_.-]{1,64}$`)

func isValidUser(user string) bool {
	return userNamePattern.MatchString(user)
}

// normalizeBreaks превращает литеральный "\n" из текста формы в перенос строки
func normalizeBreaks(s string) string {
	return strings.ReplaceAll(s, `\n`, "\n")
}

func isValidImageType(ext string) bool {
	validTypes := map[string]bool{
		".jpg":  true,
		".jpeg": true,
		".png":  true,
		".gif":  true,
	}
	return validTypes[ext]
}
