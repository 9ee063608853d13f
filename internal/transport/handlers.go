package transport

import (
	"github.com/ds124wfegd/WB_L3/6/internal/service"
)

type StickerHandler struct {
	service service.StickerService
}

func NewStickerHandler(service service.StickerService) *StickerHandler {
	return &StickerHandler{service: service}
}
