package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Sogni-AI/sogni-creatures-api/creature"
	"github.com/Sogni-AI/sogni-creatures-api/util"
)

// Renderer 流水线入口：参数进，透明背景 PNG 出
type Renderer interface {
	Generate(ctx context.Context, params creature.Params) ([]byte, error)
}

type CreatureHandler struct {
	renderer Renderer
}

func NewCreatureHandler(renderer Renderer) *CreatureHandler {
	return &CreatureHandler{renderer: renderer}
}

// Generate GET / 校验参数、排队生成并返回图片
func (h *CreatureHandler) Generate(c *gin.Context) {
	params, errs := creature.Validate(
		c.Query("type"),
		c.Query("personality"),
		c.Query("color"),
	)
	if len(errs) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"errors": errs})
		return
	}

	data, err := h.renderer.Generate(c.Request.Context(), params)
	if err != nil {
		util.Logger.Error("generation pipeline failed",
			zap.String("type", params.Type),
			zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.Data(http.StatusOK, "image/png", data)
}

// Heartbeat GET /heartbeat 存活探针
func (h *CreatureHandler) Heartbeat(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
