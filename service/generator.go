package service

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"github.com/Sogni-AI/sogni-creatures-api/config"
	"github.com/Sogni-AI/sogni-creatures-api/creature"
	"github.com/Sogni-AI/sogni-creatures-api/imageproc"
	"github.com/Sogni-AI/sogni-creatures-api/queue"
	"github.com/Sogni-AI/sogni-creatures-api/sogni"
	"github.com/Sogni-AI/sogni-creatures-api/util"
)

// Backend 生成后端的最小边界：提交一次，等到唯一终态，拿到一张图
type Backend interface {
	Generate(ctx context.Context, req *sogni.GenerateRequest) ([]byte, error)
}

// Generator 把整条流水线（引导图预处理 -> 后端渲染 -> 去背景）
// 作为一个队列任务执行，后端同一时刻只承接一个任务。
type Generator struct {
	cfg     config.RenderConfig
	queue   *queue.Queue
	prep    *imageproc.Preparer
	backend Backend
}

func NewGenerator(cfg config.RenderConfig, prep *imageproc.Preparer, backend Backend) *Generator {
	return &Generator{
		cfg:     cfg,
		queue:   queue.New(),
		prep:    prep,
		backend: backend,
	}
}

// Generate 排队执行一次生成，返回去除背景后的 PNG 字节
func (g *Generator) Generate(ctx context.Context, params creature.Params) ([]byte, error) {
	return g.queue.Enqueue(func() ([]byte, error) {
		start := time.Now()

		guideFile := params.GuideFile()
		guide, err := g.prep.Prepare(guideFile, func() ([]byte, error) {
			return os.ReadFile(filepath.Join(g.cfg.GuideDir, guideFile))
		}, g.cfg.BlurRadius)
		if err != nil {
			return nil, err
		}

		rendered, err := g.backend.Generate(ctx, &sogni.GenerateRequest{
			Prompt:        creature.BuildPrompt(params),
			Model:         g.cfg.Model,
			Steps:         g.cfg.Steps,
			Guidance:      g.cfg.Guidance,
			Scheduler:     g.cfg.Scheduler,
			GuideImage:    guide,
			GuideStrength: g.cfg.GuideStrength,
		})
		if err != nil {
			return nil, err
		}

		out, err := imageproc.Strip(rendered, g.cfg.Tolerance)
		if err != nil {
			return nil, err
		}

		util.Logger.Info("creature generated",
			zap.String("type", params.Type),
			zap.String("personality", params.Personality),
			zap.String("color", params.Color),
			zap.Duration("cost", time.Since(start)))

		return out, nil
	})
}
