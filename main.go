package main

import (
	"fmt"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/Sogni-AI/sogni-creatures-api/cache"
	"github.com/Sogni-AI/sogni-creatures-api/config"
	"github.com/Sogni-AI/sogni-creatures-api/handler"
	"github.com/Sogni-AI/sogni-creatures-api/imageproc"
	"github.com/Sogni-AI/sogni-creatures-api/middleware"
	"github.com/Sogni-AI/sogni-creatures-api/service"
	"github.com/Sogni-AI/sogni-creatures-api/sogni"
	"github.com/Sogni-AI/sogni-creatures-api/util"
)

func main() {
	cfg := config.New()

	if err := util.InitLogger(cfg.Server.Mode); err != nil {
		fmt.Printf("failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer util.Sync()

	if err := util.EnsureDir(cfg.Render.GuideDir); err != nil {
		util.Logger.Fatal("failed to create guide directory", zap.Error(err))
	}

	guideCache := cache.NewTTLCache()

	// 定时清理过期的引导图缓存
	sweeper := cron.New()
	if _, err := sweeper.AddFunc(cfg.Cache.SweepSchedule, guideCache.PurgeExpired); err != nil {
		util.Logger.Fatal("invalid cache sweep schedule",
			zap.String("schedule", cfg.Cache.SweepSchedule), zap.Error(err))
	}
	sweeper.Start()
	defer sweeper.Stop()

	preparer := imageproc.NewPreparer(guideCache, cfg.Cache.TTL, cfg.Render.GuideMaxEdge)
	backend := sogni.NewClient(cfg.Sogni)
	generator := service.NewGenerator(cfg.Render, preparer, backend)
	creatureHandler := handler.NewCreatureHandler(generator)

	gin.SetMode(cfg.Server.Mode)
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())

	r.GET("/", creatureHandler.Generate)
	r.GET("/heartbeat", creatureHandler.Heartbeat)

	util.Logger.Info("server starting",
		zap.String("port", cfg.Server.Port),
		zap.String("guide_dir", cfg.Render.GuideDir),
		zap.Int("blur_radius", cfg.Render.BlurRadius))
	if err := r.Run(cfg.Server.Port); err != nil {
		util.Logger.Fatal("failed to start server", zap.Error(err))
	}
}
