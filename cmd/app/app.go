package app

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/spf13/viper"
	"gopkg.in/gomail.v2"
	"gorm.io/gorm"

	"github.com/openclub/lendhub/internal/adapters/config"
	"github.com/openclub/lendhub/internal/adapters/database/redis"
	"github.com/openclub/lendhub/pkg/logger"
)

type App struct {
	Router     *gin.Engine
	DB         *gorm.DB
	Redis      *redis.Client
	SMTPDialer *gomail.Dialer
	Logger     *logger.Logger
}

func New(cfg *config.Config) (*App, error) {
	httpLogger, err := logger.Named("http")
	if err != nil {
		return nil, err
	}

	if !viper.GetBool("settings.debug") {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())

	return &App{
		Router:     router,
		DB:         cfg.Database,
		Redis:      cfg.Redis,
		SMTPDialer: cfg.SMTPDialer,
		Logger:     httpLogger,
	}, nil
}

func (a *App) Start() {
	addr := fmt.Sprintf(":%d", viper.GetInt("service.server.port"))
	logger.Log.Infof("Server starting on %s", addr)

	if err := a.Router.Run(addr); err != nil {
		logger.Log.Panicf("Server stopped: %v", err)
	}
}
