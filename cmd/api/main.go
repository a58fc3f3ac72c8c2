package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/sirupsen/logrus"

	httpadp "opsplatform-backend/internal/adapter/http"
	"opsplatform-backend/internal/adapter/middleware"
	"opsplatform-backend/internal/adapter/repository/gormrepo"
	"opsplatform-backend/internal/adapter/session"
	"opsplatform-backend/internal/config"
	domainviewmode "opsplatform-backend/internal/domain/viewmode"
	"opsplatform-backend/internal/infrastructure/cache"
	"opsplatform-backend/internal/infrastructure/db"
	"opsplatform-backend/internal/infrastructure/export"
	"opsplatform-backend/internal/infrastructure/logger"
	"opsplatform-backend/internal/infrastructure/storage"
	"opsplatform-backend/internal/usecase/fundingsource"
	"opsplatform-backend/internal/usecase/permission"
	"opsplatform-backend/internal/usecase/purchase"
	"opsplatform-backend/internal/usecase/reimburse"
	"opsplatform-backend/internal/usecase/role"
	"opsplatform-backend/internal/usecase/viewmode"
)

func main() {
	cfg := config.Load()

	log, err := logger.New(logger.Options{
		Level:      cfg.LogLevel,
		Format:     cfg.LogFormat,
		FilePath:   cfg.LogFilePath,
		MaxSize:    cfg.LogMaxSize,
		MaxBackups: cfg.LogMaxBackups,
		MaxAge:     cfg.LogMaxAge,
		Compress:   cfg.LogCompress,
	})
	if err != nil {
		logrus.WithError(err).Fatal("init logger")
	}
	if err := cfg.Validate(); err != nil {
		log.WithError(err).Fatal("invalid config")
	}

	gdb, err := db.OpenGorm(cfg.DBDriver, cfg.DSN(), log)
	if err != nil {
		log.WithError(err).Fatal("open database")
	}
	sqlDB, err := gdb.DB()
	if err != nil {
		log.WithError(err).Fatal("database handle")
	}
	defer sqlDB.Close()
	if err := db.Migrate(gdb); err != nil {
		log.WithError(err).Fatal("migrate")
	}

	rdb, err := cache.OpenRedis(cache.Options{Addr: cfg.RedisAddr, Password: cfg.RedisPassword, DB: cfg.RedisDB})
	if err != nil {
		log.WithError(err).Fatal("open redis")
	}
	defer rdb.Close()

	store, err := storage.NewLocalStore(cfg.FileStorageDir, cfg.FilePublicBaseURL, cfg.JWTSecret)
	if err != nil {
		log.WithError(err).Fatal("open file storage")
	}

	// repositories
	roles := gormrepo.NewRoleRepository(gdb)
	perms := gormrepo.NewPermissionRepository(gdb)
	sources := gormrepo.NewFundingSourceRepository(gdb)
	purchases := gormrepo.NewPurchaseRepository(gdb)
	reimburses := gormrepo.NewReimburseRepository(gdb)
	events := gormrepo.NewEventRepository(gdb)
	tx := gormrepo.NewGormUoW(gdb)

	// usecases
	roleUC := role.NewUsecase(roles, tx)
	permUC := permission.NewUsecase(perms, roles, domainviewmode.NewPolicy(cfg.FinanceTeamRoles), cfg.AdminRoles)
	viewUC := viewmode.NewUsecase(session.NewRedisStore(rdb, time.Duration(cfg.ViewModeTTLSecs)*time.Second), log)
	purchaseUC := purchase.NewUsecase(purchases, events, tx, store, log)
	reimburseUC := reimburse.NewUsecase(reimburses, events, tx, store, log)
	fundingUC := fundingsource.NewUsecase(sources, tx)

	renderer := export.XLSX{}
	handlers := httpadp.Handlers{
		Health:    httpadp.NewHandler(sqlDB),
		People:    httpadp.NewPeopleHandler(roleUC, permUC, log),
		ViewMode:  httpadp.NewViewModeHandler(viewUC, log),
		Purchase:  httpadp.NewPurchaseHandler(purchaseUC, viewUC, renderer, log),
		Reimburse: httpadp.NewReimburseHandler(reimburseUC, viewUC, renderer, log),
		Funding:   httpadp.NewFundingSourceHandler(fundingUC, log),
		Files:     httpadp.NewFileHandler(store, time.Duration(cfg.FileURLTTLSecs)*time.Second, log),
	}

	e := echo.New()
	e.HideBanner = true
	e.Validator = httpadp.NewValidator()
	e.Use(echomw.Recover(), middleware.RequestLogger(log))

	auth := middleware.Auth([]byte(cfg.JWTSecret), permUC)
	idem := middleware.IdempotencyMiddleware(rdb, time.Duration(cfg.IdempTTLSecs)*time.Second, log)
	httpadp.Register(e, handlers, auth, idem)

	go func() {
		addr := ":" + cfg.AppPort
		log.WithField("addr", addr).Info("listening")
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("server stopped")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		log.WithError(err).Error("graceful shutdown")
	}
	log.Info("bye")
}
