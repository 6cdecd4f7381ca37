package main

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"agrimanage/config"
	"agrimanage/database"
	"agrimanage/router"

	calCtrlImp "agrimanage/pkg/calendar/controllerImp"
	calRepoImp "agrimanage/pkg/calendar/repositoryImp"
	calSvcImp "agrimanage/pkg/calendar/serviceImp"
	cropCtrlImp "agrimanage/pkg/crop/controllerImp"
	cropRepoImp "agrimanage/pkg/crop/repositoryImp"
	cropSvcImp "agrimanage/pkg/crop/serviceImp"
	dashCtrlImp "agrimanage/pkg/dashboard/controllerImp"
	exportCtrlImp "agrimanage/pkg/export/controllerImp"
	archive "agrimanage/pkg/export/repository"
	archiveImp "agrimanage/pkg/export/repositoryImp"
	exportSvc "agrimanage/pkg/export/service"
	exportSvcImp "agrimanage/pkg/export/serviceImp"
	calcCtrlImp "agrimanage/pkg/fertilizer/controllerImp"
	"agrimanage/pkg/fertilizer/rates"
	calcSvc "agrimanage/pkg/fertilizer/service"
	calcSvcImp "agrimanage/pkg/fertilizer/serviceImp"
	healthCtrlImp "agrimanage/pkg/health/controllerImp"
	"agrimanage/pkg/market"
	marketCtrlImp "agrimanage/pkg/market/controllerImp"
	marketSvcImp "agrimanage/pkg/market/serviceImp"
	notifyCtrlImp "agrimanage/pkg/notify/controllerImp"
	notifyImp "agrimanage/pkg/notify/serviceImp"
	settingsCtrlImp "agrimanage/pkg/settings/controllerImp"
	settingsSvcImp "agrimanage/pkg/settings/serviceImp"
	slot "agrimanage/pkg/slot/repository"
	slotImp "agrimanage/pkg/slot/repositoryImp"
	"agrimanage/pkg/weather"
	weatherCtrlImp "agrimanage/pkg/weather/controllerImp"
	weatherSvcImp "agrimanage/pkg/weather/serviceImp"
)

// app holds the wired components. close releases the slot backend and stops timers.
type app struct {
	db     *gorm.DB
	slot   slot.SlotRepository
	queue  *notifyImp.Queue
	store  *cropRepoImp.Store
	calc   calcSvc.CalculatorService
	export exportSvc.ExportService

	handlers router.Handlers
	closers  []func() error
}

func (a *app) close() {
	a.queue.Close()
	for i := len(a.closers) - 1; i >= 0; i-- {
		_ = a.closers[i]()
	}
}

// openSlot picks the slot backend. ephemeral forces the in-memory slot.
func openSlot(ctx context.Context, cfg config.AppConfig, ephemeral bool) (slot.SlotRepository, *gorm.DB, func() error, error) {
	driver := cfg.SlotDriver
	if ephemeral {
		driver = "memory"
	}
	switch driver {
	case "memory":
		return slotImp.NewMemory(), nil, func() error { return nil }, nil
	case "redis":
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr, Password: cfg.RedisPassword, DB: cfg.RedisDB})
		if err := rdb.Ping(ctx).Err(); err != nil {
			_ = rdb.Close()
			return nil, nil, nil, fmt.Errorf("redis %s: %w", cfg.RedisAddr, err)
		}
		return slotImp.NewRedis(rdb, cfg.RedisPrefix), nil, rdb.Close, nil
	case "sqlite", "":
		db, err := database.OpenSQLite(cfg.DBPath)
		if err != nil {
			return nil, nil, nil, err
		}
		sqlDB, err := db.DB()
		if err != nil {
			return nil, nil, nil, err
		}
		return slotImp.NewSQLite(db), db, sqlDB.Close, nil
	default:
		return nil, nil, nil, fmt.Errorf("unknown SLOT_DRIVER %q", cfg.SlotDriver)
	}
}

func openArchive(ctx context.Context, cfg config.AppConfig) (archive.ArchiveRepository, error) {
	switch cfg.ExportArchive {
	case "none", "":
		return archiveImp.NewNop(), nil
	case "fs":
		return archiveImp.NewFS(cfg.ExportDir), nil
	case "s3":
		return archiveImp.NewS3(ctx, archiveImp.S3Config{
			Bucket:    cfg.ExportS3Bucket,
			Region:    cfg.ExportS3Region,
			Endpoint:  cfg.ExportS3Endpoint,
			PathStyle: cfg.ExportS3PathStyle,
		})
	default:
		return nil, fmt.Errorf("unknown EXPORT_ARCHIVE %q", cfg.ExportArchive)
	}
}

func loadRates(cfg config.AppConfig, log *zap.Logger) *rates.Table {
	tbl := rates.Default()
	if cfg.RatesFile == "" {
		return tbl
	}
	extra, err := rates.LoadFile(cfg.RatesFile)
	if err != nil {
		log.Warn("rates file ignored", zap.String("path", cfg.RatesFile), zap.Error(err))
		return tbl
	}
	log.Info("rates file merged", zap.String("path", cfg.RatesFile), zap.Int("rows", len(extra.Rows())))
	return tbl.Merge(extra)
}

func buildApp(ctx context.Context, cfg config.AppConfig, log *zap.Logger, ephemeral bool) (*app, error) {
	sl, db, closeSlot, err := openSlot(ctx, cfg, ephemeral)
	if err != nil {
		return nil, err
	}
	arch, err := openArchive(ctx, cfg)
	if err != nil {
		_ = closeSlot()
		return nil, err
	}
	log.Info("storage ready", zap.String("slot", sl.Driver()), zap.String("archive", arch.Driver()))

	q := notifyImp.New(cfg.NotifyTTL, log.Named("notify"))

	store := cropRepoImp.New(sl, q, log.Named("store"))
	if err := store.Hydrate(ctx); err != nil {
		// an unreadable slot starts empty; the failure is already queued as a notification
		log.Warn("crop hydrate", zap.Error(err))
	}

	crops := cropSvcImp.NewCropService(store, q, log.Named("crops"))
	calc := calcSvcImp.NewCalculatorService(loadRates(cfg, log), store, q, log.Named("calculator"))
	cal := calSvcImp.NewCalendarService(store, calRepoImp.New(sl, q, log.Named("calendar")), q, log.Named("calendar"))
	settings := settingsSvcImp.NewSettingsService(sl, log.Named("settings"))
	exp := exportSvcImp.NewExportService(crops, arch, q, log.Named("export"))

	var wc weather.Client
	if cfg.WeatherAPIKey != "" {
		wc = weather.NewOpenWeather(cfg.WeatherEndpoint, cfg.WeatherAPIKey)
	} else {
		wc = weather.NewMock()
	}
	var mc market.Client
	if cfg.MarketURL != "" {
		mc = market.NewScraper(cfg.MarketURL)
	} else {
		mc = market.NewMock()
	}

	return &app{
		db:     db,
		slot:   sl,
		queue:  q,
		store:  store,
		calc:   calc,
		export: exp,
		handlers: router.Handlers{
			Health:     healthCtrlImp.NewHealthCtrl(db, sl),
			Notify:     notifyCtrlImp.New(q),
			Crops:      cropCtrlImp.New(crops),
			Calculator: calcCtrlImp.New(calc),
			Dashboard:  dashCtrlImp.New(store),
			Calendar:   calCtrlImp.New(cal),
			Settings:   settingsCtrlImp.New(settings),
			Export:     exportCtrlImp.New(exp),
			Weather:    weatherCtrlImp.New(weatherSvcImp.NewWeatherService(wc, q, log.Named("weather"))),
			Market:     marketCtrlImp.New(marketSvcImp.NewMarketService(mc, q, log.Named("market"))),
		},
		closers: []func() error{closeSlot},
	}, nil
}
