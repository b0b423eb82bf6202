package app

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/doeshing/wallpaper/internal/application/apply"
	appconfig "github.com/doeshing/wallpaper/internal/application/config"
	"github.com/doeshing/wallpaper/internal/application/doctor"
	"github.com/doeshing/wallpaper/internal/application/history"
	"github.com/doeshing/wallpaper/internal/application/wallpaper"
	"github.com/doeshing/wallpaper/internal/domain"
	"github.com/doeshing/wallpaper/internal/infrastructure/cache"
	"github.com/doeshing/wallpaper/internal/infrastructure/config"
	"github.com/doeshing/wallpaper/internal/infrastructure/executor"
	historystore "github.com/doeshing/wallpaper/internal/infrastructure/history"
	"github.com/doeshing/wallpaper/internal/infrastructure/imageinfo"
	"github.com/doeshing/wallpaper/internal/infrastructure/picker"
	"github.com/doeshing/wallpaper/internal/infrastructure/runlog"
	"github.com/doeshing/wallpaper/internal/pkg/filesystem"
	"github.com/doeshing/wallpaper/internal/pkg/logger"
	"github.com/doeshing/wallpaper/internal/ports"
)

// Options configures the container.
type Options struct {
	Verbose    bool
	ConfigPath string
	Stdout     io.Writer
	Stderr     io.Writer
}

// Container wires up application services with infrastructure adapters.
type Container struct {
	Config           domain.Config
	ConfigLoader     *config.FileLoader
	WallpaperService *wallpaper.Service
	HistoryService   *history.Service
	HistoryStore     ports.HistoryRepository
	RunLog           ports.RunLog
	DoctorService    *doctor.Service
	Prober           ports.ImageProber
	Logger           ports.Logger

	closers []io.Closer
}

// BuildContainer constructs the dependency graph.
func BuildContainer(ctx context.Context, opts Options) (*Container, error) {
	if opts.Stdout == nil {
		opts.Stdout = os.Stdout
	}
	if opts.Stderr == nil {
		opts.Stderr = os.Stderr
	}
	log := logger.NewWriter(opts.Stderr, opts.Verbose)

	cfgLoader := config.NewFileLoader(opts.ConfigPath)
	cfg, err := cfgLoader.Load(ctx)
	if err != nil {
		return nil, err
	}
	if err := appconfig.Validate(cfg); err != nil {
		return nil, err
	}

	dataDir, err := filesystem.DataDir()
	if err != nil {
		return nil, err
	}
	store := historystore.NewFileStoreAt(filepath.Join(dataDir, domain.HistoryFileName))

	historyService := &history.Service{
		Repo:   store,
		Logger: log,
		Exists: filesystem.Exists,
	}
	if cfg.History.Lock {
		historyService.Locker = historystore.NewFileLock(store.Path())
	}

	container := &Container{
		Config:         cfg,
		ConfigLoader:   cfgLoader,
		HistoryService: historyService,
		HistoryStore:   store,
		Prober:         newProber(cfg, log),
		Logger:         log,
	}

	sequencer := &apply.Sequencer{
		Runner:    executor.NewLocalRunner(opts.Stdout, opts.Stderr),
		DryRunner: executor.NewDryRunner(opts.Stdout),
		Logger:    log,
	}
	if cfg.RunLog.Enabled {
		runLog := runlog.NewSQLiteStore(filepath.Join(dataDir, domain.RunLogFileName))
		sequencer.RunLog = runLog
		container.RunLog = runLog
		container.closers = append(container.closers, runLog)
	}

	container.WallpaperService = &wallpaper.Service{
		ConfigProvider: cfgLoader,
		History:        historyService,
		Applier:        sequencer,
		Picker:         picker.NewDialogPicker(cfg.PickerCommand()),
		Prober:         container.Prober,
		DryRunProber:   dryRunProber(container.Prober),
		Logger:         log,
		ResolvePath:    filesystem.ResolveImage,
		Out:            opts.Stdout,
	}

	container.DoctorService = &doctor.Service{
		ConfigProvider: cfgLoader,
		History:        store,
		RunLog:         container.RunLog,
		Locator:        executor.PathLocator{},
		DataDir:        filesystem.DataDir,
	}

	return container, nil
}

// newProber wraps the header prober with the on-disk cache when enabled.
func newProber(cfg domain.Config, log ports.Logger) ports.ImageProber {
	prober := imageinfo.NewProber()
	if !cfg.Cache.Enabled {
		return prober
	}
	dir, err := filesystem.CacheDir()
	if err != nil {
		log.Debug("probe cache disabled", map[string]interface{}{"error": err.Error()})
		return prober
	}
	return cache.NewProbeCache(filepath.Join(dir, "probe"), prober)
}

// dryRunProber returns a prober that reads the cache without filling it.
func dryRunProber(prober ports.ImageProber) ports.ImageProber {
	if c, ok := prober.(*cache.ProbeCache); ok {
		return c.ReadOnly()
	}
	return prober
}

// Close releases held resources such as the run log database.
func (c *Container) Close() error {
	var first error
	for _, closer := range c.closers {
		if err := closer.Close(); err != nil && first == nil {
			first = err
		}
	}
	c.closers = nil
	return first
}
