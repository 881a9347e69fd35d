package config

import (
	"doc-editor-shell/internal/domain"
	"doc-editor-shell/internal/repository"
	"doc-editor-shell/internal/service"
	"doc-editor-shell/pkg/logger"
)

// Container holds all application dependencies
type Container struct {
	Config            domain.Config
	Logger            domain.Logger
	Store             domain.KeyValueStore
	Gateway           domain.StorageGateway
	Transfer          domain.TransferContext
	HandoffService    domain.HandoffService
	PreferenceService domain.PreferenceService
	PDFViewer         *service.PDFViewer
	DocxConverter     *service.DocxConverter
}

// NewContainer creates a new dependency injection container. A store that
// fails to open is logged and left nil; the gateway degrades gracefully and
// the application still serves in-memory hand-offs.
func NewContainer() *Container {
	config := NewConfig()
	appLogger := logger.NewLogger(config.GetLogLevel())

	var store domain.KeyValueStore
	badgerStore, err := repository.NewBadgerStore(config.GetDataDir(), config.StorageInMemory(), appLogger)
	if err != nil {
		appLogger.Error("failed to open persistent store, continuing without persistence", err,
			"data_dir", config.GetDataDir())
	} else {
		store = badgerStore
	}

	gateway := service.NewStorageGateway(store, config.GetStorageLimit(), appLogger)
	transfer := service.NewTransferContext(config.GetStorageLimit(), appLogger)

	return &Container{
		Config:            config,
		Logger:            appLogger,
		Store:             store,
		Gateway:           gateway,
		Transfer:          transfer,
		HandoffService:    service.NewHandoffService(gateway, transfer, config.GetMaxFileSize(), appLogger),
		PreferenceService: service.NewPreferenceService(gateway, appLogger),
		PDFViewer:         service.NewPDFViewer(appLogger),
		DocxConverter:     service.NewDocxConverter(appLogger),
	}
}

// Close releases the container's resources.
func (c *Container) Close() error {
	if c.Store != nil {
		return c.Store.Close()
	}
	return nil
}
