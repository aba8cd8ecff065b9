package cli

import (
	"fmt"
	"time"

	"github.com/custodia-labs/tramites/internal/adapters/driven/config/file"
	"github.com/custodia-labs/tramites/internal/adapters/driven/csvfile"
	"github.com/custodia-labs/tramites/internal/adapters/driven/storage/astra"
	"github.com/custodia-labs/tramites/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/tramites/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/tramites/internal/connectors/gobec"
	"github.com/custodia-labs/tramites/internal/core/domain"
	"github.com/custodia-labs/tramites/internal/core/ports/driven"
	"github.com/custodia-labs/tramites/internal/core/ports/driving"
	"github.com/custodia-labs/tramites/internal/core/services"
	"github.com/custodia-labs/tramites/internal/logger"
)

// docStore is opened on first use and closed by closeServices.
var docStore driven.DocumentStore

// reportService is kept for the process so its collection cache is reused.
var reportService driving.Reporter

// openStore opens the document store selected by the configuration.
func openStore(c file.Config) (driven.DocumentStore, error) {
	switch c.Store.Kind {
	case file.StoreMemory:
		return memory.NewDocumentStore(), nil
	case file.StoreAstra:
		return astra.NewStore(astra.Config{
			Endpoint: c.Store.Astra.Endpoint,
			Token:    c.Store.Astra.Token,
			Keyspace: c.Store.Astra.Keyspace,
		})
	case file.StoreSQLite, "":
		s, err := sqlite.NewStore(c.Store.DataDir)
		if err != nil {
			return nil, err
		}
		logger.Debug("SQLite store: %s", s.Path())
		return s.DocumentStore(), nil
	default:
		return nil, fmt.Errorf("store kind %q: %w", c.Store.Kind, domain.ErrUnsupportedType)
	}
}

// withHint appends a remedy to errors the user can act on.
func withHint(err error) error {
	switch {
	case err == nil:
		return nil
	case astra.IsUnauthorized(err):
		return fmt.Errorf("%w (check the Astra token, see 'tramites config astra')", err)
	case gobec.IsServerError(err):
		return fmt.Errorf("%w (the gob.ec API is failing, try again later)", err)
	}
	return err
}

// documentStore returns the shared document store, opening it if needed.
func documentStore() (driven.DocumentStore, error) {
	if docStore != nil {
		return docStore, nil
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	s, err := openStore(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s store: %w", cfg.Store.Kind, err)
	}
	docStore = s
	return docStore, nil
}

// closeServices releases the document store.
func closeServices() {
	if docStore == nil {
		return
	}
	if err := docStore.Close(); err != nil {
		logger.Warn("closing document store: %v", err)
	}
	docStore = nil
	reportService = nil
}

func newCatalog(c file.Config) *gobec.Catalog {
	client := gobec.NewClient(gobec.Config{
		BaseURL:   c.API.BaseURL,
		Timeout:   time.Duration(c.API.Timeout),
		UserAgent: c.API.UserAgent,
	})
	logger.Debug("Using gob.ec API at %s", client.BaseURL())
	return gobec.NewCatalog(client)
}

func scrapeOptions(c file.Config) services.ScrapeOptions {
	return services.ScrapeOptions{
		Provinces:        c.Scrape.Provinces,
		TargetYear:       c.Scrape.TargetYear,
		MaxPages:         c.Scrape.MaxPages,
		TramiteMaxPages:  c.Scrape.TramiteMaxPages,
		InstitutionDelay: time.Duration(c.Scrape.InstitutionDelay),
		TramiteDelay:     time.Duration(c.Scrape.TramiteDelay),
		InstitutionsCSV:  c.Scrape.InstitutionsCSV,
		TramitesCSV:      c.Scrape.TramitesCSV,
	}
}

func newScraper() (driving.Scraper, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return services.NewScrapeService(newCatalog(cfg), csvfile.NewExporter(), scrapeOptions(cfg)), nil
}

func newIngester() (driving.Ingester, error) {
	store, err := documentStore()
	if err != nil {
		return nil, err
	}
	return services.NewIngestService(store, csvfile.NewExporter(), newCatalog(cfg)), nil
}

func newReporter() (driving.Reporter, error) {
	if reportService != nil {
		return reportService, nil
	}
	store, err := documentStore()
	if err != nil {
		return nil, err
	}
	reportService = services.NewReportService(store, services.DefaultCollectionTTL)
	return reportService, nil
}
