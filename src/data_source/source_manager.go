package datasource

import (
	"fmt"
	"sort"
	"strings"

	"stock-lens/src/data_source/yahoo"
	"stock-lens/src/interfaces"
	"stock-lens/src/logger"
	"stock-lens/src/models"
)

// SourceFactory builds a provider from config.
type SourceFactory func(cfg *models.MConfig, netMgr interfaces.INetworkManager, log *logger.Logger) interfaces.IDataProvider

// SourceManager maps provider names to factories.
type SourceManager struct {
	Factories map[string]SourceFactory
	Logger    *logger.Logger
}

// -----------------------------------------------------------------------------

// NewSourceManager registers the built-in providers.
func NewSourceManager(log *logger.Logger) *SourceManager {
	m := &SourceManager{
		Factories: make(map[string]SourceFactory),
		Logger:    log,
	}
	m.Register(yahoo.ProviderName, func(cfg *models.MConfig, netMgr interfaces.INetworkManager, log *logger.Logger) interfaces.IDataProvider {
		return yahoo.NewYahooFinanceSource(cfg, netMgr, log)
	})
	return m
}

// -----------------------------------------------------------------------------

func (m *SourceManager) Register(name string, factory SourceFactory) {
	m.Factories[strings.ToLower(name)] = factory
}

// -----------------------------------------------------------------------------

// Build returns the provider named by cfg.Provider.Name.
func (m *SourceManager) Build(cfg *models.MConfig, netMgr interfaces.INetworkManager) (interfaces.IDataProvider, error) {
	name := strings.ToLower(cfg.Provider.Name)
	factory, ok := m.Factories[name]
	if !ok {
		return nil, fmt.Errorf("unknown provider %q (available: %s)", cfg.Provider.Name, strings.Join(m.Names(), ", "))
	}

	provider := factory(cfg, netMgr, m.Logger.Named("Provider-"+name))
	m.Logger.Info("Using provider: %s", provider.Name())
	return provider, nil
}

// -----------------------------------------------------------------------------

func (m *SourceManager) Names() []string {
	names := make([]string, 0, len(m.Factories))
	for n := range m.Factories {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
