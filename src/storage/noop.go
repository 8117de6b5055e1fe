package storage

import "stock-lens/src/models"

// NoopDB is used when storage.db_type is "none".
type NoopDB struct{}

func (NoopDB) Initialize() error { return nil }

func (NoopDB) SaveLookup(models.MLookupRecord) error { return nil }

func (NoopDB) RecentLookups(int) ([]models.MLookupRecord, error) { return nil, nil }

func (NoopDB) CleanupOldData() error { return nil }

func (NoopDB) Close() error { return nil }
