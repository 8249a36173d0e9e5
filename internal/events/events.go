package events

import "time"

// Catalog lifecycle event types broadcast to WebSocket clients so a UI can
// show load state without polling.
const (
	CatalogLoading  = "catalog.loading"
	CatalogProgress = "catalog.progress"
	CatalogReady    = "catalog.ready"
	CatalogFailed   = "catalog.failed"
)

type CatalogEvent struct {
	Type   string    `json:"type"`
	Loaded int       `json:"loaded,omitempty"`
	Total  int       `json:"total,omitempty"`
	Error  string    `json:"error,omitempty"`
	At     time.Time `json:"at"`
}
