package ports

import "datacraft/domain/diagnostic"

// SummaryCache holds the dashboard summaries keyed by filename. A shared
// cache backend (Redis or similar) is outside this module; adapters/memory
// ships the in-process implementation.
type SummaryCache interface {
	Put(name string, summary diagnostic.DashboardSummary)
	Get(name string) (diagnostic.DashboardSummary, bool)
	Delete(names ...string)
	Keys() []string
	All() []diagnostic.DashboardSummary
}
