package mem

import "log/slog"

// Stats holds allocator counters.
type Stats struct {
	AllocCalls    int   `json:"alloc_calls"`    // Alloc calls with n > 0
	FreeCalls     int   `json:"free_calls"`     // Free calls that released a block
	SmallAllocs   int   `json:"small_allocs"`
	MediumAllocs  int   `json:"medium_allocs"`
	LargeAllocs   int   `json:"large_allocs"`
	SmallGrowths  int   `json:"small_growths"`  // chunk pools mapped
	MediumGrowths int   `json:"medium_growths"` // buddy blocks mapped
	Splits        int   `json:"splits"`         // buddy halves pushed during allocation
	Merges        int   `json:"merges"`         // buddy pairs joined during release
	Maps          int   `json:"maps"`           // calls into the Mapper
	Unmaps        int   `json:"unmaps"`         // large blocks returned to the OS
	MappedBytes   int64 `json:"mapped_bytes"`   // bytes currently mapped
	InUseBytes    int64 `json:"in_use_bytes"`   // bytes in live blocks, including header and footer
}

// Stats returns a snapshot of the arena's counters.
func (a *Arena) Stats() Stats {
	return a.stats
}

// Utilization returns the ratio of live block bytes to mapped bytes (0.0 to 1.0).
func (s Stats) Utilization() float64 {
	if s.MappedBytes == 0 {
		return 0
	}
	return float64(s.InUseBytes) / float64(s.MappedBytes)
}

// LogValue implements slog.LogValuer.
func (s Stats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("allocs", s.AllocCalls),
		slog.Int("frees", s.FreeCalls),
		slog.Int("small_growths", s.SmallGrowths),
		slog.Int("medium_growths", s.MediumGrowths),
		slog.Int("splits", s.Splits),
		slog.Int("merges", s.Merges),
		slog.Int64("mapped_bytes", s.MappedBytes),
		slog.Int64("in_use_bytes", s.InUseBytes),
	)
}
