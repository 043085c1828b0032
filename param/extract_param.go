package param

// Extract configures the per-link filter pipeline shared by all workers.
type Extract struct {
	MinYear    int    `json:"min_year"`
	CityFilter string `json:"city_filter"`
	DelayMinMs int    `json:"delay_min_ms"`
	DelayMaxMs int    `json:"delay_max_ms"`
}

func (e *Extract) IsValid() bool {
	return e.MinYear > 0 && e.DelayMinMs > 0 && e.DelayMaxMs >= e.DelayMinMs
}
