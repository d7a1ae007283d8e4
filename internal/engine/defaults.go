// internal/engine/defaults.go
package engine

// Defaults is the fallback policy applied once where a request enters the
// engine. Downstream code never invents its own defaults.
type Defaults struct {
	Countries []string
	Budget    int
	PoolLimit int
	Rank      int
}

// StandardDefaults mirrors the stock configuration.
func StandardDefaults() Defaults {
	return Defaults{
		Countries: []string{"United States"},
		Budget:    30000,
		PoolLimit: 30,
		Rank:      unrankedRank,
	}
}

// ApplyCountries returns the normalized preferred countries, falling back to
// the default list when none are usable.
func (d Defaults) ApplyCountries(preferred []string) []string {
	normalized := NormalizeCountries(preferred)
	if len(normalized) == 0 {
		return append([]string(nil), d.Countries...)
	}
	return normalized
}

// ApplyBudget returns the budget to plan against. Zero or negative values
// mean "unspecified".
func (d Defaults) ApplyBudget(budget *int) int {
	if budget == nil || *budget <= 0 {
		return d.Budget
	}
	return *budget
}

// ApplyPoolLimit bounds the candidate pool size.
func (d Defaults) ApplyPoolLimit(limit int) int {
	if limit <= 0 {
		return d.PoolLimit
	}
	return limit
}
