package schema

// MetricSpec parameterizes the presenter for one report section.
type MetricSpec struct {
	Report ReportName
	Title  string

	// RangeKey is filtered by the selection range. Empty disables the range filter.
	RangeKey KeyField

	// ExcludeLevels are dropped before the range filter.
	ExcludeLevels []int

	// GroupKeys partition rows under AllCountries; CountryGroupKeys under
	// SpecificCountries. An empty CountryGroupKeys reuses GroupKeys.
	GroupKeys        []KeyField
	CountryGroupKeys []KeyField

	// Sums are totaled per group, Means averaged per group.
	Sums  []Measure
	Means []Measure

	Derive Derivation

	// Columns are the summary table columns under AllCountries;
	// CountryColumns under SpecificCountries.
	Columns        []Column
	CountryColumns []Column
}

// GroupKeysFor returns the grouping key for a country selection.
func (s MetricSpec) GroupKeysFor(countries CountrySelection) []KeyField {
	if !countries.IsAll() && len(s.CountryGroupKeys) > 0 {
		return s.CountryGroupKeys
	}
	return s.GroupKeys
}

// ColumnsFor returns the summary columns for a country selection.
func (s MetricSpec) ColumnsFor(countries CountrySelection) []Column {
	if !countries.IsAll() && len(s.CountryColumns) > 0 {
		return s.CountryColumns
	}
	return s.Columns
}

// ReportDefinition describes a report for the catalog command.
type ReportDefinition struct {
	Name     string   `json:"name"`
	Title    string   `json:"title"`
	Dataset  string   `json:"dataset"`
	RangeKey string   `json:"range_key,omitempty"`
	GroupBy  []string `json:"group_by"`
	Sums     []string `json:"sums,omitempty"`
	Means    []string `json:"means,omitempty"`
	Formula  string   `json:"formula"`
	Chart    string   `json:"chart"`
}

// ReportCatalog contains all processed data needed for displaying report definitions.
type ReportCatalog struct {
	Title       string             `json:"title"`
	Description string             `json:"description"`
	Reports     []ReportDefinition `json:"reports"`
}
