package schema

// DatasetStatus represents the availability of one dataset.
type DatasetStatus struct {
	Report    ReportName `json:"report"`
	Dataset   string     `json:"dataset"`
	Location  string     `json:"location"`
	Available bool       `json:"available"`
	Rows      int        `json:"rows"`
	Error     string     `json:"error,omitempty"`
}

// SourceStatus represents the status of the dataset source.
type SourceStatus struct {
	Format    SourceFormat    `json:"format"`
	Backend   string          `json:"backend,omitempty"`
	Location  string          `json:"location"`
	Connected bool            `json:"connected"`
	Datasets  []DatasetStatus `json:"datasets"`
}
