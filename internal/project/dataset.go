package project

import "time"

// DatasetRef holds metadata for a dataset registered in a project.
type DatasetRef struct {
	ID         string    `json:"id"`
	Path       string    `json:"path"`
	Name       string    `json:"name"`
	Target     string    `json:"target,omitempty"`
	Delimiter  string    `json:"delimiter,omitempty"`
	SheetName  string    `json:"sheet_name,omitempty"`
	SheetIndex int       `json:"sheet_index,omitempty"`
	Rows       int       `json:"rows"`
	Columns    int       `json:"columns"`
	AddedAt    time.Time `json:"added_at"`
}

// ReportRecord is one saved report of a registered dataset.
type ReportRecord struct {
	ID        string    `json:"id"`
	DatasetID string    `json:"dataset_id"`
	File      string    `json:"file"`
	MIMEType  string    `json:"mime_type"`
	CreatedAt time.Time `json:"created_at"`
}
