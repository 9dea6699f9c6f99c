package models

import "time"

// StudentRecord is one cleaned spreadsheet row
type StudentRecord struct {
	Name  string             `json:"name"`  // "Unknown" when the cell was blank
	Class string             `json:"class"` // Class label, may be empty
	Marks map[string]float64 `json:"marks"` // Subject code -> mark; absent when not taken
}

// Dataset is an imported workbook after header detection and cleaning
type Dataset struct {
	ID        string          `json:"id"`
	FileName  string          `json:"fileName"`
	Sheet     string          `json:"sheet"`     // Sheet the header was found on
	HeaderRow int             `json:"headerRow"` // 0-based row index of the header
	Subjects  []string        `json:"subjects"`  // Offered subject columns, canonical order
	Classes   []string        `json:"classes"`   // Distinct non-empty class labels, sorted
	Students  []StudentRecord `json:"students"`
	CreatedAt time.Time       `json:"createdAt"`
}

// DatasetMeta is the dataset without its rows, used in listings
type DatasetMeta struct {
	ID           string    `json:"id"`
	FileName     string    `json:"fileName"`
	Sheet        string    `json:"sheet"`
	HeaderRow    int       `json:"headerRow"`
	Subjects     []string  `json:"subjects"`
	Classes      []string  `json:"classes"`
	StudentCount int       `json:"studentCount"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Meta strips the student rows
func (d *Dataset) Meta() DatasetMeta {
	return DatasetMeta{
		ID:           d.ID,
		FileName:     d.FileName,
		Sheet:        d.Sheet,
		HeaderRow:    d.HeaderRow,
		Subjects:     d.Subjects,
		Classes:      d.Classes,
		StudentCount: len(d.Students),
		CreatedAt:    d.CreatedAt,
	}
}
