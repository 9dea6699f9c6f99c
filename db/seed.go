package db

import (
	"context"
	"log"

	"markboard-server-go/models"
)

// SampleDataset is a small two-class mark sheet for trying the API
func SampleDataset() *models.Dataset {
	return &models.Dataset{
		FileName:  "sample.xlsx",
		Sheet:     "Sample",
		HeaderRow: 0,
		Subjects:  []string{"EL", "Maths", "Sci", "CL", "HCL", "Fn Maths"},
		Classes:   []string{"6 Grit", "6 Hope"},
		Students: []models.StudentRecord{
			{Name: "Alice Tan", Class: "6 Grit", Marks: map[string]float64{"EL": 92, "Maths": 88, "Sci": 81, "CL": 77, "HCL": 84}},
			{Name: "Bala Kumar", Class: "6 Grit", Marks: map[string]float64{"EL": 71, "Maths": 46, "Sci": 52, "CL": 38}},
			{Name: "Chen Wei", Class: "6 Grit", Marks: map[string]float64{"EL": 64, "Sci": 59, "CL": 90, "Fn Maths": 78}},
			{Name: "Dina Rahman", Class: "6 Hope", Marks: map[string]float64{"EL": 85, "Maths": 95, "Sci": 90, "CL": 66, "HCL": 58}},
			{Name: "Unknown", Class: "6 Hope", Marks: map[string]float64{"EL": 30, "Maths": 18}},
		},
	}
}

// SeedData caches the sample dataset
func (s *RedisService) SeedData(ctx context.Context) {
	log.Println("Seeding sample dataset...")
	ds := SampleDataset()
	if err := s.SaveDataset(ctx, ds); err != nil {
		log.Printf("Error seeding sample dataset: %v", err)
		return
	}
	log.Printf("Seeding complete, sample dataset ID %s", ds.ID)
}
