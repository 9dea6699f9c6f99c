package importer

import (
	"errors"
	"fmt"
	"io"
	"log"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"markboard-server-go/grading"
	"markboard-server-go/models"
)

// ErrNoHeader is returned when no sheet has a row containing both Name and Class.
var ErrNoHeader = errors.New("no valid header with 'Name' and 'Class' found")

// headerScanRows is how many leading rows of each sheet are tried as the header.
const headerScanRows = 10

const unknownName = "Unknown"

type columns struct {
	name     int
	class    int
	subjects map[int]string // column index -> subject code
}

// LoadWorkbook reads an xlsx stream and returns the cleaned dataset from the
// first sheet that has a recognisable header row.
func LoadWorkbook(file io.Reader) (*models.Dataset, error) {
	f, err := excelize.OpenReader(file)
	if err != nil {
		log.Printf("Error opening Excel reader: %v", err)
		return nil, fmt.Errorf("failed to open excel file: %w", err)
	}
	defer func() {
		if err := f.Close(); err != nil {
			log.Printf("Error closing excel file: %v", err)
		}
	}()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, errors.New("excel file does not contain any sheets")
	}

	for _, sheet := range sheets {
		// Raw values so number formats cannot round the stored mark
		rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
		if err != nil {
			log.Printf("Error getting rows from sheet '%s': %v", sheet, err)
			return nil, fmt.Errorf("failed to get rows from sheet %s: %w", sheet, err)
		}
		header, cols, ok := findHeader(rows)
		if !ok {
			continue
		}
		ds := buildDataset(rows[header+1:], cols)
		ds.Sheet = sheet
		ds.HeaderRow = header
		log.Printf("Loaded sheet '%s' using header row %d (%d students, %d subjects)",
			sheet, header+1, len(ds.Students), len(ds.Subjects))
		return ds, nil
	}
	return nil, ErrNoHeader
}

func findHeader(rows [][]string) (int, columns, bool) {
	for i := 0; i < headerScanRows && i < len(rows); i++ {
		if cols, ok := parseHeader(rows[i]); ok {
			return i, cols, true
		}
	}
	return 0, columns{}, false
}

func parseHeader(row []string) (columns, bool) {
	cols := columns{name: -1, class: -1, subjects: map[int]string{}}
	seen := map[string]bool{}
	for i, cell := range row {
		label := strings.TrimSpace(cell)
		switch strings.ToLower(label) {
		case "name":
			if cols.name < 0 {
				cols.name = i
			}
			continue
		case "class":
			if cols.class < 0 {
				cols.class = i
			}
			continue
		}
		if grading.IsKnownSubject(label) && !seen[label] {
			seen[label] = true
			cols.subjects[i] = label
		}
	}
	return cols, cols.name >= 0 && cols.class >= 0
}

func buildDataset(rows [][]string, cols columns) *models.Dataset {
	offered := make([]string, 0, len(cols.subjects))
	for _, s := range cols.subjects {
		offered = append(offered, s)
	}

	students := make([]models.StudentRecord, 0, len(rows))
	classSet := map[string]bool{}
	for _, row := range rows {
		if isBlank(row) {
			continue
		}
		name := cell(row, cols.name)
		if name == "" {
			name = unknownName
		}
		class := cell(row, cols.class)
		if class != "" {
			classSet[class] = true
		}
		marks := make(map[string]float64, len(cols.subjects))
		for idx, subject := range cols.subjects {
			if m, ok := parseMark(cell(row, idx)); ok {
				marks[subject] = m
			}
		}
		students = append(students, models.StudentRecord{Name: name, Class: class, Marks: marks})
	}

	classes := make([]string, 0, len(classSet))
	for c := range classSet {
		classes = append(classes, c)
	}
	sort.Strings(classes)

	return &models.Dataset{
		Subjects: grading.OrderSubjects(offered),
		Classes:  classes,
		Students: students,
	}
}

func cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func isBlank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

// parseMark coerces a cell to a mark; anything non-numeric is absent.
func parseMark(s string) (float64, bool) {
	if s == "" {
		return 0, false
	}
	m, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(m) || math.IsInf(m, 0) {
		return 0, false
	}
	return m, true
}
