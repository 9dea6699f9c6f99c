package handlers

import (
	"context"
	"errors"
	"log"
	"math"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"markboard-server-go/grading"
	"markboard-server-go/importer"
	"markboard-server-go/models"
)

// DatasetStore is the dataset cache the handlers read from and write to
type DatasetStore interface {
	SaveDataset(ctx context.Context, ds *models.Dataset) error
	GetDataset(ctx context.Context, id string) (*models.Dataset, error)
	ListDatasets(ctx context.Context) ([]models.DatasetMeta, error)
	DeleteDataset(ctx context.Context, id string) (bool, error)
	Ping(ctx context.Context) error
}

// APIHandler holds the dependencies for API handlers
type APIHandler struct {
	Store          DatasetStore
	MaxUploadBytes int64
}

// NewAPIHandler creates a new APIHandler
func NewAPIHandler(store DatasetStore, maxUploadBytes int64) *APIHandler {
	return &APIHandler{
		Store:          store,
		MaxUploadBytes: maxUploadBytes,
	}
}

// RegisterRoutes mounts the API under /api
func RegisterRoutes(router *gin.Engine, h *APIHandler) {
	api := router.Group("/api")
	{
		api.GET("/ping", h.Ping)
		api.GET("/grade", h.GradeMark)

		api.POST("/datasets", h.ImportDataset)
		api.GET("/datasets", h.ListDatasets)
		api.GET("/datasets/:datasetId", h.GetDataset)
		api.DELETE("/datasets/:datasetId", h.DeleteDataset)
		api.GET("/datasets/:datasetId/summary", h.GetSummary)
		api.GET("/datasets/:datasetId/students", h.GetStudents)
	}
}

// --- Dataset Handlers ---

// ImportDataset handles POST /api/datasets
func (h *APIHandler) ImportDataset(c *gin.Context) {
	if h.MaxUploadBytes > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.MaxUploadBytes)
	}
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		log.Printf("Error getting form file: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Error retrieving uploaded file: " + err.Error()})
		return
	}
	defer file.Close()

	log.Printf("Received file upload: %s (%d bytes)", header.Filename, header.Size)

	ds, err := importer.LoadWorkbook(file)
	if err != nil {
		log.Printf("Error importing file %s: %v", header.Filename, err)
		if errors.Is(err, importer.ErrNoHeader) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read workbook: " + err.Error()})
		return
	}
	ds.FileName = header.Filename

	if err := h.Store.SaveDataset(c.Request.Context(), ds); err != nil {
		log.Printf("Error in ImportDataset handler: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store dataset"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Loaded '" + ds.Sheet + "' using header row " + strconv.Itoa(ds.HeaderRow+1),
		"dataset": ds.Meta(),
	})
}

// ListDatasets handles GET /api/datasets
func (h *APIHandler) ListDatasets(c *gin.Context) {
	metas, err := h.Store.ListDatasets(c.Request.Context())
	if err != nil {
		log.Printf("Error in ListDatasets handler: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve datasets"})
		return
	}
	if metas == nil {
		c.JSON(http.StatusOK, []models.DatasetMeta{})
		return
	}
	c.JSON(http.StatusOK, metas)
}

// GetDataset handles GET /api/datasets/:datasetId
func (h *APIHandler) GetDataset(c *gin.Context) {
	ds := h.loadDataset(c)
	if ds == nil {
		return
	}
	c.JSON(http.StatusOK, ds.Meta())
}

// DeleteDataset handles DELETE /api/datasets/:datasetId
func (h *APIHandler) DeleteDataset(c *gin.Context) {
	id := c.Param("datasetId")
	deleted, err := h.Store.DeleteDataset(c.Request.Context(), id)
	if err != nil {
		log.Printf("Error in DeleteDataset handler for ID %s: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete dataset"})
		return
	}
	if !deleted {
		c.JSON(http.StatusNotFound, gin.H{"error": "Dataset not found"})
		return
	}
	c.Status(http.StatusNoContent)
}

// --- Report Handlers ---

// GetSummary handles GET /api/datasets/:datasetId/summary?subject=&class=
func (h *APIHandler) GetSummary(c *gin.Context) {
	ds := h.loadDataset(c)
	if ds == nil {
		return
	}

	subject := c.Query("subject")
	if subject == "" {
		if len(ds.Subjects) == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Dataset has no subject columns"})
			return
		}
		subject = ds.Subjects[0]
	}
	if !offers(ds, subject) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Subject '" + subject + "' is not in this dataset"})
		return
	}

	c.JSON(http.StatusOK, grading.Summarize(ds.Students, subject, selectedClasses(c, ds)))
}

// GetStudents handles GET /api/datasets/:datasetId/students?class=&sort=&asc=
func (h *APIHandler) GetStudents(c *gin.Context) {
	ds := h.loadDataset(c)
	if ds == nil {
		return
	}

	key, ok := grading.ParseSortKey(c.DefaultQuery("sort", string(grading.SortTotalMarks)))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "sort must be one of total_marks, aggregate, weak_subjects"})
		return
	}
	ascending, err := strconv.ParseBool(c.DefaultQuery("asc", "false"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "asc must be a boolean"})
		return
	}

	reports := grading.BuildReports(ds.Students, selectedClasses(c, ds))
	grading.SortReports(reports, key, ascending)

	c.JSON(http.StatusOK, gin.H{
		"subjects": takenSubjects(ds.Subjects, reports),
		"students": reports,
	})
}

// GradeMark handles GET /api/grade?subject=&mark=
func (h *APIHandler) GradeMark(c *gin.Context) {
	subject := c.Query("subject")
	resp := gin.H{"subject": subject, "band": nil, "rank": nil}

	mark, err := strconv.ParseFloat(c.Query("mark"), 64)
	if err != nil || math.IsNaN(mark) || math.IsInf(mark, 0) {
		c.JSON(http.StatusOK, resp)
		return
	}
	resp["mark"] = mark
	if band, ok := grading.GradeOf(subject, mark); ok {
		resp["band"] = band
		if rank, ok := grading.RankOf(band); ok {
			resp["rank"] = rank
		}
	}
	c.JSON(http.StatusOK, resp)
}

// --- Ping Handler ---

// Ping handles GET /api/ping
func (h *APIHandler) Ping(c *gin.Context) {
	if err := h.Store.Ping(c.Request.Context()); err != nil {
		log.Printf("Cache ping failed: %v", err)
		c.JSON(http.StatusServiceUnavailable, gin.H{"message": "Cache unavailable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Pong!"})
}

// --- Helpers ---

// loadDataset fetches the dataset named in the path, writing the error
// response itself and returning nil when it cannot.
func (h *APIHandler) loadDataset(c *gin.Context) *models.Dataset {
	id := c.Param("datasetId")
	if id == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Dataset ID is required"})
		return nil
	}
	ds, err := h.Store.GetDataset(c.Request.Context(), id)
	if err != nil {
		log.Printf("Error loading dataset %s: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve dataset"})
		return nil
	}
	if ds == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Dataset not found"})
		return nil
	}
	return ds
}

// selectedClasses reads repeated class params, defaulting to every class.
// Blank values are dropped so rows without a class are never selected.
func selectedClasses(c *gin.Context, ds *models.Dataset) []string {
	classes := make([]string, 0)
	for _, cl := range c.QueryArray("class") {
		if cl != "" {
			classes = append(classes, cl)
		}
	}
	if len(classes) > 0 {
		return classes
	}
	return ds.Classes
}

func offers(ds *models.Dataset, subject string) bool {
	for _, s := range ds.Subjects {
		if s == subject {
			return true
		}
	}
	return false
}

// takenSubjects keeps the offered subjects at least one reported student has a band for.
func takenSubjects(offered []string, reports []grading.StudentReport) []string {
	out := []string{}
	for _, s := range offered {
		for _, r := range reports {
			if _, ok := r.Bands[s]; ok {
				out = append(out, s)
				break
			}
		}
	}
	return out
}
