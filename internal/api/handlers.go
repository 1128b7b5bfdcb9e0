package api

import (
	"log"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	"datacraft/domain/core"
	"datacraft/internal/errors"
	"datacraft/ports"
)

// handleUpload accepts a multipart dataset file and stores it under a
// versioned name.
func (s *Server) handleUpload(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing \"file\" form field"})
		return
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if ext != ".csv" && ext != ".xlsx" && ext != ".xls" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "only .csv, .xlsx and .xls files are accepted"})
		return
	}
	if s.maxFileSize > 0 && file.Size > s.maxFileSize {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "file exceeds upload size limit"})
		return
	}

	src, err := file.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read upload"})
		return
	}
	defer src.Close()

	stored, err := s.datasets.Upload(c.Request.Context(), src, file.Filename)
	if err != nil {
		s.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"filename": stored})
}

func (s *Server) handleListDatasets(c *gin.Context) {
	files, err := s.datasets.List(c.Request.Context())
	if err != nil {
		s.renderError(c, err)
		return
	}

	names := make([]string, 0, len(files))
	for _, f := range files {
		names = append(names, f.Name)
	}
	c.JSON(http.StatusOK, gin.H{"datasets": names})
}

func (s *Server) handleDeleteDataset(c *gin.Context) {
	name := c.Param("dataset_name")
	if err := s.datasets.Delete(c.Request.Context(), name); err != nil {
		s.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": name})
}

func (s *Server) handleDashboardSummary(c *gin.Context) {
	summaries, err := s.datasets.DashboardSummaries(c.Request.Context())
	if err != nil {
		s.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, summaries)
}

// handleSubmitTask enqueues a diagnosis or cleaning task.
func (s *Server) handleSubmitTask(c *gin.Context) {
	var task ports.Task
	if err := c.ShouldBindJSON(&task); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid task payload"})
		return
	}
	if task.DatasetName == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "dataset_name is required"})
		return
	}
	if task.Type == "" || (!task.Type.IsCleaning() && task.Type != ports.TaskDiagnosis) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown task_type"})
		return
	}

	jobID, err := s.queue.Submit(c.Request.Context(), task)
	if err != nil {
		s.renderError(c, err)
		return
	}
	c.JSON(http.StatusAccepted, gin.H{"job_id": jobID.String(), "status": ports.JobPending})
}

// handleStatistics enqueues a statistics run for a dataset.
func (s *Server) handleStatistics(c *gin.Context) {
	task := ports.Task{
		DatasetName: c.Param("dataset_name"),
		Type:        ports.TaskStatistics,
	}

	jobID, err := s.queue.Submit(c.Request.Context(), task)
	if err != nil {
		s.renderError(c, err)
		return
	}
	c.JSON(http.StatusAccepted, gin.H{"job_id": jobID.String(), "status": ports.JobPending})
}

// handleJobStatus reports the state of a submitted job.
func (s *Server) handleJobStatus(c *gin.Context) {
	jobID, err := core.ParseJobID(c.Param("job_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid job id"})
		return
	}

	result, err := s.queue.Status(c.Request.Context(), jobID)
	if err != nil {
		s.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// handleGetReport returns the persisted diagnostic report for a dataset.
func (s *Server) handleGetReport(c *gin.Context) {
	if s.reports == nil {
		c.JSON(http.StatusNotImplemented, gin.H{"error": "report persistence is not configured"})
		return
	}

	report, err := s.reports.Get(c.Request.Context(), c.Param("dataset_name"))
	if err != nil {
		s.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

// renderError maps domain errors onto HTTP statuses.
func (s *Server) renderError(c *gin.Context, err error) {
	switch {
	case core.IsNotFoundError(err):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case core.IsLoadError(err):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	default:
		log.Printf("[API] %s %s failed: %v", c.Request.Method, c.Request.URL.Path, err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "internal error",
			"code":  errors.GetCode(err),
		})
	}
}
