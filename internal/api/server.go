// Package api exposes the dataset, task and statistics operations over HTTP.
package api

import (
	"log"

	"github.com/gin-gonic/gin"

	"datacraft/app"
	"datacraft/ports"
)

// Server hosts the HTTP API.
type Server struct {
	router      *gin.Engine
	datasets    *app.DatasetService
	queue       ports.TaskQueue
	reports     ports.ReportRepository
	maxFileSize int64
}

// NewServer wires the services into a gin router.
func NewServer(datasets *app.DatasetService, queue ports.TaskQueue, reports ports.ReportRepository, maxFileSize int64) *Server {
	s := &Server{
		router:      gin.Default(),
		datasets:    datasets,
		queue:       queue,
		reports:     reports,
		maxFileSize: maxFileSize,
	}
	s.setupRoutes()
	return s
}

// setupRoutes configures the application routes
func (s *Server) setupRoutes() {
	api := s.router.Group("/api")

	api.POST("/upload", s.handleUpload)
	api.GET("/datasets", s.handleListDatasets)
	api.DELETE("/datasets/:dataset_name", s.handleDeleteDataset)
	api.GET("/datasets/dashboard-summary", s.handleDashboardSummary)

	api.POST("/submit_task", s.handleSubmitTask)
	api.GET("/analyze/status/:job_id", s.handleJobStatus)

	api.POST("/statistics/:dataset_name", s.handleStatistics)
	api.GET("/statistics/status/:job_id", s.handleJobStatus)

	api.GET("/reports/:dataset_name", s.handleGetReport)
}

// Start starts the HTTP server.
func (s *Server) Start(addr string) error {
	log.Printf("[API] listening on http://%s", addr)
	return s.router.Run(addr)
}

// Router exposes the underlying engine for tests.
func (s *Server) Router() *gin.Engine {
	return s.router
}
