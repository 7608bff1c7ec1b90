package sim

import (
	"context"
	"log"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/projectcompass/spyglass/internal/model"
)

// Server exposes the simulated inquiry service over HTTP.
type Server struct {
	addr     string
	store    *Store
	server   *http.Server
	listener net.Listener
	ctx      context.Context
	cancel   context.CancelFunc
}

// NewServer creates a simulator server around store.
func NewServer(addr string, store *Store) *Server {
	if addr == "" {
		addr = model.DefaultListenAddr
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Server{
		addr:   addr,
		store:  store,
		ctx:    ctx,
		cancel: cancel,
	}
}

// Start begins serving HTTP requests.
func (s *Server) Start() error {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())
	s.routes(r)

	s.server = &http.Server{
		Handler:           r,
		BaseContext:       func(_ net.Listener) context.Context { return s.ctx },
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
	}

	listener, err := net.Listen("tcp", s.addr)
	if err != nil {
		return err
	}
	s.listener = listener

	go s.server.Serve(listener)
	return nil
}

// Stop gracefully shuts down the HTTP server.
func (s *Server) Stop() error {
	s.cancel()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.server.Shutdown(ctx)
}

// Addr returns the active listen address.
// Before Start, it returns the configured address.
func (s *Server) Addr() string {
	if s.listener != nil {
		return s.listener.Addr().String()
	}
	return s.addr
}

func (s *Server) routes(r *gin.Engine) {
	r.GET("/", s.handleIndex)
	r.GET("/api/system/status", s.handleSystemStatus)
	r.GET("/api/inquiries/recent", s.handleRecentInquiries)
	r.POST("/api/inquiries/submit", s.handleSubmitInquiry)
	r.GET("/api/departments/stats", s.handleDepartmentStats)
	r.GET("/api/categories/distribution", s.handleCategoryDistribution)
	r.POST("/api/stats/categories/:id", s.handleUpdateCategory)
	r.POST("/api/stats/departments/:id", s.handleUpdateDepartment)
}

func (s *Server) handleIndex(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"name":        "ProjectCompass API (simulated)",
		"version":     "1.0.0",
		"description": "Vendor Inquiry Management System API",
		"endpoints": []string{
			"/api/system/status",
			"/api/inquiries/recent",
			"/api/inquiries/submit",
			"/api/departments/stats",
			"/api/categories/distribution",
		},
	})
}

func (s *Server) handleSystemStatus(c *gin.Context) {
	c.JSON(http.StatusOK, s.store.SystemStatus())
}

func (s *Server) handleRecentInquiries(c *gin.Context) {
	limit := model.DefaultRecentLimit
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": "limit must be a non-negative integer"})
			return
		}
		limit = parsed
	}
	c.JSON(http.StatusOK, s.store.RecentInquiries(limit))
}

func (s *Server) handleSubmitInquiry(c *gin.Context) {
	var sub model.InquirySubmission
	if err := c.ShouldBindJSON(&sub); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": "invalid JSON body"})
		return
	}
	if sub.FromEmail == "" || sub.Subject == "" || sub.Content == "" {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": "from_email, subject and content are required"})
		return
	}

	receipt := s.store.Submit(sub)
	log.Printf("sim: inquiry submission: %s (%s)", sub.Subject, receipt.InquiryID)
	c.JSON(http.StatusOK, receipt)
}

func (s *Server) handleDepartmentStats(c *gin.Context) {
	c.JSON(http.StatusOK, s.store.DepartmentStats())
}

func (s *Server) handleCategoryDistribution(c *gin.Context) {
	c.JSON(http.StatusOK, s.store.CategoryDistribution())
}

func (s *Server) handleUpdateCategory(c *gin.Context) {
	id := c.Param("id")
	var fields map[string]any
	if err := c.ShouldBindJSON(&fields); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": "invalid JSON body"})
		return
	}
	if !s.store.UpdateCategory(id, fields) {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Category " + id + " not found"})
		return
	}
	c.JSON(http.StatusOK, model.UpdateReceipt{
		Status:  "success",
		Message: "Category " + id + " updated successfully",
	})
}

func (s *Server) handleUpdateDepartment(c *gin.Context) {
	id := c.Param("id")
	var fields map[string]any
	if err := c.ShouldBindJSON(&fields); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": "invalid JSON body"})
		return
	}
	if !s.store.UpdateDepartment(id, fields) {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Department " + id + " not found"})
		return
	}
	c.JSON(http.StatusOK, model.UpdateReceipt{
		Status:  "success",
		Message: "Department " + id + " updated successfully",
	})
}
