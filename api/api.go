package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/brequin/brequin/soc/catalog"
	"github.com/brequin/brequin/soc/logger"
)

// Handler serves one catalog snapshot read-only.
type Handler struct {
	Catalog *catalog.Catalog
}

type errorResponse struct {
	Error string `json:"error"`
}

func NewRouter(c *catalog.Catalog, log *logger.Logger) *gin.Engine {
	handler := &Handler{Catalog: c}

	router := gin.New()
	router.Use(gin.Recovery(), RequestLogger(log))

	courses := router.Group("/api/courses")
	courses.GET("", handler.ListCatalog)
	courses.GET("/:department", handler.GetDepartment)
	courses.GET("/:department/:course", handler.GetCourse)
	router.GET("/api/departments", handler.ListDepartments)

	return router
}

func (h *Handler) ListCatalog(c *gin.Context) {
	c.JSON(http.StatusOK, h.Catalog)
}

func (h *Handler) ListDepartments(c *gin.Context) {
	codes := make([]string, 0)
	for _, department := range h.Catalog.Departments() {
		codes = append(codes, department.Code)
	}
	c.JSON(http.StatusOK, codes)
}

func (h *Handler) GetDepartment(c *gin.Context) {
	department, ok := h.department(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, department)
}

func (h *Handler) GetCourse(c *gin.Context) {
	department, ok := h.department(c)
	if !ok {
		return
	}
	course, ok := department.Course(c.Param("course"))
	if !ok {
		c.JSON(http.StatusNotFound, errorResponse{Error: "Course not found"})
		return
	}
	sections := course.Sections
	if sections == nil {
		sections = []*catalog.Section{}
	}
	c.JSON(http.StatusOK, sections)
}

// Department codes are matched case-insensitively.
func (h *Handler) department(c *gin.Context) (*catalog.Department, bool) {
	department, ok := h.Catalog.Department(strings.ToUpper(strings.TrimSpace(c.Param("department"))))
	if !ok {
		c.JSON(http.StatusNotFound, errorResponse{Error: "Department not found"})
	}
	return department, ok
}

func RequestLogger(log *logger.Logger) gin.HandlerFunc {
	log = logger.OrNop(log)
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}
		fields := []interface{}{
			"method", c.Request.Method,
			"path", path,
			"status", status,
			"duration_ms", time.Since(start).Milliseconds(),
		}

		switch {
		case status >= 500:
			log.Error("HTTP request", fields...)
		case status >= 400:
			log.Warn("HTTP request", fields...)
		default:
			log.Info("HTTP request", fields...)
		}
	}
}
