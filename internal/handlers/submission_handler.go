package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"auraweb/internal/services"
	"auraweb/internal/storage"

	"github.com/gin-gonic/gin"
)

type SubmissionHandler struct {
	submissionService services.SubmissionService
	statsService      services.StatsService
	store             *storage.Store
}

func NewSubmissionHandler(
	submissionService services.SubmissionService,
	statsService services.StatsService,
	store *storage.Store,
) *SubmissionHandler {
	return &SubmissionHandler{
		submissionService: submissionService,
		statsService:      statsService,
		store:             store,
	}
}

// decodeStrict rejects unknown fields so typos never silently drop data.
func decodeStrict(data []byte, v interface{}) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

// Create handles intake as plain JSON or as a multipart form with a `data`
// JSON field plus zero or more `files` parts.
func (h *SubmissionHandler) Create(c *gin.Context) {
	var req services.IntakeRequest

	if strings.HasPrefix(c.ContentType(), "multipart/form-data") {
		dataField := c.PostForm("data")
		if dataField == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "No data field provided"})
			return
		}
		if err := decodeStrict([]byte(dataField), &req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON in data field"})
			return
		}

		form, err := c.MultipartForm()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid multipart form"})
			return
		}
		for _, file := range form.File["files"] {
			url, _, err := h.store.Save(file)
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store uploaded file"})
				return
			}
			req.ImageURLs = append(req.ImageURLs, url)
		}
	} else {
		body, err := io.ReadAll(c.Request.Body)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read request body"})
			return
		}
		if err := decodeStrict(body, &req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
			return
		}
	}

	submission, err := h.submissionService.CreateSubmission(&req)
	if err != nil {
		c.JSON(statusFromError(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, submission)
}

func (h *SubmissionHandler) List(c *gin.Context) {
	submissions, err := h.submissionService.GetAllSubmissions()
	if err != nil {
		c.JSON(statusFromError(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, submissions)
}

func (h *SubmissionHandler) Get(c *gin.Context) {
	submission, err := h.submissionService.GetSubmission(c.Param("id"))
	if err != nil {
		c.JSON(statusFromError(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, submission)
}

func (h *SubmissionHandler) Update(c *gin.Context) {
	var req services.AdminUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	submission, err := h.submissionService.UpdateSubmission(c.Param("id"), &req)
	if err != nil {
		c.JSON(statusFromError(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, submission)
}

// Upload stores a single standalone file and returns its public URL.
func (h *SubmissionHandler) Upload(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No file provided"})
		return
	}

	url, filename, err := h.store.Save(file)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store uploaded file"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"url": url, "filename": filename})
}

func (h *SubmissionHandler) DashboardStats(c *gin.Context) {
	stats, err := h.statsService.DashboardStats()
	if err != nil {
		c.JSON(statusFromError(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, stats)
}
