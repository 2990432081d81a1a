package handlers

import (
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/privacyweave/backend/internal/services"
	"github.com/privacyweave/backend/internal/utils"
)

const maxResumeSize = 5 << 20 // 5MB, same cap the careers form enforces

var allowedResumeExts = map[string]string{
	".pdf":  "application/pdf",
	".doc":  "application/msword",
	".docx": "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
}

type ApplicationHandler struct {
	svc services.ApplicationService
}

func NewApplicationHandler(svc services.ApplicationService) *ApplicationHandler {
	return &ApplicationHandler{svc: svc}
}

// Submit accepts a multipart careers-form submission with an optional
// resumeFile part.
func (h *ApplicationHandler) Submit(c *gin.Context) {
	const op = "ApplicationHandler.Submit"

	in := services.ApplicationInput{
		FullName:   c.PostForm("full_name"),
		Email:      c.PostForm("email"),
		Phone:      c.PostForm("phone"),
		Position:   c.PostForm("position"),
		Experience: c.PostForm("experience"),
	}
	if in.FullName == "" || in.Email == "" || in.Phone == "" || in.Position == "" || in.Experience == "" {
		writeError(c, utils.E(utils.CodeInvalidArgument, op, "full_name, email, phone, position, and experience are required", nil))
		return
	}
	if msg := c.PostForm("message"); msg != "" {
		in.Message = &msg
	}

	var resume *services.ResumeUpload
	if fh, err := c.FormFile("resumeFile"); err == nil {
		ext := strings.ToLower(filepath.Ext(fh.Filename))
		contentType, ok := allowedResumeExts[ext]
		if !ok {
			writeError(c, utils.E(utils.CodeInvalidArgument, op, "only PDF and Word documents are allowed", nil))
			return
		}
		if fh.Size <= 0 || fh.Size > maxResumeSize {
			writeError(c, utils.E(utils.CodeInvalidArgument, op, "resume file too large (max 5MB)", nil))
			return
		}

		f, err := fh.Open()
		if err != nil {
			writeError(c, utils.E(utils.CodeInternal, op, "failed to open upload", err))
			return
		}
		defer f.Close()
		resume = &services.ResumeUpload{
			FileName:    fh.Filename,
			ContentType: contentType,
			Reader:      f,
		}
	}

	app, err := h.svc.Submit(c.Request.Context(), in, resume)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, app)
}

// List is admin-only, enforced by the route group.
func (h *ApplicationHandler) List(c *gin.Context) {
	rows, err := h.svc.List(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, rows)
}

// DownloadResume streams a stored resume file to an admin.
func (h *ApplicationHandler) DownloadResume(c *gin.Context) {
	const op = "ApplicationHandler.DownloadResume"

	id, ok := intParam(c, "id")
	if !ok {
		return
	}

	app, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	if app.ResumePath == nil || *app.ResumePath == "" {
		writeError(c, utils.E(utils.CodeNotFound, op, "resume not found", nil))
		return
	}
	// local uploads only; bucket-stored objects are fetched out of band
	if strings.HasPrefix(*app.ResumePath, "gs://") {
		writeError(c, utils.E(utils.CodeInvalidArgument, op, "resume is stored in a bucket, not served directly", nil))
		return
	}

	c.FileAttachment(*app.ResumePath, filepath.Base(*app.ResumePath))
}
