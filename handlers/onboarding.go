package handlers

import (
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	"lexmarket/services/onboarding"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// maxMultipartMemory bounds the part of a multipart body kept in memory.
const maxMultipartMemory = 16 << 20

// OnboardingHandler serves the lawyer onboarding endpoints.
type OnboardingHandler struct {
	Service onboarding.OnboardingService
}

func NewOnboardingHandler(svc onboarding.OnboardingService) *OnboardingHandler {
	return &OnboardingHandler{Service: svc}
}

// GetStatusHandler returns the onboarding status snapshot of the caller.
func (h *OnboardingHandler) GetStatusHandler(c *gin.Context) {
	status, err := h.Service.GetStatus(c.Request.Context(), accountID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, "", status)
}

func (h *OnboardingHandler) ListStepsHandler(c *gin.Context) {
	respond(c, http.StatusOK, "", h.Service.ListStepDefinitions())
}

func (h *OnboardingHandler) StepMetadataHandler(c *gin.Context) {
	view, err := h.Service.GetStepDefinition(c.Param("step"))
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, "", view)
}

func (h *OnboardingHandler) ValidationRulesHandler(c *gin.Context) {
	rules, err := h.Service.GetValidationRules(c.Param("step"))
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, "", gin.H{"step": c.Param("step"), "rules": rules})
}

func (h *OnboardingHandler) StepDataHandler(c *gin.Context) {
	data, err := h.Service.GetStepData(c.Request.Context(), accountID(c), c.Param("step"))
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, "", data)
}

// SaveStepHandler accepts a JSON object of step fields, or a multipart form
// when the step carries files.
func (h *OnboardingHandler) SaveStepHandler(c *gin.Context) {
	logger := getLogger(c)
	step := c.Param("step")

	payload, closeFiles, err := readPayload(c)
	if err != nil {
		logger.Warn("Invalid step payload", zap.String("step", step), zap.Error(err))
		badRequest(c, err)
		return
	}
	defer closeFiles()

	result, err := h.Service.SaveStep(c.Request.Context(), accountID(c), step, payload)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, "Step saved successfully", result)
}

type skipRequest struct {
	Reason string `json:"reason" binding:"max=500"`
}

func (h *OnboardingHandler) SkipStepHandler(c *gin.Context) {
	// The reason is optional; an empty body, chunked or not, skips without one.
	var req skipRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
			badRequest(c, err)
			return
		}
	}

	result, err := h.Service.SkipStep(c.Request.Context(), accountID(c), c.Param("step"), req.Reason)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, "Step skipped successfully", result)
}

type bulkRequest struct {
	Steps []struct {
		Step string                 `json:"step" binding:"required"`
		Data map[string]interface{} `json:"data"`
	} `json:"steps" binding:"required,min=1,dive"`
}

// BulkSaveHandler saves several JSON steps; each step succeeds or fails on its own.
func (h *OnboardingHandler) BulkSaveHandler(c *gin.Context) {
	var req bulkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	entries := make([]onboarding.BulkEntry, 0, len(req.Steps))
	for _, s := range req.Steps {
		entries = append(entries, onboarding.BulkEntry{
			Step:    s.Step,
			Payload: onboarding.StepPayload{Fields: s.Data},
		})
	}

	result, err := h.Service.BulkSave(c.Request.Context(), accountID(c), entries)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, "Bulk save processed", result)
}

func (h *OnboardingHandler) SubmitHandler(c *gin.Context) {
	result, err := h.Service.SubmitForReview(c.Request.Context(), accountID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, "Profile submitted for review", result)
}

func readPayload(c *gin.Context) (onboarding.StepPayload, func(), error) {
	noop := func() {}
	if strings.HasPrefix(c.ContentType(), "multipart/form-data") {
		return readMultipart(c)
	}

	fields := map[string]interface{}{}
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&fields); err != nil {
			return onboarding.StepPayload{}, noop, err
		}
	}
	return onboarding.StepPayload{Fields: fields}, noop, nil
}

// readMultipart keeps the first value of each plain field; repeated fields and
// "name[]" fields become lists.
func readMultipart(c *gin.Context) (onboarding.StepPayload, func(), error) {
	noop := func() {}
	if err := c.Request.ParseMultipartForm(maxMultipartMemory); err != nil {
		return onboarding.StepPayload{}, noop, err
	}
	form := c.Request.MultipartForm

	payload := onboarding.StepPayload{
		Fields: map[string]interface{}{},
		Files:  map[string]*onboarding.UploadedFile{},
	}
	for key, values := range form.Value {
		name := strings.TrimSuffix(key, "[]")
		if name != key || len(values) > 1 {
			list := make([]interface{}, len(values))
			for i, v := range values {
				list[i] = v
			}
			payload.Fields[name] = list
			continue
		}
		payload.Fields[name] = values[0]
	}

	var opened []multipart.File
	closeAll := func() {
		for _, f := range opened {
			_ = f.Close()
		}
	}
	for key, headers := range form.File {
		if len(headers) == 0 {
			continue
		}
		fh := headers[0]
		f, err := fh.Open()
		if err != nil {
			closeAll()
			return onboarding.StepPayload{}, noop, err
		}
		opened = append(opened, f)
		payload.Files[key] = &onboarding.UploadedFile{
			Filename:    fh.Filename,
			ContentType: fh.Header.Get("Content-Type"),
			Size:        fh.Size,
			Body:        f,
		}
	}
	return payload, closeAll, nil
}
