package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"lexmarket/services/onboarding"

	"github.com/gin-gonic/gin"
)

// defaultPendingLimit caps the review queue when no limit is given.
const defaultPendingLimit = 50

var errInvalidLimit = errors.New("limit must be between 1 and 500")

// AdminHandler encapsulates profile verification operations.
type AdminHandler struct {
	Reviews onboarding.ReviewService
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(reviews onboarding.ReviewService) *AdminHandler {
	return &AdminHandler{Reviews: reviews}
}

type reviewRequest struct {
	Reason string `json:"reason"`
}

// PendingProfilesHandler lists profiles waiting for review, oldest first.
func (ah *AdminHandler) PendingProfilesHandler(c *gin.Context) {
	limit := int64(defaultPendingLimit)
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || n <= 0 || n > 500 {
			badRequest(c, errInvalidLimit)
			return
		}
		limit = n
	}

	profiles, err := ah.Reviews.PendingReviews(c.Request.Context(), limit)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, "", profiles)
}

func (ah *AdminHandler) ApproveHandler(c *gin.Context) {
	profile, err := ah.Reviews.Approve(c.Request.Context(), accountID(c), c.Param("accountID"))
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, "Profile approved", profile)
}

func (ah *AdminHandler) RejectHandler(c *gin.Context) {
	var req reviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	profile, err := ah.Reviews.Reject(c.Request.Context(), accountID(c), c.Param("accountID"), req.Reason)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, "Profile rejected", profile)
}

func (ah *AdminHandler) SuspendHandler(c *gin.Context) {
	var req reviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	profile, err := ah.Reviews.Suspend(c.Request.Context(), accountID(c), c.Param("accountID"), req.Reason)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, "Profile suspended", profile)
}
