package handlers

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"launchpad-backend/internal/models"
	"launchpad-backend/internal/services"
	"launchpad-backend/internal/wallet"
)

// TokenHandler serves the token-creation API
type TokenHandler struct {
	creation *services.TokenCreationService
	fees     *services.FeeService
	store    *services.SubmissionStore // nil when persistence is disabled
	signer   wallet.Wallet             // nil when no server key is configured
	logger   *logrus.Logger
}

func NewTokenHandler(
	creation *services.TokenCreationService,
	fees *services.FeeService,
	store *services.SubmissionStore,
	signer wallet.Wallet,
	logger *logrus.Logger,
) *TokenHandler {
	return &TokenHandler{
		creation: creation,
		fees:     fees,
		store:    store,
		signer:   signer,
		logger:   logger,
	}
}

// CreateTokenHandler POST /api/token/create
//
// Multipart form: name, symbol, supply, description, disable_minting,
// optional decimals (only the fixed value is accepted) plus a
// "logo" file part. A terminal pipeline outcome, including failure and
// cancellation, is a 200 with the outcome body; only transport-level
// problems map to error codes.
func (h *TokenHandler) CreateTokenHandler(c *gin.Context) {
	req := &services.TokenCreationRequest{
		Name:        c.PostForm("name"),
		Symbol:      c.PostForm("symbol"),
		Supply:      c.PostForm("supply"),
		Description: c.PostForm("description"),
	}
	// decimals are fixed chain-side; the form may echo the value but
	// cannot change it
	if v := c.PostForm("decimals"); v != "" && v != strconv.Itoa(services.TokenDecimals) {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "decimals is fixed at 18",
		})
		return
	}
	if v := c.PostForm("disable_minting"); v != "" {
		disable, err := strconv.ParseBool(v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error":   "disable_minting must be a boolean",
			})
			return
		}
		req.DisableMinting = disable
	}

	// a missing or invalid logo is reported by the pipeline's validation
	// stage together with any other field violations
	if data, ok := h.readLogoFile(c); ok {
		asset, err := services.ValidateLogo(data)
		if err != nil {
			req.LogoIssue = err.Error()
		} else {
			req.Logo = asset
		}
	}

	outcome, err := h.creation.Submit(c.Request.Context(), req, h.signer)
	if errors.Is(err, services.ErrSubmissionInFlight) {
		c.JSON(http.StatusConflict, gin.H{
			"success": false,
			"error":   "a submission is already in flight for this account",
		})
		return
	}
	if err != nil {
		h.logger.WithError(err).Error("Token submission failed unexpectedly")
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   "internal error",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": outcome.Status == models.StatusSucceeded,
		"outcome": outcome,
	})
}

// ValidateLogoHandler POST /api/token/validate-logo
//
// Runs only the image checks so the UI can reject a file at selection time,
// before the user fills in the rest of the form.
func (h *TokenHandler) ValidateLogoHandler(c *gin.Context) {
	data, ok := h.readLogoFile(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "logo file part is required",
		})
		return
	}

	asset, err := services.ValidateLogo(data)
	if err != nil {
		c.JSON(http.StatusOK, gin.H{
			"success": false,
			"valid":   false,
			"error":   err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":      true,
		"valid":        true,
		"content_type": asset.ContentType,
		"width":        asset.Width,
		"height":       asset.Height,
	})
}

// FeeQuoteHandler GET /api/token/fee-quote?disable_minting=<bool>
func (h *TokenHandler) FeeQuoteHandler(c *gin.Context) {
	disableMinting := false
	if v := c.Query("disable_minting"); v != "" {
		parsed, err := strconv.ParseBool(v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error":   "disable_minting must be a boolean",
			})
			return
		}
		disableMinting = parsed
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"quote":   h.fees.Quote(disableMinting),
	})
}

// GetSubmissionHandler GET /api/token/submissions/:id
func (h *TokenHandler) GetSubmissionHandler(c *gin.Context) {
	if h.store == nil {
		c.JSON(http.StatusNotImplemented, gin.H{
			"success": false,
			"error":   "submission persistence is not enabled",
		})
		return
	}

	record, err := h.store.GetSubmission(c.Param("id"))
	if errors.Is(err, services.ErrSubmissionNotFound) {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error":   "submission not found",
		})
		return
	}
	if err != nil {
		h.logger.WithError(err).Error("Failed to load submission")
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   "internal error",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"submission": record,
	})
}

// ListSubmissionsHandler GET /admin/submissions?requester=&limit=&offset=
func (h *TokenHandler) ListSubmissionsHandler(c *gin.Context) {
	if h.store == nil {
		c.JSON(http.StatusNotImplemented, gin.H{
			"success": false,
			"error":   "submission persistence is not enabled",
		})
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	records, total, err := h.store.ListSubmissions(c.Query("requester"), limit, offset)
	if err != nil {
		h.logger.WithError(err).Error("Failed to list submissions")
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   "internal error",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"total":       total,
		"submissions": records,
	})
}

// readLogoFile pulls the bytes of the "logo" multipart part, bounded by the
// validator's size cap plus one byte so oversize files still fail validation
// with the right reason instead of a read error
func (h *TokenHandler) readLogoFile(c *gin.Context) ([]byte, bool) {
	fileHeader, err := c.FormFile("logo")
	if err != nil {
		return nil, false
	}

	file, err := fileHeader.Open()
	if err != nil {
		return nil, false
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, services.MaxLogoSizeBytes+1))
	if err != nil {
		return nil, false
	}
	return data, true
}
