package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gpsbazar/school-records-api/internal/models"
	"github.com/gpsbazar/school-records-api/internal/service"
	appErrors "github.com/gpsbazar/school-records-api/pkg/errors"
	"github.com/gpsbazar/school-records-api/pkg/response"
)

// AuthHandler exposes the shared-credential login flow.
type AuthHandler struct {
	auth *service.AuthService
}

// NewAuthHandler constructs AuthHandler.
func NewAuthHandler(auth *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// Status godoc
// @Summary Report whether first-run setup is required
// @Tags Auth
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /auth/status [get]
func (h *AuthHandler) Status(c *gin.Context) {
	needsSetup, err := h.auth.NeedsSetup(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"needs_setup": needsSetup}, nil)
}

// Setup godoc
// @Summary Store the first-run shared credential
// @Tags Auth
// @Accept json
// @Produce json
// @Param payload body models.SetupRequest true "Credential payload"
// @Success 201 {object} response.Envelope
// @Router /auth/setup [post]
func (h *AuthHandler) Setup(c *gin.Context) {
	var req models.SetupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	if err := h.auth.Setup(c.Request.Context(), req); err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, gin.H{"configured": true})
}

// Login godoc
// @Summary Login with the shared admin credential
// @Tags Auth
// @Accept json
// @Produce json
// @Param payload body models.LoginRequest true "Login payload"
// @Success 200 {object} response.Envelope
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	resp, err := h.auth.Login(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, resp, nil)
}
