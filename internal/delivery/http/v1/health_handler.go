package v1

import (
	"net/http"

	"go-inquiry-backend/internal/domain"

	"github.com/gin-gonic/gin"
)

type HealthHandler struct {
	healthUC domain.HealthUsecase
}

func NewHealthHandler(public *gin.RouterGroup, healthUC domain.HealthUsecase) {
	handler := &HealthHandler{healthUC: healthUC}
	public.GET("/health", handler.Health)
}

// Health godoc
// @Summary      Health Check
// @Description  Liveness probe. Always 200; database and email report their configuration state.
// @Tags         health
// @Produce      json
// @Success      200  {object}  domain.HealthStatus
// @Router       /health [get]
func (h *HealthHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, h.healthUC.Check(c.Request.Context()))
}
