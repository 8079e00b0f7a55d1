package v1

import (
	"net/http"

	"go-inquiry-backend/internal/delivery/http/response"
	"go-inquiry-backend/internal/domain"
	"go-inquiry-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

type ContactHandler struct {
	contactUC domain.ContactUsecase
}

// NewContactHandler registers the contact routes (public, no auth required)
func NewContactHandler(public *gin.RouterGroup, contactUC domain.ContactUsecase, limit gin.HandlerFunc) {
	handler := &ContactHandler{
		contactUC: contactUC,
	}

	public.POST("/contact/submit", limit, handler.SubmitContact)
}

// SubmitContact godoc
// @Summary      Submit Contact Form
// @Description  Validates the form, stores it when the database is reachable, notifies the company and sends an auto-reply.
// @Tags         contact
// @Accept       json,x-www-form-urlencoded
// @Produce      json
// @Param        contact  body      domain.ContactForm  true  "Contact Form Data"
// @Success      200      {object}  domain.ContactResult
// @Failure      400      {object}  response.ErrorBody
// @Failure      429      {object}  response.ErrorBody
// @Failure      500      {object}  response.ErrorBody
// @Router       /contact/submit [post]
func (h *ContactHandler) SubmitContact(c *gin.Context) {
	var form domain.ContactForm
	if err := c.ShouldBind(&form); err != nil {
		c.Error(apperror.BadRequest("Request body could not be parsed"))
		return
	}

	res, err := h.contactUC.Submit(c.Request.Context(), &form, sourceMeta(c))
	if err != nil {
		c.Error(submitError(err, "Failed to submit contact form"))
		return
	}

	response.JSON(c, http.StatusOK, res)
}

func sourceMeta(c *gin.Context) domain.SourceMeta {
	return domain.SourceMeta{
		IPAddress: c.ClientIP(),
		UserAgent: c.Request.UserAgent(),
	}
}
