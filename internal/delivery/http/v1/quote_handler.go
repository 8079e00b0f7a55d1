package v1

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"go-inquiry-backend/internal/delivery/http/response"
	"go-inquiry-backend/internal/domain"
	"go-inquiry-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

const (
	attachmentsField = "attachments"
	// Room for every allowed file plus the text fields and multipart framing.
	maxQuoteBodyBytes = (domain.MaxAttachments+1)*domain.MaxAttachmentBytes + 1<<20
)

type QuoteHandler struct {
	quoteUC domain.QuoteUsecase
}

// NewQuoteHandler registers the quote routes (public, no auth required)
func NewQuoteHandler(public *gin.RouterGroup, quoteUC domain.QuoteUsecase, limit gin.HandlerFunc) {
	handler := &QuoteHandler{
		quoteUC: quoteUC,
	}

	public.POST("/quote/submit", limit, handler.SubmitQuote)
}

// SubmitQuote godoc
// @Summary      Submit Quote Request
// @Description  Accepts the quote form with up to 3 files (5MB each) under "attachments". Returns the generated quote number.
// @Tags         quote
// @Accept       multipart/form-data,json
// @Produce      json
// @Param        name                    formData  string  true   "Full name"
// @Param        email                   formData  string  true   "Email address"
// @Param        phone                   formData  string  true   "Phone number"
// @Param        company                 formData  string  false  "Company"
// @Param        location                formData  string  false  "Project location"
// @Param        productType             formData  string  true   "transformers, servo-stabilizers, wires-cables or other"
// @Param        specifications          formData  string  false  "Technical specifications"
// @Param        quantity                formData  string  false  "Quantity"
// @Param        budgetRange             formData  string  false  "under-1-lakh, 1-5-lakh, 5-25-lakh, 25-lakh-plus or not-specified"
// @Param        timeline                formData  string  false  "immediate, 1-month, 3-months, 6-months or flexible"
// @Param        additionalRequirements  formData  string  false  "Additional requirements"
// @Param        attachments             formData  file    false  "Up to 3 files: pdf, doc, docx, xls, xlsx, jpg, jpeg, png, txt, csv"
// @Success      200      {object}  domain.QuoteResult
// @Failure      400      {object}  response.ErrorBody
// @Failure      429      {object}  response.ErrorBody
// @Failure      500      {object}  response.ErrorBody
// @Router       /quote/submit [post]
func (h *QuoteHandler) SubmitQuote(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxQuoteBodyBytes)

	var form domain.QuoteForm
	if err := c.ShouldBind(&form); err != nil {
		c.Error(bindError(err))
		return
	}

	files, err := readAttachments(c)
	if err != nil {
		c.Error(bindError(err))
		return
	}
	form.Attachments = files

	res, err := h.quoteUC.Submit(c.Request.Context(), &form, sourceMeta(c))
	if err != nil {
		c.Error(submitError(err, "Failed to submit quote request"))
		return
	}

	response.JSON(c, http.StatusOK, res)
}

// readAttachments loads the uploaded parts. Each file is read up to one
// byte past the size limit so the validator can reject it; when there are
// too many files none is read at all.
func readAttachments(c *gin.Context) ([]domain.UploadedFile, error) {
	if c.Request.MultipartForm == nil || c.Request.MultipartForm.File == nil {
		return nil, nil
	}

	headers := c.Request.MultipartForm.File[attachmentsField]
	files := make([]domain.UploadedFile, 0, len(headers))
	for _, fh := range headers {
		f := domain.UploadedFile{
			Filename:    fh.Filename,
			ContentType: fh.Header.Get("Content-Type"),
			Size:        fh.Size,
		}
		if len(headers) <= domain.MaxAttachments {
			data, err := readPart(fh)
			if err != nil {
				return nil, fmt.Errorf("read attachment %q: %w", fh.Filename, err)
			}
			f.Data = data
		}
		files = append(files, f)
	}
	return files, nil
}

func readPart(fh *multipart.FileHeader) ([]byte, error) {
	src, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer src.Close()
	return io.ReadAll(io.LimitReader(src, domain.MaxAttachmentBytes+1))
}

func bindError(err error) *apperror.AppError {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return apperror.New(http.StatusRequestEntityTooLarge, "Payload too large",
			fmt.Sprintf("Upload at most %d files of 5MB each.", domain.MaxAttachments), err)
	}
	return apperror.BadRequest("Request body could not be parsed")
}
