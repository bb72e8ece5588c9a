package v1

import (
	"errors"
	"net/http"

	"beauty-solutions-backend/internal/delivery/http/response"
	"beauty-solutions-backend/internal/domain"
	"beauty-solutions-backend/pkg/apperror"
	"beauty-solutions-backend/pkg/email"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

type ContactHandler struct {
	contactUC domain.ContactUsecase
}

// NewContactHandler registers the contact routes (public, no auth required)
func NewContactHandler(public *gin.RouterGroup, contactUC domain.ContactUsecase, mw ...gin.HandlerFunc) {
	handler := &ContactHandler{
		contactUC: contactUC,
	}

	handlers := append(append([]gin.HandlerFunc{}, mw...), handler.SubmitContact)
	public.POST("/contact", handlers...)
}

// SubmitContact godoc
// @Summary      Submit Contact Form
// @Description  Validate a contact submission and relay it to the company inbox. Accepts JSON or form encoding.
// @Tags         contact
// @Accept       json
// @Accept       x-www-form-urlencoded
// @Produce      json
// @Param        contact  body      domain.SubmissionRequest  true  "Contact Form Data"
// @Success      200      {object}  response.Response
// @Failure      400      {object}  response.Response
// @Failure      429      {object}  response.Response
// @Failure      500      {object}  response.Response
// @Router       /contact [post]
func (h *ContactHandler) SubmitContact(c *gin.Context) {
	var req domain.SubmissionRequest
	if err := bindSubmission(c, &req); err != nil {
		c.Error(apperror.Internal(domain.InternalErrorMessage, err))
		return
	}

	if _, err := h.contactUC.SubmitContact(c.Request.Context(), &req); err != nil {
		c.Error(mapContactError(err))
		return
	}

	// spam is answered exactly like a delivered message
	response.Success(c, http.StatusOK, domain.SentMessage, nil)
}

// bindSubmission decodes form posts from the HTML form and treats every
// other body as JSON, whatever Content-Type the client sent.
func bindSubmission(c *gin.Context, req *domain.SubmissionRequest) error {
	switch c.ContentType() {
	case binding.MIMEPOSTForm, binding.MIMEMultipartPOSTForm:
		return c.ShouldBind(req)
	default:
		return c.ShouldBindWith(req, binding.JSON)
	}
}

func mapContactError(err error) *apperror.AppError {
	if errors.Is(err, domain.ErrMissingFields) {
		return apperror.BadRequest(domain.MissingFieldsMessage)
	}

	var relayErr *domain.RelayError
	if errors.As(err, &relayErr) {
		msg := relayErr.Message
		if msg == "" {
			msg = email.DefaultFailureMessage
		}
		return apperror.Internal(msg, err)
	}

	return apperror.Internal(domain.InternalErrorMessage, err)
}
