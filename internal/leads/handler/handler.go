package handler

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"merkaz_backend/internal/composer"
	"merkaz_backend/internal/leads/domain"
	"merkaz_backend/internal/leads/service"
	"merkaz_backend/internal/leads/transport"
	"merkaz_backend/internal/whatsapp"
	"merkaz_backend/platform/apperr"
	"merkaz_backend/platform/httpkit"
	"merkaz_backend/platform/logger"
	"merkaz_backend/platform/validator"

	"github.com/gin-gonic/gin"
)

const (
	msgInvalidRequest   = "invalid request"
	msgValidationFailed = "validation failed"
	msgServerError      = "Server error"

	// maxLeadBodyBytes caps public submissions; a lead with a long item list
	// stays well below it.
	maxLeadBodyBytes = 64 << 10
)

type Handler struct {
	svc *service.Service
	val *validator.Validator
	log *logger.Logger
}

func New(svc *service.Service, val *validator.Validator, log *logger.Logger) *Handler {
	return &Handler{svc: svc, val: val, log: log}
}

// RegisterRoutes registers the order form routes under /api/v1/leads.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/compose", h.Compose)
	rg.POST("/compose/qr", h.ComposeQR)
	rg.POST("/requests", h.SubmitRequest)
}

// RegisterLeadRoute registers the site's lead capture endpoint, POST /api/lead.
func (h *Handler) RegisterLeadRoute(rg *gin.RouterGroup) {
	rg.POST("/lead", h.SubmitLead)
}

// SubmitLead accepts a lead snapshot built by the site and forwards it to the
// sinks. Only a body that is not a JSON object is refused.
func (h *Handler) SubmitLead(c *gin.Context) {
	defer func() {
		if r := recover(); r != nil {
			h.log.WithContext(c.Request.Context()).Error("lead handler panic", "panic", fmt.Sprint(r))
			c.AbortWithStatusJSON(http.StatusInternalServerError, transport.LeadResponse{OK: false, Error: msgServerError})
		}
	}()

	body, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, maxLeadBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			httpkit.JSON(c, http.StatusRequestEntityTooLarge, transport.LeadResponse{OK: false, Error: domain.MsgInvalidPayload})
			return
		}
		httpkit.JSON(c, http.StatusBadRequest, transport.LeadResponse{OK: false, Error: domain.MsgInvalidPayload})
		return
	}

	rec, err := domain.ParseRecord(body)
	if err != nil {
		httpkit.JSON(c, http.StatusBadRequest, transport.LeadResponse{OK: false, Error: domain.MsgInvalidPayload})
		return
	}

	h.svc.SubmitLead(c.Request.Context(), rec)
	httpkit.OK(c, transport.LeadResponse{OK: true})
}

// Compose returns the live preview of the message and its deep link.
func (h *Handler) Compose(c *gin.Context) {
	var req transport.ComposeRequest
	sel, lang, ok := h.bindSelection(c, &req)
	if !ok {
		return
	}

	preview := h.svc.Compose(sel, lang)
	httpkit.OK(c, toComposeResponse(preview))
}

// ComposeQR returns the deep link of the composed message as a PNG QR code.
func (h *Handler) ComposeQR(c *gin.Context) {
	size := whatsapp.DefaultQRSize
	if raw := c.Query("size"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, "size must be an integer")
			return
		}
		size = parsed
	}

	var req transport.ComposeRequest
	sel, lang, ok := h.bindSelection(c, &req)
	if !ok {
		return
	}

	preview := h.svc.Compose(sel, lang)
	png, err := whatsapp.QRCode(preview.Link, size)
	if apperr.Is(err, apperr.KindValidation) {
		httpkit.HandleError(c, err)
		return
	}
	if err != nil {
		h.log.WithContext(c.Request.Context()).Error("qr code rendering failed", "error", err)
		httpkit.Error(c, http.StatusInternalServerError, msgServerError, nil)
		return
	}
	c.Header("Cache-Control", "no-store")
	c.Data(http.StatusOK, "image/png", png)
}

// SubmitRequest validates the order form, dispatches the lead and returns the
// deep link the browser should open.
func (h *Handler) SubmitRequest(c *gin.Context) {
	var req transport.SubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, validator.FieldErrors(err))
		return
	}

	sel, err := req.ToSelection()
	if httpkit.HandleError(c, err) {
		return
	}

	preview, err := h.svc.SubmitRequest(c.Request.Context(), service.RequestInput{
		Selection: sel,
		Language:  req.Language(composer.NegotiateLanguage(c.GetHeader("Accept-Language"))),
		Source:    req.Source,
		Items:     req.ItemsJSON(),
	})
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, transport.SubmitResponse{OK: true, ComposeResponse: toComposeResponse(preview)})
}

func (h *Handler) bindSelection(c *gin.Context, req *transport.ComposeRequest) (composer.Selection, composer.Language, bool) {
	if err := c.ShouldBindJSON(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return composer.Selection{}, "", false
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, validator.FieldErrors(err))
		return composer.Selection{}, "", false
	}

	sel, err := req.ToSelection()
	if httpkit.HandleError(c, err) {
		return composer.Selection{}, "", false
	}
	return sel, req.Language(composer.NegotiateLanguage(c.GetHeader("Accept-Language"))), true
}

func toComposeResponse(p service.Preview) transport.ComposeResponse {
	return transport.ComposeResponse{
		Message:   p.Message,
		Link:      p.Link,
		Direction: p.Direction,
		Locale:    p.Language.String(),
	}
}
