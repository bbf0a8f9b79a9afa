package api

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/fxgate/internal/domain/dto"
	"github.com/guttosm/fxgate/internal/fx"
	"github.com/guttosm/fxgate/internal/middleware"
	"github.com/guttosm/fxgate/internal/service"
)

// TokenIssuer signs a credential for an identity claim.
// Satisfied by *auth.TokenService.
type TokenIssuer interface {
	Issue(username string) (string, error)
}

// Handler provides HTTP handlers for the token and rate endpoints.
//
// Responsibilities:
//   - Validate endpoint-specific query parameters (quote is guarded upstream)
//   - Delegate to the rate service and token issuer
//   - Map service errors onto HTTP status codes
//   - Return structured JSON responses
type Handler struct {
	svc    service.RateService
	tokens TokenIssuer
}

// NewHandler constructs a new Handler instance.
func NewHandler(svc service.RateService, tokens TokenIssuer) *Handler {
	return &Handler{svc: svc, tokens: tokens}
}

// IssueToken handles POST /token requests.
//
// The username is signed as-is with no identity proof; anyone can mint a
// credential for any name. That gap is part of the documented design.
//
// IssueToken godoc
// @Summary      Issue an access token
// @Description  Signs a credential for the supplied username
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      dto.TokenRequest  true  "Identity claim"
// @Success      200   {object}  dto.TokenResponse      "Success"
// @Failure      400   {object}  dto.ErrorResponse      "Bad Request"
// @Failure      500   {object}  dto.ErrorResponse      "Internal Error"
// @Router       /token [post]
func (h *Handler) IssueToken(c *gin.Context) {
	var req dto.TokenRequest
	// An absent body is treated like an empty claim, matching the lenient
	// contract of the endpoint; only malformed JSON is rejected.
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		middleware.AbortWithError(c, http.StatusBadRequest, "invalid request body", err)
		return
	}

	token, err := h.tokens.Issue(req.Username)
	if err != nil {
		middleware.AbortWithError(c, http.StatusInternalServerError, "failed to issue token", err)
		return
	}

	c.JSON(http.StatusOK, dto.TokenResponse{Token: token})
}

// GetRange handles GET /range requests.
//
// GetRange godoc
// @Summary      Rates over a date range
// @Description  Returns one EUR-based rate per business day from start (inclusive) to end (exclusive)
// @Tags         rates
// @Produce      json
// @Param        quote  query     string  true  "Quote currency code" example(USD)
// @Param        start  query     string  true  "Start date in YYYY-MM-DD" example(2024-01-01)
// @Param        end    query     string  true  "End date in YYYY-MM-DD (excluded)" example(2024-01-08)
// @Success      200    {array}   models.RatePoint   "Success"
// @Failure      400    {object}  dto.ErrorResponse  "Bad Request"
// @Failure      401    {object}  dto.ErrorResponse  "Unauthorized"
// @Failure      403    {object}  dto.ErrorResponse  "Forbidden"
// @Failure      502    {object}  dto.ErrorResponse  "Upstream Unavailable"
// @Security     TokenHeader
// @Router       /range [get]
func (h *Handler) GetRange(c *gin.Context) {
	quote := c.Query("quote")
	start := c.Query("start")
	end := c.Query("end")
	if start == "" || end == "" {
		middleware.AbortWithError(c, http.StatusBadRequest, "parameters missing", nil)
		return
	}

	points, err := h.svc.GetRange(c.Request.Context(), quote, start, end)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, points)
}

// GetConvert handles GET /convert requests.
//
// GetConvert godoc
// @Summary      Convert an EUR amount
// @Description  Prices an EUR amount in the quote currency at the latest rate
// @Tags         rates
// @Produce      json
// @Param        quote   query     string  true  "Quote currency code" example(USD)
// @Param        amount  query     number  true  "Amount of EUR to convert" example(10)
// @Success      200     {array}   models.RatePoint   "Single-element array"
// @Failure      400     {object}  dto.ErrorResponse  "Bad Request"
// @Failure      401     {object}  dto.ErrorResponse  "Unauthorized"
// @Failure      403     {object}  dto.ErrorResponse  "Forbidden"
// @Failure      502     {object}  dto.ErrorResponse  "Upstream Unavailable"
// @Security     TokenHeader
// @Router       /convert [get]
func (h *Handler) GetConvert(c *gin.Context) {
	quote := c.Query("quote")
	rawAmount := c.Query("amount")
	if rawAmount == "" {
		middleware.AbortWithError(c, http.StatusBadRequest, "parameters missing", nil)
		return
	}
	amount, err := strconv.ParseFloat(rawAmount, 64)
	if err != nil {
		middleware.AbortWithError(c, http.StatusBadRequest, "invalid amount", err)
		return
	}

	point, err := h.svc.Convert(c.Request.Context(), quote, amount)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	// Single-element array: the response shape is shared with /range.
	c.JSON(http.StatusOK, []any{point})
}

// GetHistorical handles GET /historical requests.
//
// GetHistorical godoc
// @Summary      Rate on a single past date
// @Description  Returns the EUR-based rate for the quote currency on the given date
// @Tags         rates
// @Produce      json
// @Param        quote  query     string  true  "Quote currency code" example(GBP)
// @Param        date   query     string  true  "Date in YYYY-MM-DD" example(2024-01-02)
// @Success      200    {array}   models.RatePoint   "Single-element array"
// @Failure      400    {object}  dto.ErrorResponse  "Bad Request"
// @Failure      401    {object}  dto.ErrorResponse  "Unauthorized"
// @Failure      403    {object}  dto.ErrorResponse  "Forbidden"
// @Failure      502    {object}  dto.ErrorResponse  "Upstream Unavailable"
// @Security     TokenHeader
// @Router       /historical [get]
func (h *Handler) GetHistorical(c *gin.Context) {
	quote := c.Query("quote")
	date := c.Query("date")
	if date == "" {
		middleware.AbortWithError(c, http.StatusBadRequest, "parameters missing", nil)
		return
	}

	point, err := h.svc.Historical(c.Request.Context(), quote, date)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, []any{point})
}

// respondServiceError maps service-layer failures onto HTTP statuses,
// keeping caller faults (400) distinct from provider faults (502).
func respondServiceError(c *gin.Context, err error) {
	var upstream *fx.UpstreamError
	switch {
	case errors.Is(err, service.ErrBadDate):
		middleware.AbortWithError(c, http.StatusBadRequest, "invalid date format, expected YYYY-MM-DD", err)
	case errors.As(err, &upstream):
		middleware.AbortWithError(c, http.StatusBadGateway, "upstream provider unavailable", err)
	default:
		middleware.AbortWithError(c, http.StatusInternalServerError, "failed to fetch rates", err)
	}
}
