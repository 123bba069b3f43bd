package server

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/artprint-il/artprint/pkg/basket"
	"github.com/artprint-il/artprint/pkg/buildinfo"
	apperrors "github.com/artprint-il/artprint/pkg/errors"
	"github.com/artprint-il/artprint/pkg/observability"
	"github.com/artprint-il/artprint/pkg/order"
	"github.com/artprint-il/artprint/pkg/pricing"
)

// =============================================================================
// Responses
// =============================================================================

type errorResponse struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// statusForCode maps application error codes to HTTP status codes.
func statusForCode(code apperrors.Code) int {
	switch code {
	case apperrors.ErrCodeInvalidInput, apperrors.ErrCodeInvalidSize,
		apperrors.ErrCodeInvalidColor, apperrors.ErrCodeInvalidQuantity,
		apperrors.ErrCodeInvalidContact, apperrors.ErrCodeBasketEmpty:
		return http.StatusBadRequest
	case apperrors.ErrCodeNotFound:
		return http.StatusNotFound
	case apperrors.ErrCodeBasketFull:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.logger.Error("encode response", "error", err)
	}
}

func (s *Server) respondError(w http.ResponseWriter, err error) {
	code := apperrors.GetCode(err)
	var resp errorResponse
	resp.Error.Code = string(code)
	resp.Error.Message = apperrors.UserMessage(err)
	s.respondJSON(w, statusForCode(code), resp)
}

func (s *Server) badRequest(w http.ResponseWriter, format string, args ...any) {
	s.respondError(w, apperrors.New(apperrors.ErrCodeInvalidInput, format, args...))
}

// queryInt parses a required integer query parameter.
func queryInt(r *http.Request, name string) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, apperrors.New(apperrors.ErrCodeInvalidInput, "missing query parameter %q", name)
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, apperrors.New(apperrors.ErrCodeInvalidInput, "parameter %q must be an integer", name)
	}
	return v, nil
}

// =============================================================================
// Health
// =============================================================================

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": buildinfo.Version,
	})
}

// =============================================================================
// Pricing & Sizing
// =============================================================================

type priceResponse struct {
	Width     int               `json:"width"`
	Height    int               `json:"height"`
	Breakdown pricing.Breakdown `json:"breakdown"`
	Display   string            `json:"display"`
}

func (s *Server) handlePrice(w http.ResponseWriter, r *http.Request) {
	width, err := queryInt(r, "width")
	if err != nil {
		s.respondError(w, err)
		return
	}
	height, err := queryInt(r, "height")
	if err != nil {
		s.respondError(w, err)
		return
	}
	color := r.URL.Query().Get("color") == "true"

	q := s.calc.Quote(width, height, color)
	s.respondJSON(w, http.StatusOK, priceResponse{
		Width:     width,
		Height:    height,
		Breakdown: q,
		Display:   pricing.FormatPrice(q.TotalPrice),
	})
}

type sizeForPriceResponse struct {
	Target int `json:"target"`
	Width  int `json:"width"`
	Height int `json:"height"`
	Price  int `json:"price"`
}

func (s *Server) handleSizeForPrice(w http.ResponseWriter, r *http.Request) {
	target, err := queryInt(r, "target")
	if err != nil {
		s.respondError(w, err)
		return
	}
	if target <= 0 {
		s.badRequest(w, "target must be positive")
		return
	}

	width, height := s.calc.SizeForPrice(target)
	s.respondJSON(w, http.StatusOK, sizeForPriceResponse{
		Target: target,
		Width:  width,
		Height: height,
		Price:  s.calc.BasePrice(width, height),
	})
}

func (s *Server) handleValidateSize(w http.ResponseWriter, r *http.Request) {
	width, err := queryInt(r, "width")
	if err != nil {
		s.respondError(w, err)
		return
	}
	height, err := queryInt(r, "height")
	if err != nil {
		s.respondError(w, err)
		return
	}

	result := s.cfg.Sizing.Validate(width, height)
	s.respondJSON(w, http.StatusOK, result)
}

func (s *Server) handleColors(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]any{
		"enabled": s.cfg.Colors.Enabled,
		"default": s.cfg.Colors.Default,
		"palette": s.cfg.Colors.Palette,
	})
}

// =============================================================================
// Basket
// =============================================================================

type basketResponse struct {
	Items   []basket.Item  `json:"items"`
	Summary basket.Summary `json:"summary"`
	IsFull  bool           `json:"is_full"`
}

func (s *Server) basketView() basketResponse {
	return basketResponse{
		Items:   s.basket.Items(),
		Summary: s.basket.Summary(),
		IsFull:  s.basket.IsFull(),
	}
}

func (s *Server) handleGetBasket(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, s.basketView())
}

// addItemRequest configures a new basket line. Width and height are
// validated against the size constraints; prices are computed server-side
// so clients cannot assert their own totals.
type addItemRequest struct {
	Image     basket.ImageRef `json:"image"`
	Width     int             `json:"width"`
	Height    int             `json:"height"`
	SideColor string          `json:"side_color"`
}

func (s *Server) handleAddItem(w http.ResponseWriter, r *http.Request) {
	var req addItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.badRequest(w, "invalid JSON body")
		return
	}

	if result := s.cfg.Sizing.Validate(req.Width, req.Height); !result.Valid {
		s.respondError(w, apperrors.New(apperrors.ErrCodeInvalidSize, "%s", result.Errors[0]))
		return
	}

	sideColor := req.SideColor
	if sideColor == "" {
		sideColor = s.cfg.Colors.Default
	}
	if err := apperrors.ValidateHexColor(sideColor); err != nil {
		s.respondError(w, err)
		return
	}
	if !s.cfg.Colors.HasColor(sideColor) {
		s.respondError(w, apperrors.New(apperrors.ErrCodeInvalidColor, "color %s is not in the palette", sideColor))
		return
	}

	quote := s.calc.Quote(req.Width, req.Height, s.cfg.Colors.Enabled && s.cfg.Colors.IsUpgrade(sideColor))
	item, err := s.basket.Add(r.Context(), basket.ItemConfig{
		Image:      req.Image,
		CanvasSize: basket.CanvasSize{Width: req.Width, Height: req.Height},
		CanvasOptions: basket.CanvasOptions{
			SideColor:     sideColor,
			ColorUpcharge: quote.ColorUpcharge,
		},
		BasePrice:  quote.BasePrice,
		TotalPrice: quote.TotalPrice,
	})
	if err != nil {
		s.respondError(w, err)
		return
	}
	s.respondJSON(w, http.StatusCreated, item)
}

// updateItemRequest is a partial item update. A quantity of zero or below
// removes the item.
type updateItemRequest struct {
	Quantity  *int    `json:"quantity,omitempty"`
	SideColor *string `json:"side_color,omitempty"`
}

func (s *Server) handleUpdateItem(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	item, ok := s.basket.Get(id)
	if !ok {
		s.respondError(w, apperrors.New(apperrors.ErrCodeNotFound, "no basket item with id %s", id))
		return
	}

	var req updateItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.badRequest(w, "invalid JSON body")
		return
	}

	if req.SideColor != nil {
		if err := apperrors.ValidateHexColor(*req.SideColor); err != nil {
			s.respondError(w, err)
			return
		}
		if !s.cfg.Colors.HasColor(*req.SideColor) {
			s.respondError(w, apperrors.New(apperrors.ErrCodeInvalidColor, "color %s is not in the palette", *req.SideColor))
			return
		}

		quote := s.calc.Quote(item.CanvasSize.Width, item.CanvasSize.Height,
			s.cfg.Colors.Enabled && s.cfg.Colors.IsUpgrade(*req.SideColor))
		opts := basket.CanvasOptions{SideColor: *req.SideColor, ColorUpcharge: quote.ColorUpcharge}
		s.basket.UpdateConfiguration(r.Context(), id, basket.ItemUpdate{
			CanvasOptions: &opts,
			BasePrice:     &quote.BasePrice,
			TotalPrice:    &quote.TotalPrice,
		})
	}

	if req.Quantity != nil {
		s.basket.UpdateQuantity(r.Context(), id, *req.Quantity)
	}

	s.respondJSON(w, http.StatusOK, s.basketView())
}

func (s *Server) handleRemoveItem(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if _, ok := s.basket.Get(id); !ok {
		s.respondError(w, apperrors.New(apperrors.ErrCodeNotFound, "no basket item with id %s", id))
		return
	}
	s.basket.Remove(r.Context(), id)
	s.respondJSON(w, http.StatusOK, s.basketView())
}

func (s *Server) handleClearBasket(w http.ResponseWriter, r *http.Request) {
	s.basket.Clear(r.Context())
	s.respondJSON(w, http.StatusOK, s.basketView())
}

// =============================================================================
// Checkout
// =============================================================================

type checkoutResponse struct {
	Order   order.Order    `json:"order"`
	Summary basket.Summary `json:"summary"`
}

func (s *Server) handleCheckout(w http.ResponseWriter, r *http.Request) {
	var contact order.ContactInfo
	if err := json.NewDecoder(r.Body).Decode(&contact); err != nil {
		s.badRequest(w, "invalid JSON body")
		return
	}

	items := s.basket.Items()
	o, err := order.Assemble(items, contact)
	if err != nil {
		s.respondError(w, err)
		return
	}

	summary := basket.Summarize(items)
	s.basket.Clear(r.Context())
	observability.Basket().OnCheckout(r.Context(), summary.ItemCount, o.TotalPrice)

	s.logger.Info("order assembled", "order_id", o.ID, "items", summary.ItemCount, "total", o.TotalPrice)
	s.respondJSON(w, http.StatusCreated, checkoutResponse{Order: o, Summary: summary})
}
