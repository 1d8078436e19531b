// Package chi exposes the recommendation service over HTTP.
package chi

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"
	"go.uber.org/zap"

	"github.com/marketkit/shopgraph/internal/domain"
	"github.com/marketkit/shopgraph/internal/domain/catalog"
	healthuc "github.com/marketkit/shopgraph/internal/usecase/health"
	recommenduc "github.com/marketkit/shopgraph/internal/usecase/recommend"
)

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error) bool

// Server routes HTTP requests to the use case services.
type Server struct {
	recommend     *recommenduc.Service
	health        *healthuc.Service
	snapshots     recommenduc.SnapshotProvider
	logger        *zap.Logger
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server.
func NewServer(
	recommend *recommenduc.Service,
	health *healthuc.Service,
	snapshots recommenduc.SnapshotProvider,
	logger *zap.Logger,
) *Server {
	s := &Server{
		recommend: recommend,
		health:    health,
		snapshots: snapshots,
		logger:    logger,
	}
	s.errorHandlers = []errorHandler{
		sentinelHandler(domain.ErrProductNotFound, http.StatusNotFound, "product_not_found"),
		sentinelHandler(domain.ErrInvalidRecord, http.StatusBadRequest, "invalid_record"),
	}
	return s
}

// Register mounts the API routes on the router.
func (s *Server) Register(r chi.Router) {
	r.Get("/healthz", s.handleHealth)
	r.Get("/categories", s.handleCategories)
	r.Get("/categories/{category}/products", s.handleCategoryProducts)
	r.Get("/products/{id}", s.handleProduct)
	r.Get("/products/{id}/path/{altID}", s.handlePath)
	r.Post("/recommendations", s.handleRecommend)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	report := s.health.Check()
	status := http.StatusOK
	if report.Status != healthuc.Healthy {
		status = http.StatusServiceUnavailable
	}
	writeJSON(w, status, healthResponse{
		Status: string(report.Status),
		Checks: checksToDTO(report.Checks),
	})
}

func (s *Server) handleCategories(w http.ResponseWriter, _ *http.Request) {
	snap := s.snapshots.Snapshot()
	if snap == nil {
		writeError(w, http.StatusServiceUnavailable, "catalog_unavailable", "Catalog is not loaded yet")
		return
	}
	writeJSON(w, http.StatusOK, categoriesResponse{Categories: snap.Catalog.Categories()})
}

func (s *Server) handleCategoryProducts(w http.ResponseWriter, r *http.Request) {
	snap := s.snapshots.Snapshot()
	if snap == nil {
		writeError(w, http.StatusServiceUnavailable, "catalog_unavailable", "Catalog is not loaded yet")
		return
	}
	category := chi.URLParam(r, "category")
	products := snap.Catalog.ProductsInCategory(category)
	items := make([]productDTO, 0, len(products))
	for _, p := range products {
		items = append(items, productToDTO(p))
	}
	writeJSON(w, http.StatusOK, productsResponse{Products: items})
}

func (s *Server) handleProduct(w http.ResponseWriter, r *http.Request) {
	snap := s.snapshots.Snapshot()
	if snap == nil {
		writeError(w, http.StatusServiceUnavailable, "catalog_unavailable", "Catalog is not loaded yet")
		return
	}
	p, err := snap.Catalog.Get(chi.URLParam(r, "id"))
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, productToDTO(p))
}

func (s *Server) handleRecommend(w http.ResponseWriter, r *http.Request) {
	var req recommendationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", "Invalid request body: "+err.Error())
		return
	}
	if req.ProductID == "" {
		writeError(w, http.StatusBadRequest, "validation_failed", "product_id is required")
		return
	}
	if req.MaxPrice != nil && *req.MaxPrice < 0 {
		writeError(w, http.StatusBadRequest, "validation_failed", "max_price must be non-negative")
		return
	}

	res, err := s.recommend.Recommend(r.Context(), recommenduc.Request{
		ProductID:      req.ProductID,
		MaxPrice:       req.MaxPrice,
		RequiredTags:   req.RequiredTags,
		PreferredBrand: req.PreferredBrand,
		TopK:           req.TopK,
	})
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, recommendationToDTO(res))
}

func (s *Server) handlePath(w http.ResponseWriter, r *http.Request) {
	sub, err := s.recommend.Path(r.Context(), chi.URLParam(r, "id"), chi.URLParam(r, "altID"))
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, subgraphToDTO(sub))
}

// handleDomainError walks the error handler chain, falling back to 500.
func (s *Server) handleDomainError(w http.ResponseWriter, err error) {
	for _, handle := range s.errorHandlers {
		if handle(w, err) {
			return
		}
	}
	s.logger.Error("unhandled error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, "internal_error", "Internal error")
}

func sentinelHandler(sentinel error, status int, code string) errorHandler {
	return func(w http.ResponseWriter, err error) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, err.Error())
		return true
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorResponse{Code: code, Message: message})
}

func checksToDTO(checks map[string]healthuc.CheckResult) map[string]string {
	out := make(map[string]string, len(checks))
	for name, result := range checks {
		out[name] = string(result)
	}
	return out
}

func productToDTO(p catalog.Product) productDTO {
	return productDTO{
		ID:       p.ID(),
		Name:     p.Name(),
		Category: p.Category(),
		Brand:    p.Brand(),
		Price:    p.Price(),
		InStock:  p.InStock(),
		Tags:     p.Tags(),
	}
}
