package handlers

import (
	"context"
	"errors"
	"net/http"

	"gocompare_api/internal/compare/business/models"
	"gocompare_api/internal/compare/business/services/comparison"
)

type Comparer interface {
	Compare(ctx context.Context, idA, idB string) (*models.Comparison, error)
	Product(ctx context.Context, id string) (*models.ProductCard, error)
}

type CategoryLister interface {
	List(ctx context.Context) ([]models.Category, error)
}

type CompareHandler struct {
	comparer   Comparer
	categories CategoryLister
}

func NewCompareHandler(comparer Comparer, categories CategoryLister) *CompareHandler {
	return &CompareHandler{comparer: comparer, categories: categories}
}

// Compare serves GET /api/compare?a={id}&b={id}.
func (h *CompareHandler) Compare(w http.ResponseWriter, r *http.Request) {
	idA, idB := r.URL.Query().Get("a"), r.URL.Query().Get("b")
	if idA == "" || idB == "" {
		writeError(w, http.StatusBadRequest, "two product ids are required: ?a=&b=")
		return
	}

	result, err := h.comparer.Compare(r.Context(), idA, idB)
	if err != nil {
		h.readError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// Product serves GET /api/products/{id}.
func (h *CompareHandler) Product(w http.ResponseWriter, r *http.Request) {
	card, err := h.comparer.Product(r.Context(), r.PathValue("id"))
	if err != nil {
		h.readError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, card)
}

func (h *CompareHandler) Categories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.categories.List(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to fetch categories")
		return
	}
	if categories == nil {
		categories = []models.Category{}
	}
	writeJSON(w, http.StatusOK, categories)
}

func (h *CompareHandler) readError(w http.ResponseWriter, err error) {
	if errors.Is(err, comparison.ErrNotFound) {
		writeError(w, http.StatusNotFound, "product not found")
		return
	}
	writeError(w, http.StatusInternalServerError, "failed to load products")
}
