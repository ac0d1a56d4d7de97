package http

import (
	"time"

	"storefront/internal/core/application/views"
	"storefront/internal/core/domain/model/catalog"
	"storefront/internal/core/domain/model/order"
)

// Error is the body of every non-2xx response.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type LineRequest struct {
	ProductID int64 `json:"productId"`
	Quantity  int   `json:"quantity"`
}

type OrderRequest struct {
	Lines []LineRequest `json:"lines"`
}

func (r OrderRequest) toDomain() []order.LineRequest {
	lines := make([]order.LineRequest, 0, len(r.Lines))
	for _, l := range r.Lines {
		lines = append(lines, order.LineRequest{
			ProductID: catalog.ProductID(l.ProductID),
			Quantity:  l.Quantity,
		})
	}
	return lines
}

type Line struct {
	ProductID int64  `json:"productId"`
	Name      string `json:"name"`
	URL       string `json:"url"`
	Category  string `json:"category"`
	Quantity  int    `json:"quantity"`
	UnitPrice string `json:"unitPrice"`
	Total     string `json:"total"`
}

type Order struct {
	ID        string    `json:"id"`
	AccountID string    `json:"accountId"`
	Status    string    `json:"status"`
	Total     string    `json:"total"`
	OrderDate time.Time `json:"orderDate"`
	Lines     []Line    `json:"lines"`
}

func toResponse(v views.OrderView) Order {
	lines := make([]Line, 0, len(v.Lines))
	for _, l := range v.Lines {
		lines = append(lines, Line{
			ProductID: int64(l.ProductID),
			Name:      l.Name,
			URL:       l.URL,
			Category:  l.Category,
			Quantity:  l.Quantity,
			UnitPrice: l.UnitPrice.String(),
			Total:     l.Total.String(),
		})
	}
	return Order{
		ID:        v.ID.String(),
		AccountID: v.AccountID.String(),
		Status:    v.Status.String(),
		Total:     v.Total.String(),
		OrderDate: v.CreatedAt,
		Lines:     lines,
	}
}

func toResponses(vs []views.OrderView) []Order {
	out := make([]Order, 0, len(vs))
	for _, v := range vs {
		out = append(out, toResponse(v))
	}
	return out
}
