package http

import (
	"time"

	"cafe/internal/core/application/usecases/queries"
)

type placeOrderRequest struct {
	Owner string `json:"owner"`
	Item  string `json:"item"`
}

type addItemRequest struct {
	Item string `json:"item"`
}

type itemStatusRequest struct {
	Item   string `json:"item"`
	Status string `json:"status"`
}

type itemCommentRequest struct {
	Item    string `json:"item"`
	Comment string `json:"comment"`
}

type paymentRequest struct {
	Paid *bool `json:"paid"`
}

type orderTotalResponse struct {
	ID    int64  `json:"id"`
	Total string `json:"total"`
}

type lineItemResponse struct {
	Item      string `json:"item"`
	UnitPrice string `json:"unit_price"`
	Status    string `json:"status"`
	Comment   string `json:"comment"`
}

type orderResponse struct {
	ID        int64              `json:"id"`
	Owner     string             `json:"owner"`
	CreatedAt time.Time          `json:"created_at"`
	Paid      bool               `json:"paid"`
	Total     string             `json:"total"`
	Items     []lineItemResponse `json:"items"`
}

type errorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func toLineItemResponses(items []queries.LineItemView) []lineItemResponse {
	response := make([]lineItemResponse, len(items))
	for i, item := range items {
		response[i] = lineItemResponse{
			Item:      item.ItemName,
			UnitPrice: item.UnitPrice.String(),
			Status:    item.Status.String(),
			Comment:   item.Comment,
		}
	}
	return response
}

func toOrderResponses(orders []queries.OrderView) []orderResponse {
	response := make([]orderResponse, len(orders))
	for i, o := range orders {
		response[i] = orderResponse{
			ID:        o.ID.Int64(),
			Owner:     o.Owner,
			CreatedAt: o.CreatedAt,
			Paid:      o.Paid,
			Total:     o.Total.String(),
			Items:     toLineItemResponses(o.Items),
		}
	}
	return response
}
