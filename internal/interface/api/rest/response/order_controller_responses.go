package response

import (
	"time"

	"github.com/sercandadas/haliyol-marketplace-service/internal/domain/entities"
)

type Order struct {
	CreatedAt          time.Time             `json:"created_at"`
	AssignedAt         *time.Time            `json:"assigned_at,omitempty"`
	PickupDate         *time.Time            `json:"pickup_date,omitempty"`
	WashingDate        *time.Time            `json:"washing_date,omitempty"`
	DeliveryDate       *time.Time            `json:"delivery_date,omitempty"`
	CancelledAt        *time.Time            `json:"cancelled_at,omitempty"`
	ID                 string                `json:"id"`
	CustomerID         string                `json:"customer_id"`
	CustomerName       string                `json:"customer_name"`
	CustomerPhone      string                `json:"customer_phone"`
	CustomerEmail      string                `json:"customer_email"`
	CustomerAddress    string                `json:"customer_address"`
	City               string                `json:"city"`
	District           string                `json:"district"`
	SpecialNotes       string                `json:"special_notes,omitempty"`
	Status             entities.OrderStatus  `json:"status"`
	CompanyID          string                `json:"company_id,omitempty"`
	CompanyName        string                `json:"company_name,omitempty"`
	CancelReason       string                `json:"cancel_reason,omitempty"`
	Carpets            []entities.CarpetItem `json:"carpets"`
	ActualCarpets      []MeasuredCarpet      `json:"actual_carpets,omitempty"`
	RejectedBy         []string              `json:"rejected_by,omitempty"`
	ActualTotalArea    float64               `json:"actual_total_area"`
	ActualTotalPrice   float64               `json:"actual_total_price"`
	DiscountPercentage int                   `json:"discount_percentage"`
	DiscountAmount     float64               `json:"discount_amount"`
	FinalPrice         float64               `json:"final_price"`
	CarpetCount        int                   `json:"carpet_count"`
}

type MeasuredCarpet struct {
	CarpetType entities.CarpetType `json:"carpet_type"`
	Area       float64             `json:"area"`
	Price      float64             `json:"price"`
}

func NewOrderFromEntity(e *entities.Order) *Order {
	o := &Order{
		CreatedAt:          e.CreatedAt,
		AssignedAt:         e.AssignedAt,
		PickupDate:         e.PickupDate,
		WashingDate:        e.WashingDate,
		DeliveryDate:       e.DeliveryDate,
		CancelledAt:        e.CancelledAt,
		ID:                 e.ID,
		CustomerID:         e.CustomerID,
		CustomerName:       e.CustomerName,
		CustomerPhone:      e.CustomerPhone,
		CustomerEmail:      e.CustomerEmail,
		CustomerAddress:    e.CustomerAddress,
		City:               e.City,
		District:           e.District,
		SpecialNotes:       e.SpecialNotes,
		Status:             e.Status,
		CompanyID:          e.CompanyID,
		CompanyName:        e.CompanyName,
		CancelReason:       e.CancelReason,
		Carpets:            e.Carpets,
		RejectedBy:         e.RejectedBy,
		ActualTotalArea:    e.ActualTotalArea,
		ActualTotalPrice:   e.ActualTotalPrice.InexactFloat64(),
		DiscountPercentage: e.DiscountPercentage,
		DiscountAmount:     e.DiscountAmount.InexactFloat64(),
		FinalPrice:         e.FinalPrice.InexactFloat64(),
		CarpetCount:        e.CarpetCount,
	}

	for _, c := range e.ActualCarpets {
		o.ActualCarpets = append(o.ActualCarpets, MeasuredCarpet{
			CarpetType: c.Type,
			Area:       c.Area,
			Price:      c.Price.InexactFloat64(),
		})
	}

	return o
}

func NewOrdersFromEntities(es []*entities.Order) []*Order {
	orders := make([]*Order, 0, len(es))
	for _, e := range es {
		orders = append(orders, NewOrderFromEntity(e))
	}
	return orders
}
