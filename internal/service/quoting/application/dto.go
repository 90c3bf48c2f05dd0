package application

import "depotquote/internal/service/quoting/domain"

// Submission 是一次报价请求的完整结果
type Submission struct {
	ID          string                `json:"id"`
	PostalCode  string                `json:"postal_code"`
	Address     domain.AddressDetails `json:"address"`
	Quotes      []domain.Quote        `json:"quotes"`
	Cheapest    string                `json:"cheapest,omitempty"`
	CostPerMile float64               `json:"cost_per_mile"`
}
