package pricing

import "depotquote/internal/service/quoting/domain"

// DefaultCostPerMile 每英里运费
const DefaultCostPerMile = 7.0

// Calculator 根据距离和仓库的集装箱费用计算报价。
// 它没有内部状态，可以被多个请求并发使用。
type Calculator struct {
	costPerMile float64
}

// NewCalculator 创建计算器，costPerMile <= 0 时使用默认值。
func NewCalculator(costPerMile float64) *Calculator {
	if costPerMile <= 0 {
		costPerMile = DefaultCostPerMile
	}
	return &Calculator{costPerMile: costPerMile}
}

// CostPerMile 返回当前使用的每英里运费。
func (c *Calculator) CostPerMile() float64 {
	return c.costPerMile
}

// Quote 为每个仓库生成一条报价，顺序与输入一致。
func (c *Calculator) Quote(origin domain.Coordinate, depots []domain.Depot) []domain.Quote {
	quotes := make([]domain.Quote, 0, len(depots))
	for _, d := range depots {
		distance := DistanceMiles(origin, d.Location)
		delivery := distance * c.costPerMile
		quotes = append(quotes, domain.Quote{
			DepotName:     d.Name,
			DistanceMiles: distance,
			ContainerCost: d.ContainerCost,
			DeliveryCost:  delivery,
			TotalCost:     d.ContainerCost + delivery,
		})
	}
	return quotes
}
