package domain

// Quote 是某个仓库到目的地的一次报价，不持久化。
type Quote struct {
	DepotName     string  `json:"depot"`
	DistanceMiles float64 `json:"distance_miles"`
	ContainerCost float64 `json:"container_cost"`
	DeliveryCost  float64 `json:"delivery_cost"`
	TotalCost     float64 `json:"total_cost"`
}

// Cheapest 返回总价最低的报价，总价相同时取靠前的一个。
func Cheapest(quotes []Quote) (Quote, bool) {
	if len(quotes) == 0 {
		return Quote{}, false
	}
	best := quotes[0]
	for _, q := range quotes[1:] {
		if q.TotalCost < best.TotalCost {
			best = q
		}
	}
	return best, true
}
