package domain

// Depot 是一个固定的发货点，每个仓库有自己的集装箱费用。
// 统一的集装箱费用只是所有仓库取相同值的特例。
type Depot struct {
	Name          string     `json:"name"`
	Location      Coordinate `json:"location"`
	ContainerCost float64    `json:"container_cost"`
}

// DefaultContainerCost 是原始报价表使用的统一集装箱费用。
const DefaultContainerCost = 2000

// DefaultDepots 返回内置的仓库表，配置文件缺失时使用。
func DefaultDepots() []Depot {
	return []Depot{
		{Name: "El Paso", Location: Coordinate{Latitude: 31.7619, Longitude: -106.485}, ContainerCost: DefaultContainerCost},
		{Name: "Austin", Location: Coordinate{Latitude: 30.2672, Longitude: -97.7431}, ContainerCost: DefaultContainerCost},
		{Name: "Dallas", Location: Coordinate{Latitude: 32.7767, Longitude: -96.797}, ContainerCost: DefaultContainerCost},
		{Name: "Houston", Location: Coordinate{Latitude: 29.7604, Longitude: -95.3698}, ContainerCost: DefaultContainerCost},
	}
}
