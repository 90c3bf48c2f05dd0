package port

import (
	"context"

	"depotquote/internal/service/quoting/domain"
)

// Geocoder 是地址查询服务的出站端口。
// 任何实现都只取第一个候选结果。
type Geocoder interface {
	// Resolve 把邮编解析为坐标和城市/地区。
	Resolve(ctx context.Context, postalCode string) (domain.AddressDetails, error)
}

// QuoteFilter 决定某条报价是否返回给调用方。
type QuoteFilter interface {
	Allow(q domain.Quote) (bool, error)
}
