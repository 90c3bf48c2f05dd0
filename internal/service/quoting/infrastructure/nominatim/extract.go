package nominatim

import (
	"strings"

	"github.com/pkg/errors"
)

// SplitStrategy 决定如何从 display_name 中拆出城市和地区。
// 只在服务商没有返回结构化地址字段时使用。
type SplitStrategy string

const (
	// StrategyLastThree 取倒数第三段为城市、倒数第二段为地区
	StrategyLastThree SplitStrategy = "last_three"
	// StrategyAllSegments 去掉国家和邮编段后，取第一段为城市、最后一段为地区
	StrategyAllSegments SplitStrategy = "all_segments"
)

// ParseSplitStrategy 空串返回默认策略
func ParseSplitStrategy(s string) (SplitStrategy, error) {
	switch SplitStrategy(strings.ToLower(strings.TrimSpace(s))) {
	case "", StrategyLastThree:
		return StrategyLastThree, nil
	case StrategyAllSegments:
		return StrategyAllSegments, nil
	default:
		return "", errors.Errorf("unknown split strategy %q", s)
	}
}

func splitSegments(displayName string) []string {
	parts := strings.Split(displayName, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}

// cityRegion 按策略拆分 display_name，段数不够时对应字段为空。
func cityRegion(strategy SplitStrategy, displayName, postalCode string) (city, region string) {
	if strings.TrimSpace(displayName) == "" {
		return "", ""
	}
	segments := splitSegments(displayName)

	switch strategy {
	case StrategyAllSegments:
		kept := make([]string, 0, len(segments))
		for _, s := range segments {
			if s == "" || strings.EqualFold(s, strings.TrimSpace(postalCode)) {
				continue
			}
			kept = append(kept, s)
		}
		// 最后一段是国家
		if len(kept) > 1 {
			kept = kept[:len(kept)-1]
		}
		if len(kept) == 0 {
			return "", ""
		}
		return kept[0], kept[len(kept)-1]
	default:
		n := len(segments)
		if n >= 3 {
			city = segments[n-3]
		}
		if n >= 2 {
			region = segments[n-2]
		}
		return city, region
	}
}

// structuredCity 按从大到小的聚居地类型取第一个非空值
func (a *placeAddress) structuredCity() string {
	if a == nil {
		return ""
	}
	for _, v := range []string{a.City, a.Town, a.Village, a.Hamlet, a.Municipality} {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}

func (a *placeAddress) structuredRegion() string {
	if a == nil {
		return ""
	}
	return strings.TrimSpace(a.State)
}
