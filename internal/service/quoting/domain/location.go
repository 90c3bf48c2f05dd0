package domain

import "strings"

// Coordinate 是以度为单位的经纬度，创建后不可变。
type Coordinate struct {
	Latitude  float64 `json:"latitude" yaml:"latitude"`
	Longitude float64 `json:"longitude" yaml:"longitude"`
}

// AddressDetails 是地理编码的结果：坐标加上城市和地区。
type AddressDetails struct {
	Coordinate
	City        string `json:"city"`
	Region      string `json:"region"`
	PostalCode  string `json:"postal_code"`
	DisplayName string `json:"display_name,omitempty"`
}

// NormalizePostalCode 用于缓存键和日志，不做格式校验。
func NormalizePostalCode(postalCode string) string {
	return strings.ToUpper(strings.TrimSpace(postalCode))
}
