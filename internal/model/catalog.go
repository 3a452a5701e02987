package model

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// 产品可用性状态。
const (
	AvailabilityInStock = "in_stock"
	AvailabilityOnOrder = "on_order"
)

// Supplier 表示一个供应商。
// 供应商独立维护，产品只引用供应商，不拥有它。
// DeliveryTime 为区间文本，形如 "15-20 days"。
type Supplier struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Name         string    `json:"name"`
	Country      string    `json:"country"`
	Website      string    `json:"website,omitempty"`
	ContactEmail string    `json:"contact_email,omitempty"`
	ContactPhone string    `json:"contact_phone,omitempty"`
	DeliveryTime string    `json:"delivery_time"`
	Verified     bool      `json:"verified"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Product 表示供应商目录中的一件产品。
// Specs 为自由格式规格表，键的语义依品类而定；
// Benchmarks 为可选性能基准表（memory_bandwidth_gbs、fp32_tflops 等）。
type Product struct {
	ID                  uint              `gorm:"primaryKey" json:"id"`
	SupplierID          uint              `gorm:"index" json:"supplier_id"`
	Name                string            `json:"name"`
	Category            string            `gorm:"index" json:"category"`
	Description         string            `json:"description,omitempty"`
	Price               decimal.Decimal   `gorm:"type:numeric" json:"price"`
	Specs               datatypes.JSONMap `json:"specs"`
	Warranty            string            `json:"warranty,omitempty"`
	Stock               int               `json:"stock"`
	Availability        string            `json:"availability"`
	ExportRestrictions  []string          `gorm:"serializer:json" json:"export_restrictions,omitempty"`
	Certifications      []string          `gorm:"serializer:json" json:"certifications,omitempty"`
	Benchmarks          datatypes.JSONMap `json:"benchmarks,omitempty"`
	SupportedFrameworks []string          `gorm:"serializer:json" json:"supported_frameworks,omitempty"`
	CreatedAt           time.Time         `json:"created_at"`
	UpdatedAt           time.Time         `json:"updated_at"`
}

// Spec 返回规格表中指定键的文本值。
func (p Product) Spec(key string) (string, bool) {
	if p.Specs == nil {
		return "", false
	}
	v, ok := p.Specs[key]
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// Benchmark 返回基准表中指定指标的数值。
func (p Product) Benchmark(name string) (float64, bool) {
	if p.Benchmarks == nil {
		return 0, false
	}
	v, ok := p.Benchmarks[name]
	if !ok {
		return 0, false
	}
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	}
	return 0, false
}

// RestrictedTo 判断产品是否对目的地辖区有出口限制。
func (p Product) RestrictedTo(destination string) bool {
	if destination == "" {
		return false
	}
	for _, c := range p.ExportRestrictions {
		if strings.EqualFold(c, destination) {
			return true
		}
	}
	return false
}

// Candidate 将产品和它的供应商捆绑成一个打分候选。
type Candidate struct {
	Supplier Supplier `json:"supplier"`
	Product  Product  `json:"product"`
}
