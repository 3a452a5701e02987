package model

import (
	"strings"
	"time"
)

// Criteria 表示买家设定的评分权重，三项之和必须等于 100。
type Criteria struct {
	Price    int `json:"price"`
	Quality  int `json:"quality"`
	Delivery int `json:"delivery"`
}

// Total 返回三项权重之和。
func (c Criteria) Total() int {
	return c.Price + c.Quality + c.Delivery
}

// CategoryBlock 表示一个品类的采购需求块。
// Targets 的键为该品类可识别的规格属性（processor、memory、warranty 等），
// 未识别的键按原样保留，由比较规则决定是否参与打分。
type CategoryBlock struct {
	Category string            `json:"category"`
	Quantity int               `json:"quantity"`
	Targets  map[string]string `json:"targets"`
}

// ComplianceConstraints 表示买家的合规约束。
type ComplianceConstraints struct {
	Destination         string   `json:"destination"`
	Certifications      []string `json:"certifications,omitempty"`
	RestrictedCountries []string `json:"restricted_countries,omitempty"`
}

// Requirement 表示从 RFQ 文档提取出的结构化需求。
// DeliveryThresholdDays 可选，买家用它覆盖引擎默认的交付达标天数。
type Requirement struct {
	Title                 string                 `json:"title"`
	Description           string                 `json:"description,omitempty"`
	Categories            []CategoryBlock        `json:"categories"`
	Criteria              Criteria               `json:"criteria"`
	Compliance            *ComplianceConstraints `json:"compliance,omitempty"`
	DeliveryThresholdDays int                    `json:"delivery_threshold_days,omitempty"`
}

// Block 返回指定品类的需求块，大小写不敏感。
func (r Requirement) Block(category string) (CategoryBlock, bool) {
	for _, b := range r.Categories {
		if strings.EqualFold(b.Category, category) {
			return b, true
		}
	}
	return CategoryBlock{}, false
}

// Destination 返回目的地辖区，未设置时为空字符串。
func (r Requirement) Destination() string {
	if r.Compliance == nil {
		return ""
	}
	return r.Compliance.Destination
}

// RFQ 表示一次买家采购请求。
// Requirement 创建后不可变，买家编辑会产生新的 Version，
// 后续打分一律使用最新版本。
type RFQ struct {
	ID              uint        `gorm:"primaryKey" json:"id"`
	Title           string      `json:"title"`
	Description     string      `json:"description"`
	OriginalContent string      `json:"original_content,omitempty"`
	Requirement     Requirement `gorm:"serializer:json" json:"requirement"`
	Version         string      `json:"version"`
	CreatedAt       time.Time   `json:"created_at"`
	UpdatedAt       time.Time   `json:"updated_at"`
}
