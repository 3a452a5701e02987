package model

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

// RiskLevel 表示合规风险等级，有序：low < medium < high < critical。
type RiskLevel int

const (
	RiskLow RiskLevel = iota
	RiskMedium
	RiskHigh
	RiskCritical
)

func (r RiskLevel) String() string {
	switch r {
	case RiskLow:
		return "low"
	case RiskMedium:
		return "medium"
	case RiskHigh:
		return "high"
	case RiskCritical:
		return "critical"
	}
	return fmt.Sprintf("risk(%d)", int(r))
}

func (r RiskLevel) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.String())
}

func (r *RiskLevel) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	switch s {
	case "low":
		*r = RiskLow
	case "medium":
		*r = RiskMedium
	case "high":
		*r = RiskHigh
	case "critical":
		*r = RiskCritical
	default:
		return fmt.Errorf("unknown risk level %q", s)
	}
	return nil
}

// Verdict 表示对 (产品, 目的地) 的合规裁决。
// 同样的输入总是产生同样的裁决，不依赖任何可变状态。
type Verdict struct {
	Allowed         bool      `json:"allowed"`
	Risk            RiskLevel `json:"riskLevel"`
	Notes           string    `json:"notes,omitempty"`
	RequiredActions []string  `json:"requiredActions"`
}

// SpecFit 表示产品属性相对需求目标的达标程度。
type SpecFit string

const (
	FitExceeds SpecFit = "exceeds"
	FitMeets   SpecFit = "meets"
	FitBelow   SpecFit = "below"
	FitUnknown SpecFit = "unknown"
)

// AttributeCheck 记录质量打分中单个属性的比对结果，供前端展示。
type AttributeCheck struct {
	Attribute string  `json:"attribute"`
	Target    string  `json:"target"`
	Actual    string  `json:"actual"`
	Fit       SpecFit `json:"fit"`
	Points    float64 `json:"points"`
}

// Breakdown 表示按标准拆分的子分数，各项不超过该项权重。
type Breakdown struct {
	Price    float64 `json:"price"`
	Quality  float64 `json:"quality"`
	Delivery float64 `json:"delivery"`
}

// Sum 返回子分数之和，即总分。
func (b Breakdown) Sum() float64 {
	return b.Price + b.Quality + b.Delivery
}

// MatchResult 表示一个候选的打分结果。
// 结果按需重算，从不作为权威数据持久化；任何缓存副本都要在
// 需求版本或目录版本变化时失效。
type MatchResult struct {
	Supplier          Supplier         `json:"supplier"`
	Product           Product          `json:"product"`
	Category          string           `json:"category"`
	TotalScore        float64          `json:"totalScore"`
	Breakdown         Breakdown        `json:"breakdown"`
	Checks            []AttributeCheck `json:"checks,omitempty"`
	TotalPrice        decimal.Decimal  `json:"totalPrice"`
	DeliveryDays      float64          `json:"deliveryDays"`
	Verdict           Verdict          `json:"verdict"`
	OnOrder           bool             `json:"onOrder,omitempty"`
	DeliveryEstimated bool             `json:"deliveryEstimated,omitempty"`
	Warnings          []string         `json:"warnings,omitempty"`
}
