// Package match 实现需求与供应商产品的匹配打分引擎：
// 资格过滤、三项标准打分、聚合、排序分页。
package match

import (
	"strings"

	"rfq-match/internal/model"
)

// CompareKind 表示属性比较方式，按属性键分派，不做运行时类型探测。
type CompareKind string

const (
	// CompareCapacity 容量比较，统一换算成 GB 后取数值达标。
	CompareCapacity CompareKind = "capacity"
	// CompareYears 年限比较（质保）。
	CompareYears CompareKind = "years"
	// CompareInches 尺寸比较（屏幕英寸）。
	CompareInches CompareKind = "inches"
	// CompareNumber 一般数值比较（亮度、带宽、算力）。
	CompareNumber CompareKind = "number"
	// CompareContains 档位文本包含比较（处理器型号、分辨率档位、面板类型）。
	CompareContains CompareKind = "contains"
	// CompareFeatures 特性集合覆盖比较（接口、支架可调性）。
	CompareFeatures CompareKind = "features"
)

// QualityRule 定义质量打分中单个属性的比对规则与分值。
// 具体阈值（"i7"、"16 GB" 这类）来自需求块的目标值，规则只声明
// 属性键、比较方式和满足时奖励的原始分。
type QualityRule struct {
	Attribute string      `yaml:"attribute" json:"attribute"`
	Kind      CompareKind `yaml:"kind" json:"kind"`
	Points    float64     `yaml:"points" json:"points"`
	// Features 列出 CompareFeatures 规则可识别的特性词。
	Features []string `yaml:"features,omitempty" json:"features,omitempty"`
}

// RuleSet 按品类（小写）组织质量规则，空串键为兜底规则。
type RuleSet map[string][]QualityRule

// RulesFor 返回品类对应的规则，没有专属规则时回落到兜底规则。
func (rs RuleSet) RulesFor(category string) []QualityRule {
	if rules, ok := rs[strings.ToLower(category)]; ok {
		return rules
	}
	return rs[""]
}

// Config 集中引擎的全部可调参数，避免默认权重散落在调用点。
type Config struct {
	// DefaultCriteria 在需求未给出权重时使用。
	DefaultCriteria model.Criteria `yaml:"default_criteria" json:"default_criteria"`
	// DeliveryThresholdDays 交付达标天数，需求可覆盖。
	DeliveryThresholdDays int `yaml:"delivery_threshold_days" json:"delivery_threshold_days"`
	// DeliveryDecayPerDay 超过阈值后每天衰减的权重比例。
	DeliveryDecayPerDay float64 `yaml:"delivery_decay_per_day" json:"delivery_decay_per_day"`
	// FallbackPriceCeiling 品类只有一个候选时使用的价格基准上限。
	FallbackPriceCeiling float64 `yaml:"fallback_price_ceiling" json:"fallback_price_ceiling"`
	// PageSize 匹配结果分页大小。
	PageSize int `yaml:"page_size" json:"page_size"`
	// Parallelism 第二遍打分的并发度，0 表示逐个处理。
	Parallelism int `yaml:"parallelism" json:"parallelism"`
	// Rules 质量打分规则表，为空时使用 DefaultRules。
	Rules RuleSet `yaml:"rules,omitempty" json:"rules,omitempty"`
}

// withDefaults 填充未设置的配置项。
func (c Config) withDefaults() Config {
	if c.DefaultCriteria.Total() != 100 {
		c.DefaultCriteria = model.Criteria{Price: 50, Quality: 30, Delivery: 20}
	}
	if c.DeliveryThresholdDays <= 0 {
		c.DeliveryThresholdDays = 30
	}
	if c.DeliveryDecayPerDay <= 0 {
		c.DeliveryDecayPerDay = 0.02
	}
	if c.FallbackPriceCeiling <= 0 {
		c.FallbackPriceCeiling = 10000
	}
	if c.PageSize <= 0 {
		c.PageSize = 10
	}
	if len(c.Rules) == 0 {
		c.Rules = DefaultRules()
	}
	return c
}

// DefaultRules 返回内置质量规则表。
// 规则镜像常见 IT 采购品类，调用方可整体替换或按品类覆盖。
func DefaultRules() RuleSet {
	gpuRules := []QualityRule{
		{Attribute: "memory", Kind: CompareCapacity, Points: 20},
		{Attribute: "memoryBandwidth", Kind: CompareNumber, Points: 15},
		{Attribute: "fp32Performance", Kind: CompareNumber, Points: 15},
		{Attribute: "warranty", Kind: CompareYears, Points: 10},
	}
	return RuleSet{
		"laptops": {
			{Attribute: "processor", Kind: CompareContains, Points: 15},
			{Attribute: "memory", Kind: CompareCapacity, Points: 15},
			{Attribute: "storage", Kind: CompareCapacity, Points: 15},
			{Attribute: "display", Kind: CompareInches, Points: 10},
			{Attribute: "os", Kind: CompareContains, Points: 10},
			{Attribute: "warranty", Kind: CompareYears, Points: 10},
		},
		"monitors": {
			{Attribute: "screenSize", Kind: CompareInches, Points: 20},
			{Attribute: "resolution", Kind: CompareContains, Points: 20},
			{Attribute: "panelTech", Kind: CompareContains, Points: 15},
			{Attribute: "brightness", Kind: CompareNumber, Points: 10},
			{Attribute: "connectivity", Kind: CompareFeatures, Points: 10,
				Features: []string{"hdmi", "displayport", "vga", "usb-c", "thunderbolt"}},
			{Attribute: "adjustability", Kind: CompareFeatures, Points: 10,
				Features: []string{"height", "tilt", "swivel", "pivot"}},
			{Attribute: "warranty", Kind: CompareYears, Points: 10},
		},
		"gpus":        gpuRules,
		"ai hardware": gpuRules,
		"": {
			{Attribute: "processor", Kind: CompareContains, Points: 15},
			{Attribute: "memory", Kind: CompareCapacity, Points: 15},
			{Attribute: "warranty", Kind: CompareYears, Points: 10},
		},
	}
}
