// Package compliance 提供产品出口合规裁决。
package compliance

import (
	"fmt"

	"github.com/shopspring/decimal"

	"rfq-match/internal/model"
)

// 基准表中的主性能指标键，按优先级取第一个存在的。
const (
	benchmarkBandwidth = "memory_bandwidth_gbs"
	benchmarkFP32      = "fp32_tflops"
)

// Config 定义合规阈值。
type Config struct {
	// HighPerfBandwidthGBs 内存带宽阈值（GB/s），超过视为高性能硬件。
	HighPerfBandwidthGBs float64 `yaml:"high_perf_bandwidth_gbs" json:"high_perf_bandwidth_gbs"`
	// HighPerfTFLOPS FP32 算力阈值（TFLOPS）。
	HighPerfTFLOPS float64 `yaml:"high_perf_tflops" json:"high_perf_tflops"`
	// HighValuePrice 高货值单价阈值。
	HighValuePrice float64 `yaml:"high_value_price" json:"high_value_price"`
}

// Advisor 根据静态限制规则对 (产品, 目的地) 做合规裁决。
// 纯函数式组件：没有可变状态，相同输入必然得到相同裁决。
type Advisor struct {
	cfg       Config
	highValue decimal.Decimal
}

// NewAdvisor 创建 Advisor，未设阈值时使用默认值。
func NewAdvisor(cfg Config) *Advisor {
	if cfg.HighPerfBandwidthGBs <= 0 {
		cfg.HighPerfBandwidthGBs = 800
	}
	if cfg.HighPerfTFLOPS <= 0 {
		cfg.HighPerfTFLOPS = 50
	}
	if cfg.HighValuePrice <= 0 {
		cfg.HighValuePrice = 10000
	}
	return &Advisor{cfg: cfg, highValue: decimal.NewFromFloat(cfg.HighValuePrice)}
}

// Check 返回产品发往目的地辖区的合规裁决。
// 规则自上而下，命中即停：
//  1. 目的地在产品出口限制名单中 -> 禁止，critical；
//  2. 主性能指标超过高性能阈值 -> 允许，medium，需终端用户核查；
//  3. 单价超过高货值阈值 -> 允许，medium，需财务合规核查；
//  4. 其余 -> 允许，low，无需动作。
func (a *Advisor) Check(product model.Product, destination string) model.Verdict {
	if product.RestrictedTo(destination) {
		return model.Verdict{
			Allowed: false,
			Risk:    model.RiskCritical,
			Notes:   fmt.Sprintf("export of %s to %s is restricted by the manufacturer", product.Name, destination),
			RequiredActions: []string{
				"seek legal export-control assessment",
				"consider alternative products",
			},
		}
	}

	if name, value, ok := a.headlineMetric(product); ok {
		return model.Verdict{
			Allowed: true,
			Risk:    model.RiskMedium,
			Notes:   fmt.Sprintf("%s %.1f exceeds the high-performance threshold", name, value),
			RequiredActions: []string{
				"complete end-user verification",
				"state intended use case",
			},
		}
	}

	if product.Price.Cmp(a.highValue) > 0 {
		return model.Verdict{
			Allowed: true,
			Risk:    model.RiskMedium,
			Notes:   fmt.Sprintf("unit price %s exceeds the high-value threshold %s", product.Price, a.highValue),
			RequiredActions: []string{
				"complete financial compliance verification",
			},
		}
	}

	return model.Verdict{Allowed: true, Risk: model.RiskLow, RequiredActions: []string{}}
}

// headlineMetric 返回触发高性能规则的指标，按带宽、算力的顺序检查。
func (a *Advisor) headlineMetric(product model.Product) (string, float64, bool) {
	if v, ok := product.Benchmark(benchmarkBandwidth); ok && v > a.cfg.HighPerfBandwidthGBs {
		return benchmarkBandwidth, v, true
	}
	if v, ok := product.Benchmark(benchmarkFP32); ok && v > a.cfg.HighPerfTFLOPS {
		return benchmarkFP32, v, true
	}
	return "", 0, false
}
