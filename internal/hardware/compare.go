// Package hardware 提供 AI 硬件的基准对比与框架兼容性查询。
package hardware

import (
	"fmt"
	"sort"
	"strings"

	"rfq-match/internal/model"
)

// metricSpec 描述一个可比指标在基准表中的键与单位。
type metricSpec struct {
	key  string
	unit string
}

var metrics = map[string]metricSpec{
	"fp32":             {key: "fp32_tflops", unit: "TFLOPS"},
	"fp16":             {key: "fp16_tflops", unit: "TFLOPS"},
	"int8":             {key: "int8_tops", unit: "TOPS"},
	"memory_bandwidth": {key: "memory_bandwidth_gbs", unit: "GB/s"},
	"memory_capacity":  {key: "memory_capacity_gb", unit: "GB"},
	"tdp":              {key: "tdp_watts", unit: "W"},
}

// Metrics 返回支持的指标名，已排序。
func Metrics() []string {
	names := make([]string, 0, len(metrics))
	for name := range metrics {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Entry 表示对比结果中的一行。
// RelativePerformance 为 100 * value / 所选产品中的最大值。
type Entry struct {
	ID                  uint    `json:"id"`
	Name                string  `json:"name"`
	Manufacturer        string  `json:"manufacturer"`
	Metric              string  `json:"metric"`
	Value               float64 `json:"value"`
	Unit                string  `json:"unit"`
	RelativePerformance float64 `json:"relativePerformance"`
}

// Compare 按指标对一组产品排序，降序，附带相对性能百分比。
// 缺少该指标的产品按 0 处理，排在末尾。
func Compare(products []model.Product, metric string) ([]Entry, error) {
	spec, ok := metrics[metric]
	if !ok {
		return nil, fmt.Errorf("unknown metric %q, valid: %s", metric, strings.Join(Metrics(), ", "))
	}

	entries := make([]Entry, 0, len(products))
	best := 0.0
	for _, p := range products {
		value, _ := p.Benchmark(spec.key)
		if value > best {
			best = value
		}
		manufacturer, _ := p.Spec("manufacturer")
		entries = append(entries, Entry{
			ID:           p.ID,
			Name:         p.Name,
			Manufacturer: manufacturer,
			Metric:       metric,
			Value:        value,
			Unit:         spec.unit,
		})
	}

	if best > 0 {
		for i := range entries {
			entries[i].RelativePerformance = 100 * entries[i].Value / best
		}
	}

	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].Value != entries[j].Value {
			return entries[i].Value > entries[j].Value
		}
		return entries[i].Name < entries[j].Name
	})
	return entries, nil
}

// Support 表示单个框架的兼容结论。
type Support struct {
	Framework string `json:"framework"`
	Supported bool   `json:"supported"`
	Notes     string `json:"notes,omitempty"`
}

// Frameworks 根据产品声明的支持框架列表逐个判断请求的框架。
// 匹配为大小写不敏感的包含关系（"pytorch" 命中 "PyTorch 2.x"）。
func Frameworks(product model.Product, requested []string) []Support {
	supports := make([]Support, 0, len(requested))
	for _, want := range requested {
		s := Support{Framework: want}
		for _, have := range product.SupportedFrameworks {
			if strings.Contains(strings.ToLower(have), strings.ToLower(want)) {
				s.Supported = true
				s.Notes = "listed as " + have
				break
			}
		}
		if !s.Supported {
			s.Notes = "not in the supported frameworks list"
		}
		supports = append(supports, s)
	}
	return supports
}
