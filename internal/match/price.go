package match

import (
	"strings"

	"rfq-match/internal/model"
)

// priceCeilings 保存每个品类在一次打分运行中的价格基准上限。
// 上限在第一遍对全部合格候选计算一次，之后所有候选共用，
// 保证同一排名集合内的价格分可比。
type priceCeilings map[string]float64

// computeCeilings 取每个品类中合格候选的最高单价作为基准上限。
// 品类只有一个候选时没有可比价格，使用配置的兜底上限
//（且不低于该候选自身价格，避免负分被钳位掩盖差异）。
func computeCeilings(candidates []model.Candidate, fallback float64) priceCeilings {
	counts := make(map[string]int)
	ceilings := make(priceCeilings)
	for _, c := range candidates {
		cat := strings.ToLower(c.Product.Category)
		price, _ := c.Product.Price.Float64()
		counts[cat]++
		if price > ceilings[cat] {
			ceilings[cat] = price
		}
	}
	for cat, n := range counts {
		if n == 1 {
			if ceilings[cat] < fallback {
				ceilings[cat] = fallback
			}
		}
	}
	return ceilings
}

// ceilingFor 返回品类的基准上限。
func (pc priceCeilings) ceilingFor(category string) float64 {
	return pc[strings.ToLower(category)]
}

// scorePrice 计算价格子分：subScore = weight * clamp(1 - price/ceiling, 0, 1)。
// 价格越低得分越高，品类内最贵的候选得 0。
func scorePrice(product model.Product, weight int, ceiling float64) float64 {
	if weight <= 0 || ceiling <= 0 {
		return 0
	}
	price, _ := product.Price.Float64()
	return float64(weight) * clamp(1-price/ceiling, 0, 1)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
