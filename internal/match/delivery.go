package match

import (
	"rfq-match/internal/specparse"

	"rfq-match/internal/model"
)

// deliveryResult 为交付打分的中间结果。
type deliveryResult struct {
	subScore float64
	days     float64
	// estimated 表示交付文本无法解析，按恰好达标处理。
	estimated bool
}

// scoreDelivery 解析供应商交付区间并取平均天数：
// 平均值不超过阈值得满分，超过后按每天固定比例线性衰减，下限 0。
// 解析失败不抛错，按恰好处于阈值的中性值兜底并打标记。
func scoreDelivery(supplier model.Supplier, weight int, thresholdDays int, decayPerDay float64) deliveryResult {
	res := deliveryResult{days: float64(thresholdDays)}

	r, err := specparse.ParseRange(supplier.DeliveryTime)
	if err != nil {
		res.estimated = true
	} else {
		res.days = r.Average()
	}

	if weight <= 0 {
		return res
	}
	if res.days <= float64(thresholdDays) {
		res.subScore = float64(weight)
		return res
	}
	over := res.days - float64(thresholdDays)
	res.subScore = float64(weight) * clamp(1-decayPerDay*over, 0, 1)
	return res
}
