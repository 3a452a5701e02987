package match

import (
	"strings"

	"rfq-match/internal/model"
)

// Eligible 执行打分前的资格过滤，返回保留的候选。
// 候选保留的条件：
//   - 产品品类出现在需求的品类块中；
//   - 产品未对需求的目的地辖区设出口限制；
//   - 供应商所在国不在买家的受限国家名单中；
//   - 产品具备买家要求的全部认证；
//   - 有正库存，或可用性显式标记为 on_order。
//
// 需求没有品类块时返回空列表，这是"无可匹配候选"而非系统错误。
// 无副作用，不修改输入。
func Eligible(req model.Requirement, candidates []model.Candidate) []model.Candidate {
	if len(req.Categories) == 0 {
		return nil
	}

	destination := req.Destination()
	kept := make([]model.Candidate, 0, len(candidates))
	for _, c := range candidates {
		if _, ok := req.Block(c.Product.Category); !ok {
			continue
		}
		if c.Product.RestrictedTo(destination) {
			continue
		}
		if supplierRestricted(req, c.Supplier) {
			continue
		}
		if !hasCertifications(req, c.Product) {
			continue
		}
		if !available(c.Product) {
			continue
		}
		kept = append(kept, c)
	}
	return kept
}

// available 判断产品可供应：有库存，或显式标记为按单订购。
func available(p model.Product) bool {
	if p.Stock > 0 {
		return true
	}
	return p.Availability == model.AvailabilityOnOrder
}

func supplierRestricted(req model.Requirement, s model.Supplier) bool {
	if req.Compliance == nil {
		return false
	}
	for _, c := range req.Compliance.RestrictedCountries {
		if strings.EqualFold(c, s.Country) {
			return true
		}
	}
	return false
}

func hasCertifications(req model.Requirement, p model.Product) bool {
	if req.Compliance == nil {
		return true
	}
	for _, required := range req.Compliance.Certifications {
		found := false
		for _, have := range p.Certifications {
			if strings.EqualFold(required, have) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}
