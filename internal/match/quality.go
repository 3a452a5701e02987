package match

import (
	"strings"

	"rfq-match/internal/model"
	"rfq-match/internal/specparse"
)

// qualityResult 为质量打分的中间结果。
type qualityResult struct {
	subScore float64
	checks   []model.AttributeCheck
	warnings []string
}

// scoreQuality 按规则表累加质量原始分，再线性缩放到 [0, weight]。
// 只有需求目标和产品规格同时存在的属性才参与比对；原始分上限为
// 参与属性的满分之和，因此缩放后必然落在 [0, weight] 内。
// 没有任何可比属性时取权重的一半作为中性分，并记录告警。
func scoreQuality(product model.Product, block model.CategoryBlock, weight int, rules []QualityRule) qualityResult {
	res := qualityResult{}
	if weight <= 0 {
		return res
	}

	var raw, max float64
	for _, rule := range rules {
		target, ok := block.Targets[rule.Attribute]
		if !ok || target == "" {
			continue
		}
		actual, ok := attributeValue(product, rule.Attribute)
		if !ok || actual == "" {
			continue
		}

		fit, warn := compareAttribute(rule, target, actual)
		max += rule.Points

		points := 0.0
		if fit == model.FitMeets || fit == model.FitExceeds {
			points = rule.Points
		}
		raw += points

		res.checks = append(res.checks, model.AttributeCheck{
			Attribute: rule.Attribute,
			Target:    target,
			Actual:    actual,
			Fit:       fit,
			Points:    points,
		})
		if warn != "" {
			res.warnings = append(res.warnings, warn)
		}
	}

	if max <= 0 {
		res.subScore = float64(weight) / 2
		res.warnings = append(res.warnings, "no comparable quality attributes, neutral quality score applied")
		return res
	}
	res.subScore = float64(weight) * clamp(raw/max, 0, 1)
	return res
}

// attributeValue 取产品上与规则属性对应的文本值。
// warranty 不在规格表里，而是产品的独立字段。
func attributeValue(p model.Product, attribute string) (string, bool) {
	if attribute == "warranty" {
		return p.Warranty, p.Warranty != ""
	}
	return p.Spec(attribute)
}

// compareAttribute 按规则声明的方式比对目标与实际值。
// 解析失败不报错，按 FitUnknown 处理并返回告警文本。
func compareAttribute(rule QualityRule, target, actual string) (model.SpecFit, string) {
	switch rule.Kind {
	case CompareCapacity:
		return compareNumeric(target, actual, specparse.ParseCapacityGB)
	case CompareYears:
		return compareNumeric(target, actual, func(s string) (float64, error) {
			y, err := specparse.ParseYears(s)
			return float64(y), err
		})
	case CompareInches:
		return compareNumeric(target, actual, specparse.ParseInches)
	case CompareNumber:
		return compareNumeric(target, actual, specparse.ParseNumber)
	case CompareContains:
		if containsFold(actual, target) {
			return model.FitMeets, ""
		}
		return model.FitBelow, ""
	case CompareFeatures:
		return compareFeatures(rule.Features, target, actual), ""
	}
	return model.FitUnknown, "unknown comparison kind " + string(rule.Kind)
}

func compareNumeric(target, actual string, parse func(string) (float64, error)) (model.SpecFit, string) {
	want, err := parse(target)
	if err != nil {
		return model.FitUnknown, "unparsable requirement target: " + err.Error()
	}
	have, err := parse(actual)
	if err != nil {
		return model.FitUnknown, "unparsable product attribute: " + err.Error()
	}
	switch {
	case have > want:
		return model.FitExceeds, ""
	case have == want:
		return model.FitMeets, ""
	}
	return model.FitBelow, ""
}

// compareFeatures 判断需求提到的特性词是否全部出现在产品描述里。
func compareFeatures(known []string, target, actual string) model.SpecFit {
	wanted := presentFeatures(known, target)
	if len(wanted) == 0 {
		return model.FitMeets
	}
	have := presentFeatures(known, actual)
	missing := false
	extra := len(have) > len(wanted)
	for _, w := range wanted {
		if !containsString(have, w) {
			missing = true
			break
		}
	}
	switch {
	case missing:
		return model.FitBelow
	case extra:
		return model.FitExceeds
	}
	return model.FitMeets
}

func presentFeatures(known []string, text string) []string {
	lowered := strings.ToLower(text)
	var present []string
	for _, f := range known {
		if strings.Contains(lowered, f) {
			present = append(present, f)
		}
	}
	return present
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}
