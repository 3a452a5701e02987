// Package specparse 提供对规格文本的小型解析器。
// 交付周期区间（"15-20 days"）、容量（"512 GB SSD"）、年限（"3 years"）
// 这类嵌在自由文本里的数值都在这里解析，解析失败返回错误，
// 由调用方决定中性兜底值，绝不把失败扩散进打分流程。
package specparse

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Range 表示一个整数区间。
type Range struct {
	Min int
	Max int
}

// Average 返回区间平均值。
func (r Range) Average() float64 {
	return float64(r.Min+r.Max) / 2
}

var (
	rangePattern    = regexp.MustCompile(`(\d+)\s*[-–~]\s*(\d+)`)
	numberPattern   = regexp.MustCompile(`(\d+(?:\.\d+)?)`)
	capacityPattern = regexp.MustCompile(`(?i)(\d+(?:\.\d+)?)\s*(tb|gb)`)
	yearsPattern    = regexp.MustCompile(`(?i)(\d+)\s*years?`)
	inchesPattern   = regexp.MustCompile(`(?i)(\d+(?:\.\d+)?)[\s-]*(?:inch(?:es)?|")`)
)

// ParseRange 解析形如 "15-20 days" 的区间文本。
// 只有一个数字时按单点区间处理（Min == Max）。
func ParseRange(s string) (Range, error) {
	if m := rangePattern.FindStringSubmatch(s); m != nil {
		lo, err := strconv.Atoi(m[1])
		if err != nil {
			return Range{}, fmt.Errorf("parse range min %q: %w", m[1], err)
		}
		hi, err := strconv.Atoi(m[2])
		if err != nil {
			return Range{}, fmt.Errorf("parse range max %q: %w", m[2], err)
		}
		if hi < lo {
			lo, hi = hi, lo
		}
		return Range{Min: lo, Max: hi}, nil
	}
	if m := numberPattern.FindStringSubmatch(s); m != nil {
		v, err := strconv.Atoi(strings.SplitN(m[1], ".", 2)[0])
		if err != nil {
			return Range{}, fmt.Errorf("parse range value %q: %w", m[1], err)
		}
		return Range{Min: v, Max: v}, nil
	}
	return Range{}, fmt.Errorf("no range found in %q", s)
}

// ParseCapacityGB 解析容量文本并归一化为 GB（"1 TB" -> 1024）。
func ParseCapacityGB(s string) (float64, error) {
	m := capacityPattern.FindStringSubmatch(s)
	if m == nil {
		return 0, fmt.Errorf("no capacity found in %q", s)
	}
	v, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0, fmt.Errorf("parse capacity %q: %w", m[1], err)
	}
	if strings.EqualFold(m[2], "tb") {
		v *= 1024
	}
	return v, nil
}

// ParseYears 解析年限文本（"3 years warranty" -> 3）。
func ParseYears(s string) (int, error) {
	m := yearsPattern.FindStringSubmatch(s)
	if m == nil {
		return 0, fmt.Errorf("no years found in %q", s)
	}
	v, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, fmt.Errorf("parse years %q: %w", m[1], err)
	}
	return v, nil
}

// ParseInches 解析屏幕尺寸文本（"24 inch" / `27"` -> 英寸数）。
func ParseInches(s string) (float64, error) {
	m := inchesPattern.FindStringSubmatch(s)
	if m == nil {
		return 0, fmt.Errorf("no inches found in %q", s)
	}
	v, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0, fmt.Errorf("parse inches %q: %w", m[1], err)
	}
	return v, nil
}

// ParseNumber 提取文本中第一个数值（"800 GB/s" -> 800）。
func ParseNumber(s string) (float64, error) {
	m := numberPattern.FindStringSubmatch(s)
	if m == nil {
		return 0, fmt.Errorf("no number found in %q", s)
	}
	v, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0, fmt.Errorf("parse number %q: %w", m[1], err)
	}
	return v, nil
}
