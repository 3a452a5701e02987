package match

import (
	"sort"
	"strings"

	"rfq-match/internal/model"
)

// SortKey 表示排序方式。
type SortKey string

const (
	SortScore        SortKey = "score"
	SortPriceAsc     SortKey = "price_asc"
	SortPriceDesc    SortKey = "price_desc"
	SortDeliveryAsc  SortKey = "delivery_asc"
)

// RankOptions 控制排序、过滤与分页。
type RankOptions struct {
	Sort SortKey
	// Filters 按规格属性做精确匹配过滤，键为属性名。
	Filters map[string]string
	// Page 从 1 开始。
	Page     int
	PageSize int
}

// Page 表示一页排好序的匹配结果。
// FilterOptions 从过滤前的候选集动态推导，供前端展示可选项。
type Page struct {
	Matches       []model.MatchResult `json:"matches"`
	Page          int                 `json:"page"`
	PageSize      int                 `json:"pageSize"`
	Total         int                 `json:"total"`
	TotalPages    int                 `json:"totalPages"`
	FilterOptions map[string][]string `json:"filterOptions,omitempty"`
}

// Rank 排序、过滤并分页匹配结果。
// 默认按总分降序；总分相同时先比总价（低者靠前），再比供应商名
// 字典序，保证同样输入得到同样的全序。输入切片不被修改。
func Rank(matches []model.MatchResult, opts RankOptions) Page {
	if opts.Page <= 0 {
		opts.Page = 1
	}
	if opts.PageSize <= 0 {
		opts.PageSize = 10
	}
	if opts.Sort == "" {
		opts.Sort = SortScore
	}

	options := FilterOptions(matches)

	filtered := make([]model.MatchResult, 0, len(matches))
	for _, m := range matches {
		if matchesFilters(m, opts.Filters) {
			filtered = append(filtered, m)
		}
	}

	sort.SliceStable(filtered, comparator(filtered, opts.Sort))

	total := len(filtered)
	totalPages := (total + opts.PageSize - 1) / opts.PageSize
	start := (opts.Page - 1) * opts.PageSize
	if start > total {
		start = total
	}
	end := start + opts.PageSize
	if end > total {
		end = total
	}

	return Page{
		Matches:       filtered[start:end],
		Page:          opts.Page,
		PageSize:      opts.PageSize,
		Total:         total,
		TotalPages:    totalPages,
		FilterOptions: options,
	}
}

// FilterOptions 汇总候选集中出现过的规格属性取值，去重并排序。
func FilterOptions(matches []model.MatchResult) map[string][]string {
	seen := make(map[string]map[string]struct{})
	for _, m := range matches {
		for key, v := range m.Product.Specs {
			s, ok := v.(string)
			if !ok || s == "" {
				continue
			}
			if seen[key] == nil {
				seen[key] = make(map[string]struct{})
			}
			seen[key][s] = struct{}{}
		}
	}
	if len(seen) == 0 {
		return nil
	}
	options := make(map[string][]string, len(seen))
	for key, values := range seen {
		list := make([]string, 0, len(values))
		for v := range values {
			list = append(list, v)
		}
		sort.Strings(list)
		options[key] = list
	}
	return options
}

func matchesFilters(m model.MatchResult, filters map[string]string) bool {
	for key, want := range filters {
		if want == "" {
			continue
		}
		have, ok := m.Product.Spec(key)
		if !ok || !strings.EqualFold(have, want) {
			return false
		}
	}
	return true
}

func comparator(ms []model.MatchResult, key SortKey) func(i, j int) bool {
	switch key {
	case SortPriceAsc:
		return func(i, j int) bool {
			if c := ms[i].TotalPrice.Cmp(ms[j].TotalPrice); c != 0 {
				return c < 0
			}
			return lessDefault(ms[i], ms[j])
		}
	case SortPriceDesc:
		return func(i, j int) bool {
			if c := ms[i].TotalPrice.Cmp(ms[j].TotalPrice); c != 0 {
				return c > 0
			}
			return lessDefault(ms[i], ms[j])
		}
	case SortDeliveryAsc:
		return func(i, j int) bool {
			if ms[i].DeliveryDays != ms[j].DeliveryDays {
				return ms[i].DeliveryDays < ms[j].DeliveryDays
			}
			return lessDefault(ms[i], ms[j])
		}
	}
	return func(i, j int) bool { return lessDefault(ms[i], ms[j]) }
}

// lessDefault 实现默认全序：总分降序、总价升序、供应商名升序。
func lessDefault(a, b model.MatchResult) bool {
	if a.TotalScore != b.TotalScore {
		return a.TotalScore > b.TotalScore
	}
	if c := a.TotalPrice.Cmp(b.TotalPrice); c != 0 {
		return c < 0
	}
	return a.Supplier.Name < b.Supplier.Name
}
