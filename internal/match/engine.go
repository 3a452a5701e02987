package match

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"rfq-match/internal/compliance"
	"rfq-match/internal/model"
	"rfq-match/internal/requirement"
)

// Engine 组合资格过滤与三项打分器。
// 打分分两遍：第一遍对全部合格候选按品类算出价格基准上限，
// 第二遍逐候选独立打分。除共享的基准上限外，任何候选的结果
// 都不依赖其他候选，第二遍可以安全并行。
type Engine struct {
	cfg     Config
	advisor *compliance.Advisor
}

// NewEngine 创建引擎，填充默认配置。
func NewEngine(cfg Config, advisor *compliance.Advisor) *Engine {
	if advisor == nil {
		advisor = compliance.NewAdvisor(compliance.Config{})
	}
	return &Engine{cfg: cfg.withDefaults(), advisor: advisor}
}

// Config 返回引擎生效的配置（含默认值）。
func (e *Engine) Config() Config {
	return e.cfg
}

// Match 对候选集执行过滤加打分，返回未排序的打分结果。
// 合格候选为空时返回空切片，而不是错误。
func (e *Engine) Match(ctx context.Context, req model.Requirement, candidates []model.Candidate) ([]model.MatchResult, error) {
	return e.Score(ctx, req, Eligible(req, candidates))
}

// Score 对已通过资格过滤的候选逐个打分。
// 三个子分各自落在 [0, 对应权重]，总分为子分之和，因此必然在 [0,100]。
// 需求未给权重时使用配置默认权重；给了权重但总和不为 100 时
// 直接拒绝，绝不静默归一化。
func (e *Engine) Score(ctx context.Context, req model.Requirement, eligible []model.Candidate) ([]model.MatchResult, error) {
	if len(eligible) == 0 {
		return []model.MatchResult{}, nil
	}

	criteria := req.Criteria
	switch {
	case criteria == (model.Criteria{}):
		criteria = e.cfg.DefaultCriteria
	case criteria.Total() != 100:
		return nil, &requirement.ValidationError{Fields: []requirement.FieldError{{
			Field:   "criteria",
			Message: fmt.Sprintf("weights must sum to 100, got %d", criteria.Total()),
		}}}
	}
	threshold := e.cfg.DeliveryThresholdDays
	if req.DeliveryThresholdDays > 0 {
		threshold = req.DeliveryThresholdDays
	}

	// 第一遍：每个品类一个共享的价格基准上限。
	ceilings := computeCeilings(eligible, e.cfg.FallbackPriceCeiling)

	// 第二遍：按候选独立打分。
	results := make([]model.MatchResult, len(eligible))
	g, ctx := errgroup.WithContext(ctx)
	if e.cfg.Parallelism > 0 {
		g.SetLimit(e.cfg.Parallelism)
	} else {
		g.SetLimit(1)
	}
	for i, cand := range eligible {
		i, cand := i, cand
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}
			res, err := e.scoreOne(req, criteria, cand, ceilings, threshold)
			if err != nil {
				return fmt.Errorf("score %s/%s: %w", cand.Supplier.Name, cand.Product.Name, err)
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func (e *Engine) scoreOne(req model.Requirement, criteria model.Criteria, cand model.Candidate, ceilings priceCeilings, threshold int) (model.MatchResult, error) {
	block, ok := req.Block(cand.Product.Category)
	if !ok {
		return model.MatchResult{}, fmt.Errorf("no requirement block for category %s", cand.Product.Category)
	}

	priceScore := scorePrice(cand.Product, criteria.Price, ceilings.ceilingFor(cand.Product.Category))
	quality := scoreQuality(cand.Product, block, criteria.Quality, e.cfg.Rules.RulesFor(cand.Product.Category))
	delivery := scoreDelivery(cand.Supplier, criteria.Delivery, threshold, e.cfg.DeliveryDecayPerDay)

	breakdown := model.Breakdown{
		Price:    priceScore,
		Quality:  quality.subScore,
		Delivery: delivery.subScore,
	}

	quantity := block.Quantity
	if quantity <= 0 {
		quantity = 1
	}

	res := model.MatchResult{
		Supplier:          cand.Supplier,
		Product:           cand.Product,
		Category:          block.Category,
		TotalScore:        breakdown.Sum(),
		Breakdown:         breakdown,
		Checks:            quality.checks,
		TotalPrice:        cand.Product.Price.Mul(decimal.NewFromInt(int64(quantity))),
		DeliveryDays:      delivery.days,
		Verdict:           e.advisor.Check(cand.Product, req.Destination()),
		OnOrder:           cand.Product.Stock <= 0 && cand.Product.Availability == model.AvailabilityOnOrder,
		DeliveryEstimated: delivery.estimated,
		Warnings:          quality.warnings,
	}
	if delivery.estimated {
		res.Warnings = append(res.Warnings, "unparsable delivery time, scored at threshold")
	}
	return res, nil
}
