package api

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"rfq-match/internal/compliance"
	"rfq-match/internal/extractor"
	"rfq-match/internal/hardware"
	"rfq-match/internal/match"
	"rfq-match/internal/model"
	"rfq-match/internal/proposal"
	"rfq-match/internal/requirement"
	"rfq-match/internal/storage"
)

// Store 抽象存储接口。
type Store interface {
	GetRFQ(ctx context.Context, id uint) (*model.RFQ, error)
	ListRFQs(ctx context.Context, limit int) ([]model.RFQ, error)
	ListSuppliers(ctx context.Context) ([]model.Supplier, error)
	ListProducts(ctx context.Context, q storage.ProductQuery) ([]model.Product, error)
	GetProduct(ctx context.Context, id uint) (*model.Product, error)
	GetProducts(ctx context.Context, ids []uint) ([]model.Product, error)
	ListProposals(ctx context.Context, rfqID uint) ([]model.Proposal, error)
	CatalogSnapshot(ctx context.Context, categories []string) ([]model.Candidate, error)
	CatalogVersion() int64
}

// RFQService 处理需求创建与替换。
type RFQService interface {
	Create(ctx context.Context, originalContent string, req model.Requirement) (model.RFQ, error)
	UpdateRequirement(ctx context.Context, id uint, req model.Requirement) (model.RFQ, error)
}

// Matcher 执行需求与目录的匹配。
type Matcher interface {
	Match(ctx context.Context, req model.Requirement, candidates []model.Candidate) ([]model.MatchResult, error)
	Config() match.Config
}

// ProposalService 处理报价落库与邮件生成。
type ProposalService interface {
	RecordMatches(ctx context.Context, rfqID uint, matches []model.MatchResult) ([]model.Proposal, error)
	GenerateEmail(ctx context.Context, proposalID uint) (proposal.Email, error)
}

// Scheduler 抽象目录刷新接口。
type Scheduler interface {
	RunOnce(ctx context.Context) (storage.UpsertResult, error)
}

// Deps 汇总 Handler 依赖。extractor、proposals、scheduler 可为 nil，
// 对应端点返回不可用。
type Deps struct {
	Store     Store
	RFQs      RFQService
	Extractor extractor.Extractor
	Engine    Matcher
	Advisor   *compliance.Advisor
	Proposals ProposalService
	Scheduler Scheduler
	Cache     *match.Cache
}

// CreateRFQRequest 表示 RFQ 创建请求。
// requirement 为空时走大模型提取 content。
type CreateRFQRequest struct {
	Content     string             `json:"content"`
	Requirement *model.Requirement `json:"requirement"`
}

// MatchResponse 表示匹配结果响应。
type MatchResponse struct {
	RFQID uint `json:"rfqId"`
	match.Page
}

type handler struct {
	deps Deps
}

// NewHandler 构造 HTTP 多路复用器。
func NewHandler(deps Deps) http.Handler {
	h := &handler{deps: deps}
	if h.deps.Cache == nil {
		h.deps.Cache = match.NewCache()
	}

	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	mux.HandleFunc("POST /api/rfqs", h.createRFQ)
	mux.HandleFunc("GET /api/rfqs", h.listRFQs)
	mux.HandleFunc("GET /api/rfqs/{id}", h.getRFQ)
	mux.HandleFunc("PUT /api/rfqs/{id}/requirement", h.updateRequirement)
	mux.HandleFunc("POST /api/rfqs/{id}/match-suppliers", h.matchSuppliers)
	mux.HandleFunc("GET /api/rfqs/{id}/proposals", h.listProposals)
	mux.HandleFunc("POST /api/proposals/{id}/email", h.generateEmail)
	mux.HandleFunc("GET /api/compliance", h.checkCompliance)
	mux.HandleFunc("GET /api/hardware-comparison", h.compareHardware)
	mux.HandleFunc("GET /api/frameworks-compatibility", h.checkFrameworks)
	mux.HandleFunc("GET /api/suppliers", h.listSuppliers)
	mux.HandleFunc("GET /api/products", h.listProducts)
	mux.HandleFunc("POST /api/refresh", h.refreshCatalog)

	return mux
}

func (h *handler) createRFQ(w http.ResponseWriter, r *http.Request) {
	var req CreateRFQRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid payload"})
		return
	}

	var spec model.Requirement
	if req.Requirement != nil {
		spec = *req.Requirement
	} else {
		if h.deps.Extractor == nil {
			writeJSON(w, http.StatusBadGateway, map[string]string{"error": extractor.ErrUnavailable.Error()})
			return
		}
		extracted, err := h.deps.Extractor.Extract(r.Context(), req.Content)
		if err != nil {
			status := http.StatusBadRequest
			if errors.Is(err, extractor.ErrUnavailable) {
				status = http.StatusBadGateway
			}
			writeJSON(w, status, map[string]string{"error": err.Error()})
			return
		}
		spec = extracted
	}

	rfq, err := h.deps.RFQs.Create(r.Context(), req.Content, spec)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, rfq)
}

func (h *handler) listRFQs(w http.ResponseWriter, r *http.Request) {
	limit := 50
	if l := r.URL.Query().Get("limit"); l != "" {
		if v, err := strconv.Atoi(l); err == nil && v > 0 {
			limit = v
		}
	}
	rfqs, err := h.deps.Store.ListRFQs(r.Context(), limit)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rfqs)
}

func (h *handler) getRFQ(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	rfq, err := h.deps.Store.GetRFQ(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rfq)
}

func (h *handler) updateRequirement(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var spec model.Requirement
	if err := json.NewDecoder(r.Body).Decode(&spec); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid payload"})
		return
	}
	rfq, err := h.deps.RFQs.UpdateRequirement(r.Context(), id, spec)
	if err != nil {
		writeError(w, err)
		return
	}
	h.deps.Cache.Invalidate(id)
	writeJSON(w, http.StatusOK, rfq)
}

func (h *handler) matchSuppliers(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	rfq, err := h.deps.Store.GetRFQ(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	key := match.CacheKey{
		RequirementVersion: rfq.Version,
		CatalogVersion:     h.deps.Store.CatalogVersion(),
	}
	matches, cached := h.deps.Cache.Get(rfq.ID, key)
	if !cached {
		categories := make([]string, 0, len(rfq.Requirement.Categories))
		for _, block := range rfq.Requirement.Categories {
			categories = append(categories, block.Category)
		}
		candidates, err := h.deps.Store.CatalogSnapshot(r.Context(), categories)
		if err != nil {
			writeError(w, err)
			return
		}
		matches, err = h.deps.Engine.Match(r.Context(), rfq.Requirement, candidates)
		if err != nil {
			writeError(w, err)
			return
		}
		h.deps.Cache.Put(rfq.ID, key, matches)
		if h.deps.Proposals != nil {
			if _, err := h.deps.Proposals.RecordMatches(r.Context(), rfq.ID, matches); err != nil {
				writeError(w, err)
				return
			}
		}
	}

	opts := rankOptions(r)
	if opts.PageSize <= 0 {
		opts.PageSize = h.deps.Engine.Config().PageSize
	}
	page := match.Rank(matches, opts)
	writeJSON(w, http.StatusOK, MatchResponse{RFQID: rfq.ID, Page: page})
}

func (h *handler) listProposals(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if _, err := h.deps.Store.GetRFQ(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	proposals, err := h.deps.Store.ListProposals(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, proposals)
}

func (h *handler) generateEmail(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if h.deps.Proposals == nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": "proposal service disabled"})
		return
	}
	email, err := h.deps.Proposals.GenerateEmail(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, email)
}

func (h *handler) checkCompliance(w http.ResponseWriter, r *http.Request) {
	country := strings.TrimSpace(r.URL.Query().Get("country"))
	productID := r.URL.Query().Get("productId")
	if country == "" || productID == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "country and productId are required"})
		return
	}
	pid, err := strconv.ParseUint(productID, 10, 32)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid productId"})
		return
	}
	product, err := h.deps.Store.GetProduct(r.Context(), uint(pid))
	if err != nil {
		writeError(w, err)
		return
	}
	verdict := h.deps.Advisor.Check(*product, country)
	writeJSON(w, http.StatusOK, verdict)
}

func (h *handler) compareHardware(w http.ResponseWriter, r *http.Request) {
	idsParam := r.URL.Query().Get("productIds")
	if idsParam == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "productIds is required"})
		return
	}
	ids := make([]uint, 0)
	for _, part := range strings.Split(idsParam, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		v, err := strconv.ParseUint(part, 10, 32)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid productIds"})
			return
		}
		ids = append(ids, uint(v))
	}

	products, err := h.deps.Store.GetProducts(r.Context(), ids)
	if err != nil {
		writeError(w, err)
		return
	}

	metric := r.URL.Query().Get("metric")
	if metric == "" {
		metric = "memory_bandwidth"
	}
	entries, err := hardware.Compare(products, metric)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, entries)
}

func (h *handler) checkFrameworks(w http.ResponseWriter, r *http.Request) {
	productID := r.URL.Query().Get("productId")
	if productID == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "productId is required"})
		return
	}
	pid, err := strconv.ParseUint(productID, 10, 32)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid productId"})
		return
	}
	product, err := h.deps.Store.GetProduct(r.Context(), uint(pid))
	if err != nil {
		writeError(w, err)
		return
	}

	var frameworks []string
	for _, f := range strings.Split(r.URL.Query().Get("frameworks"), ",") {
		if f = strings.TrimSpace(f); f != "" {
			frameworks = append(frameworks, f)
		}
	}
	if len(frameworks) == 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "frameworks is required"})
		return
	}
	writeJSON(w, http.StatusOK, hardware.Frameworks(*product, frameworks))
}

func (h *handler) listSuppliers(w http.ResponseWriter, r *http.Request) {
	suppliers, err := h.deps.Store.ListSuppliers(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, suppliers)
}

func (h *handler) listProducts(w http.ResponseWriter, r *http.Request) {
	q := storage.ProductQuery{Category: r.URL.Query().Get("category")}
	if s := r.URL.Query().Get("supplierId"); s != "" {
		v, err := strconv.ParseUint(s, 10, 32)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid supplierId"})
			return
		}
		q.SupplierID = uint(v)
	}
	products, err := h.deps.Store.ListProducts(r.Context(), q)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, products)
}

func (h *handler) refreshCatalog(w http.ResponseWriter, r *http.Request) {
	if h.deps.Scheduler == nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": "catalog refresh disabled"})
		return
	}
	res, err := h.deps.Scheduler.RunOnce(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"created": res.Created, "updated": res.Updated})
}

// rankOptions 从查询参数解析排序、分页与规格过滤。
// 以 filter. 为前缀的参数按属性名做精确匹配过滤。
func rankOptions(r *http.Request) match.RankOptions {
	query := r.URL.Query()
	opts := match.RankOptions{
		Sort: match.SortKey(query.Get("sort")),
	}
	if p := query.Get("page"); p != "" {
		if v, err := strconv.Atoi(p); err == nil && v > 0 {
			opts.Page = v
		}
	}
	if ps := query.Get("pageSize"); ps != "" {
		if v, err := strconv.Atoi(ps); err == nil && v > 0 {
			opts.PageSize = v
		}
	}
	for key, values := range query {
		if !strings.HasPrefix(key, "filter.") || len(values) == 0 {
			continue
		}
		attr := strings.TrimPrefix(key, "filter.")
		if attr == "" || values[0] == "" {
			continue
		}
		if opts.Filters == nil {
			opts.Filters = make(map[string]string)
		}
		opts.Filters[attr] = values[0]
	}
	return opts
}

func pathID(w http.ResponseWriter, r *http.Request) (uint, bool) {
	v, err := strconv.ParseUint(r.PathValue("id"), 10, 32)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid id"})
		return 0, false
	}
	return uint(v), true
}

func writeError(w http.ResponseWriter, err error) {
	var verr *requirement.ValidationError
	switch {
	case errors.As(err, &verr):
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": "invalid requirement", "fields": verr.Fields})
	case errors.Is(err, sql.ErrNoRows):
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not found"})
	default:
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
