package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"rfq-match/internal/model"
)

// Store 封装 SQLite 数据库访问，负责 RFQ、供应商、产品、报价的增删查。
// 目录版本为进程内计数器，任何产品写入都会使其递增，
// 供匹配缓存判断快照是否过期。
type Store struct {
	db             *gorm.DB
	catalogVersion atomic.Int64
}

// ProductQuery 描述产品查询过滤条件。
type ProductQuery struct {
	Category   string
	SupplierID uint
	Limit      int
}

// UpsertResult 表示目录导入的写入结果。
type UpsertResult struct {
	Created int
	Updated int
}

// NewStore 创建 Store 并自动迁移数据表。
func NewStore(dbPath string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}

	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	if err := db.AutoMigrate(&model.RFQ{}, &model.Supplier{}, &model.Product{}, &model.Proposal{}); err != nil {
		return nil, fmt.Errorf("auto migrate models: %w", err)
	}

	s := &Store{db: db}
	s.catalogVersion.Store(1)
	return s, nil
}

// Close 关闭底层数据库连接。
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return fmt.Errorf("get sql DB: %w", err)
	}
	if err := sqlDB.Close(); err != nil {
		return fmt.Errorf("close db: %w", err)
	}
	return nil
}

// CatalogVersion 返回当前目录版本。
func (s *Store) CatalogVersion() int64 {
	return s.catalogVersion.Load()
}

func (s *Store) bumpCatalogVersion() {
	s.catalogVersion.Add(1)
}

// CreateRFQ 保存新的 RFQ。
func (s *Store) CreateRFQ(ctx context.Context, rfq *model.RFQ) error {
	if err := s.db.WithContext(ctx).Create(rfq).Error; err != nil {
		return fmt.Errorf("create rfq: %w", err)
	}
	return nil
}

// GetRFQ 根据 ID 获取 RFQ。
func (s *Store) GetRFQ(ctx context.Context, id uint) (*model.RFQ, error) {
	var rfq model.RFQ
	if err := s.db.WithContext(ctx).First(&rfq, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, sql.ErrNoRows
		}
		return nil, fmt.Errorf("get rfq: %w", err)
	}
	return &rfq, nil
}

// ListRFQs 返回按创建时间倒序的 RFQ 列表。
func (s *Store) ListRFQs(ctx context.Context, limit int) ([]model.RFQ, error) {
	var rfqs []model.RFQ
	query := s.db.WithContext(ctx).Order("created_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&rfqs).Error; err != nil {
		return nil, fmt.Errorf("list rfqs: %w", err)
	}
	return rfqs, nil
}

// UpdateRFQRequirement 整体替换需求并写入新版本号。
func (s *Store) UpdateRFQRequirement(ctx context.Context, id uint, req model.Requirement, version string) error {
	tx := s.db.WithContext(ctx).Model(&model.RFQ{}).Where("id = ?", id).Updates(map[string]any{
		"requirement": req,
		"version":     version,
		"title":       req.Title,
		"description": req.Description,
	})
	if tx.Error != nil {
		return fmt.Errorf("update rfq requirement: %w", tx.Error)
	}
	if tx.RowsAffected == 0 {
		return fmt.Errorf("update rfq requirement: id %d not found", id)
	}
	return nil
}

// CreateSupplier 新增供应商。
func (s *Store) CreateSupplier(ctx context.Context, supplier *model.Supplier) error {
	if err := s.db.WithContext(ctx).Create(supplier).Error; err != nil {
		return fmt.Errorf("create supplier: %w", err)
	}
	return nil
}

// GetSupplier 根据 ID 获取供应商。
func (s *Store) GetSupplier(ctx context.Context, id uint) (*model.Supplier, error) {
	var supplier model.Supplier
	if err := s.db.WithContext(ctx).First(&supplier, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, sql.ErrNoRows
		}
		return nil, fmt.Errorf("get supplier: %w", err)
	}
	return &supplier, nil
}

// ListSuppliers 返回全部供应商，按名称排序。
func (s *Store) ListSuppliers(ctx context.Context) ([]model.Supplier, error) {
	var suppliers []model.Supplier
	if err := s.db.WithContext(ctx).Order("name ASC").Find(&suppliers).Error; err != nil {
		return nil, fmt.Errorf("list suppliers: %w", err)
	}
	return suppliers, nil
}

// CreateProduct 新增产品并递增目录版本。
func (s *Store) CreateProduct(ctx context.Context, product *model.Product) error {
	if err := s.db.WithContext(ctx).Create(product).Error; err != nil {
		return fmt.Errorf("create product: %w", err)
	}
	s.bumpCatalogVersion()
	return nil
}

// GetProduct 根据 ID 获取产品。
func (s *Store) GetProduct(ctx context.Context, id uint) (*model.Product, error) {
	var product model.Product
	if err := s.db.WithContext(ctx).First(&product, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, sql.ErrNoRows
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return &product, nil
}

// GetProducts 批量获取产品，保持请求的 ID 顺序，忽略不存在的 ID。
func (s *Store) GetProducts(ctx context.Context, ids []uint) ([]model.Product, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var rows []model.Product
	if err := s.db.WithContext(ctx).Where("id IN ?", ids).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("get products: %w", err)
	}
	byID := make(map[uint]model.Product, len(rows))
	for _, p := range rows {
		byID[p.ID] = p
	}
	products := make([]model.Product, 0, len(ids))
	for _, id := range ids {
		if p, ok := byID[id]; ok {
			products = append(products, p)
		}
	}
	return products, nil
}

// ListProducts 按条件返回产品列表。
func (s *Store) ListProducts(ctx context.Context, q ProductQuery) ([]model.Product, error) {
	var products []model.Product
	query := s.db.WithContext(ctx).Order("id ASC")
	if q.Category != "" {
		query = query.Where("LOWER(category) = ?", strings.ToLower(q.Category))
	}
	if q.SupplierID > 0 {
		query = query.Where("supplier_id = ?", q.SupplierID)
	}
	if q.Limit > 0 {
		query = query.Limit(q.Limit)
	}
	if err := query.Find(&products).Error; err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return products, nil
}

// UpsertProducts 批量写入导入的产品，按 supplier_id + name 去重，
// 已有记录更新价格、规格与库存。任何写入都会递增目录版本。
func (s *Store) UpsertProducts(ctx context.Context, products []model.Product) (UpsertResult, error) {
	res := UpsertResult{}
	if len(products) == 0 {
		return res, nil
	}

	for i := range products {
		var existing model.Product
		err := s.db.WithContext(ctx).
			Where("supplier_id = ? AND name = ?", products[i].SupplierID, products[i].Name).
			First(&existing).Error
		switch {
		case err == gorm.ErrRecordNotFound:
			res.Created++
		case err != nil:
			return res, fmt.Errorf("query existing product: %w", err)
		default:
			res.Updated++
			products[i].ID = existing.ID
			products[i].CreatedAt = existing.CreatedAt
		}
	}

	tx := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"name",
			"category",
			"description",
			"price",
			"specs",
			"warranty",
			"stock",
			"availability",
			"export_restrictions",
			"certifications",
			"benchmarks",
			"supported_frameworks",
			"updated_at",
		}),
	}).Create(&products)
	if tx.Error != nil {
		return res, fmt.Errorf("upsert products: %w", tx.Error)
	}

	s.bumpCatalogVersion()
	return res, nil
}

// CatalogSnapshot 返回指定品类的候选快照（产品及其供应商）。
// categories 为空时返回全部目录。
func (s *Store) CatalogSnapshot(ctx context.Context, categories []string) ([]model.Candidate, error) {
	query := s.db.WithContext(ctx).Order("id ASC")
	if len(categories) > 0 {
		lowered := make([]string, 0, len(categories))
		for _, c := range categories {
			lowered = append(lowered, strings.ToLower(c))
		}
		query = query.Where("LOWER(category) IN ?", lowered)
	}

	var products []model.Product
	if err := query.Find(&products).Error; err != nil {
		return nil, fmt.Errorf("snapshot products: %w", err)
	}

	suppliers, err := s.ListSuppliers(ctx)
	if err != nil {
		return nil, fmt.Errorf("snapshot suppliers: %w", err)
	}
	byID := make(map[uint]model.Supplier, len(suppliers))
	for _, sup := range suppliers {
		byID[sup.ID] = sup
	}

	candidates := make([]model.Candidate, 0, len(products))
	for _, p := range products {
		sup, ok := byID[p.SupplierID]
		if !ok {
			continue
		}
		candidates = append(candidates, model.Candidate{Supplier: sup, Product: p})
	}
	return candidates, nil
}

// CreateProposal 新增报价记录。
func (s *Store) CreateProposal(ctx context.Context, proposal *model.Proposal) error {
	if err := s.db.WithContext(ctx).Create(proposal).Error; err != nil {
		return fmt.Errorf("create proposal: %w", err)
	}
	return nil
}

// GetProposal 根据 ID 获取报价记录。
func (s *Store) GetProposal(ctx context.Context, id uint) (*model.Proposal, error) {
	var proposal model.Proposal
	if err := s.db.WithContext(ctx).First(&proposal, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, sql.ErrNoRows
		}
		return nil, fmt.Errorf("get proposal: %w", err)
	}
	return &proposal, nil
}

// ListProposals 返回某个 RFQ 的全部报价记录，按分数倒序。
func (s *Store) ListProposals(ctx context.Context, rfqID uint) ([]model.Proposal, error) {
	var proposals []model.Proposal
	if err := s.db.WithContext(ctx).
		Where("rfq_id = ?", rfqID).
		Order("score DESC").
		Find(&proposals).Error; err != nil {
		return nil, fmt.Errorf("list proposals: %w", err)
	}
	return proposals, nil
}

// ReplaceProposals 用新一轮匹配结果整体替换 RFQ 的报价记录。
func (s *Store) ReplaceProposals(ctx context.Context, rfqID uint, proposals []model.Proposal) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("rfq_id = ?", rfqID).Delete(&model.Proposal{}).Error; err != nil {
			return fmt.Errorf("clear proposals: %w", err)
		}
		if len(proposals) == 0 {
			return nil
		}
		if err := tx.Create(&proposals).Error; err != nil {
			return fmt.Errorf("insert proposals: %w", err)
		}
		return nil
	})
}

// UpdateProposalEmail 写入生成的邮件文案。
func (s *Store) UpdateProposalEmail(ctx context.Context, id uint, subject, body string) error {
	tx := s.db.WithContext(ctx).Model(&model.Proposal{}).Where("id = ?", id).Updates(map[string]any{
		"email_subject": subject,
		"email_body":    body,
	})
	if tx.Error != nil {
		return fmt.Errorf("update proposal email: %w", tx.Error)
	}
	if tx.RowsAffected == 0 {
		return fmt.Errorf("update proposal email: id %d not found", id)
	}
	return nil
}
