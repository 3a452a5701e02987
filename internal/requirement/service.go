// Package requirement 负责结构化需求的校验与版本管理。
package requirement

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"rfq-match/internal/model"
)

// FieldError 表示单个字段的校验失败信息，可直接展示给买家。
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError 聚合全部字段错误。
// 权重不合法时直接拒绝，绝不静默归一化。
type ValidationError struct {
	Fields []FieldError `json:"fields"`
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		msgs = append(msgs, fmt.Sprintf("%s: %s", f.Field, f.Message))
	}
	return "invalid requirement: " + strings.Join(msgs, "; ")
}

// Validate 校验结构化需求：
// 权重之和必须恰好等于 100，至少一个品类块，数量非负。
func Validate(req model.Requirement) error {
	var fields []FieldError

	if strings.TrimSpace(req.Title) == "" {
		fields = append(fields, FieldError{Field: "title", Message: "title is required"})
	}
	if len(req.Categories) == 0 {
		fields = append(fields, FieldError{Field: "categories", Message: "at least one category block is required"})
	}
	for i, block := range req.Categories {
		if strings.TrimSpace(block.Category) == "" {
			fields = append(fields, FieldError{
				Field:   fmt.Sprintf("categories[%d].category", i),
				Message: "category name is required",
			})
		}
		if block.Quantity < 0 {
			fields = append(fields, FieldError{
				Field:   fmt.Sprintf("categories[%d].quantity", i),
				Message: "quantity must not be negative",
			})
		}
	}
	if req.Criteria.Price < 0 || req.Criteria.Quality < 0 || req.Criteria.Delivery < 0 {
		fields = append(fields, FieldError{Field: "criteria", Message: "weights must not be negative"})
	} else if total := req.Criteria.Total(); total != 100 {
		fields = append(fields, FieldError{
			Field:   "criteria",
			Message: fmt.Sprintf("weights must sum to 100, got %d", total),
		})
	}

	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

// NewVersion 生成新的需求版本号。
func NewVersion() string {
	return uuid.NewString()
}

// Store 定义持久化接口。
type Store interface {
	CreateRFQ(ctx context.Context, rfq *model.RFQ) error
	GetRFQ(ctx context.Context, id uint) (*model.RFQ, error)
	UpdateRFQRequirement(ctx context.Context, id uint, req model.Requirement, version string) error
}

// Service 负责创建与编辑 RFQ。
// 需求创建后不可变，编辑会整体替换并产生新版本号，
// 之后的打分一律使用新版本。
type Service struct {
	store Store
}

// NewService 创建需求服务。
func NewService(store Store) *Service {
	return &Service{store: store}
}

// Create 校验并保存新的 RFQ。
func (s *Service) Create(ctx context.Context, originalContent string, req model.Requirement) (model.RFQ, error) {
	if err := Validate(req); err != nil {
		return model.RFQ{}, err
	}
	rfq := model.RFQ{
		Title:           req.Title,
		Description:     req.Description,
		OriginalContent: originalContent,
		Requirement:     req,
		Version:         NewVersion(),
	}
	if err := s.store.CreateRFQ(ctx, &rfq); err != nil {
		return model.RFQ{}, fmt.Errorf("create rfq: %w", err)
	}
	return rfq, nil
}

// UpdateRequirement 以新需求整体替换旧需求，并产生新版本号。
func (s *Service) UpdateRequirement(ctx context.Context, id uint, req model.Requirement) (model.RFQ, error) {
	if err := Validate(req); err != nil {
		return model.RFQ{}, err
	}
	if _, err := s.store.GetRFQ(ctx, id); err != nil {
		return model.RFQ{}, fmt.Errorf("get rfq %d: %w", id, err)
	}
	version := NewVersion()
	if err := s.store.UpdateRFQRequirement(ctx, id, req, version); err != nil {
		return model.RFQ{}, fmt.Errorf("update rfq %d: %w", id, err)
	}
	updated, err := s.store.GetRFQ(ctx, id)
	if err != nil {
		return model.RFQ{}, fmt.Errorf("reload rfq %d: %w", id, err)
	}
	return *updated, nil
}
