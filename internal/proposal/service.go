package proposal

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"rfq-match/internal/model"
)

// Store 定义报价服务需要的持久化接口。
type Store interface {
	GetRFQ(ctx context.Context, id uint) (*model.RFQ, error)
	GetProposal(ctx context.Context, id uint) (*model.Proposal, error)
	ListProposals(ctx context.Context, rfqID uint) ([]model.Proposal, error)
	ReplaceProposals(ctx context.Context, rfqID uint, proposals []model.Proposal) error
	UpdateProposalEmail(ctx context.Context, id uint, subject, body string) error
	GetProduct(ctx context.Context, id uint) (*model.Product, error)
	GetSupplier(ctx context.Context, id uint) (*model.Supplier, error)
}

// LLMClient 抽象大模型调用，便于测试注入。
type LLMClient interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// Notifier 抽象邮件发送。
type Notifier interface {
	Notify(ctx context.Context, to, subject, body string) error
}

// Email 表示生成的邮件文案。
type Email struct {
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// Service 负责匹配结果落库与询价邮件生成。
type Service struct {
	store    Store
	llm      LLMClient
	notifier Notifier
}

// NewService 创建 Service。llm 与 notifier 均可为 nil：
// 无 llm 时邮件走固定模板，无 notifier 时只生成不发送。
func NewService(store Store, llm LLMClient, notifier Notifier) *Service {
	return &Service{store: store, llm: llm, notifier: notifier}
}

// RecordMatches 将一轮匹配结果写为报价记录，整体替换旧记录。
func (s *Service) RecordMatches(ctx context.Context, rfqID uint, matches []model.MatchResult) ([]model.Proposal, error) {
	proposals := make([]model.Proposal, 0, len(matches))
	for _, m := range matches {
		proposals = append(proposals, model.Proposal{
			RFQID:         rfqID,
			ProductID:     m.Product.ID,
			Score:         m.TotalScore,
			PriceScore:    m.Breakdown.Price,
			QualityScore:  m.Breakdown.Quality,
			DeliveryScore: m.Breakdown.Delivery,
		})
	}
	if err := s.store.ReplaceProposals(ctx, rfqID, proposals); err != nil {
		return nil, fmt.Errorf("record matches: %w", err)
	}
	return s.store.ListProposals(ctx, rfqID)
}

// GenerateEmail 为某条报价生成询价邮件并落库。
// 大模型不可用或返回无效 JSON 时使用固定模板。
// 配置了 notifier 时会同时发送给供应商联系邮箱。
func (s *Service) GenerateEmail(ctx context.Context, proposalID uint) (Email, error) {
	prop, err := s.store.GetProposal(ctx, proposalID)
	if err != nil {
		return Email{}, fmt.Errorf("load proposal: %w", err)
	}
	rfq, err := s.store.GetRFQ(ctx, prop.RFQID)
	if err != nil {
		return Email{}, fmt.Errorf("load rfq: %w", err)
	}
	product, err := s.store.GetProduct(ctx, prop.ProductID)
	if err != nil {
		return Email{}, fmt.Errorf("load product: %w", err)
	}
	supplier, err := s.store.GetSupplier(ctx, product.SupplierID)
	if err != nil {
		return Email{}, fmt.Errorf("load supplier: %w", err)
	}

	email := s.composeEmail(ctx, rfq, product, supplier)

	if err := s.store.UpdateProposalEmail(ctx, proposalID, email.Subject, email.Body); err != nil {
		return Email{}, err
	}

	if s.notifier != nil {
		if err := s.notifier.Notify(ctx, supplier.ContactEmail, email.Subject, email.Body); err != nil {
			return Email{}, fmt.Errorf("send proposal email: %w", err)
		}
	}
	return email, nil
}

func (s *Service) composeEmail(ctx context.Context, rfq *model.RFQ, product *model.Product, supplier *model.Supplier) Email {
	if s.llm != nil {
		if email, ok := s.llmEmail(ctx, rfq, product, supplier); ok {
			return email
		}
	}
	return templateEmail(rfq, product, supplier)
}

func (s *Service) llmEmail(ctx context.Context, rfq *model.RFQ, product *model.Product, supplier *model.Supplier) (Email, bool) {
	var b strings.Builder
	b.WriteString("Write a professional request-for-quotation email to a supplier.\n")
	b.WriteString(`Respond with JSON only: {"subject":"...","body":"..."}` + "\n\n")
	fmt.Fprintf(&b, "RFQ title: %s\nRFQ description: %s\n\n", rfq.Title, rfq.Description)
	fmt.Fprintf(&b, "Product: %s\nPrice: $%s\n\n", product.Name, product.Price.StringFixed(2))
	fmt.Fprintf(&b, "Supplier: %s\nContact: %s\n", supplier.Name, supplier.ContactEmail)

	respText, err := s.llm.Complete(ctx, b.String())
	if err != nil {
		return Email{}, false
	}

	text := strings.TrimSpace(respText)
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")

	var email Email
	if err := json.Unmarshal([]byte(strings.TrimSpace(text)), &email); err != nil {
		return Email{}, false
	}
	if email.Subject == "" || email.Body == "" {
		return Email{}, false
	}
	return email, true
}

// templateEmail 是确定性的兜底文案。
func templateEmail(rfq *model.RFQ, product *model.Product, supplier *model.Supplier) Email {
	title := rfq.Title
	if title == "" {
		title = "Your RFQ"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Dear %s team,\n\n", supplier.Name)
	fmt.Fprintf(&b, "We reviewed your product %s against our request %q and would like to ask for a formal quotation.\n\n", product.Name, title)
	fmt.Fprintf(&b, "Listed price: $%s\n", product.Price.StringFixed(2))
	if product.Warranty != "" {
		fmt.Fprintf(&b, "Warranty: %s\n", product.Warranty)
	}
	if supplier.DeliveryTime != "" {
		fmt.Fprintf(&b, "Quoted delivery time: %s\n", supplier.DeliveryTime)
	}
	b.WriteString("\nPlease confirm availability, volume pricing and delivery terms.\n\nBest regards,\nProcurement Team")

	return Email{
		Subject: fmt.Sprintf("Request for quotation: %s", title),
		Body:    b.String(),
	}
}
