package extractor

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"rfq-match/internal/model"
)

// ErrUnavailable 表示大模型提取不可用，调用方应提示改用结构化需求提交。
var ErrUnavailable = errors.New("requirement extraction unavailable, submit a structured requirement instead")

// Config 描述需求提取配置。
type Config struct {
	PromptTemplate string       `yaml:"prompt_template" json:"prompt_template"`
	Categories     []string     `yaml:"categories" json:"categories"`
	OpenAI         OpenAIConfig `yaml:"openai" json:"openai"`
}

// LLMClient 抽象大模型调用，便于测试注入。
type LLMClient interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// Extractor 从自由文本 RFQ 中提取结构化需求。
type Extractor interface {
	Extract(ctx context.Context, content string) (model.Requirement, error)
}

// Service 组合 LLM 与兜底解析实现 Extractor。
type Service struct {
	cfg Config
	llm LLMClient
}

// New 创建 Service。llm 为 nil 时 Extract 直接返回 ErrUnavailable。
func New(cfg Config, llm LLMClient) *Service {
	if len(cfg.Categories) == 0 {
		cfg.Categories = []string{"Laptops", "Monitors", "GPUs", "AI Hardware"}
	}
	return &Service{cfg: cfg, llm: llm}
}

// Extract 调用大模型将自由文本转换为结构化需求并校验基本形态。
func (s *Service) Extract(ctx context.Context, content string) (model.Requirement, error) {
	if strings.TrimSpace(content) == "" {
		return model.Requirement{}, fmt.Errorf("empty rfq content")
	}
	if s.llm == nil {
		return model.Requirement{}, ErrUnavailable
	}

	prompt := s.buildPrompt(content)
	respText, err := s.llm.Complete(ctx, prompt)
	if err != nil {
		return model.Requirement{}, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	req, err := parseRequirement(respText)
	if err != nil {
		return model.Requirement{}, fmt.Errorf("parse extraction response: %w", err)
	}
	return req, nil
}

func (s *Service) buildPrompt(content string) string {
	if tmpl := strings.TrimSpace(s.cfg.PromptTemplate); tmpl != "" {
		return strings.ReplaceAll(tmpl, "{{content}}", content)
	}

	var b strings.Builder
	b.WriteString("Extract a structured procurement requirement from the RFQ text below.\n")
	b.WriteString("Respond with JSON only, no markdown fences, using this shape:\n")
	b.WriteString(`{"title":"","description":"","categories":[{"category":"","quantity":0,"targets":{"attribute":"target value"}}],`)
	b.WriteString(`"criteria":{"price":50,"quality":30,"delivery":20},`)
	b.WriteString(`"compliance":{"destination":"","certifications":[],"restricted_countries":[]}}` + "\n")
	b.WriteString("Category must be one of: " + strings.Join(s.cfg.Categories, ", ") + ".\n")
	b.WriteString("Criteria weights must be non-negative integers summing to 100.\n\n")
	b.WriteString("RFQ text:\n")
	b.WriteString(content)
	return b.String()
}

// parseRequirement 解析模型返回的 JSON，容忍包裹的 markdown 代码块。
func parseRequirement(respText string) (model.Requirement, error) {
	text := strings.TrimSpace(respText)
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")
	text = strings.TrimSpace(text)

	var req model.Requirement
	if err := json.Unmarshal([]byte(text), &req); err != nil {
		return model.Requirement{}, fmt.Errorf("unmarshal requirement: %w", err)
	}
	if len(req.Categories) == 0 {
		return model.Requirement{}, fmt.Errorf("extraction produced no category blocks")
	}
	return req, nil
}
