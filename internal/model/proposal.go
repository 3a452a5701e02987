package model

import "time"

// Proposal 表示一次匹配产生的候选报价记录，可为其生成邮件文案。
type Proposal struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	RFQID         uint      `gorm:"index" json:"rfq_id"`
	ProductID     uint      `json:"product_id"`
	Score         float64   `json:"score"`
	PriceScore    float64   `json:"price_score"`
	QualityScore  float64   `json:"quality_score"`
	DeliveryScore float64   `json:"delivery_score"`
	EmailSubject  string    `json:"email_subject,omitempty"`
	EmailBody     string    `json:"email_body,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}
