package model

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

func TestMatchResultJSONRoundTrip(t *testing.T) {
	t.Parallel()

	original := MatchResult{
		Supplier: Supplier{ID: 3, Name: "Dell Technologies", Country: "United States", DeliveryTime: "15-20 days"},
		Product: Product{
			ID:         11,
			SupplierID: 3,
			Name:       "Latitude 5520",
			Category:   "Laptops",
			Price:      decimal.RequireFromString("999.99"),
			Specs:      datatypes.JSONMap{"memory": "16 GB DDR4"},
		},
		Category:   "Laptops",
		TotalScore: 83.75,
		Breakdown:  Breakdown{Price: 41.25, Quality: 25, Delivery: 17.5},
		Checks: []AttributeCheck{
			{Attribute: "memory", Target: "16 GB", Actual: "16 GB DDR4", Fit: FitMeets, Points: 15},
		},
		TotalPrice:        decimal.RequireFromString("9999.90"),
		DeliveryDays:      17.5,
		Verdict:           Verdict{Allowed: true, Risk: RiskMedium, RequiredActions: []string{"complete end-user verification"}},
		OnOrder:           true,
		DeliveryEstimated: true,
		Warnings:          []string{"no comparable products in category"},
	}

	data, err := json.Marshal(original)
	if err != nil {
		t.Fatalf("marshal error: %v", err)
	}
	var got MatchResult
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("unmarshal error: %v", err)
	}

	if got.TotalScore != original.TotalScore {
		t.Fatalf("total score changed: %v vs %v", got.TotalScore, original.TotalScore)
	}
	if got.Breakdown != original.Breakdown {
		t.Fatalf("breakdown changed: %+v vs %+v", got.Breakdown, original.Breakdown)
	}
	if got.TotalScore != got.Breakdown.Sum() {
		t.Fatalf("total %v does not equal breakdown sum %v after round-trip", got.TotalScore, got.Breakdown.Sum())
	}
	if !got.TotalPrice.Equal(original.TotalPrice) {
		t.Fatalf("total price changed: %s vs %s", got.TotalPrice, original.TotalPrice)
	}
	if !got.Product.Price.Equal(original.Product.Price) {
		t.Fatalf("product price changed: %s vs %s", got.Product.Price, original.Product.Price)
	}
	if got.DeliveryDays != original.DeliveryDays {
		t.Fatalf("delivery days changed: %v vs %v", got.DeliveryDays, original.DeliveryDays)
	}
	if got.Verdict.Risk != RiskMedium || !got.Verdict.Allowed {
		t.Fatalf("verdict changed: %+v", got.Verdict)
	}
	if !got.OnOrder || !got.DeliveryEstimated {
		t.Fatalf("flags changed: %+v", got)
	}
	if len(got.Checks) != 1 || got.Checks[0] != original.Checks[0] {
		t.Fatalf("checks changed: %+v", got.Checks)
	}
}

func TestRiskLevelJSON(t *testing.T) {
	t.Parallel()

	for level, want := range map[RiskLevel]string{
		RiskLow:      `"low"`,
		RiskMedium:   `"medium"`,
		RiskHigh:     `"high"`,
		RiskCritical: `"critical"`,
	} {
		data, err := json.Marshal(level)
		if err != nil {
			t.Fatalf("marshal %v: %v", level, err)
		}
		if string(data) != want {
			t.Fatalf("expected %s, got %s", want, data)
		}
		var back RiskLevel
		if err := json.Unmarshal(data, &back); err != nil {
			t.Fatalf("unmarshal %s: %v", data, err)
		}
		if back != level {
			t.Fatalf("round-trip changed %v to %v", level, back)
		}
	}

	var bad RiskLevel
	if err := json.Unmarshal([]byte(`"severe"`), &bad); err == nil {
		t.Fatal("expected error for unknown risk level")
	}
}
