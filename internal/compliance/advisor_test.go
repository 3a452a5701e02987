package compliance

import (
	"reflect"
	"testing"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"

	"rfq-match/internal/model"
)

func TestCheckRestrictedDestination(t *testing.T) {
	t.Parallel()

	a := NewAdvisor(Config{})
	product := model.Product{
		Name:               "NVIDIA H100 80GB SXM",
		Price:              decimal.RequireFromString("32000.00"),
		ExportRestrictions: []string{"Iran", "North Korea", "Russia"},
	}

	verdict := a.Check(product, "Russia")
	if verdict.Allowed {
		t.Fatal("expected restricted destination to be blocked")
	}
	if verdict.Risk != model.RiskCritical {
		t.Fatalf("expected critical risk, got %s", verdict.Risk)
	}
	if len(verdict.RequiredActions) == 0 {
		t.Fatal("expected required actions for blocked export")
	}
}

func TestCheckRestrictedDestinationCaseInsensitive(t *testing.T) {
	t.Parallel()

	a := NewAdvisor(Config{})
	product := model.Product{Name: "GPU", ExportRestrictions: []string{"China"}}

	if verdict := a.Check(product, "china"); verdict.Allowed {
		t.Fatal("expected case-insensitive country match to block")
	}
}

func TestCheckHighPerformance(t *testing.T) {
	t.Parallel()

	a := NewAdvisor(Config{})
	product := model.Product{
		Name:  "NVIDIA A100 40GB PCIe",
		Price: decimal.RequireFromString("9500.00"),
		Benchmarks: datatypes.JSONMap{
			"memory_bandwidth_gbs": 1555.0,
			"fp32_tflops":          19.5,
		},
	}

	verdict := a.Check(product, "Germany")
	if !verdict.Allowed {
		t.Fatal("expected high-performance product to be allowed")
	}
	if verdict.Risk != model.RiskMedium {
		t.Fatalf("expected medium risk, got %s", verdict.Risk)
	}
	if !containsAction(verdict.RequiredActions, "complete end-user verification") {
		t.Fatalf("expected end-user verification action, got %v", verdict.RequiredActions)
	}
}

func TestCheckHighValue(t *testing.T) {
	t.Parallel()

	a := NewAdvisor(Config{})
	product := model.Product{
		Name:  "Server rack",
		Price: decimal.RequireFromString("15000.00"),
	}

	verdict := a.Check(product, "France")
	if !verdict.Allowed {
		t.Fatal("expected high-value product to be allowed")
	}
	if verdict.Risk != model.RiskMedium {
		t.Fatalf("expected medium risk, got %s", verdict.Risk)
	}
	if !containsAction(verdict.RequiredActions, "complete financial compliance verification") {
		t.Fatalf("expected financial verification action, got %v", verdict.RequiredActions)
	}
}

func TestCheckLowRisk(t *testing.T) {
	t.Parallel()

	a := NewAdvisor(Config{})
	product := model.Product{
		Name:  "Dell Latitude 5520",
		Price: decimal.RequireFromString("999.99"),
	}

	verdict := a.Check(product, "United Kingdom")
	if !verdict.Allowed {
		t.Fatal("expected low-risk product to be allowed")
	}
	if verdict.Risk != model.RiskLow {
		t.Fatalf("expected low risk, got %s", verdict.Risk)
	}
	if len(verdict.RequiredActions) != 0 {
		t.Fatalf("expected no required actions, got %v", verdict.RequiredActions)
	}
}

func TestCheckDeterministic(t *testing.T) {
	t.Parallel()

	a := NewAdvisor(Config{})
	product := model.Product{
		Name:       "NVIDIA A100 40GB PCIe",
		Price:      decimal.RequireFromString("10000.00"),
		Benchmarks: datatypes.JSONMap{"memory_bandwidth_gbs": 1555.0},
	}

	first := a.Check(product, "Japan")
	second := a.Check(product, "Japan")
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("expected identical verdicts, got %+v and %+v", first, second)
	}
}

func TestCheckThresholdOverride(t *testing.T) {
	t.Parallel()

	// Raise the bandwidth threshold above the product's benchmark.
	a := NewAdvisor(Config{HighPerfBandwidthGBs: 2000, HighPerfTFLOPS: 100})
	product := model.Product{
		Name:       "NVIDIA A100 40GB PCIe",
		Price:      decimal.RequireFromString("9000.00"),
		Benchmarks: datatypes.JSONMap{"memory_bandwidth_gbs": 1555.0, "fp32_tflops": 19.5},
	}

	if verdict := a.Check(product, "Germany"); verdict.Risk != model.RiskLow {
		t.Fatalf("expected low risk under raised thresholds, got %s", verdict.Risk)
	}
}

func containsAction(actions []string, want string) bool {
	for _, a := range actions {
		if a == want {
			return true
		}
	}
	return false
}
