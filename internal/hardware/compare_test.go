package hardware

import (
	"testing"

	"gorm.io/datatypes"

	"rfq-match/internal/model"
)

func TestCompareRanksByMetric(t *testing.T) {
	t.Parallel()

	products := []model.Product{
		gpu(1, "NVIDIA A100 40GB PCIe", 1555),
		gpu(2, "NVIDIA H100 80GB SXM", 3350),
		gpu(3, "ASUS GeForce RTX 4090 TUF", 1008),
	}

	entries, err := Compare(products, "memory_bandwidth")
	if err != nil {
		t.Fatalf("Compare error: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(entries))
	}
	if entries[0].Name != "NVIDIA H100 80GB SXM" {
		t.Fatalf("expected H100 first, got %s", entries[0].Name)
	}
	if entries[0].RelativePerformance != 100 {
		t.Fatalf("expected best entry at 100%%, got %v", entries[0].RelativePerformance)
	}
	if entries[0].Unit != "GB/s" {
		t.Fatalf("expected GB/s unit, got %s", entries[0].Unit)
	}

	want := 100 * 1555.0 / 3350.0
	if entries[1].RelativePerformance != want {
		t.Fatalf("expected relative %v, got %v", want, entries[1].RelativePerformance)
	}
}

func TestCompareMissingBenchmarkSortsLast(t *testing.T) {
	t.Parallel()

	products := []model.Product{
		{ID: 1, Name: "Laptop without benchmarks"},
		gpu(2, "NVIDIA A100 40GB PCIe", 1555),
	}

	entries, err := Compare(products, "memory_bandwidth")
	if err != nil {
		t.Fatalf("Compare error: %v", err)
	}
	if entries[1].Name != "Laptop without benchmarks" {
		t.Fatalf("expected missing benchmark last, got %s", entries[1].Name)
	}
	if entries[1].Value != 0 || entries[1].RelativePerformance != 0 {
		t.Fatalf("expected zero value entry, got %+v", entries[1])
	}
}

func TestCompareUnknownMetric(t *testing.T) {
	t.Parallel()

	_, err := Compare(nil, "hashrate")
	if err == nil {
		t.Fatal("expected error for unknown metric")
	}
}

func TestFrameworks(t *testing.T) {
	t.Parallel()

	product := model.Product{
		SupportedFrameworks: []string{"TensorFlow", "PyTorch 2.x", "CUDA"},
	}

	supports := Frameworks(product, []string{"pytorch", "TensorFlow", "JAX"})
	if len(supports) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(supports))
	}
	if !supports[0].Supported || supports[0].Notes != "listed as PyTorch 2.x" {
		t.Fatalf("expected pytorch supported, got %+v", supports[0])
	}
	if !supports[1].Supported {
		t.Fatalf("expected TensorFlow supported, got %+v", supports[1])
	}
	if supports[2].Supported {
		t.Fatalf("expected JAX unsupported, got %+v", supports[2])
	}
}

// --- helpers ---

func gpu(id uint, name string, bandwidth float64) model.Product {
	return model.Product{
		ID:    id,
		Name:  name,
		Specs: datatypes.JSONMap{"manufacturer": "NVIDIA"},
		Benchmarks: datatypes.JSONMap{
			"memory_bandwidth_gbs": bandwidth,
		},
	}
}
