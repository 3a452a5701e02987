package specparse

import "testing"

func TestParseRange(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in       string
		min, max int
	}{
		{"15-20 days", 15, 20},
		{"10 - 15 days", 10, 15},
		{"14~21 days", 14, 21},
		{"20-15 days", 15, 20}, // reversed bounds are normalized
		{"7 days", 7, 7},
		{"ships in 30 days", 30, 30},
	}
	for _, c := range cases {
		r, err := ParseRange(c.in)
		if err != nil {
			t.Fatalf("ParseRange(%q) error: %v", c.in, err)
		}
		if r.Min != c.min || r.Max != c.max {
			t.Fatalf("ParseRange(%q) = [%d,%d], want [%d,%d]", c.in, r.Min, r.Max, c.min, c.max)
		}
	}
}

func TestParseRangeAverage(t *testing.T) {
	t.Parallel()

	r, err := ParseRange("15-20 days")
	if err != nil {
		t.Fatalf("ParseRange error: %v", err)
	}
	if avg := r.Average(); avg != 17.5 {
		t.Fatalf("expected average 17.5, got %v", avg)
	}
}

func TestParseRangeNoNumber(t *testing.T) {
	t.Parallel()

	if _, err := ParseRange("to be confirmed"); err == nil {
		t.Fatal("expected error for text without numbers")
	}
}

func TestParseCapacityGB(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in   string
		want float64
	}{
		{"512 GB SSD", 512},
		{"1 TB PCIe NVMe SSD", 1024},
		{"16GB DDR4", 16},
		{"2 tb", 2048},
	}
	for _, c := range cases {
		got, err := ParseCapacityGB(c.in)
		if err != nil {
			t.Fatalf("ParseCapacityGB(%q) error: %v", c.in, err)
		}
		if got != c.want {
			t.Fatalf("ParseCapacityGB(%q) = %v, want %v", c.in, got, c.want)
		}
	}

	if _, err := ParseCapacityGB("fast storage"); err == nil {
		t.Fatal("expected error for text without capacity")
	}
}

func TestParseYears(t *testing.T) {
	t.Parallel()

	got, err := ParseYears("3 years ProSupport")
	if err != nil {
		t.Fatalf("ParseYears error: %v", err)
	}
	if got != 3 {
		t.Fatalf("expected 3 years, got %d", got)
	}

	got, err = ParseYears("1 year limited warranty")
	if err != nil {
		t.Fatalf("ParseYears error: %v", err)
	}
	if got != 1 {
		t.Fatalf("expected 1 year, got %d", got)
	}

	if _, err := ParseYears("lifetime warranty"); err == nil {
		t.Fatal("expected error for text without years")
	}
}

func TestParseInches(t *testing.T) {
	t.Parallel()

	got, err := ParseInches("15.6-inch FHD (1920 x 1080)")
	if err != nil {
		t.Fatalf("ParseInches error: %v", err)
	}
	if got != 15.6 {
		t.Fatalf("expected 15.6, got %v", got)
	}

	got, err = ParseInches(`27" monitor`)
	if err != nil {
		t.Fatalf("ParseInches error: %v", err)
	}
	if got != 27 {
		t.Fatalf("expected 27, got %v", got)
	}
}

func TestParseNumber(t *testing.T) {
	t.Parallel()

	got, err := ParseNumber("800 GB/s")
	if err != nil {
		t.Fatalf("ParseNumber error: %v", err)
	}
	if got != 800 {
		t.Fatalf("expected 800, got %v", got)
	}

	got, err = ParseNumber("19.5 TFLOPS")
	if err != nil {
		t.Fatalf("ParseNumber error: %v", err)
	}
	if got != 19.5 {
		t.Fatalf("expected 19.5, got %v", got)
	}
}
