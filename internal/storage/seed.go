package storage

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"

	"rfq-match/internal/model"
)

// Seeded 判断数据库是否已有供应商数据。
func (s *Store) Seeded(ctx context.Context) (bool, error) {
	var count int64
	if err := s.db.WithContext(ctx).Model(&model.Supplier{}).Count(&count).Error; err != nil {
		return false, fmt.Errorf("count suppliers: %w", err)
	}
	return count > 0, nil
}

// Seed 写入演示用的供应商与产品目录。数据库非空时直接返回。
func (s *Store) Seed(ctx context.Context) error {
	seeded, err := s.Seeded(ctx)
	if err != nil {
		return err
	}
	if seeded {
		return nil
	}

	suppliers := sampleSuppliers()
	byName := make(map[string]uint, len(suppliers))
	for i := range suppliers {
		if err := s.CreateSupplier(ctx, &suppliers[i]); err != nil {
			return fmt.Errorf("seed supplier %s: %w", suppliers[i].Name, err)
		}
		byName[suppliers[i].Name] = suppliers[i].ID
	}

	for _, sp := range sampleProducts() {
		supplierID, ok := byName[sp.supplier]
		if !ok {
			continue
		}
		sp.product.SupplierID = supplierID
		if err := s.CreateProduct(ctx, &sp.product); err != nil {
			return fmt.Errorf("seed product %s: %w", sp.product.Name, err)
		}
	}
	return nil
}

type seedProduct struct {
	supplier string
	product  model.Product
}

func sampleSuppliers() []model.Supplier {
	return []model.Supplier{
		{
			Name:         "Dell Technologies",
			Country:      "United States",
			Website:      "https://www.dell.com",
			ContactEmail: "sales@dell.com",
			ContactPhone: "+1-800-624-9897",
			DeliveryTime: "10-15 days",
			Verified:     true,
		},
		{
			Name:         "HP Inc.",
			Country:      "United States",
			Website:      "https://www.hp.com",
			ContactEmail: "sales@hp.com",
			ContactPhone: "+1-800-474-6836",
			DeliveryTime: "7-14 days",
			Verified:     true,
		},
		{
			Name:         "Lenovo",
			Country:      "China",
			Website:      "https://www.lenovo.com",
			ContactEmail: "sales@lenovo.com",
			ContactPhone: "+1-855-253-6686",
			DeliveryTime: "14-21 days",
			Verified:     true,
		},
		{
			Name:         "Samsung Electronics",
			Country:      "South Korea",
			Website:      "https://www.samsung.com",
			ContactEmail: "sales@samsung.com",
			ContactPhone: "+1-800-726-7864",
			DeliveryTime: "10-20 days",
			Verified:     true,
		},
		{
			Name:         "LG Electronics",
			Country:      "South Korea",
			Website:      "https://www.lg.com",
			ContactEmail: "sales@lg.com",
			ContactPhone: "+1-800-243-0000",
			DeliveryTime: "14-21 days",
			Verified:     true,
		},
		{
			Name:         "ASUS",
			Country:      "Taiwan",
			Website:      "https://www.asus.com",
			ContactEmail: "sales@asus.com",
			ContactPhone: "+1-888-678-3688",
			DeliveryTime: "15-25 days",
			Verified:     true,
		},
		{
			Name:         "NVIDIA Direct",
			Country:      "United States",
			Website:      "https://www.nvidia.com",
			ContactEmail: "enterprise@nvidia.com",
			ContactPhone: "+1-408-486-2000",
			DeliveryTime: "30-45 days",
			Verified:     true,
		},
	}
}

func sampleProducts() []seedProduct {
	return []seedProduct{
		{
			supplier: "Dell Technologies",
			product: model.Product{
				Name:        "Dell Latitude 5520",
				Category:    "Laptops",
				Description: "Business laptop with excellent durability and performance",
				Price:       decimal.RequireFromString("999.99"),
				Specs: datatypes.JSONMap{
					"processor":    "Intel Core i5-1135G7",
					"memory":       "16 GB DDR4",
					"storage":      "512 GB SSD",
					"display":      "15.6-inch FHD (1920 x 1080)",
					"battery":      "Up to 10 hours",
					"connectivity": "USB-C, USB-A, HDMI, RJ-45",
					"os":           "Windows 11 Pro",
				},
				Warranty:     "3 years ProSupport",
				Stock:        120,
				Availability: model.AvailabilityInStock,
			},
		},
		{
			supplier: "Dell Technologies",
			product: model.Product{
				Name:        "Dell XPS 13",
				Category:    "Laptops",
				Description: "Premium ultrabook with InfinityEdge display",
				Price:       decimal.RequireFromString("1299.99"),
				Specs: datatypes.JSONMap{
					"processor":    "Intel Core i7-1165G7",
					"memory":       "16 GB LPDDR4x",
					"storage":      "1 TB PCIe NVMe SSD",
					"display":      "13.4-inch FHD+ (1920 x 1200)",
					"battery":      "Up to 12 hours",
					"connectivity": "Thunderbolt 4, USB-C",
					"os":           "Windows 11 Pro",
				},
				Warranty:     "1 year Premium Support",
				Stock:        45,
				Availability: model.AvailabilityInStock,
			},
		},
		{
			supplier: "HP Inc.",
			product: model.Product{
				Name:        "HP EliteBook 840 G8",
				Category:    "Laptops",
				Description: "Enterprise-grade laptop with security features",
				Price:       decimal.RequireFromString("1199.99"),
				Specs: datatypes.JSONMap{
					"processor":    "Intel Core i5-1145G7",
					"memory":       "16 GB DDR4",
					"storage":      "512 GB SSD",
					"display":      "14-inch FHD (1920 x 1080)",
					"battery":      "Up to 10 hours",
					"connectivity": "USB-C, USB-A, HDMI, Dock connector",
					"os":           "Windows 11 Pro",
				},
				Warranty:     "3 years HP Care Pack",
				Stock:        80,
				Availability: model.AvailabilityInStock,
			},
		},
		{
			supplier: "Lenovo",
			product: model.Product{
				Name:        "Lenovo ThinkPad X1 Carbon Gen 9",
				Category:    "Laptops",
				Description: "Premium business ultrabook with durability",
				Price:       decimal.RequireFromString("1499.99"),
				Specs: datatypes.JSONMap{
					"processor":    "Intel Core i7-1165G7",
					"memory":       "16 GB LPDDR4x",
					"storage":      "1 TB PCIe SSD",
					"display":      "14-inch FHD+ (1920 x 1200)",
					"battery":      "Up to 16 hours",
					"connectivity": "Thunderbolt 4, USB-A, HDMI",
					"os":           "Windows 11 Pro",
				},
				Warranty:     "3 years ThinkPad warranty",
				Stock:        30,
				Availability: model.AvailabilityInStock,
			},
		},
		{
			supplier: "Lenovo",
			product: model.Product{
				Name:        "Lenovo IdeaPad 5",
				Category:    "Laptops",
				Description: "Mid-range laptop with good performance",
				Price:       decimal.RequireFromString("699.99"),
				Specs: datatypes.JSONMap{
					"processor":    "AMD Ryzen 5 5500U",
					"memory":       "8 GB DDR4",
					"storage":      "512 GB SSD",
					"display":      "15.6-inch FHD (1920 x 1080)",
					"battery":      "Up to 12 hours",
					"connectivity": "USB-C, USB-A, HDMI, SD card reader",
					"os":           "Windows 11 Home",
				},
				Warranty:     "1 year limited warranty",
				Stock:        200,
				Availability: model.AvailabilityInStock,
			},
		},
		{
			supplier: "ASUS",
			product: model.Product{
				Name:        "ASUS ZenBook 14",
				Category:    "Laptops",
				Description: "Compact and lightweight ultrabook",
				Price:       decimal.RequireFromString("899.99"),
				Specs: datatypes.JSONMap{
					"processor":    "AMD Ryzen 7 5800H",
					"memory":       "16 GB LPDDR4X",
					"storage":      "512 GB PCIe SSD",
					"display":      "14-inch FHD (1920 x 1080)",
					"battery":      "Up to 10 hours",
					"connectivity": "Thunderbolt 4, USB-A, HDMI",
					"os":           "Windows 11 Home",
				},
				Warranty:     "1 year ASUS global warranty",
				Stock:        0,
				Availability: model.AvailabilityOnOrder,
			},
		},
		{
			supplier: "Dell Technologies",
			product: model.Product{
				Name:        "Dell UltraSharp U2720Q",
				Category:    "Monitors",
				Description: "27-inch 4K USB-C Monitor",
				Price:       decimal.RequireFromString("549.99"),
				Specs: datatypes.JSONMap{
					"screenSize":    "27 inches",
					"resolution":    "3840 x 2160 (4K UHD)",
					"panelTech":     "IPS",
					"brightness":    "350 nits",
					"contrastRatio": "1300:1",
					"connectivity":  "HDMI, DisplayPort, USB-C with 90W power delivery",
					"adjustability": "Height, tilt, swivel, pivot",
					"refreshRate":   "60 Hz",
				},
				Warranty:     "3 years Advanced Exchange Service",
				Stock:        60,
				Availability: model.AvailabilityInStock,
			},
		},
		{
			supplier: "HP Inc.",
			product: model.Product{
				Name:        "HP E27u G4",
				Category:    "Monitors",
				Description: "27-inch QHD USB-C Monitor",
				Price:       decimal.RequireFromString("379.99"),
				Specs: datatypes.JSONMap{
					"screenSize":    "27 inches",
					"resolution":    "2560 x 1440 (QHD)",
					"panelTech":     "IPS",
					"brightness":    "300 nits",
					"contrastRatio": "1000:1",
					"connectivity":  "HDMI, DisplayPort, USB-C",
					"adjustability": "Height, tilt, swivel, pivot",
					"refreshRate":   "60 Hz",
				},
				Warranty:     "3 years HP standard warranty",
				Stock:        90,
				Availability: model.AvailabilityInStock,
			},
		},
		{
			supplier: "Samsung Electronics",
			product: model.Product{
				Name:        "Samsung S27R650",
				Category:    "Monitors",
				Description: "27-inch FHD Monitor with USB-C",
				Price:       decimal.RequireFromString("259.99"),
				Specs: datatypes.JSONMap{
					"screenSize":    "27 inches",
					"resolution":    "1920 x 1080 (Full HD)",
					"panelTech":     "IPS",
					"brightness":    "250 nits",
					"contrastRatio": "1000:1",
					"connectivity":  "HDMI, DisplayPort, USB-C",
					"adjustability": "Height, tilt, swivel, pivot",
					"refreshRate":   "60 Hz",
				},
				Warranty:     "3 years Samsung warranty",
				Stock:        150,
				Availability: model.AvailabilityInStock,
			},
		},
		{
			supplier: "LG Electronics",
			product: model.Product{
				Name:        "LG 27QN880-B",
				Category:    "Monitors",
				Description: "27-inch QHD Monitor with Ergo Stand",
				Price:       decimal.RequireFromString("349.99"),
				Specs: datatypes.JSONMap{
					"screenSize":    "27 inches",
					"resolution":    "2560 x 1440 (QHD)",
					"panelTech":     "IPS",
					"brightness":    "350 nits",
					"contrastRatio": "1000:1",
					"connectivity":  "HDMI, DisplayPort, USB-C",
					"adjustability": "Height, tilt, swivel, pivot",
					"refreshRate":   "75 Hz",
				},
				Warranty:     "1 year LG limited warranty",
				Stock:        40,
				Availability: model.AvailabilityInStock,
			},
		},
		{
			supplier: "LG Electronics",
			product: model.Product{
				Name:        "LG 24MP400",
				Category:    "Monitors",
				Description: "24-inch FHD IPS Monitor",
				Price:       decimal.RequireFromString("149.99"),
				Specs: datatypes.JSONMap{
					"screenSize":    "24 inches",
					"resolution":    "1920 x 1080 (Full HD)",
					"panelTech":     "IPS",
					"brightness":    "250 nits",
					"contrastRatio": "1000:1",
					"connectivity":  "HDMI, VGA",
					"adjustability": "Tilt only",
					"refreshRate":   "75 Hz",
				},
				Warranty:     "1 year LG limited warranty",
				Stock:        300,
				Availability: model.AvailabilityInStock,
			},
		},
		{
			supplier: "NVIDIA Direct",
			product: model.Product{
				Name:        "NVIDIA A100 40GB PCIe",
				Category:    "GPUs",
				Description: "Data center GPU for AI training and inference",
				Price:       decimal.RequireFromString("10000.00"),
				Specs: datatypes.JSONMap{
					"manufacturer":    "NVIDIA",
					"memory":          "40 GB HBM2",
					"memoryBandwidth": "1555 GB/s",
					"fp32Performance": "19.5 TFLOPS",
					"interface":       "PCIe 4.0",
					"tdp":             "250 W",
				},
				Warranty:     "3 years enterprise warranty",
				Stock:        8,
				Availability: model.AvailabilityInStock,
				Benchmarks: datatypes.JSONMap{
					"fp32_tflops":          19.5,
					"fp16_tflops":          312.0,
					"int8_tops":            624.0,
					"memory_bandwidth_gbs": 1555.0,
					"memory_capacity_gb":   40.0,
					"tdp_watts":            250.0,
				},
				SupportedFrameworks: []string{"TensorFlow", "PyTorch", "CUDA", "JAX"},
				ExportRestrictions:  []string{"Iran", "North Korea", "Russia"},
				Certifications:      []string{"CE", "FCC"},
			},
		},
		{
			supplier: "NVIDIA Direct",
			product: model.Product{
				Name:        "NVIDIA H100 80GB SXM",
				Category:    "AI Hardware",
				Description: "Flagship data center accelerator for large model training",
				Price:       decimal.RequireFromString("32000.00"),
				Specs: datatypes.JSONMap{
					"manufacturer":    "NVIDIA",
					"memory":          "80 GB HBM3",
					"memoryBandwidth": "3350 GB/s",
					"fp32Performance": "67 TFLOPS",
					"interface":       "SXM5",
					"tdp":             "700 W",
				},
				Warranty:     "3 years enterprise warranty",
				Stock:        0,
				Availability: model.AvailabilityOnOrder,
				Benchmarks: datatypes.JSONMap{
					"fp32_tflops":          67.0,
					"fp16_tflops":          1979.0,
					"int8_tops":            3958.0,
					"memory_bandwidth_gbs": 3350.0,
					"memory_capacity_gb":   80.0,
					"tdp_watts":            700.0,
				},
				SupportedFrameworks: []string{"TensorFlow", "PyTorch", "CUDA", "JAX"},
				ExportRestrictions:  []string{"Iran", "North Korea", "Russia", "China"},
				Certifications:      []string{"CE", "FCC"},
			},
		},
		{
			supplier: "ASUS",
			product: model.Product{
				Name:        "ASUS GeForce RTX 4090 TUF",
				Category:    "GPUs",
				Description: "Workstation-class GPU for local model development",
				Price:       decimal.RequireFromString("1999.00"),
				Specs: datatypes.JSONMap{
					"manufacturer":    "NVIDIA",
					"memory":          "24 GB GDDR6X",
					"memoryBandwidth": "1008 GB/s",
					"fp32Performance": "82.6 TFLOPS",
					"interface":       "PCIe 4.0",
					"tdp":             "450 W",
				},
				Warranty:     "3 years ASUS warranty",
				Stock:        25,
				Availability: model.AvailabilityInStock,
				Benchmarks: datatypes.JSONMap{
					"fp32_tflops":          82.6,
					"fp16_tflops":          165.2,
					"int8_tops":            660.6,
					"memory_bandwidth_gbs": 1008.0,
					"memory_capacity_gb":   24.0,
					"tdp_watts":            450.0,
				},
				SupportedFrameworks: []string{"TensorFlow", "PyTorch", "CUDA"},
				Certifications:      []string{"CE", "FCC"},
			},
		},
	}
}
