package specs

import (
	"regexp"

	"gocompare_api/internal/compare/business/models"
)

var (
	ssd = map[string]string{"storage_type": "SSD"}
	hdd = map[string]string{"storage_type": "HDD"}
)

var LaptopRules = []Rule{
	{Field: "ram_gb", Pattern: regexp.MustCompile(`(\d+)\s*gb\s*(?:ram|ddr\d?|lpddr\d?)`)},
	{Field: "ram_gb", Pattern: regexp.MustCompile(`(\d+)\s*gb`), Max: 64},
	{Field: "storage_gb", Pattern: regexp.MustCompile(`(\d+)\s*tb\s*(?:ssd|nvme|m\.2)`), Scale: 1024, Tags: ssd},
	{Field: "storage_gb", Pattern: regexp.MustCompile(`(\d+)\s*gb\s*(?:ssd|nvme|m\.2)`), Tags: ssd},
	{Field: "storage_gb", Pattern: regexp.MustCompile(`(\d+)\s*tb\s*hdd`), Scale: 1024, Tags: hdd},
	{Field: "storage_gb", Pattern: regexp.MustCompile(`(\d+)\s*gb\s*hdd`), Tags: hdd},
	{Field: "storage_gb", Pattern: regexp.MustCompile(`(\d+)\s*tb`), Scale: 1024},
	{Field: "screen_inches", Pattern: regexp.MustCompile(`(\d{2}(?:[.,]\d)?)\s*(?:"|''|”|inç|inch|in\b)`), Min: 10, Max: 21},
	{Field: "gpu", Pattern: regexp.MustCompile(`rtx|gtx|nvidia`), Flag: true},
	{Field: "gpu_model", Pattern: regexp.MustCompile(`(?:rtx|gtx)\s*\d{3,4}(?:\s*ti)?`), Text: true},
}

func buildLaptop(f Facts, stars float64) models.Specifications {
	l := &models.LaptopSpecs{
		DedicatedGPU: f.Flags["gpu"],
		GPUModel:     f.Strings["gpu_model"],
		StorageType:  f.Strings["storage_type"],
	}
	labels := map[string]string{}

	if v, ok := f.Number("ram_gb"); ok {
		l.RAMGB = v
		labels["RAM"] = formatCapacity(v)
	}
	if v, ok := f.Number("storage_gb"); ok {
		l.StorageGB = v
		labels["Depolama"] = formatCapacity(v)
		if l.StorageType != "" {
			labels["Depolama"] += " " + l.StorageType
		}
	}
	if v, ok := f.Number("screen_inches"); ok {
		l.ScreenInches = v
		labels["Ekran"] = formatNumber(v) + `"`
	}
	switch {
	case l.GPUModel != "":
		labels["Ekran Kartı"] = l.GPUModel
	case l.DedicatedGPU:
		labels["Ekran Kartı"] = "Harici"
	}

	l.PerformanceScore = capped(stars * 1.9)
	l.DisplayScore = displayScore(l.ScreenInches)
	l.GPUScore = 6
	if l.DedicatedGPU {
		l.GPUScore = 9
	}

	overall := float64(l.PerformanceScore)*0.35 +
		float64(l.DisplayScore)*0.25 +
		float64(l.GPUScore)*0.25 +
		float64(starScore(stars))*0.15

	return models.Specifications{
		OverallScore: round(overall),
		SpecLabels:   labels,
		Laptop:       l,
	}
}

func displayScore(inches float64) int {
	switch {
	case inches >= 17:
		return 9
	case inches >= 15:
		return 8
	}
	return 7
}
