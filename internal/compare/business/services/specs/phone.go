package specs

import (
	"regexp"

	"gocompare_api/internal/compare/business/models"
)

// PhoneRules extract memory, battery, camera and panel facts from a phone
// title. Without an explicit "ram" token, the first of several GB values is
// taken as RAM when it is small enough to be one.
var PhoneRules = []Rule{
	{Field: "ram_gb", Pattern: regexp.MustCompile(`(\d+)\s*gb\s*ram`)},
	{Field: "ram_gb", Pattern: regexp.MustCompile(`(\d+)\s*gb`), MinMatches: 2, Max: 24},
	{Field: "storage_gb", Pattern: regexp.MustCompile(`(\d+)\s*tb`), Scale: 1024},
	{Field: "storage_gb", Pattern: regexp.MustCompile(`(\d+)\s*gb`), Pick: PickLast},
	{Field: "battery_mah", Pattern: regexp.MustCompile(`(\d+)\s*mah`)},
	{Field: "camera_mp", Pattern: regexp.MustCompile(`(\d+(?:[.,]\d+)?)\s*mp`), Pick: PickMax},
	{Field: "oled", Pattern: regexp.MustCompile(`amoled|oled`), Flag: true},
}

func buildPhone(f Facts, stars float64) models.Specifications {
	p := &models.PhoneSpecs{OLED: f.Flags["oled"]}
	labels := map[string]string{}

	if v, ok := f.Number("ram_gb"); ok {
		p.RAMGB = v
		labels["RAM"] = formatCapacity(v)
	}
	if v, ok := f.Number("storage_gb"); ok {
		p.StorageGB = v
		labels["Depolama"] = formatCapacity(v)
	}
	if v, ok := f.Number("battery_mah"); ok {
		p.BatteryMAh = v
		labels["Batarya"] = formatNumber(v) + " mAh"
	}
	if v, ok := f.Number("camera_mp"); ok {
		p.CameraMP = v
		labels["Kamera"] = formatNumber(v) + " MP"
	}
	if p.OLED {
		labels["Ekran"] = "OLED"
	}

	p.CameraScore = cameraScore(p.CameraMP, stars)
	p.BatteryScore = batteryScore(p.BatteryMAh, stars)
	p.PerformanceScore = capped(stars * 1.9)
	p.DisplayScore = capped(stars * 1.8)
	if p.OLED {
		p.DisplayScore = 9
	}

	overall := float64(p.CameraScore)*0.30 +
		float64(p.PerformanceScore)*0.30 +
		float64(p.BatteryScore)*0.20 +
		float64(p.DisplayScore)*0.20

	return models.Specifications{
		OverallScore: round(overall),
		SpecLabels:   labels,
		Phone:        p,
	}
}

func cameraScore(mp, stars float64) int {
	switch {
	case mp >= 108:
		return 10
	case mp >= 64:
		return 8
	case mp >= 48:
		return 7
	case mp >= 6:
		return 6
	}
	return starScore(stars)
}

func batteryScore(mah, stars float64) int {
	switch {
	case mah >= 5000:
		return 10
	case mah >= 4500:
		return 9
	case mah >= 4000:
		return 7
	case mah > 0:
		return 5
	}
	return capped(stars * 1.8)
}
