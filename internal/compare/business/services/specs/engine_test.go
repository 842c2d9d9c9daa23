package specs

import (
	"regexp"
	"testing"

	"gocompare_api/internal/compare/business/models"
)

func TestPhoneScenarioWithoutCamera(t *testing.T) {
	e := NewEngine()
	s := e.Infer(Phone, "Samsung Galaxy A54 8GB 128GB (Siyah) Türkiye Garantili", 4.5)

	if s.Phone == nil {
		t.Fatal("expected phone specs")
	}
	if s.Phone.RAMGB != 8 || s.Phone.StorageGB != 128 {
		t.Fatalf("expected ram 8 and storage 128, got %v and %v", s.Phone.RAMGB, s.Phone.StorageGB)
	}
	if s.Phone.CameraMP != 0 || s.Phone.CameraScore != 9 {
		t.Fatalf("expected star-derived camera score 9, got mp=%v score=%d", s.Phone.CameraMP, s.Phone.CameraScore)
	}
	if s.Phone.BatteryScore != 8 || s.Phone.PerformanceScore != 9 || s.Phone.DisplayScore != 8 {
		t.Fatalf("unexpected sub-scores %+v", *s.Phone)
	}
	if s.OverallScore != 9 {
		t.Fatalf("expected overall 9, got %d", s.OverallScore)
	}
	if s.SpecLabels["RAM"] != "8 GB" || s.SpecLabels["Depolama"] != "128 GB" {
		t.Fatalf("unexpected labels %v", s.SpecLabels)
	}
	if _, ok := s.SpecLabels["Kamera"]; ok {
		t.Fatal("camera label must be omitted when unknown")
	}
}

func TestPhoneExtraction(t *testing.T) {
	e := NewEngine()
	s := e.Infer(Phone, "Xiaomi Redmi Note 13 Pro 8GB RAM 256GB 200MP + 8MP 5000mAh AMOLED", 4)

	p := s.Phone
	if p.RAMGB != 8 || p.StorageGB != 256 || p.BatteryMAh != 5000 || p.CameraMP != 200 || !p.OLED {
		t.Fatalf("unexpected extraction %+v", *p)
	}
	if p.CameraScore != 10 || p.BatteryScore != 10 || p.PerformanceScore != 8 || p.DisplayScore != 9 {
		t.Fatalf("unexpected sub-scores %+v", *p)
	}
	if s.OverallScore != 9 {
		t.Fatalf("expected overall 9, got %d", s.OverallScore)
	}

	tb := e.Infer(Phone, "iPhone 15 Pro Max 1TB 48MP 4422 mAh", 5)
	if tb.Phone.StorageGB != 1024 || tb.SpecLabels["Depolama"] != "1 TB" {
		t.Fatalf("unexpected storage %v / %q", tb.Phone.StorageGB, tb.SpecLabels["Depolama"])
	}
	if tb.Phone.CameraScore != 7 || tb.Phone.BatteryScore != 7 {
		t.Fatalf("unexpected sub-scores %+v", *tb.Phone)
	}
}

func TestPhoneScoreThresholds(t *testing.T) {
	cameras := []struct {
		mp   float64
		want int
	}{{108, 10}, {64, 8}, {50, 7}, {48, 7}, {12, 6}, {6, 6}}
	for _, c := range cameras {
		if got := cameraScore(c.mp, 0); got != c.want {
			t.Fatalf("cameraScore(%v) = %d, want %d", c.mp, got, c.want)
		}
	}
	if got := cameraScore(2, 3); got != 6 {
		t.Fatalf("small camera should fall back to stars, got %d", got)
	}

	batteries := []struct {
		mah  float64
		want int
	}{{6000, 10}, {5000, 10}, {4999, 9}, {4500, 9}, {4499, 7}, {4422, 7}, {4000, 7}, {3999, 5}, {3200, 5}}
	for _, c := range batteries {
		if got := batteryScore(c.mah, 0); got != c.want {
			t.Fatalf("batteryScore(%v) = %d, want %d", c.mah, got, c.want)
		}
	}
	if got := batteryScore(0, 5); got != 9 {
		t.Fatalf("unknown battery should derive from stars, got %d", got)
	}
}

func TestPhoneOverallAlwaysInRange(t *testing.T) {
	e := NewEngine()
	texts := []string{
		"",
		"200mp 7000mah amoled 16gb ram 1tb",
		"2mp 1000mah 1gb 2gb",
		"telefon 64mp 4500 mah oled",
	}
	for _, text := range texts {
		for i := 0; i <= 60; i++ {
			stars := float64(i) / 10
			s := e.Infer(Phone, text, stars)
			if s.OverallScore < 0 || s.OverallScore > 10 {
				t.Fatalf("overall %d out of range for %q at %v stars", s.OverallScore, text, stars)
			}
		}
	}
}

func TestLaptopExtraction(t *testing.T) {
	e := NewEngine()
	s := e.Infer(Laptop, `ASUS ROG Strix G16 Intel Core i7 13650HX 16GB DDR5 1TB SSD RTX4060 16" Windows 11`, 4.5)

	l := s.Laptop
	if l == nil {
		t.Fatal("expected laptop specs")
	}
	if l.RAMGB != 16 || l.StorageGB != 1024 || l.StorageType != "SSD" || l.ScreenInches != 16 {
		t.Fatalf("unexpected extraction %+v", *l)
	}
	if !l.DedicatedGPU || l.GPUModel != "RTX4060" {
		t.Fatalf("expected RTX4060, got %+v", *l)
	}
	if l.PerformanceScore != 9 || l.DisplayScore != 8 || l.GPUScore != 9 {
		t.Fatalf("unexpected sub-scores %+v", *l)
	}
	if s.OverallScore != 9 {
		t.Fatalf("expected overall 9, got %d", s.OverallScore)
	}
	if s.SpecLabels["Depolama"] != "1 TB SSD" || s.SpecLabels["Ekran Kartı"] != "RTX4060" {
		t.Fatalf("unexpected labels %v", s.SpecLabels)
	}
}

func TestLaptopDefaults(t *testing.T) {
	e := NewEngine()
	s := e.Infer(Laptop, "Lenovo IdeaPad 3 14 İnç 8GB 256GB SSD Intel UHD", 0)

	l := s.Laptop
	if l.RAMGB != 8 || l.StorageGB != 256 || l.ScreenInches != 14 {
		t.Fatalf("unexpected extraction %+v", *l)
	}
	if l.DisplayScore != 7 || l.GPUScore != 6 || l.PerformanceScore != 0 {
		t.Fatalf("unexpected sub-scores %+v", *l)
	}
	if s.OverallScore != 3 {
		t.Fatalf("expected overall 3, got %d", s.OverallScore)
	}

	if got := displayScore(17.3); got != 9 {
		t.Fatalf("displayScore(17.3) = %d", got)
	}
	if got := displayScore(0); got != 7 {
		t.Fatalf("unknown screen should score 7, got %d", got)
	}
}

func TestFallbackCategory(t *testing.T) {
	e := NewEngine()
	s := e.Infer("supurge", "Dyson V15 Detect 660W", 4.3)
	if s.OverallScore != 9 || s.Phone != nil || s.Laptop != nil {
		t.Fatalf("unexpected fallback specs %+v", s)
	}
	if s.SpecLabels == nil || len(s.SpecLabels) != 0 {
		t.Fatalf("expected empty labels, got %v", s.SpecLabels)
	}
	if s.Stars != 4.3 {
		t.Fatalf("expected stars to be kept, got %v", s.Stars)
	}
	if got := e.Infer("arac", "", 5).OverallScore; got != 10 {
		t.Fatalf("expected capped 10, got %d", got)
	}
}

func TestRegisterCategory(t *testing.T) {
	e := NewEngine()
	e.Register("supurge", Category{
		Rules: []Rule{{Field: "watt", Pattern: regexp.MustCompile(`(\d+)\s*w\b`)}},
		Build: func(f Facts, stars float64) models.Specifications {
			w, _ := f.Number("watt")
			return models.Specifications{OverallScore: int(w / 100), SpecLabels: map[string]string{"Güç": formatNumber(w) + " W"}}
		},
	})

	s := e.Infer("supurge", "Dyson V15 Detect 660W", 0)
	if s.OverallScore != 6 || s.SpecLabels["Güç"] != "660 W" {
		t.Fatalf("unexpected custom specs %+v", s)
	}
}
