package comparison

import (
	"gocompare_api/internal/compare/business/models"
)

const (
	present = "Var"
	absent  = "Yok"
	missing = "-"
)

// numericRow compares a measured value where higher is better.
type numericRow struct {
	label  string
	value  func(*models.Product) (float64, bool)
	format func(float64) string
}

// boolRow compares a feature where having it is better.
type boolRow struct {
	label string
	value func(*models.Product) bool
}

func phone(p *models.Product) *models.PhoneSpecs   { return p.Specifications.Phone }
func laptop(p *models.Product) *models.LaptopSpecs { return p.Specifications.Laptop }

func phoneValue(get func(*models.PhoneSpecs) float64) func(*models.Product) (float64, bool) {
	return func(p *models.Product) (float64, bool) {
		if s := phone(p); s != nil {
			v := get(s)
			return v, v > 0
		}
		return 0, false
	}
}

func laptopValue(get func(*models.LaptopSpecs) float64) func(*models.Product) (float64, bool) {
	return func(p *models.Product) (float64, bool) {
		if s := laptop(p); s != nil {
			v := get(s)
			return v, v > 0
		}
		return 0, false
	}
}

func unit(suffix string) func(float64) string {
	return func(v float64) string { return formatPlain(v) + suffix }
}

var phoneRows = []numericRow{
	{"RAM", phoneValue(func(s *models.PhoneSpecs) float64 { return s.RAMGB }), unit(" GB")},
	{"Depolama", phoneValue(func(s *models.PhoneSpecs) float64 { return s.StorageGB }), formatCapacity},
	{"Batarya", phoneValue(func(s *models.PhoneSpecs) float64 { return s.BatteryMAh }), unit(" mAh")},
	{"Kamera", phoneValue(func(s *models.PhoneSpecs) float64 { return s.CameraMP }), unit(" MP")},
	{"Kamera Puanı", phoneValue(func(s *models.PhoneSpecs) float64 { return float64(s.CameraScore) }), formatScore},
	{"Performans Puanı", phoneValue(func(s *models.PhoneSpecs) float64 { return float64(s.PerformanceScore) }), formatScore},
	{"Batarya Puanı", phoneValue(func(s *models.PhoneSpecs) float64 { return float64(s.BatteryScore) }), formatScore},
	{"Ekran Puanı", phoneValue(func(s *models.PhoneSpecs) float64 { return float64(s.DisplayScore) }), formatScore},
}

var phoneFlags = []boolRow{
	{"OLED Ekran", func(p *models.Product) bool { return phone(p) != nil && phone(p).OLED }},
}

var laptopRows = []numericRow{
	{"RAM", laptopValue(func(s *models.LaptopSpecs) float64 { return s.RAMGB }), unit(" GB")},
	{"Depolama", laptopValue(func(s *models.LaptopSpecs) float64 { return s.StorageGB }), formatCapacity},
	{"Ekran Boyutu", laptopValue(func(s *models.LaptopSpecs) float64 { return s.ScreenInches }), unit(`"`)},
	{"Performans Puanı", laptopValue(func(s *models.LaptopSpecs) float64 { return float64(s.PerformanceScore) }), formatScore},
	{"Ekran Puanı", laptopValue(func(s *models.LaptopSpecs) float64 { return float64(s.DisplayScore) }), formatScore},
	{"Ekran Kartı Puanı", laptopValue(func(s *models.LaptopSpecs) float64 { return float64(s.GPUScore) }), formatScore},
}

var laptopFlags = []boolRow{
	{"Harici Ekran Kartı", func(p *models.Product) bool { return laptop(p) != nil && laptop(p).DedicatedGPU }},
	{"SSD", func(p *models.Product) bool { return laptop(p) != nil && laptop(p).StorageType == "SSD" }},
}

var commonRows = []numericRow{
	{"Genel Puan", func(p *models.Product) (float64, bool) {
		v := float64(p.Specifications.OverallScore)
		return v, v > 0
	}, formatScore},
	{"Kullanıcı Puanı", func(p *models.Product) (float64, bool) {
		v := p.Specifications.Stars
		return v, v > 0
	}, unit("/5")},
	{"Değerlendirme Sayısı", func(p *models.Product) (float64, bool) {
		v := float64(p.Specifications.ReviewsCount)
		return v, v > 0
	}, formatCount},
}

// SpecTable builds the field-by-field comparison of two products. Category
// rows are included when either product carries that category's specs.
func SpecTable(a, b *models.Product) []models.SpecRow {
	var rows []models.SpecRow
	if phone(a) != nil || phone(b) != nil {
		rows = appendNumeric(rows, a, b, phoneRows)
		rows = appendFlags(rows, a, b, phoneFlags)
	}
	if laptop(a) != nil || laptop(b) != nil {
		rows = appendNumeric(rows, a, b, laptopRows)
		rows = appendFlags(rows, a, b, laptopFlags)
	}
	return appendNumeric(rows, a, b, commonRows)
}

func appendNumeric(rows []models.SpecRow, a, b *models.Product, defs []numericRow) []models.SpecRow {
	for _, d := range defs {
		va, okA := d.value(a)
		vb, okB := d.value(b)
		if !okA && !okB {
			continue
		}
		row := models.SpecRow{Label: d.label, ValueA: missing, ValueB: missing}
		if okA {
			row.ValueA = d.format(va)
		}
		if okB {
			row.ValueB = d.format(vb)
		}
		switch {
		case !okB || (okA && va > vb):
			row.Winner = models.WinnerA
		case !okA || vb > va:
			row.Winner = models.WinnerB
		default:
			row.Winner = models.WinnerTie
		}
		rows = append(rows, row)
	}
	return rows
}

func appendFlags(rows []models.SpecRow, a, b *models.Product, defs []boolRow) []models.SpecRow {
	for _, d := range defs {
		va, vb := d.value(a), d.value(b)
		row := models.SpecRow{Label: d.label, ValueA: yesNo(va), ValueB: yesNo(vb), Winner: models.WinnerTie}
		switch {
		case va && !vb:
			row.Winner = models.WinnerA
		case vb && !va:
			row.Winner = models.WinnerB
		}
		rows = append(rows, row)
	}
	return rows
}

func yesNo(v bool) string {
	if v {
		return present
	}
	return absent
}
