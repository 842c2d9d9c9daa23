package parse

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"

	"gocompare_api/internal/compare/business/models"
)

const (
	MaxNameLength     = 80
	DisplayNameLength = 44
	MatchKeyLength    = 60
	fallbackWords     = 5
	genericName       = "Ürün"
)

// NoiseWords are category and marketing phrases dropped from display names.
var NoiseWords = []string{
	"Apple Türkiye Garantili", "Türkiye Garantili", "Distribütör Garantili", "İthalatçı Garantili",
	"Resmi Distribütör", "Garantili", "Orijinal",
	"Akıllı Cep Telefonu", "Akıllı Telefon", "Cep Telefonu", "Telefon",
	"Dizüstü Bilgisayar", "Oyun Bilgisayarı", "Gaming Laptop", "Laptop", "Notebook",
	"Robot Süpürge", "Dikey Süpürge", "Şarjlı Süpürge", "Elektrikli Süpürge",
}

// ColorWords are variant colors dropped from display names and match keys.
var ColorWords = []string{
	"Gece Yarısı", "Uzay Grisi", "Buz Mavisi", "Yıldız Işığı",
	"Siyah", "Beyaz", "Mavi", "Lacivert", "Kırmızı", "Yeşil", "Sarı", "Mor", "Pembe",
	"Gri", "Gümüş", "Altın", "Turuncu", "Bej", "Kahverengi", "Grafit",
	"Midnight", "Starlight", "Black", "White", "Blue", "Silver", "Gold", "Gray", "Grey",
	"Green", "Purple", "Graphite",
}

// RegionWords are origin and warranty claims dropped from match keys.
var RegionWords = []string{
	"Apple Türkiye Garantili", "Türkiye Garantili", "Distribütör Garantili", "İthalatçı Garantili",
	"Resmi Distribütör", "Garantili", "Türkiye", "Yurt Dışı", "Global Version", "Global", "TR", "EU",
}

const letterOrDigit = `\p{L}\p{N}`

var (
	storePrefix     = regexp.MustCompile(`(?i)^\s*(?:visit\s+the\s+.+?\s+store|.+?\s+mağazasını\s+ziyaret\s+edin)\s*[:|–-]?\s*`)
	asides          = regexp.MustCompile(`\([^)]*\)|\[[^\]]*\]`)
	trailingSegment = regexp.MustCompile(`\s+[–—|-]\s+.*$`)
	trailingPunct   = regexp.MustCompile(`[\s,.;:!?/|–—-]+$`)
	nonWord         = regexp.MustCompile(`[^` + letterOrDigit + `_]`)

	displayNoise  = boundedPattern(true, escapePhrases(NoiseWords))
	displayColors = boundedPattern(true, escapePhrases(ColorWords))
	matchNoise    = boundedPattern(false, append(escapePhrases(foldAll(RegionWords, ColorWords)), `\d+\s*ay`))

	turkishI = strings.NewReplacer("İ", "i", "I", "i", "ı", "i")
)

// CleanProductName returns the ingestion form of an item's title: NFC
// normalized, cut at the first comma or pipe, at most MaxNameLength runes.
func CleanProductName(item models.RawItem) string {
	name := norm.NFC.String(item.String("name", "title"))
	if i := strings.IndexAny(name, ",|"); i >= 0 {
		name = name[:i]
	}
	name = text.CollapseSpaces(name)
	return strings.TrimSpace(text.Truncate(name, MaxNameLength))
}

// FormatName returns the card form of a product name. The result is never
// longer than DisplayNameLength runes and never empty for a non-empty name.
func FormatName(name, brand string) string {
	if name == "" {
		return ""
	}
	raw := text.CollapseSpaces(norm.NFC.String(name))

	s := storePrefix.ReplaceAllString(raw, "")
	s = asides.ReplaceAllString(s, " ")
	s = trailingSegment.ReplaceAllString(s, "")
	s = removeAll(s, displayNoise)
	s = removeAll(s, displayColors)
	s = text.CollapseSpaces(s)
	s = trailingPunct.ReplaceAllString(s, "")

	if nonSpaceCount(s) < 3 {
		s = text.FirstWords(raw, fallbackWords)
	}
	brand = strings.TrimSpace(brand)
	if IsKnownBrand(brand) && s != "" && !strings.HasPrefix(foldTurkish(s), foldTurkish(brand)) {
		s = brand + " " + s
	}
	if s == "" {
		s = genericName
		if IsKnownBrand(brand) {
			s = brand
		}
	}
	return text.TruncateWithEllipsis(s, DisplayNameLength)
}

// NormalizeForMatch builds the dedup key of a product: brand and name folded
// to lower case with region, color and duration tokens and every non-word
// character removed, at most MatchKeyLength runes.
func NormalizeForMatch(name, brand string) string {
	key := foldTurkish(strings.TrimSpace(brand + " " + name))
	key = text.CollapseSpaces(key)
	key = removeAll(key, matchNoise)
	key = nonWord.ReplaceAllString(key, "")
	return text.Truncate(key, MatchKeyLength)
}

// foldTurkish lowercases s treating the four Turkish i letters as one.
func foldTurkish(s string) string {
	return cases.Lower(language.Und).String(turkishI.Replace(s))
}

func foldAll(lists ...[]string) []string {
	var out []string
	for _, l := range lists {
		for _, w := range l {
			out = append(out, foldTurkish(w))
		}
	}
	return out
}

// escapePhrases quotes each phrase for use in an alternation. Inner spaces
// match any whitespace run and every i letter matches its Turkish variants.
func escapePhrases(phrases []string) []string {
	out := make([]string, 0, len(phrases))
	for _, p := range phrases {
		var b strings.Builder
		for i, word := range strings.Fields(p) {
			if i > 0 {
				b.WriteString(`\s+`)
			}
			for _, r := range word {
				switch r {
				case 'i', 'ı', 'I', 'İ':
					b.WriteString(`[iıIİ]`)
				default:
					b.WriteString(regexp.QuoteMeta(string(r)))
				}
			}
		}
		out = append(out, b.String())
	}
	return out
}

// boundedPattern matches any alternative as a whole word. Go's \b only knows
// ASCII letters, so the boundaries are spelled out.
func boundedPattern(ignoreCase bool, alternatives []string) *regexp.Regexp {
	flags := ""
	if ignoreCase {
		flags = "(?i)"
	}
	return regexp.MustCompile(flags + `(^|[^` + letterOrDigit + `])(?:` + strings.Join(alternatives, "|") + `)([^` + letterOrDigit + `]|$)`)
}

// removeAll deletes matches until none remain; adjacent words share a
// separator, so one pass can miss every second word.
func removeAll(s string, re *regexp.Regexp) string {
	for {
		next := re.ReplaceAllString(s, "${1}${2}")
		if next == s {
			return s
		}
		s = next
	}
}

func nonSpaceCount(s string) int {
	n := 0
	for _, r := range s {
		if !unicode.IsSpace(r) {
			n++
		}
	}
	return n
}
