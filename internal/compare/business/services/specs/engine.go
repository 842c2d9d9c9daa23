package specs

import (
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"gocompare_api/internal/compare/business/models"
)

const (
	Phone  = "telefon"
	Laptop = "laptop"
)

// Category couples the extraction rules of a category slug with the scoring
// that turns extracted facts into a specification bag.
type Category struct {
	Rules []Rule
	Build func(f Facts, stars float64) models.Specifications
}

type Engine struct {
	categories map[string]Category
}

// NewEngine returns an engine with the phone and laptop rule sets registered.
func NewEngine() *Engine {
	e := &Engine{categories: map[string]Category{}}
	e.Register(Phone, Category{Rules: PhoneRules, Build: buildPhone})
	e.Register(Laptop, Category{Rules: LaptopRules, Build: buildLaptop})
	return e
}

func (e *Engine) Register(slug string, c Category) {
	e.categories[slug] = c
}

// Infer derives structured specs and the 0-10 overall score of a product from
// its title and description. Unregistered categories get a score derived from
// the star rating only.
func (e *Engine) Infer(category, text string, stars float64) models.Specifications {
	c, ok := e.categories[category]
	if !ok {
		return models.Specifications{
			Stars:        stars,
			OverallScore: starScore(stars),
			SpecLabels:   map[string]string{},
		}
	}

	facts := Extract(c.Rules, lowerText(text))
	s := c.Build(facts, stars)
	s.Stars = stars
	s.OverallScore = clamp(s.OverallScore)
	if s.SpecLabels == nil {
		s.SpecLabels = map[string]string{}
	}
	return s
}

var dottedCapitalI = strings.NewReplacer("İ", "i")

func lowerText(s string) string {
	return cases.Lower(language.Und).String(dottedCapitalI.Replace(s))
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func formatCapacity(gb float64) string {
	if gb >= 1024 && int(gb)%1024 == 0 {
		return formatNumber(gb/1024) + " TB"
	}
	return formatNumber(gb) + " GB"
}
