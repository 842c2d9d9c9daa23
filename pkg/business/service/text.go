package service

import (
	"html"
	"regexp"
	"strings"
	"unicode/utf8"
)

var (
	tagPattern   = regexp.MustCompile(`<[^>]*>`)
	linkPattern  = regexp.MustCompile(`https?://[^\s]+`)
	spacePattern = regexp.MustCompile(`\s+`)
)

const ellipsis = "…"

// TextService holds rune-safe helpers shared by the name and description cleaners.
type TextService struct{}

func NewTextService() *TextService {
	return &TextService{}
}

func (ts *TextService) RemoveTags(input string) string {
	return tagPattern.ReplaceAllString(html.UnescapeString(input), " ")
}

func (ts *TextService) RemoveLinks(input string) string {
	return linkPattern.ReplaceAllString(input, "")
}

func (ts *TextService) CollapseSpaces(input string) string {
	return strings.TrimSpace(spacePattern.ReplaceAllString(input, " "))
}

// Truncate cuts input to at most length runes.
func (ts *TextService) Truncate(input string, length int) string {
	if length <= 0 {
		return ""
	}
	if utf8.RuneCountInString(input) <= length {
		return input
	}
	return string([]rune(input)[:length])
}

// TruncateWithEllipsis keeps the result within length runes, the ellipsis included.
func (ts *TextService) TruncateWithEllipsis(input string, length int) string {
	if utf8.RuneCountInString(input) <= length {
		return input
	}
	if length <= 1 {
		return ts.Truncate(ellipsis, length)
	}
	cut := strings.TrimRight(ts.Truncate(input, length-1), " ")
	return cut + ellipsis
}

func (ts *TextService) FirstWords(input string, n int) string {
	words := strings.Fields(input)
	if len(words) > n {
		words = words[:n]
	}
	return strings.Join(words, " ")
}

func (ts *TextService) ClearDescription(input string) string {
	return ts.CollapseSpaces(ts.RemoveLinks(ts.RemoveTags(input)))
}
