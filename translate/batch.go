package translate

import (
	"bytes"
	"encoding/json"
	"unicode/utf8"
)

// DefaultCharBudget is the per-request character budget of the translator:
// source characters multiplied by the number of target locales in one call.
const DefaultCharBudget = 10000

// requestText is one element of a translate request body.
type requestText struct {
	Text string `json:"text"`
}

// encodeTexts serializes texts as the translate request body. HTML escaping
// is disabled so the body carries the text as written.
func encodeTexts(texts []string) []byte {
	body := make([]requestText, len(texts))
	for i, t := range texts {
		body[i] = requestText{Text: t}
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(body); err != nil {
		// Structs of plain string fields always encode.
		panic("translate: encoding request body: " + err.Error())
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n"))
}

// PayloadSize returns the character count of the serialized request body
// for texts.
func PayloadSize(texts []string) int {
	return utf8.RuneCount(encodeTexts(texts))
}

// BatchCount returns ceil(chars*locales/budget). A non-positive budget
// selects DefaultCharBudget.
func BatchCount(chars, locales, budget int) int {
	if budget <= 0 {
		budget = DefaultCharBudget
	}
	total := chars * locales
	if total <= 0 {
		return 0
	}
	return (total + budget - 1) / budget
}

// PlanBatches partitions locales into request groups so that each request
// stays within budget. The source text is never split: only the number of
// target locales per request shrinks.
//
// With no locales there are no groups. When one request suffices the single
// group is locales itself. Otherwise locales are split into BatchCount
// contiguous groups (at most one per locale) whose sizes differ by at most
// one, earlier groups taking the remainder. Order is preserved and nothing
// is deduplicated.
func PlanBatches(locales []string, chars, budget int) [][]string {
	if len(locales) == 0 {
		return nil
	}
	n := BatchCount(chars, len(locales), budget)
	if n <= 1 {
		return [][]string{locales}
	}
	if n > len(locales) {
		n = len(locales)
	}
	return splitEven(locales, n)
}

func splitEven(items []string, n int) [][]string {
	size, rem := len(items)/n, len(items)%n
	groups := make([][]string, 0, n)
	start := 0
	for i := 0; i < n; i++ {
		end := start + size
		if i < rem {
			end++
		}
		groups = append(groups, items[start:end:end])
		start = end
	}
	return groups
}
