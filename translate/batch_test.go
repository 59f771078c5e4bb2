package translate

import (
	"encoding/json"
	"fmt"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/google/go-cmp/cmp"
)

func localeList(n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = fmt.Sprintf("l%02d", i)
	}
	return out
}

func TestBatchCount(t *testing.T) {
	tests := []struct {
		chars, locales, budget, want int
	}{
		{500, 30, 10000, 2},
		{100, 5, 10000, 1},
		{10000, 1, 10000, 1},
		{10001, 1, 10000, 2},
		{0, 10, 10000, 0},
		{100, 0, 10000, 0},
		{500, 30, 0, 2}, // default budget
		{2500, 12, 10000, 3},
	}
	for _, tc := range tests {
		if got := BatchCount(tc.chars, tc.locales, tc.budget); got != tc.want {
			t.Errorf("BatchCount(%d, %d, %d) = %d, want %d", tc.chars, tc.locales, tc.budget, got, tc.want)
		}
	}
}

func TestPlanBatches_SplitsInTwo(t *testing.T) {
	locales := localeList(30)

	groups := PlanBatches(locales, 500, 10000)

	if len(groups) != 2 {
		t.Fatalf("got %d groups, want 2", len(groups))
	}
	if len(groups[0]) != 15 || len(groups[1]) != 15 {
		t.Fatalf("group sizes = %d,%d, want 15,15", len(groups[0]), len(groups[1]))
	}
	if diff := cmp.Diff(locales, append(append([]string{}, groups[0]...), groups[1]...)); diff != "" {
		t.Fatalf("order not preserved (-want +got):\n%s", diff)
	}
}

func TestPlanBatches_NoSplit(t *testing.T) {
	locales := []string{"de", "es", "fr", "it", "ja"}

	groups := PlanBatches(locales, 100, 10000)

	if len(groups) != 1 {
		t.Fatalf("got %d groups, want 1", len(groups))
	}
	if &groups[0][0] != &locales[0] || len(groups[0]) != len(locales) {
		t.Fatal("single group should be the input slice itself")
	}
}

func TestPlanBatches_UnevenSplit(t *testing.T) {
	locales := localeList(10)

	groups := PlanBatches(locales, 3000, 10000) // ceil(30000/10000) = 3

	var sizes []int
	var flat []string
	for _, g := range groups {
		sizes = append(sizes, len(g))
		flat = append(flat, g...)
	}
	if diff := cmp.Diff([]int{4, 3, 3}, sizes); diff != "" {
		t.Errorf("sizes (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(locales, flat); diff != "" {
		t.Errorf("order (-want +got):\n%s", diff)
	}
}

func TestPlanBatches_CapsAtOneLocalePerGroup(t *testing.T) {
	locales := []string{"fr", "de", "fr"}

	groups := PlanBatches(locales, 50000, 10000)

	want := [][]string{{"fr"}, {"de"}, {"fr"}}
	if diff := cmp.Diff(want, groups); diff != "" {
		t.Fatalf("(-want +got):\n%s", diff)
	}
}

func TestPlanBatches_NoLocales(t *testing.T) {
	if groups := PlanBatches(nil, 500, 10000); len(groups) != 0 {
		t.Fatalf("PlanBatches(nil) = %v, want no groups", groups)
	}
}

func TestPlanBatches_GroupsDoNotAlias(t *testing.T) {
	locales := localeList(4)
	groups := PlanBatches(locales, 5000, 10000) // 2 groups of 2

	groups[0] = append(groups[0], "zz")
	if locales[2] != "l02" {
		t.Fatalf("appending to group 0 overwrote group 1: %v", locales)
	}
}

func TestPayloadSize(t *testing.T) {
	// [{"text":"a<b"}] is 16 characters; '<' must not be escaped.
	if got := PayloadSize([]string{"a<b"}); got != 16 {
		t.Errorf("PayloadSize = %d, want 16", got)
	}
	// Non-ASCII counts characters, not bytes.
	if got := PayloadSize([]string{"où"}); got != len(`[{"text":"où"}]`)-1 {
		t.Errorf("PayloadSize(où) = %d", got)
	}
	if got := PayloadSize(nil); got != 2 {
		t.Errorf("PayloadSize(nil) = %d, want 2 ([])", got)
	}
	long := strings.Repeat("x", 100)
	if PayloadSize([]string{long, long}) <= 200 {
		t.Error("PayloadSize should include both texts")
	}
	// Invalid UTF-8 is sent as \ufffd and still counted.
	if got := PayloadSize([]string{"\xff"}); got != len(`[{"text":"\ufffd"}]`) {
		t.Errorf("PayloadSize(invalid utf-8) = %d, want %d", got, len(`[{"text":"\ufffd"}]`))
	}
}

func TestPayloadSizeMatchesRequestBody(t *testing.T) {
	texts := []string{"Hello <b>world</b>", "où es-tu?", "日本語", ""}
	body := encodeTexts(texts)
	if got, want := PayloadSize(texts), utf8.RuneCount(body); got != want {
		t.Fatalf("PayloadSize = %d, request body has %d characters", got, want)
	}
	var decoded []requestText
	if err := json.Unmarshal(body, &decoded); err != nil {
		t.Fatalf("request body is not JSON: %v", err)
	}
	for i, d := range decoded {
		if d.Text != texts[i] {
			t.Errorf("body[%d] = %q, want %q", i, d.Text, texts[i])
		}
	}
}
