package locale

import (
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestCanonicalize(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{in: "pt_br", want: "pt-BR"},
		{in: " EN-us ", want: "en-US"},
		{in: "zh-hans", want: "zh-Hans"},
		{in: "SR-LATN", want: "sr-Latn"},
		{in: "es-419", want: "es-419"},
		{in: "ru", want: "ru"},
		{in: "", want: ""},
	}

	for _, tc := range cases {
		got := canonicalize(tc.in)
		if got != tc.want {
			t.Fatalf("canonicalize(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestNormalize(t *testing.T) {
	for in, want := range map[string]string{
		"fr":      "fr",
		"pt_BR":   "pt-BR",
		"zh-hant": "zh-Hant",
		"fr-ca":   "fr-CA",
	} {
		got, err := Normalize(in)
		if err != nil {
			t.Fatalf("Normalize(%q) error: %v", in, err)
		}
		if got != want {
			t.Errorf("Normalize(%q) = %q, want %q", in, got, want)
		}
	}

	for _, bad := range []string{"", "   ", "en-!!"} {
		if _, err := Normalize(bad); err == nil {
			t.Errorf("Normalize(%q) succeeded, want error", bad)
		}
	}
}

func TestMatches(t *testing.T) {
	if !Matches("pt_br", "pt-BR") {
		t.Error("pt_br should match pt-BR")
	}
	if Matches("pt", "pt-BR") {
		t.Error("pt should not match pt-BR")
	}
}

func TestSort(t *testing.T) {
	codes := []string{"zh-Hant", "fr-CA", "de", "sr-Latn", "fr", "sr-Cyrl", "af"}
	Sort(codes)
	want := []string{"af", "de", "fr", "fr-CA", "sr-Cyrl", "sr-Latn", "zh-Hant"}
	if diff := cmp.Diff(want, codes); diff != "" {
		t.Fatalf("Sort (-want +got):\n%s", diff)
	}
}

func TestTargets(t *testing.T) {
	available := []string{"fr", "en", "de", "es", "ja"}

	t.Run("drops source and sorts", func(t *testing.T) {
		got := Targets(available, "en", nil, nil)
		if diff := cmp.Diff([]string{"de", "es", "fr", "ja"}, got); diff != "" {
			t.Fatalf("(-want +got):\n%s", diff)
		}
	})

	t.Run("include replaces available and dedupes", func(t *testing.T) {
		got := Targets(available, "en", []string{"it", "fr", "FR", "en"}, nil)
		if diff := cmp.Diff([]string{"fr", "it"}, got); diff != "" {
			t.Fatalf("(-want +got):\n%s", diff)
		}
	})

	t.Run("exclude", func(t *testing.T) {
		got := Targets(available, "en", nil, []string{"JA", "es"})
		if diff := cmp.Diff([]string{"de", "fr"}, got); diff != "" {
			t.Fatalf("(-want +got):\n%s", diff)
		}
	})

	t.Run("nothing available", func(t *testing.T) {
		if got := Targets(nil, "en", nil, nil); len(got) != 0 {
			t.Fatalf("Targets(nil) = %v, want empty", got)
		}
	})
}

func TestTargetPath(t *testing.T) {
	src := filepath.Join("data", "Index.en.resx")

	if got, want := TargetPath(src, "en", "fr"), filepath.Join("data", "Index.fr.resx"); got != want {
		t.Errorf("TargetPath = %q, want %q", got, want)
	}
	if got, want := TargetPath("Pages.Home.EN.resx", "en", "zh-Hans"), "Pages.Home.zh-Hans.resx"; got != want {
		t.Errorf("TargetPath(dotted) = %q, want %q", got, want)
	}
	if got := TargetPath("Strings.resx", "en", "fr"); got != "" {
		t.Errorf("TargetPath(no segment) = %q, want empty", got)
	}
	if got := TargetPath("Strings.de.resx", "en", "fr"); got != "" {
		t.Errorf("TargetPath(other locale) = %q, want empty", got)
	}
}

func TestFromPath(t *testing.T) {
	if got := FromPath("/x/Index.fr.resx"); got != "fr" {
		t.Errorf("FromPath = %q, want fr", got)
	}
	if got := FromPath("Strings.resx"); got != "" {
		t.Errorf("FromPath(no segment) = %q, want empty", got)
	}
}
