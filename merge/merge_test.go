package merge

import (
	"path/filepath"
	"testing"

	"github.com/minios-linux/resxkit/extract"
	"github.com/minios-linux/resxkit/resx"
)

func parse(t *testing.T, name string) *resx.File {
	t.Helper()
	f, err := resx.ParseFile(filepath.Join("..", "resx", "testdata", name))
	if err != nil {
		t.Fatalf("ParseFile(%s): %v", name, err)
	}
	return f
}

func TestApply_TestCatalog(t *testing.T) {
	f := parse(t, "Test.en.resx")
	tm := extract.New(
		[]string{"MyFriend", "Greetings"},
		[]string{"Where have you gone?", "Hello world, this is a test.... only a test!"},
		[]int{1, 0},
	)
	translations := map[string]string{
		"MyFriend":  "We meet again!",
		"Greetings": "This is a fake translation",
	}

	if n := Apply(f, translations, tm); n != 2 {
		t.Fatalf("Apply() = %d, want 2", n)
	}

	entries := f.Entries()
	if entries[0].Name != "Greetings" || entries[0].Value != "This is a fake translation" {
		t.Errorf("entry 0 = %s:%q", entries[0].Name, entries[0].Value)
	}
	if entries[1].Name != "MyFriend" || entries[1].Value != "We meet again!" {
		t.Errorf("entry 1 = %s:%q", entries[1].Name, entries[1].Value)
	}
}

func TestApply_IndexCatalog(t *testing.T) {
	f := parse(t, "Index.en.resx")
	tm := extract.New(
		[]string{"HelloWorld", "Greeting", "SurveyTitle"},
		[]string{"", "", ""},
		[]int{1, 0, 2},
	)
	translations := map[string]string{
		"HelloWorld":  "Goodbye my friend",
		"Greeting":    "From around the world.",
		"SurveyTitle": "I do not like surveys!",
	}

	Apply(f, translations, tm)

	want := []struct{ name, value string }{
		{"Greeting", "From around the world."},
		{"HelloWorld", "Goodbye my friend"},
		{"SurveyTitle", "I do not like surveys!"},
	}
	for i, w := range want {
		e := f.Entries()[i]
		if e.Name != w.name || e.Value != w.value {
			t.Errorf("entry %d = %s:%q, want %s:%q", i, e.Name, e.Value, w.name, w.value)
		}
	}
}

func TestApply_SparseLeavesSourceValue(t *testing.T) {
	f := parse(t, "Index.en.resx")
	tm := extract.Extract(f)

	// Only the middle key translated: the others must keep their source text
	// and the positions must not shift.
	n := Apply(f, map[string]string{"HelloWorld": "Bonjour le monde !"}, tm)
	if n != 1 {
		t.Fatalf("Apply() = %d, want 1", n)
	}
	if v, _ := f.Get("Greeting"); v != "Hello there." {
		t.Errorf("Greeting = %q, want source value", v)
	}
	if v, _ := f.Get("HelloWorld"); v != "Bonjour le monde !" {
		t.Errorf("HelloWorld = %q", v)
	}
	if v, _ := f.Get("SurveyTitle"); v != "Take our survey & tell us what you think" {
		t.Errorf("SurveyTitle = %q, want source value", v)
	}
}

func TestApply_IgnoresUnknownKeysAndStaleOrdinals(t *testing.T) {
	f := parse(t, "Test.en.resx")
	// Ordinal 0 points at Greetings, not at Bogus.
	tm := extract.New([]string{"Bogus", "Far"}, []string{"", ""}, []int{0, 99})

	n := Apply(f, map[string]string{"Bogus": "x", "Far": "y", "Unknown": "z"}, tm)
	if n != 0 {
		t.Fatalf("Apply() = %d, want 0", n)
	}
	if v, _ := f.Get("Greetings"); v != "Hello world, this is a test.... only a test!" {
		t.Errorf("Greetings overwritten: %q", v)
	}
}

func TestApply_OnClonesDoesNotLeak(t *testing.T) {
	src := parse(t, "Test.en.resx")
	tm := extract.Extract(src)

	fr := src.Clone()
	de := src.Clone()
	Apply(fr, map[string]string{"Greetings": "Bonjour"}, tm)
	Apply(de, map[string]string{"Greetings": "Hallo"}, tm)

	if v, _ := src.Get("Greetings"); v != "Hello world, this is a test.... only a test!" {
		t.Errorf("source = %q", v)
	}
	if v, _ := fr.Get("Greetings"); v != "Bonjour" {
		t.Errorf("fr = %q", v)
	}
	if v, _ := de.Get("Greetings"); v != "Hallo" {
		t.Errorf("de = %q", v)
	}
}

func TestCarry(t *testing.T) {
	dst := parse(t, "Test.en.resx")
	existing := resx.New()
	existing.Add("Greetings", "Bonjour tout le monde")
	existing.Add("Obsolete", "old")

	n := Carry(dst, existing, []string{"Greetings", "MyFriend", "Obsolete"})
	if n != 1 {
		t.Fatalf("Carry() = %d, want 1", n)
	}
	if v, _ := dst.Get("Greetings"); v != "Bonjour tout le monde" {
		t.Errorf("Greetings = %q", v)
	}
	if v, _ := dst.Get("MyFriend"); v != "Where have you gone?" {
		t.Errorf("MyFriend = %q", v)
	}
}
