package resx

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

type entryView struct {
	Name, Value, Comment string
}

func view(f *File) []entryView {
	var out []entryView
	for _, e := range f.Entries() {
		out = append(out, entryView{e.Name, e.Value, e.Comment})
	}
	return out
}

// ---------------------------------------------------------------------------
// Parse tests
// ---------------------------------------------------------------------------

func TestParseFile_KnownCatalog(t *testing.T) {
	f, err := ParseFile(filepath.Join("testdata", "Test.en.resx"))
	if err != nil {
		t.Fatalf("ParseFile: %v", err)
	}

	want := []entryView{
		{Name: "Greetings", Value: "Hello world, this is a test.... only a test!"},
		{Name: "MyFriend", Value: "Where have you gone?", Comment: "Shown when a friend is offline"},
	}
	if diff := cmp.Diff(want, view(f)); diff != "" {
		t.Fatalf("entries mismatch (-want +got):\n%s", diff)
	}
	if e := f.Entries()[0]; e.Space != "preserve" {
		t.Errorf("Greetings xml:space = %q, want preserve", e.Space)
	}
}

func TestParse_UnescapesValues(t *testing.T) {
	f, err := ParseFile(filepath.Join("testdata", "Index.en.resx"))
	if err != nil {
		t.Fatalf("ParseFile: %v", err)
	}
	v, ok := f.Get("SurveyTitle")
	if !ok || v != "Take our survey & tell us what you think" {
		t.Errorf("SurveyTitle = %q ok=%v", v, ok)
	}
	if f.Index("HelloWorld") != 1 {
		t.Errorf("Index(HelloWorld) = %d, want 1", f.Index("HelloWorld"))
	}
	if f.Index("Missing") != -1 {
		t.Errorf("Index(Missing) = %d, want -1", f.Index("Missing"))
	}
}

func TestParse_EmptyCatalog(t *testing.T) {
	f, err := Parse([]byte(`<?xml version="1.0" encoding="utf-8"?><root></root>`))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if f.Len() != 0 {
		t.Fatalf("Len() = %d, want 0", f.Len())
	}
}

func TestParse_SelfClosingAndTypedData(t *testing.T) {
	src := `<root>
  <data name="Empty" />
  <data name="Icon" type="System.Resources.ResXFileRef, System.Windows.Forms">
    <value>icon.ico;System.Drawing.Icon</value>
  </data>
</root>`
	f, err := Parse([]byte(src))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if f.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", f.Len())
	}
	if v, _ := f.Get("Empty"); v != "" {
		t.Errorf("Empty = %q, want empty", v)
	}
	if e := f.Entries()[1]; !strings.HasPrefix(e.Type, "System.Resources.ResXFileRef") {
		t.Errorf("Icon type = %q", e.Type)
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"wrong root", `<resources><string name="a">x</string></resources>`},
		{"no root", `<?xml version="1.0"?>`},
		{"unterminated", `<root><data name="a"><value>x</value></data>`},
		{"nameless data", `<root><data><value>x</value></data></root>`},
		{"duplicate", `<root><data name="a"/><data name="a"/></root>`},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := Parse([]byte(tc.src)); err == nil {
				t.Fatalf("Parse(%s) succeeded, want error", tc.name)
			}
		})
	}

	_, err := Parse([]byte(`<root><data name="a"/><data name="a"/></root>`))
	if !errors.Is(err, ErrDuplicateName) {
		t.Errorf("duplicate error = %v, want ErrDuplicateName", err)
	}
}

// ---------------------------------------------------------------------------
// Round trip
// ---------------------------------------------------------------------------

func TestRoundTrip_UnmodifiedIsByteIdentical(t *testing.T) {
	for _, name := range []string{"Test.en.resx", "Index.en.resx"} {
		data, err := os.ReadFile(filepath.Join("testdata", name))
		if err != nil {
			t.Fatalf("ReadFile: %v", err)
		}
		f, err := Parse(data)
		if err != nil {
			t.Fatalf("Parse(%s): %v", name, err)
		}
		if got := f.Marshal(); !bytes.Equal(got, data) {
			t.Errorf("%s: round trip differs:\n%s", name, cmp.Diff(string(data), string(got)))
		}
	}
}

func TestRoundTrip_WriteAndReparse(t *testing.T) {
	f, err := ParseFile(filepath.Join("testdata", "Test.en.resx"))
	if err != nil {
		t.Fatalf("ParseFile: %v", err)
	}

	out := filepath.Join(t.TempDir(), "nested", "test-7.en.resx")
	if err := f.WriteFile(out); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	again, err := ParseFile(out)
	if err != nil {
		t.Fatalf("ParseFile(written): %v", err)
	}
	if diff := cmp.Diff(view(f), view(again)); diff != "" {
		t.Fatalf("reparse mismatch (-first +second):\n%s", diff)
	}
}

func TestMarshal_ModifiedEntryIsEscaped(t *testing.T) {
	f, err := ParseFile(filepath.Join("testdata", "Test.en.resx"))
	if err != nil {
		t.Fatalf("ParseFile: %v", err)
	}
	f.Set("Greetings", "Fish & <chips>\nsecond line")

	out := string(f.Marshal())
	want := "<value>Fish &amp; &lt;chips&gt;\nsecond line</value>"
	if !strings.Contains(out, want) {
		t.Fatalf("output missing %q:\n%s", want, out)
	}
	// Untouched entry keeps its comment and original bytes.
	if !strings.Contains(out, "<comment>Shown when a friend is offline</comment>") {
		t.Error("MyFriend comment lost")
	}

	again, err := Parse([]byte(out))
	if err != nil {
		t.Fatalf("Parse(modified): %v", err)
	}
	if v, _ := again.Get("Greetings"); v != "Fish & <chips>\nsecond line" {
		t.Errorf("Greetings after reparse = %q", v)
	}
}

func TestNewAndAdd(t *testing.T) {
	f := New()
	if !f.Add("Title", "Hello") {
		t.Fatal("Add(Title) = false")
	}
	if f.Add("Title", "again") {
		t.Fatal("Add(duplicate) = true")
	}

	again, err := Parse(f.Marshal())
	if err != nil {
		t.Fatalf("Parse(New): %v\n%s", err, f.Marshal())
	}
	if v, ok := again.Get("Title"); !ok || v != "Hello" {
		t.Errorf("Title = %q ok=%v", v, ok)
	}
}

// ---------------------------------------------------------------------------
// Clone
// ---------------------------------------------------------------------------

func TestClone_IsolatesEntryValues(t *testing.T) {
	f, err := ParseFile(filepath.Join("testdata", "Test.en.resx"))
	if err != nil {
		t.Fatalf("ParseFile: %v", err)
	}
	orig := f.Marshal()

	fr := f.Clone()
	de := f.Clone()
	fr.Set("Greetings", "Bonjour")
	de.Entries()[0].Value = "Hallo"

	if v, _ := f.Get("Greetings"); v != "Hello world, this is a test.... only a test!" {
		t.Errorf("source mutated: %q", v)
	}
	if v, _ := fr.Get("Greetings"); v != "Bonjour" {
		t.Errorf("fr Greetings = %q", v)
	}
	if v, _ := de.Get("Greetings"); v != "Hallo" {
		t.Errorf("de Greetings = %q", v)
	}
	if !bytes.Equal(f.Marshal(), orig) {
		t.Error("source marshal changed after clone mutation")
	}
}
