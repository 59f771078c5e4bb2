package settings

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestDataDirAndFilePathUseXDGDataHome(t *testing.T) {
	tmp := t.TempDir()
	t.Setenv("XDG_DATA_HOME", tmp)

	dir, err := DataDir()
	if err != nil {
		t.Fatalf("DataDir() error: %v", err)
	}
	wantDir := filepath.Join(tmp, "resxkit")
	if dir != wantDir {
		t.Fatalf("DataDir() = %q, want %q", dir, wantDir)
	}

	wantPath := filepath.Join(tmp, "resxkit", "auth.json")
	if got := FilePath(); got != wantPath {
		t.Fatalf("FilePath() = %q, want %q", got, wantPath)
	}
}

func TestSaveLoadRemoveLifecycle(t *testing.T) {
	tmp := t.TempDir()
	t.Setenv("XDG_DATA_HOME", tmp)

	if err := SetAPIKey(DefaultProfile, " key1234567890 ", "westeurope", ""); err != nil {
		t.Fatalf("SetAPIKey() error: %v", err)
	}
	if err := SetAPIKey("staging", "other", "", "https://staging.example/"); err != nil {
		t.Fatalf("SetAPIKey(staging) error: %v", err)
	}

	path := filepath.Join(tmp, "resxkit", "auth.json")
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat auth.json: %v", err)
	}
	if info.Mode().Perm() != 0600 {
		t.Fatalf("auth.json mode = %o, want 600", info.Mode().Perm())
	}

	loaded := Load()
	if got := loaded[DefaultProfile]; got == nil || got.Key != "key1234567890" || got.Region != "westeurope" || !got.IsAPI() {
		t.Fatalf("Load() azure = %#v", got)
	}
	if got := Get("staging"); got == nil || got.Endpoint != "https://staging.example/" {
		t.Fatalf("Get(staging) = %#v", got)
	}
	if !reflect.DeepEqual(loaded.Profiles(), []string{"azure", "staging"}) {
		t.Fatalf("Profiles() = %v", loaded.Profiles())
	}

	if err := Remove(DefaultProfile); err != nil {
		t.Fatalf("Remove() error: %v", err)
	}
	if Get(DefaultProfile) != nil {
		t.Fatal("azure still present after Remove")
	}
	if err := Remove("missing"); err != nil {
		t.Fatalf("Remove(missing) error: %v", err)
	}

	if err := RemoveAll(); err != nil {
		t.Fatalf("RemoveAll() error: %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatal("auth.json still exists after RemoveAll")
	}
	if err := RemoveAll(); err != nil {
		t.Fatalf("second RemoveAll() error: %v", err)
	}
}

func TestLoadInvalidFileReturnsEmptyStore(t *testing.T) {
	tmp := t.TempDir()
	t.Setenv("XDG_DATA_HOME", tmp)

	path := filepath.Join(tmp, "resxkit", "auth.json")
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("{not json"), 0600); err != nil {
		t.Fatal(err)
	}

	if store := Load(); len(store) != 0 {
		t.Fatalf("Load() = %v, want empty store", store)
	}
}

func TestResolveKeyOrder(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", t.TempDir())
	t.Setenv(EnvSubscriptionKey, "")

	if key, src := ResolveKey("", DefaultProfile); key != "" || src != "" {
		t.Fatalf("ResolveKey(nothing) = %q, %q", key, src)
	}

	if err := SetAPIKey(DefaultProfile, "stored", "", ""); err != nil {
		t.Fatal(err)
	}
	if key, src := ResolveKey("", DefaultProfile); key != "stored" || src != "store" {
		t.Fatalf("ResolveKey(store) = %q, %q", key, src)
	}

	t.Setenv(EnvSubscriptionKey, "from-env")
	if key, src := ResolveKey("", DefaultProfile); key != "from-env" || src != "env" {
		t.Fatalf("ResolveKey(env) = %q, %q", key, src)
	}

	if key, src := ResolveKey("from-flag", DefaultProfile); key != "from-flag" || src != "flag" {
		t.Fatalf("ResolveKey(flag) = %q, %q", key, src)
	}
}

func TestResolveRegionOrder(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", t.TempDir())
	t.Setenv(EnvRegion, "")

	if err := SetAPIKey(DefaultProfile, "k", "stored-region", ""); err != nil {
		t.Fatal(err)
	}

	cases := []struct {
		flag, env, config, want string
	}{
		{"", "", "", "stored-region"},
		{"", "", "cfg", "cfg"},
		{"", "env", "cfg", "env"},
		{"flag", "env", "cfg", "flag"},
	}
	for _, tc := range cases {
		t.Setenv(EnvRegion, tc.env)
		if got := ResolveRegion(tc.flag, tc.config, DefaultProfile); got != tc.want {
			t.Errorf("ResolveRegion(%q, env=%q, %q) = %q, want %q", tc.flag, tc.env, tc.config, got, tc.want)
		}
	}
}

func TestMaskKey(t *testing.T) {
	if got := MaskKey("short"); got != "****" {
		t.Errorf("MaskKey(short) = %q", got)
	}
	if got := MaskKey("0123456789abcdef"); got != "0123...cdef" {
		t.Errorf("MaskKey(long) = %q", got)
	}
}
