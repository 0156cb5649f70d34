package rawcookie

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
)

func openTestJar(t *testing.T) (*Jar, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cookies.db")
	jar, err := OpenJar(context.Background(), path)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = jar.Close() })
	return jar, path
}

func TestJar_PutGetDelete(t *testing.T) {
	ctx := context.Background()
	jar, _ := openTestJar(t)

	c := New("sid", "tok")
	c.SetDomain("example.com")
	c.SetPath("/")
	c.SetSecure(true)
	if err := jar.Put(ctx, c); err != nil {
		t.Fatal(err)
	}

	got, err := jar.Get(ctx, "sid")
	if err != nil {
		t.Fatal(err)
	}
	if got.String() != c.String() {
		t.Fatalf("stored %q loaded %q", c.String(), got.String())
	}
	checkOffsets(t, got)

	if err := jar.Delete(ctx, "sid"); err != nil {
		t.Fatal(err)
	}
	if _, err := jar.Get(ctx, "sid"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("want ErrNotFound got %v", err)
	}

	// Deleting an absent cookie is a no-op.
	if err := jar.Delete(ctx, "sid"); err != nil {
		t.Fatal(err)
	}
}

func TestJar_PutReplacesSameName(t *testing.T) {
	ctx := context.Background()
	jar, _ := openTestJar(t)

	if err := jar.Put(ctx, New("sid", "one")); err != nil {
		t.Fatal(err)
	}
	if err := jar.Put(ctx, New("sid", "two")); err != nil {
		t.Fatal(err)
	}

	got, err := jar.Get(ctx, "sid")
	if err != nil {
		t.Fatal(err)
	}
	if got.Value() != "two" {
		t.Fatalf("value %q", got.Value())
	}

	all, warnings, err := jar.All(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(warnings) != 0 {
		t.Fatalf("unexpected warnings: %v", warnings)
	}
	if len(all) != 1 {
		t.Fatalf("want 1 cookie got %d", len(all))
	}
}

func TestJar_PutEmptyName(t *testing.T) {
	jar, _ := openTestJar(t)
	if err := jar.Put(context.Background(), New("", "v")); !errors.Is(err, ErrInvalidOperation) {
		t.Fatalf("want ErrInvalidOperation got %v", err)
	}
}

func TestJar_AllOrderedByName(t *testing.T) {
	ctx := context.Background()
	jar, _ := openTestJar(t)

	for _, name := range []string{"zeta", "alpha", "mid"} {
		if err := jar.Put(ctx, New(name, "v")); err != nil {
			t.Fatal(err)
		}
	}

	all, _, err := jar.All(ctx)
	if err != nil {
		t.Fatal(err)
	}
	var names []string
	for _, c := range all {
		names = append(names, c.Name())
	}
	want := []string{"alpha", "mid", "zeta"}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("order %v want %v", names, want)
		}
	}
}

func TestJar_AllSkipsCorruptRows(t *testing.T) {
	ctx := context.Background()
	jar, _ := openTestJar(t)

	if err := jar.Put(ctx, New("good", "v")); err != nil {
		t.Fatal(err)
	}
	// Corrupt a row behind the Cookie API's back.
	if _, err := jar.db.ExecContext(ctx,
		`INSERT INTO cookies (name, serialized) VALUES ('bad', '=broken')`); err != nil {
		t.Fatal(err)
	}

	all, warnings, err := jar.All(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 1 || all[0].Name() != "good" {
		t.Fatalf("unexpected cookies: %v", all)
	}
	if len(warnings) != 1 {
		t.Fatalf("want 1 warning got %v", warnings)
	}
}

func TestJar_Match(t *testing.T) {
	ctx := context.Background()
	jar, _ := openTestJar(t)

	a := New("a", "1")
	a.SetDomain("example.com")
	a.SetPath("/")

	b := New("b", "2")
	b.SetDomain("example.com")
	b.SetPath("/admin")

	secure := New("c", "3")
	secure.SetDomain("example.com")
	secure.SetPath("/")
	secure.SetSecure(true)

	other := New("d", "4")
	other.SetDomain("other.net")
	other.SetPath("/")

	expired := New("e", "5")
	expired.SetDomain("example.com")
	expired.SetPath("/")
	expired.Expire()

	for _, c := range []*Cookie{a, b, secure, other, expired} {
		if err := jar.Put(ctx, c); err != nil {
			t.Fatal(err)
		}
	}

	got, warnings, err := jar.Match(ctx, "http://app.example.com/")
	if err != nil {
		t.Fatal(err)
	}
	if len(warnings) != 0 {
		t.Fatalf("unexpected warnings: %v", warnings)
	}
	if len(got) != 1 || got[0].Name() != "a" {
		t.Fatalf("http match: %v", cookieNames(got))
	}

	got, _, err = jar.Match(ctx, "https://app.example.com/admin/panel")
	if err != nil {
		t.Fatal(err)
	}
	if names := cookieNames(got); len(names) != 3 {
		t.Fatalf("https match: %v", names)
	}
}

func TestJar_MatchBadURL(t *testing.T) {
	jar, _ := openTestJar(t)
	if _, _, err := jar.Match(context.Background(), "example.com"); err == nil {
		t.Fatal("URL without scheme should fail")
	}
}

func TestOpenJarSnapshot(t *testing.T) {
	ctx := context.Background()
	jar, path := openTestJar(t)

	if err := jar.Put(ctx, New("sid", "tok")); err != nil {
		t.Fatal(err)
	}

	snap, err := OpenJarSnapshot(ctx, path)
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = snap.Close() }()

	got, err := snap.Get(ctx, "sid")
	if err != nil {
		t.Fatal(err)
	}
	if got.Value() != "tok" {
		t.Fatalf("value %q", got.Value())
	}

	// Snapshot is a copy: writes to the live jar do not leak in.
	if err := jar.Put(ctx, New("later", "x")); err != nil {
		t.Fatal(err)
	}
	if _, err := snap.Get(ctx, "later"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("want ErrNotFound got %v", err)
	}
}

func TestOpenJarSnapshot_MissingSource(t *testing.T) {
	if _, err := OpenJarSnapshot(context.Background(), filepath.Join(t.TempDir(), "nope.db")); err == nil {
		t.Fatal("expected error")
	}
}

func cookieNames(cookies []*Cookie) []string {
	out := make([]string, 0, len(cookies))
	for _, c := range cookies {
		out = append(out, c.Name())
	}
	return out
}
