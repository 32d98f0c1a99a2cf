package tagset_test

import (
	"reflect"
	"testing"

	"picdex/internal/tagset"
)

func TestSetDeduplicatesAndSorts(t *testing.T) {
	set := tagset.New("vacation", "2020", "vacation", " 2020 ", "")
	want := []string{"2020", "vacation"}
	if got := set.Values(); !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	if set.Len() != 2 {
		t.Fatalf("expected 2 distinct tags, got %d", set.Len())
	}
}

func TestSerializeRoundTrip(t *testing.T) {
	set := tagset.New("work", "2021", "berlin trip", "2020")
	serialized := set.Serialize()
	parsed := tagset.Parse(serialized)
	if !reflect.DeepEqual(parsed.Values(), set.Values()) {
		t.Fatalf("round trip mismatch: %v vs %v", parsed.Values(), set.Values())
	}
	if parsed.Serialize() != serialized {
		t.Fatalf("expected stable serialization, got %q vs %q", parsed.Serialize(), serialized)
	}
}

func TestParseEmpty(t *testing.T) {
	if got := tagset.Parse("").Len(); got != 0 {
		t.Fatalf("expected empty set, got %d tags", got)
	}
}

func TestUnionGrowsMonotonically(t *testing.T) {
	set := tagset.New("2020", "vacation")
	set.Union(tagset.New("2021", "work", "vacation"))
	want := []string{"2020", "2021", "vacation", "work"}
	if got := set.Values(); !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}

	// Re-merging the same tags must not change the result.
	set.Union(tagset.New("2021", "work"))
	if got := set.Values(); !reflect.DeepEqual(got, want) {
		t.Fatalf("expected union to be idempotent, got %v", got)
	}
}

func TestContainsNormalizes(t *testing.T) {
	set := tagset.New("café")
	// NFD spelling of the same word.
	if !set.Contains("café") {
		t.Fatal("expected NFC-normalized membership check to match")
	}
}

func TestTokenize(t *testing.T) {
	name, tags, err := tagset.Tokenize("/photos/root", "/photos/root/2020/vacation/photo.jpg")
	if err != nil {
		t.Fatalf("Tokenize failed: %v", err)
	}
	if name != "photo.jpg" {
		t.Fatalf("expected display name photo.jpg, got %q", name)
	}
	want := []string{"root", "2020", "vacation"}
	if !reflect.DeepEqual(tags, want) {
		t.Fatalf("expected tags %v, got %v", want, tags)
	}
}

func TestTokenizeFileDirectlyUnderRoot(t *testing.T) {
	name, tags, err := tagset.Tokenize("/photos/root", "/photos/root/photo.jpg")
	if err != nil {
		t.Fatalf("Tokenize failed: %v", err)
	}
	if name != "photo.jpg" {
		t.Fatalf("expected photo.jpg, got %q", name)
	}
	if !reflect.DeepEqual(tags, []string{"root"}) {
		t.Fatalf("expected only the root segment, got %v", tags)
	}
}

func TestTokenizeRejectsBadInput(t *testing.T) {
	cases := []struct {
		name string
		root string
		path string
	}{
		{"empty root", "", "/photos/root/a.jpg"},
		{"empty path", "/photos/root", ""},
		{"outside root", "/photos/root", "/elsewhere/a.jpg"},
		{"root itself", "/photos/root", "/photos/root"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, _, err := tagset.Tokenize(tc.root, tc.path); err == nil {
				t.Fatalf("expected error for root=%q path=%q", tc.root, tc.path)
			}
		})
	}
}
