package platform

import (
	"reflect"
	"strings"
	"testing"
)

func TestParseListing(t *testing.T) {
	page := `<!DOCTYPE html><html><head><title>Index of /content/lore/</title></head>
<body><h1>Index</h1><a href="a.md">a.md</a><p><a name="anchor">x</a><a href="/content/lore/b%20two.md?raw=1">b</a></p></body></html>`

	links, err := ParseListing(strings.NewReader(page))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	expected := []string{"a.md", "/content/lore/b%20two.md?raw=1"}
	if !reflect.DeepEqual(links, expected) {
		t.Errorf("expected %v, got %v", expected, links)
	}
}

func TestFilterByExt(t *testing.T) {
	links := []string{"../", "a.md", "A.MD", "/content/lore/b%20two.md?raw=1", "notes.txt", "a.md", "sub/"}

	got := FilterByExt(links, ".md")
	expected := []string{"a.md", "A.MD", "b two.md"}
	if !reflect.DeepEqual(got, expected) {
		t.Errorf("expected %v, got %v", expected, got)
	}
}
