package view

import "testing"

func TestSelectors(t *testing.T) {
	tests := []struct {
		name string
		sel  Selector
		want string
	}{
		{"by id", ByID("nav-toggle"), "//*[@id='nav-toggle']"},
		{"by class", ByClass("stat-value"), "//*[contains(concat(' ', normalize-space(@class), ' '), ' stat-value ')]"},
		{"by tag", ByTag("body"), "//body"},
		{"union", Union(ByTag("a"), ByTag("form")), "//a | //form"},
		{"descendant", Descendant(ByTag("nav"), HrefPrefix("#")), "//nav//a[starts-with(@href, '#')]"},
		{"children", Children(ByID("x")), "//*[@id='x']/*"},
		{"has attr", ByTag(HasAttr("section", "id")), "//section[@id]"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.sel.String(); got != tt.want {
				t.Errorf("got  %s\nwant %s", got, tt.want)
			}
		})
	}
}

func TestLiteralQuoting(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"plain", "'plain'"},
		{"it's", `"it's"`},
		{`a'b"c`, `concat('a', "'", 'b"c')`},
	}
	for _, tt := range tests {
		if got := literal(tt.in); got != tt.want {
			t.Errorf("literal(%q) = %s, want %s", tt.in, got, tt.want)
		}
	}
}

func TestRefIsZero(t *testing.T) {
	if !Ref("").IsZero() || Ref("h1").IsZero() {
		t.Error("IsZero mismatch")
	}
}
