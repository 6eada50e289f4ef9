package pages

import (
	"regexp"
	"strings"
	"testing"
)

func TestGenerateSlug(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{in: "John & Mary Wedding", want: "john-mary-wedding"},
		{in: "Café Açaí!!", want: "cafe-acai"},
		{in: "  multiple   spaces  ", want: "multiple-spaces"},
		{in: "already-a-slug", want: "already-a-slug"},
		{in: "UPPER_case--dashes", want: "uppercase-dashes"},
		{in: "日本語タイトル", want: ""},
		{in: "!!!", want: ""},
		{in: "", want: ""},
	}

	for _, tt := range tests {
		if got := GenerateSlug(tt.in); got != tt.want {
			t.Fatalf("GenerateSlug(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestGenerateSlug_Idempotent(t *testing.T) {
	t.Parallel()

	inputs := []string{
		"John & Mary Wedding",
		"Café Açaí!!",
		"--weird---input--",
		"émilie's 30th büRthday",
		"",
		"a",
	}

	for _, in := range inputs {
		once := GenerateSlug(in)
		if twice := GenerateSlug(once); twice != once {
			t.Fatalf("GenerateSlug not idempotent for %q: %q -> %q", in, once, twice)
		}
	}
}

func TestGenerateSlug_Alphabet(t *testing.T) {
	t.Parallel()

	valid := regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

	inputs := []string{
		"John & Mary Wedding",
		"Café Açaí!!",
		"...---...",
		"¿¡Fiesta de María!?",
		"x",
		"tabs\tand\nnewlines here",
	}

	for _, in := range inputs {
		got := GenerateSlug(in)
		if got == "" {
			continue
		}
		if !valid.MatchString(got) {
			t.Fatalf("GenerateSlug(%q) = %q contains invalid characters or hyphen placement", in, got)
		}
	}
}

func TestValidateSlugCandidate(t *testing.T) {
	t.Parallel()

	if err := ValidateSlugCandidate("abc"); err != nil {
		t.Fatalf("expected 3-char slug to be valid, got %v", err)
	}
	if err := ValidateSlugCandidate(strings.Repeat("a", SlugMaxLen)); err != nil {
		t.Fatalf("expected %d-char slug to be valid, got %v", SlugMaxLen, err)
	}

	invalid := []string{
		"",
		"ab",
		strings.Repeat("a", SlugMaxLen+1),
		"Has-Upper",
		"espaço aqui",
		"-leading-hyphen",
		"double--hyphen",
	}
	for _, s := range invalid {
		if err := ValidateSlugCandidate(s); err == nil {
			t.Fatalf("expected %q to be rejected", s)
		}
	}
}

func TestBuildPublicURL(t *testing.T) {
	t.Parallel()

	if got := BuildPublicURL("https://memorizu.com/", "/s/john-mary"); got != "https://memorizu.com/s/john-mary" {
		t.Fatalf("unexpected url: %s", got)
	}
	if got := BuildPublicURL("https://memorizu.com", "/p/abc"); got != "https://memorizu.com/p/abc" {
		t.Fatalf("unexpected url: %s", got)
	}
}
