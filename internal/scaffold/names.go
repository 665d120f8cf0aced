package scaffold

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"github.com/jinzhu/inflection"
)

var validName = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_\- ]*$`)

// Names are the spellings of a resource name used across the generated files.
// For "blog_posts": Type BlogPost, PluralType BlogPosts, Singular blogPost, Plural blogPosts,
// Snake blog_post, SnakePlural blog_posts, Route blog-posts, Human "Blog post".
type Names struct {
	Input       string
	Type        string
	PluralType  string
	Singular    string
	Plural      string
	Snake       string
	SnakePlural string
	Route       string
	Human       string
	HumanPlural string
}

func NewNames(resource string) (Names, error) {
	resource = strings.TrimSpace(resource)
	if !validName.MatchString(resource) {
		return Names{}, fmt.Errorf("invalid resource name %q: use letters, digits, '-' or '_' and start with a letter", resource)
	}

	words := splitWords(resource)
	if len(words) == 0 {
		return Names{}, fmt.Errorf("invalid resource name %q", resource)
	}

	last := len(words) - 1
	singular := append([]string(nil), words...)
	singular[last] = inflection.Singular(words[last])
	plural := append([]string(nil), singular...)
	plural[last] = inflection.Plural(singular[last])

	n := Names{
		Input:       resource,
		Type:        pascal(singular),
		PluralType:  pascal(plural),
		Snake:       strings.Join(singular, "_"),
		SnakePlural: strings.Join(plural, "_"),
		Route:       strings.Join(plural, "-"),
		Human:       capitalize(strings.Join(singular, " ")),
		HumanPlural: strings.Join(plural, " "),
	}
	n.Singular = lowerFirst(n.Type)
	n.Plural = lowerFirst(n.PluralType)

	return n, nil
}

// splitWords breaks on separators and lower-to-upper case changes, lower-casing each word.
func splitWords(s string) []string {
	var words []string
	var cur []rune

	flush := func() {
		if len(cur) > 0 {
			words = append(words, strings.ToLower(string(cur)))
			cur = cur[:0]
		}
	}

	runes := []rune(s)
	for i, r := range runes {
		switch {
		case r == '_' || r == '-' || r == ' ':
			flush()
		case unicode.IsUpper(r) && i > 0 && (unicode.IsLower(runes[i-1]) || unicode.IsDigit(runes[i-1])):
			flush()
			cur = append(cur, r)
		default:
			cur = append(cur, r)
		}
	}
	flush()

	return words
}

func pascal(words []string) string {
	var b strings.Builder
	for _, w := range words {
		b.WriteString(capitalize(w))
	}
	return b.String()
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	r[0] = unicode.ToLower(r[0])
	return string(r)
}
