package epubkit

import "strings"

// gutenbergPatterns mark a Project Gutenberg license page on their own.
var gutenbergPatterns = []string{
	"project gutenberg license",
	"gutenberg.org/license",
	"start of the project gutenberg license",
	"end of the project gutenberg license",
	"start of this project gutenberg ebook",
	"end of this project gutenberg ebook",
}

// gutenbergComboPatterns mark a license page only when both halves appear.
var gutenbergComboPatterns = [][2]string{
	{"project gutenberg", "terms of use"},
	{"full license", "gutenberg"},
}

// isGutenbergLicense reports whether the visible text of a content document
// looks like Project Gutenberg license boilerplate.
func isGutenbergLicense(text string) bool {
	text = strings.ToLower(text)
	for _, pat := range gutenbergPatterns {
		if strings.Contains(text, pat) {
			return true
		}
	}
	for _, combo := range gutenbergComboPatterns {
		if strings.Contains(text, combo[0]) && strings.Contains(text, combo[1]) {
			return true
		}
	}
	return false
}
