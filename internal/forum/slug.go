package forum

import (
	"strings"
	"unicode"
)

// translit maps Cyrillic letters to Latin sequences for slug derivation.
var translit = map[rune]string{
	'а': "a", 'б': "b", 'в': "v", 'г': "g", 'д': "d", 'е': "e", 'ё': "yo",
	'ж': "zh", 'з': "z", 'и': "i", 'й': "y", 'к': "k", 'л': "l", 'м': "m",
	'н': "n", 'о': "o", 'п': "p", 'р': "r", 'с': "s", 'т': "t", 'у': "u",
	'ф': "f", 'х': "h", 'ц': "ts", 'ч': "ch", 'ш': "sh", 'щ': "shch",
	'ъ': "", 'ы': "y", 'ь': "", 'э': "e", 'ю': "yu", 'я': "ya",
	'і': "i", 'ї': "yi", 'є': "ye", 'ґ': "g",
}

// Slugify derives a URL-safe slug from a category name: transliterate
// Cyrillic, lowercase, collapse everything else into single dashes.
func Slugify(name string) string {
	var b strings.Builder
	lastDash := true // suppress a leading dash

	for _, r := range strings.ToLower(name) {
		switch {
		case r >= 'a' && r <= 'z' || unicode.IsDigit(r):
			b.WriteRune(r)
			lastDash = false
		default:
			if mapped, ok := translit[r]; ok {
				if mapped != "" {
					b.WriteString(mapped)
					lastDash = false
				}
				continue
			}
			if !lastDash {
				b.WriteByte('-')
				lastDash = true
			}
		}
	}
	return strings.TrimRight(b.String(), "-")
}
