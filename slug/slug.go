// Package slug derives the public, URL-safe identifier for a
// restaurant from its display name and guarantees global uniqueness.
package slug

import (
	"math/rand"
	"strings"
	"unicode"

	"menucraft-api/apperr"
	"menucraft-api/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	fallbackToken  = "menu"
	suffixAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"
	suffixLen      = 4
	maxProbes      = 10
)

// asciiFold maps the common accented letters seen in restaurant names
// to their ASCII base. Anything not covered is dropped by Normalize.
var asciiFold = map[rune]string{
	'ä': "a", 'á': "a", 'à': "a", 'â': "a", 'ã': "a", 'å': "a",
	'ç': "c", 'č': "c",
	'é': "e", 'è': "e", 'ê': "e", 'ë': "e",
	'ğ': "g",
	'í': "i", 'ì': "i", 'î': "i", 'ï': "i", 'ı': "i",
	'ñ': "n",
	'ö': "o", 'ó': "o", 'ò': "o", 'ô': "o", 'õ': "o", 'ø': "o",
	'ş': "s", 'š': "s",
	'ü': "u", 'ú': "u", 'ù': "u", 'û': "u",
	'ý': "y",
	'ž': "z",
	'ß': "ss",
}

// Normalize lowercases name, folds accented letters to ASCII, and
// collapses every other non-alphanumeric run into a single hyphen.
// An empty result yields the fixed fallback token.
func Normalize(name string) string {
	var b strings.Builder
	lastHyphen := true // suppress a leading hyphen
	for _, r := range strings.ToLower(name) {
		switch {
		case r >= 'a' && r <= 'z' || r >= '0' && r <= '9':
			b.WriteRune(r)
			lastHyphen = false
		case asciiFold[r] != "":
			b.WriteString(asciiFold[r])
			lastHyphen = false
		case unicode.IsSpace(r) || r == '-' || r == '_' || r == '.':
			if !lastHyphen {
				b.WriteByte('-')
				lastHyphen = true
			}
		}
	}
	s := strings.TrimSuffix(b.String(), "-")
	if s == "" {
		return fallbackToken
	}
	return s
}

func randomSuffix(n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = suffixAlphabet[rand.Intn(len(suffixAlphabet))]
	}
	return string(b)
}

// taken probes the restaurants table for slug, excluding excludeID so
// a rename can keep its own slug.
func taken(db *gorm.DB, s string, excludeID uint) (bool, error) {
	var count int64
	q := db.Model(&models.Restaurant{}).Where("slug = ?", s)
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}
	if err := q.Count(&count).Error; err != nil {
		return false, apperr.Internal(err)
	}
	return count > 0, nil
}

// Generate returns a unique slug for displayName. The probe is not
// serialized against the caller's insert; the caller must perform the
// insert/update under the slug's unique index in the same transaction
// to close the race.
func Generate(db *gorm.DB, displayName string, excludeID uint) (string, error) {
	base := Normalize(displayName)

	exists, err := taken(db, base, excludeID)
	if err != nil {
		return "", err
	}
	if !exists {
		return base, nil
	}

	for i := 0; i < maxProbes; i++ {
		candidate := base + "-" + randomSuffix(suffixLen)
		exists, err := taken(db, candidate, excludeID)
		if err != nil {
			return "", err
		}
		if !exists {
			return candidate, nil
		}
	}

	// Probing keeps colliding; trade readability for termination with
	// a uuid-derived suffix returned without a further probe.
	return base + "-" + uuid.NewString()[:8], nil
}
