// Package canon holds the fixed list of Impressionist-circle painters and the
// predicates that decide whether a museum candidate plausibly belongs to it.
package canon

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"unicode"

	"github.com/PuerkitoBio/goquery"
	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/marchand/easel/internal/domain"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Inclusive bounds of the Impressionist era. Unknown dates are kept, not
// rejected, so only a parseable year outside this range disqualifies a work.
const (
	eraStart = 1860
	eraEnd   = 1910
)

// masterList is the painters of the Impressionist circle and its close orbit.
var masterList = []string{
	"Claude Monet",
	"Édouard Manet",
	"Edgar Degas",
	"Pierre-Auguste Renoir",
	"Camille Pissarro",
	"Alfred Sisley",
	"Berthe Morisot",
	"Mary Cassatt",
	"Gustave Caillebotte",
	"Frédéric Bazille",
	"Armand Guillaumin",
	"Eva Gonzalès",
	"Marie Bracquemond",
	"Paul Cézanne",
	"Vincent van Gogh",
	"Paul Gauguin",
	"Georges Seurat",
	"Paul Signac",
	"Henri de Toulouse-Lautrec",
	"Childe Hassam",
	"John Singer Sargent",
	"James McNeill Whistler",
	"Joaquín Sorolla",
	"Max Liebermann",
	"Lovis Corinth",
	"Max Slevogt",
	"Peder Severin Krøyer",
	"Anders Zorn",
	"Valentin Serov",
	"Konstantin Korovin",
	"Giovanni Boldini",
	"Federico Zandomeneghi",
	"Giuseppe De Nittis",
	"Walter Sickert",
	"Philip Wilson Steer",
	"Theodore Robinson",
	"Willard Metcalf",
}

var yearPattern = regexp.MustCompile(`\d{4}`)

// Canon is an immutable artist list with pre-folded match keys. Construct it
// once and inject it into the source adapters.
type Canon struct {
	names []string
	keys  []string
}

// Default returns the canon built from the fixed master list.
func Default() *Canon {
	return newCanon(masterList)
}

func newCanon(names []string) *Canon {
	c := &Canon{names: append([]string(nil), names...)}
	for _, name := range c.names {
		folded := fold(name)
		c.keys = append(c.keys, folded)
		// Museum attributions often carry the surname alone.
		if i := strings.LastIndex(folded, " "); i >= 0 {
			c.keys = append(c.keys, folded[i+1:])
		}
	}
	return c
}

// WithExtra returns a new canon extended with user-configured names.
func (c *Canon) WithExtra(names ...string) *Canon {
	merged := append(append([]string(nil), c.names...), names...)
	return newCanon(merged)
}

// Only returns a single-artist view of the canon, used to pin every query to
// one painter. The name must already resolve against this canon.
func (c *Canon) Only(name string) (*Canon, error) {
	resolved, err := c.Resolve(name)
	if err != nil {
		return nil, err
	}
	return newCanon([]string{resolved}), nil
}

// Names returns a copy of the artist list.
func (c *Canon) Names() []string {
	return append([]string(nil), c.names...)
}

// Pick returns a uniformly chosen query artist.
func (c *Canon) Pick(r domain.Rand) string {
	return c.names[r.Intn(len(c.names))]
}

// MatchesArtist reports whether text names a canon painter. Markup is
// stripped, then both sides are case- and diacritic-folded before a
// substring match against full names and surnames.
func (c *Canon) MatchesArtist(text string) bool {
	if text == "" {
		return false
	}
	haystack := fold(stripMarkup(text))
	if haystack == "" {
		return false
	}
	for _, key := range c.keys {
		if strings.Contains(haystack, key) {
			return true
		}
	}
	return false
}

// InEra reports whether a raw display date falls inside the Impressionist
// era. The first 4-digit run decides; dates with no parseable year pass.
func (c *Canon) InEra(raw string) bool {
	match := yearPattern.FindString(raw)
	if match == "" {
		return true
	}
	year, err := strconv.Atoi(match)
	if err != nil {
		return true
	}
	return year >= eraStart && year <= eraEnd
}

// Resolve fuzzy-matches a user-supplied query against the canon and returns
// the best-ranked painter name.
func (c *Canon) Resolve(query string) (string, error) {
	ranks := fuzzy.RankFindNormalizedFold(strings.TrimSpace(query), c.names)
	if len(ranks) == 0 {
		return "", fmt.Errorf("no artist matching %q", query)
	}
	sort.Sort(ranks)
	return ranks[0].Target, nil
}

// Filter returns the canon names matching a query, for listing.
func (c *Canon) Filter(query string) []string {
	if query == "" {
		return c.Names()
	}
	return fuzzy.FindNormalizedFold(query, c.names)
}

// stripMarkup extracts the text content of an HTML fragment. Museum APIs
// return attribution fields with embedded tags ("<b>Monet</b>").
func stripMarkup(s string) string {
	if !strings.ContainsAny(s, "<>") {
		return s
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(s))
	if err != nil {
		return s
	}
	return doc.Text()
}

// fold lower-cases and strips diacritics so "Cézanne" matches "Cezanne".
func fold(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		out = s
	}
	return strings.ToLower(strings.TrimSpace(out))
}
