package cleveland

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/marchand/easel/internal/canon"
	"github.com/marchand/easel/internal/domain"
	applog "github.com/marchand/easel/internal/log"
)

// scriptRand replays a fixed sequence of draws
type scriptRand struct {
	vals []int
	i    int
}

func (s *scriptRand) Intn(n int) int {
	v := s.vals[s.i%len(s.vals)]
	s.i++
	return v % n
}

func (s *scriptRand) Shuffle(n int, swap func(i, j int)) {}

const searchBody = `{
  "data": [
    {
      "id": 1,
      "title": "Water Lilies (Agapanthus)",
      "creation_date": "c. 1915-26",
      "creators": [{"description": "Claude Monet (French, 1840-1926)", "role": "artist"}],
      "images": {"web": {"url": "https://openaccess-cdn.clevelandart.org/1960.81/1960.81_web.jpg"}}
    },
    {
      "id": 2,
      "title": "Spring Flowers",
      "creation_date": "1864",
      "creators": [{"description": "Claude Monet (French, 1840-1926)", "role": "artist"}],
      "images": {"web": {"url": "https://openaccess-cdn.clevelandart.org/1953.155/1953.155_web.jpg"}}
    },
    {
      "id": 3,
      "title": "No Image",
      "creation_date": "1870",
      "creators": [{"description": "Claude Monet (French, 1840-1926)", "role": "artist"}],
      "images": {}
    },
    {
      "id": 4,
      "title": "Anonymous Work",
      "creation_date": "1880",
      "creators": [],
      "images": {"web": {"url": "https://openaccess-cdn.clevelandart.org/x/x_web.jpg"}}
    }
  ]
}`

func pinnedCanon(t *testing.T) *canon.Canon {
	t.Helper()
	cn, err := canon.Default().Only("Claude Monet")
	if err != nil {
		t.Fatal(err)
	}
	return cn
}

func TestRandomCleansAttribution(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/artworks/" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("has_image"); got != "1" {
			t.Errorf("has_image = %q", got)
		}
		fmt.Fprint(w, searchBody)
	}))
	defer srv.Close()

	// Artist draw, skip draw, then the survivor pick. Only id 2 survives:
	// id 1 is out of era, id 3 has no image, id 4 has no creator.
	rng := &scriptRand{vals: []int{0, 0, 0}}
	c := NewClient(srv.URL, time.Second, pinnedCanon(t), rng, applog.NullLogger())

	got, err := c.Random(context.Background())
	if err != nil {
		t.Fatalf("Random: %v", err)
	}
	if got.Title != "Spring Flowers" {
		t.Errorf("title = %q", got.Title)
	}
	if got.Artist != "Claude Monet" {
		t.Errorf("artist = %q, want the parenthetical stripped", got.Artist)
	}
	if got.Source != domain.SourceCleveland {
		t.Errorf("source = %q", got.Source)
	}
}

func TestRandomNoSurvivors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"data": []}`)
	}))
	defer srv.Close()

	rng := &scriptRand{vals: []int{0, 0}}
	c := NewClient(srv.URL, time.Second, pinnedCanon(t), rng, applog.NullLogger())

	_, err := c.Random(context.Background())
	if !errors.Is(err, domain.ErrNoMatch) {
		t.Fatalf("got %v, want ErrNoMatch", err)
	}
}

func TestCleanCreator(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Claude Monet (French, 1840-1926)", "Claude Monet"},
		{"Claude Monet", "Claude Monet"},
		{"  Edgar Degas  (French, 1834-1917)", "Edgar Degas"},
		{"(French, 19th century)", ""},
		{"", ""},
	}
	for _, tc := range cases {
		if got := cleanCreator(tc.in); got != tc.want {
			t.Errorf("cleanCreator(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
