package store

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/marchand/easel/internal/domain"
)

func testArtwork() *domain.Artwork {
	return &domain.Artwork{
		Title:    "Haystacks",
		Artist:   "Claude Monet",
		Year:     "1891",
		ImageURL: "https://example.org/haystacks.jpg",
		Source:   domain.SourceMet,
		DataURL:  "data:image/jpeg;base64,aGF5",
	}
}

func TestSaveAndRead(t *testing.T) {
	s, err := Open(t.TempDir())
	require.NoError(t, err)
	defer s.Close()

	_, ok := s.Artwork("ready")
	require.False(t, ok, "fresh store must be empty")

	want := testArtwork()
	require.NoError(t, s.SaveArtwork("ready", want))

	got, ok := s.Artwork("ready")
	require.True(t, ok)
	require.Equal(t, want, got)
}

func TestOverwriteLastWriteWins(t *testing.T) {
	s, err := Open(t.TempDir())
	require.NoError(t, err)
	defer s.Close()

	first := testArtwork()
	require.NoError(t, s.SaveArtwork("ready", first))

	second := testArtwork()
	second.Title = "The Water-Lily Pond"
	require.NoError(t, s.SaveArtwork("ready", second))

	got, ok := s.Artwork("ready")
	require.True(t, ok)
	require.Equal(t, "The Water-Lily Pond", got.Title)
}

func TestRemove(t *testing.T) {
	s, err := Open(t.TempDir())
	require.NoError(t, err)
	defer s.Close()

	require.NoError(t, s.SaveArtwork("ready", testArtwork()))
	require.NoError(t, s.Remove("ready"))

	_, ok := s.Artwork("ready")
	require.False(t, ok)

	// Removing an absent key is not an error
	require.NoError(t, s.Remove("ready"))
}

func TestPersistsAcrossReopen(t *testing.T) {
	dir := t.TempDir()

	s, err := Open(dir)
	require.NoError(t, err)
	require.NoError(t, s.SaveArtwork("ready", testArtwork()))
	require.NoError(t, s.Close())

	reopened, err := Open(dir)
	require.NoError(t, err)
	defer reopened.Close()

	got, ok := reopened.Artwork("ready")
	require.True(t, ok)
	require.Equal(t, "Haystacks", got.Title)
}

func TestMemoryOnlyMode(t *testing.T) {
	s, err := Open("")
	require.NoError(t, err)
	defer s.Close()

	require.NoError(t, s.SaveArtwork("ready", testArtwork()))

	got, ok := s.Artwork("ready")
	require.True(t, ok)
	require.Equal(t, "Haystacks", got.Title)

	require.NoError(t, s.Remove("ready"))
	_, ok = s.Artwork("ready")
	require.False(t, ok)
}
