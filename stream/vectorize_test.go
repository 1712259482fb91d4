package stream

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestVectorizeInner_InverseOfDrill(t *testing.T) {
	// Collapsing the drilled dimension reconstructs, per outer element,
	// exactly the expansion function's output in original order.
	posts := []testPost{
		{Tags: []string{"a", "b", "c"}},
		{Tags: nil},
		{Tags: []string{"z"}},
	}

	tags := Drill(Convert(posts), func(p testPost) []string { return p.Tags })
	groups := VectorizeInner(tags)

	require.Len(t, groups, 3)
	require.Equal(t, []string{"a", "b", "c"}, groups[0].Data)
	require.Empty(t, groups[1].Data)
	require.Equal(t, []string{"z"}, groups[2].Data)

	// The collapsed stream carries the post dimension flags.
	require.Equal(t, []bool{false}, groups[0].Last)
	require.Equal(t, []bool{false}, groups[1].Last)
	require.Equal(t, []bool{true}, groups[2].Last)
}

func TestVectorizeInner_EmptyGroupIsConcrete(t *testing.T) {
	groups := VectorizeInner(Drill(Convert([]testPost{{Tags: nil}}), func(p testPost) []string { return p.Tags }))

	require.Len(t, groups, 1)
	require.True(t, groups[0].Valid)
	require.NotNil(t, groups[0].Data)
	require.Empty(t, groups[0].Data)
}

func TestVectorize_SubStreams(t *testing.T) {
	posts := []testPost{
		{Tags: []string{"a", "b"}},
		{Tags: []string{"c"}},
	}

	tags := Drill(Convert(posts), func(p testPost) []string { return p.Tags })
	groups := Vectorize(tags)

	require.Len(t, groups, 2)

	first := groups[0].Data
	require.Len(t, first, 2)
	require.Equal(t, "a", first[0].Data)
	require.Equal(t, []bool{false}, first[0].Last)
	require.Equal(t, "b", first[1].Data)
	require.Equal(t, []bool{false}, first[1].Last)

	second := groups[1].Data
	require.Len(t, second, 1)
	require.Equal(t, "c", second[0].Data)
	require.Equal(t, []bool{true}, second[0].Last)
}

func TestVectorize_MarkerClosesWithoutContributing(t *testing.T) {
	tags := Drill(Convert([]testPost{{Tags: nil}}), func(p testPost) []string { return p.Tags })
	groups := Vectorize(tags)

	require.Len(t, groups, 1)
	require.Empty(t, groups[0].Data)
	require.Equal(t, []bool{true}, groups[0].Last)
}

func TestVectorizeString(t *testing.T) {
	posts := Convert([]testPost{
		{Title: "go"},
		{Title: ""},
		{Title: "x"},
	})

	units := DrillString(posts, func(p testPost) string { return p.Title })
	titles := VectorizeString(units)

	require.Len(t, titles, 3)
	require.Equal(t, "go", titles[0].Data)
	require.Equal(t, "", titles[1].Data)
	require.Equal(t, "x", titles[2].Data)
	require.Equal(t, []bool{true}, titles[2].Last)
}

func TestVectorize_PlaceholderPassesThrough(t *testing.T) {
	// Drilling an empty record list yields a marker, and drilling a field
	// out of that marker yields a placeholder. Collapsing the field
	// dimension must surface the placeholder again, not drop it, so the
	// collapsed stream keeps the shape of the record stream.
	posts := Convert([]testPost(nil))
	require.Equal(t, Stream[testPost]{{Valid: false, Last: []bool{true}}}, posts)

	units := DrillString(posts, func(p testPost) string { return p.Title })
	require.Equal(t, Stream[byte]{{Valid: false, Last: []bool{true, false}}}, units)

	titles := VectorizeString(units)
	require.Equal(t, Stream[string]{{Valid: false, Last: []bool{true}}}, titles)

	tags := Drill(posts, func(p testPost) []string { return p.Tags })
	require.Equal(t, Stream[[]string]{{Valid: false, Last: []bool{true}}}, VectorizeInner(tags))
	require.Equal(t, Stream[Stream[string]]{{Valid: false, Last: []bool{true}}}, Vectorize(tags))
}

func TestVectorize_DepthZeroPanics(t *testing.T) {
	s := Stream[int]{{Data: 1, Valid: true}}
	require.Panics(t, func() { Vectorize(s) })
	require.Panics(t, func() { VectorizeInner(s) })
}
