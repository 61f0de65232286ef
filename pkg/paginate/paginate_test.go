package paginate_test

import (
	"encoding/json"
	"testing"

	"github.com/aussiebroadwan/cmsadmin/pkg/paginate"
	"github.com/stretchr/testify/require"
)

func TestTotalPages(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name        string
		total, size int
		want        int
	}{
		{"partial last page", 95, 20, 5},
		{"exact fit", 100, 20, 5},
		{"single item", 1, 20, 1},
		{"empty", 0, 20, 0},
		{"zero size", 10, 0, 0},
		{"negative size", 10, -5, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, paginate.TotalPages(tc.total, tc.size))
		})
	}
}

func TestOffset(t *testing.T) {
	t.Parallel()

	require.Equal(t, 40, paginate.Offset(3, 20))
	require.Equal(t, 0, paginate.Offset(1, 20))
	require.Equal(t, 0, paginate.Offset(0, 20))
	require.Equal(t, 0, paginate.Offset(-2, 20))
}

func TestPageNumbers(t *testing.T) {
	t.Parallel()

	t.Run("centred window", func(t *testing.T) {
		require.Equal(t, []int{3, 4, 5, 6, 7}, paginate.PageNumbers(5, 10, 5))
	})

	t.Run("clamped at start", func(t *testing.T) {
		require.Equal(t, []int{1, 2, 3, 4, 5}, paginate.PageNumbers(1, 10, 5))
		require.Equal(t, []int{1, 2, 3, 4, 5}, paginate.PageNumbers(2, 10, 5))
	})

	t.Run("clamped at end", func(t *testing.T) {
		require.Equal(t, []int{6, 7, 8, 9, 10}, paginate.PageNumbers(10, 10, 5))
		require.Equal(t, []int{6, 7, 8, 9, 10}, paginate.PageNumbers(9, 10, 5))
	})

	t.Run("fewer pages than window", func(t *testing.T) {
		require.Equal(t, []int{1, 2, 3}, paginate.PageNumbers(2, 3, 5))
	})

	t.Run("even window", func(t *testing.T) {
		require.Equal(t, []int{3, 4, 5, 6}, paginate.PageNumbers(5, 10, 4))
	})

	t.Run("out of range current", func(t *testing.T) {
		require.Equal(t, []int{6, 7, 8, 9, 10}, paginate.PageNumbers(50, 10, 5))
	})

	t.Run("nothing to show", func(t *testing.T) {
		require.Nil(t, paginate.PageNumbers(1, 0, 5))
	})
}

func TestNextPrev(t *testing.T) {
	t.Parallel()

	require.True(t, paginate.HasNext(1, 2))
	require.False(t, paginate.HasNext(2, 2))
	require.True(t, paginate.HasPrev(2))
	require.False(t, paginate.HasPrev(1))
}

func TestPageEnvelope(t *testing.T) {
	t.Parallel()

	var p paginate.Page[string]
	require.NoError(t, json.Unmarshal([]byte(`{"data":["a","b"],"total":45,"page":5,"page_size":10}`), &p))
	require.Equal(t, []string{"a", "b"}, p.Data)
	require.Equal(t, 5, p.Pages())
	require.False(t, p.HasNext())

	p.TotalPages = 9
	require.Equal(t, 9, p.Pages())
	require.True(t, p.HasNext())
}
