package catalog_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/vmunix/boxoffice/internal/catalog"
	"github.com/vmunix/boxoffice/internal/catalog/mocks"
	"github.com/vmunix/boxoffice/internal/tmdb"
)

func TestEnricher_Enrich_RanksByRevenue(t *testing.T) {
	ctrl := gomock.NewController(t)
	provider := mocks.NewMockProvider(ctrl)

	revenues := map[int64]int64{1: 0, 2: 50, 3: 200, 4: 0, 5: 75}
	for id, rev := range revenues {
		provider.EXPECT().GetMovie(gomock.Any(), id).Return(&tmdb.Movie{ID: id, Revenue: rev}, nil)
	}

	in := []catalog.Movie{{ID: 1}, {ID: 2}, {ID: 3}, {ID: 4}, {ID: 5}}
	e := catalog.NewEnricher(provider, 4, 15, quietLogger())
	out := e.Enrich(context.Background(), in)

	require.Len(t, out, 3)
	assert.Equal(t, int64(200), out[0].RevenueValue())
	assert.Equal(t, int64(75), out[1].RevenueValue())
	assert.Equal(t, int64(50), out[2].RevenueValue())
	for _, m := range in {
		assert.Nil(t, m.Revenue, "input must not be modified")
	}
}

func TestEnricher_Attach_FailureIsolated(t *testing.T) {
	ctrl := gomock.NewController(t)
	provider := mocks.NewMockProvider(ctrl)

	provider.EXPECT().GetMovie(gomock.Any(), int64(1)).Return(&tmdb.Movie{ID: 1, Revenue: 100}, nil)
	provider.EXPECT().GetMovie(gomock.Any(), int64(2)).Return(nil, errUpstream)
	provider.EXPECT().GetMovie(gomock.Any(), int64(3)).Return(&tmdb.Movie{ID: 3, Revenue: 300}, nil)

	e := catalog.NewEnricher(provider, 2, 15, quietLogger())
	out := e.Attach(context.Background(), []catalog.Movie{{ID: 1}, {ID: 2}, {ID: 3}})

	require.Len(t, out, 3)
	for _, m := range out {
		require.NotNil(t, m.Revenue, "every record gets a revenue value")
	}
	assert.Equal(t, int64(100), out[0].RevenueValue())
	assert.Equal(t, int64(0), out[1].RevenueValue())
	assert.Equal(t, int64(300), out[2].RevenueValue())
}

func TestEnricher_Attach_BoundsConcurrency(t *testing.T) {
	provider := newFakeProvider()
	provider.delay = 10 * time.Millisecond

	var in []catalog.Movie
	for i := int64(1); i <= 20; i++ {
		in = append(in, catalog.Movie{ID: i})
		provider.setRevenue(i, i)
	}

	e := catalog.NewEnricher(provider, 3, 15, quietLogger())
	out := e.Attach(context.Background(), in)

	assert.Len(t, out, 20)
	assert.Equal(t, int64(20), provider.details.Load())
	assert.LessOrEqual(t, provider.maxSeen.Load(), int64(3))
}

func TestEnricher_Attach_Empty(t *testing.T) {
	e := catalog.NewEnricher(newFakeProvider(), 0, 0, quietLogger())
	assert.Empty(t, e.Attach(context.Background(), nil))
	assert.Equal(t, 15, e.TopN())
}
