package queries_test

import (
	"math"
	"testing"
	"time"

	"lavka/internal/core/application/usecases/queries"
	"lavka/internal/core/domain/model/kernel"
	"lavka/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPage(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		offset  int
		limit   int
		wantErr bool
	}{
		{name: "defaults", offset: queries.DefaultOffset, limit: queries.DefaultLimit},
		{name: "zero limit", offset: 3, limit: 0},
		{name: "largest query limit", offset: 0, limit: math.MaxInt32},
		{name: "negative offset", offset: -1, limit: 1, wantErr: true},
		{name: "negative limit", offset: 0, limit: -1, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			page, err := queries.NewPage(tt.offset, tt.limit)

			if tt.wantErr {
				require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, queries.Page{Offset: tt.offset, Limit: tt.limit}, page)
		})
	}
}

func TestQueries_ZeroValuesAreNotConstructed(t *testing.T) {
	t.Parallel()

	require.ErrorIs(t, queries.GetCouriersQuery{}.Validate(), queries.ErrGetCouriersQueryIsNotConstructed)
	require.ErrorIs(t, queries.GetCourierQuery{}.Validate(), queries.ErrGetCourierQueryIsNotConstructed)
	require.ErrorIs(t, queries.GetOrdersQuery{}.Validate(), queries.ErrGetOrdersQueryIsNotConstructed)
	require.ErrorIs(t, queries.GetOrderQuery{}.Validate(), queries.ErrGetOrderQueryIsNotConstructed)
	require.ErrorIs(t,
		queries.GetCourierMetaInfoQuery{}.Validate(),
		queries.ErrGetCourierMetaInfoQueryIsNotConstructed,
	)
	require.ErrorIs(t,
		queries.GetCourierAssignmentsQuery{}.Validate(),
		queries.ErrGetCourierAssignmentsQueryIsNotConstructed,
	)
}

func TestNewGetCourierQuery_RejectsInvalidID(t *testing.T) {
	t.Parallel()

	_, err := queries.NewGetCourierQuery(0)
	require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)

	_, err = queries.NewGetOrderQuery(-2)
	require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
}

func TestNewGetCourierMetaInfoQuery(t *testing.T) {
	t.Parallel()

	start := time.Date(2023, 5, 1, 0, 0, 0, 0, time.UTC)

	query, err := queries.NewGetCourierMetaInfoQuery(3, start, start.AddDate(0, 0, 1))
	require.NoError(t, err)
	assert.Equal(t, kernel.ID(3), query.CourierID())
	assert.Equal(t, start, query.Start())

	_, err = queries.NewGetCourierMetaInfoQuery(3, time.Time{}, start)
	require.ErrorIs(t, err, errs.ErrValueIsRequired)

	_, err = queries.NewGetCourierMetaInfoQuery(0, start, start)
	require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
}

func TestNewGetCourierAssignmentsQuery(t *testing.T) {
	t.Parallel()

	id := kernel.ID(4)
	query, err := queries.NewGetCourierAssignmentsQuery(time.Date(2023, 5, 1, 23, 59, 0, 0, time.UTC), &id)
	require.NoError(t, err)

	assert.Equal(t, time.Date(2023, 5, 1, 0, 0, 0, 0, time.UTC), query.Date())
	require.NotNil(t, query.CourierID())
	assert.Equal(t, id, *query.CourierID())

	id = 5
	assert.Equal(t, kernel.ID(4), *query.CourierID())

	bad := kernel.ID(0)
	_, err = queries.NewGetCourierAssignmentsQuery(time.Now(), &bad)
	require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
}
