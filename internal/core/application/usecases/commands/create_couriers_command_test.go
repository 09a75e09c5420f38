package commands_test

import (
	"testing"

	"lavka/internal/core/application/usecases/commands"
	"lavka/internal/core/domain/model/courier"
	"lavka/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCreateCouriersCommand(t *testing.T) {
	t.Parallel()

	valid := commands.CourierDraft{Type: courier.Foot, Regions: []int{1}, WorkingHours: hours(t, "09:00-12:00")}

	tests := []struct {
		name    string
		drafts  []commands.CourierDraft
		wantErr error
		wantMsg string
	}{
		{
			name:   "valid batch",
			drafts: []commands.CourierDraft{valid, valid},
		},
		{
			name:    "empty batch",
			drafts:  nil,
			wantErr: commands.ErrCouriersAreRequired,
		},
		{
			name:    "unknown type",
			drafts:  []commands.CourierDraft{valid, {Regions: []int{1}, WorkingHours: hours(t, "09:00-12:00")}},
			wantErr: errs.ErrValueIsInvalid,
			wantMsg: "couriers[1]",
		},
		{
			name:    "no regions",
			drafts:  []commands.CourierDraft{{Type: courier.Auto, WorkingHours: hours(t, "09:00-12:00")}},
			wantErr: courier.ErrRegionsAreRequired,
			wantMsg: "couriers[0]",
		},
		{
			name:    "no working hours",
			drafts:  []commands.CourierDraft{{Type: courier.Auto, Regions: []int{2}}},
			wantErr: courier.ErrWorkingHoursAreRequired,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cmd, err := commands.NewCreateCouriersCommand(tt.drafts)

			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				if tt.wantMsg != "" {
					assert.Contains(t, err.Error(), tt.wantMsg)
				}
				require.ErrorIs(t, cmd.Validate(), commands.ErrCreateCouriersCommandIsNotConstructed)
				return
			}

			require.NoError(t, err)
			require.NoError(t, cmd.Validate())
			assert.Len(t, cmd.Drafts(), len(tt.drafts))
		})
	}
}

func TestCreateCouriersCommand_DraftsAreCopied(t *testing.T) {
	t.Parallel()

	drafts := []commands.CourierDraft{{Type: courier.Bike, Regions: []int{1}, WorkingHours: hours(t, "09:00-12:00")}}
	cmd, err := commands.NewCreateCouriersCommand(drafts)
	require.NoError(t, err)

	drafts[0].Type = courier.Auto

	assert.Equal(t, courier.Bike, cmd.Drafts()[0].Type)
}
