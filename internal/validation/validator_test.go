package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainerrors "github.com/airatlasapp/airatlas-server/internal/errors"
)

type searchParams struct {
	Country string `json:"country" validate:"omitempty,len=2,alpha"`
	Type    string `json:"type"    validate:"omitempty,oneof=large_airport medium_airport small_airport heliport seaplane_base closed"`
	Limit   int    `json:"limit"   validate:"gte=0,lte=100"`
	Offset  int    `json:"offset"  validate:"gte=0"`
}

func TestValidate(t *testing.T) {
	v := New()

	tests := []struct {
		name    string
		params  searchParams
		wantErr bool
		wantMsg string
	}{
		{
			name:   "valid params",
			params: searchParams{Country: "FR", Type: "large_airport", Limit: 20},
		},
		{
			name:   "empty optional fields",
			params: searchParams{},
		},
		{
			name:    "country too long",
			params:  searchParams{Country: "FRA"},
			wantErr: true,
			wantMsg: "country must be exactly 2 characters",
		},
		{
			name:    "country with digits",
			params:  searchParams{Country: "F1"},
			wantErr: true,
			wantMsg: "country must contain only letters",
		},
		{
			name:    "unknown type",
			params:  searchParams{Type: "space_port"},
			wantErr: true,
			wantMsg: "type must be one of",
		},
		{
			name:    "limit above cap",
			params:  searchParams{Limit: 500},
			wantErr: true,
			wantMsg: "limit must be less than or equal to 100",
		},
		{
			name:    "negative offset",
			params:  searchParams{Offset: -1},
			wantErr: true,
			wantMsg: "offset must be greater than or equal to 0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(tt.params)
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}

			require.Error(t, err)
			var domainErr *domainerrors.Error
			require.ErrorAs(t, err, &domainErr)
			assert.Equal(t, domainerrors.CodeValidation, domainErr.Code)
			assert.Contains(t, domainErr.Message, tt.wantMsg)
		})
	}
}

func TestValidate_MultipleFailuresListed(t *testing.T) {
	v := New()

	err := v.Validate(searchParams{Country: "FRA", Limit: 500})
	require.Error(t, err)

	var domainErr *domainerrors.Error
	require.ErrorAs(t, err, &domainErr)
	assert.Contains(t, domainErr.Message, "country")
	assert.Contains(t, domainErr.Message, "limit")
}
