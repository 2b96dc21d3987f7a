package scan

import (
	"testing"

	"dispatch-tracker/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

func testModel() *models.ProductModel {
	return &models.ProductModel{
		Name: "ROUTER-X",
		SeriesConfig: datatypes.NewJSONType([]models.SeriesField{
			{Name: "SN-1", Required: true, Length: 12},
			{Name: "SN-2"},
			{Name: "MAC"},
		}),
	}
}

func TestClean(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		series  map[string]string
		want    map[string]string
		wantErr string
	}{
		{
			name:   "strips whitespace and drops empty values",
			series: map[string]string{"SN-1": " abc 123\t", "SN-2": "   "},
			want:   map[string]string{"SN-1": "abc123"},
		},
		{
			name:    "unknown field",
			series:  map[string]string{"SN-1": "abc123", "IMEI": "123456"},
			wantErr: `field "IMEI" is not configured`,
		},
		{
			name:    "required field missing",
			series:  map[string]string{"SN-2": "abc123"},
			wantErr: "field SN-1 is required",
		},
		{
			name:    "value too long",
			series:  map[string]string{"SN-1": "1234567890123"},
			wantErr: "exceeds 12 characters",
		},
		{
			name:    "too many fields",
			series:  map[string]string{"a": "1", "b": "2", "c": "3", "d": "4", "e": "5"},
			wantErr: "at most 4",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Clean(testModel(), tt.series)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCleanRequiresOneValue(t *testing.T) {
	t.Parallel()

	model := &models.ProductModel{
		Name:         "OPTIONAL",
		SeriesConfig: datatypes.NewJSONType([]models.SeriesField{{Name: "SN"}}),
	}
	_, err := Clean(model, map[string]string{"SN": " "})
	assert.Error(t, err)
}

func TestOrderedFieldsFollowsModel(t *testing.T) {
	t.Parallel()

	series := map[string]string{"MAC": "m", "SN-1": "a", "SN-2": "b"}
	assert.Equal(t, []string{"SN-1", "SN-2", "MAC"}, OrderedFields(testModel(), series))
}

func TestLocalDuplicate(t *testing.T) {
	t.Parallel()

	fields := []string{"SN-1", "SN-2", "MAC"}

	tests := []struct {
		name      string
		series    map[string]string
		wantFound bool
		first     string
		second    string
	}{
		{
			name:      "equal populated values",
			series:    map[string]string{"SN-1": "ABC123", "SN-2": "XYZ", "MAC": "ABC123"},
			wantFound: true,
			first:     "SN-1",
			second:    "MAC",
		},
		{
			name:   "short placeholders are ignored",
			series: map[string]string{"SN-1": "ABC123", "SN-2": "NA", "MAC": "NA"},
		},
		{
			name:   "comparison is exact",
			series: map[string]string{"SN-1": "abc123", "SN-2": "ABC123"},
		},
		{
			name:   "all distinct",
			series: map[string]string{"SN-1": "AAA111", "SN-2": "BBB222", "MAC": "CCC333"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			first, second, found := LocalDuplicate(fields, tt.series)
			assert.Equal(t, tt.wantFound, found)
			assert.Equal(t, tt.first, first)
			assert.Equal(t, tt.second, second)
		})
	}
}
