package repository

import (
	"testing"

	"github.com/doug-martin/goqu/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegionFilter(t *testing.T) {
	repo := &Repository{dialect: goqu.Dialect("postgres")}

	tests := []struct {
		name        string
		city        string
		province    string
		contains    []string
		notContains []string
		args        []any
	}{
		{
			name:     "city and province",
			city:     "Manila",
			province: "Metro Manila",
			contains: []string{`("city" = $3)`, `("province" = $4)`},
			args:     []any{"provider", "agency", "Manila", "Metro Manila"},
		},
		{
			name:        "city only",
			city:        "Quezon City",
			contains:    []string{`("city" = $3)`},
			notContains: []string{`"province" =`, "$4"},
			args:        []any{"provider", "agency", "Quezon City"},
		},
		{
			name:        "province only",
			province:    "Metro Manila",
			contains:    []string{`("province" = $3)`},
			notContains: []string{`"city" =`, "$4"},
			args:        []any{"provider", "agency", "Metro Manila"},
		},
		{
			name:        "neither",
			notContains: []string{`"city" =`, `"province" =`, "$3"},
			args:        []any{"provider", "agency"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sql, args, err := repo.providerQuery(regionFilter(tt.city, tt.province)...)

			require.NoError(t, err)
			assert.Contains(t, sql, `"role" IN ($1, $2)`)
			for _, want := range tt.contains {
				assert.Contains(t, sql, want)
			}
			for _, unwanted := range tt.notContains {
				assert.NotContains(t, sql, unwanted)
			}
			assert.Equal(t, tt.args, args)
		})
	}
}
