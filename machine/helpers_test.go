package machine_test

import (
	"testing"
	"time"

	"ticketmachine/entity"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func dec(t *testing.T, s string) decimal.Decimal {
	t.Helper()

	d, err := decimal.NewFromString(s)
	require.NoError(t, err)
	return d
}

func requireDecimal(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()

	require.True(t, got.Equal(dec(t, want)), "want %s, got %s", want, got)
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func london(t *testing.T) entity.Station {
	t.Helper()

	return entity.Station{
		Name:        "London",
		SinglePrice: dec(t, "12.50"),
		ReturnPrice: dec(t, "20.00"),
	}
}
