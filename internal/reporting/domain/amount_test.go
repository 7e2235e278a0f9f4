package reporting

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAmountJSONUsesTwoPlaces(t *testing.T) {
	payload, err := json.Marshal(struct {
		Zero  Amount `json:"zero"`
		Value Amount `json:"value"`
	}{Value: MustAmount("12.345")})
	require.NoError(t, err)
	assert.JSONEq(t, `{"zero":"0.00","value":"12.35"}`, string(payload))

	var decoded struct {
		Value Amount `json:"value"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"value":"7.1"}`), &decoded))
	assert.Equal(t, "7.10", decoded.Value.String())
	require.NoError(t, json.Unmarshal([]byte(`{"value":3}`), &decoded))
	assert.Equal(t, "3.00", decoded.Value.String())
}

func TestAmountGuardsZeroDenominators(t *testing.T) {
	a := MustAmount("100")
	assert.Equal(t, "0.00", a.Ratio(Zero).String())
	assert.Equal(t, "0.00", a.Percent(Zero).String())
	assert.Equal(t, "0.00", a.DivInt(0).String())
	assert.Equal(t, "33.33", a.Percent(MustAmount("300")).String())
}

func TestAmountScan(t *testing.T) {
	var a Amount
	require.NoError(t, a.Scan(nil))
	assert.True(t, a.IsZero())
	require.NoError(t, a.Scan([]byte("19.999")))
	assert.Equal(t, "20.00", a.String())
	require.NoError(t, a.Scan("5"))
	assert.Equal(t, "5.00", a.String())
}

func TestAmountMulRateRoundsHalfAwayFromZero(t *testing.T) {
	assert.Equal(t, "0.03", MustAmount("1.25").MulRate(decimal.RequireFromString("0.02")).String())
	assert.Equal(t, "-0.03", MustAmount("-1.25").MulRate(decimal.RequireFromString("0.02")).String())
}
