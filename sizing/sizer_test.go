package sizing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMethod(t *testing.T) {
	for _, name := range []string{"equal_weight", "risk_parity", "volatility_target", "kelly_criterion"} {
		m, err := ParseMethod(name)
		require.NoError(t, err)
		assert.Equal(t, name, m.String())
	}

	_, err := ParseMethod("martingale")
	require.Error(t, err)
}

func TestEqualWeightHitsCap(t *testing.T) {
	s := New(EqualWeight, 0.10, 0.02)

	shares, err := s.Shares(100000, 50, 0.03, 0.9)
	require.NoError(t, err)

	// 10% of 100k at 50/share = 200 shares.
	assert.Equal(t, 200.0, shares)
}

func TestRiskParitySizesInverselyToVol(t *testing.T) {
	s := New(RiskParity, 0.10, 0.02)

	low, err := s.Shares(100000, 50, 0.01, 0.9)
	require.NoError(t, err)
	high, err := s.Shares(100000, 50, 0.05, 0.9)
	require.NoError(t, err)

	assert.Greater(t, low, high)

	// target risk 2000, position risk 0.05*50 = 2.5 -> 800, capped at 200.
	assert.Equal(t, 200.0, high)
}

func TestVolatilityTargetScalesWithConfidence(t *testing.T) {
	s := New(VolatilityTarget, 0.50, 0.02)

	strong, err := s.Shares(100000, 50, 0.04, 1.0)
	require.NoError(t, err)
	weak, err := s.Shares(100000, 50, 0.04, 0.5)
	require.NoError(t, err)

	// 100000*0.02*conf/0.04/50 = 1000*conf shares.
	assert.Equal(t, 1000.0, strong)
	assert.Equal(t, 500.0, weak)
}

func TestZeroVolatilityFallsBackToCap(t *testing.T) {
	for _, m := range []Method{RiskParity, VolatilityTarget} {
		s := New(m, 0.10, 0.02)
		shares, err := s.Shares(100000, 50, 0, 0.9)
		require.NoError(t, err, m.String())
		assert.Equal(t, 200.0, shares, m.String())
	}
}

func TestKellyClampsToPositionCap(t *testing.T) {
	s := New(Kelly, 0.10, 0.02)

	// p=1 gives kelly fraction 1.0 before clamping.
	shares, err := s.Shares(100000, 50, 0.03, 1.0)
	require.NoError(t, err)
	assert.Equal(t, 200.0, shares)

	// Hopeless signal: negative kelly clamps to zero.
	shares, err = s.Shares(100000, 50, 0.03, 0.0)
	require.NoError(t, err)
	assert.Equal(t, 0.0, shares)
}

func TestCapPropertyAllMethods(t *testing.T) {
	const (
		pv    = 250000.0
		price = 37.0
		maxPs = 0.08
	)
	for _, m := range []Method{EqualWeight, RiskParity, VolatilityTarget, Kelly} {
		s := New(m, maxPs, 0.02)
		for _, vol := range []float64{0, 0.001, 0.02, 0.5} {
			for _, conf := range []float64{0, 0.3, 0.7, 1} {
				shares, err := s.Shares(pv, price, vol, conf)
				require.NoError(t, err)
				// +price covers rounding to whole shares.
				assert.LessOrEqual(t, shares*price, pv*maxPs+price,
					"%s vol=%v conf=%v", m, vol, conf)
			}
		}
	}
}

func TestWholeShareFlooring(t *testing.T) {
	s := New(EqualWeight, 0.10, 0.02)

	// 10000/3 = 3333.33... -> 3333 whole shares.
	shares, err := s.Shares(100000, 3, 0.02, 1)
	require.NoError(t, err)
	assert.Equal(t, 3333.0, shares)
}

func TestInvalidEntryPrice(t *testing.T) {
	s := New(EqualWeight, 0.10, 0.02)

	_, err := s.Shares(100000, 0, 0.02, 1)
	require.Error(t, err)
	_, err = s.Shares(100000, -5, 0.02, 1)
	require.Error(t, err)
}
