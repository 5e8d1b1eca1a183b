package slam

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfigValidates(t *testing.T) {
	require.NoError(t, DefaultConfig().Validate())
}

func TestConfigValidateRejectsInvertedTolerances(t *testing.T) {
	cfg := DefaultConfig()
	cfg.LargeAngularError = cfg.SmallAngularError
	assert.Error(t, cfg.Validate())
}

func TestConfigValidateRejectsNonPositiveDivisor(t *testing.T) {
	cfg := DefaultConfig()
	cfg.OdometryCorrectorDiv = 0
	assert.Error(t, cfg.Validate())
}

func TestConfigValidateRejectsBadFootprint(t *testing.T) {
	cfg := DefaultConfig()
	cfg.FootprintXMin = cfg.FootprintXMax
	assert.Error(t, cfg.Validate())
}

func TestWithToleranceBuildersAreImmutable(t *testing.T) {
	base := DefaultConfig()
	adjusted := base.WithTolerances(0.01, 0.1, 5, 50)

	assert.NotEqual(t, base.SmallAngularError, adjusted.SmallAngularError)
	assert.Equal(t, 0.035, base.SmallAngularError)
	require.NoError(t, adjusted.Validate())
}
