package payment

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToMinorUnits(t *testing.T) {
	assert.Equal(t, int64(1999), ToMinorUnits(19.99))
	assert.Equal(t, int64(5000), ToMinorUnits(50.00))
	assert.Equal(t, int64(0), ToMinorUnits(0))
	// round-half-up on the half-penny boundary
	assert.Equal(t, int64(1001), ToMinorUnits(10.005))
}

func TestFromMinorUnits(t *testing.T) {
	assert.Equal(t, "19.99", FromMinorUnits(1999))
	assert.Equal(t, "50.00", FromMinorUnits(5000))
	assert.Equal(t, "0.05", FromMinorUnits(5))
}

func TestConversionRoundTrips(t *testing.T) {
	assert.Equal(t, "19.99", FromMinorUnits(ToMinorUnits(19.99)))
	assert.Equal(t, "25.00", FromMinorUnits(ToMinorUnits(25.0)))
}

func TestFormatMajor(t *testing.T) {
	assert.Equal(t, "50.00", FormatMajor(50.0))
	assert.Equal(t, "19.99", FormatMajor(19.99))
}
