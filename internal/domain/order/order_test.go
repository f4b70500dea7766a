package order

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOrder_Eligible(t *testing.T) {
	cases := []struct {
		status   Status
		eligible bool
	}{
		{StatusInProgress, false},
		{StatusCompleted, true},
		{StatusCompletedVerify, true},
		{StatusDonePaid, true},
	}

	for _, tc := range cases {
		t.Run(string(tc.status), func(t *testing.T) {
			o := &Order{Status: tc.status}
			assert.Equal(t, tc.eligible, o.Eligible())
		})
	}
}

func TestOrder_Settled(t *testing.T) {
	assert.True(t, (&Order{Status: StatusDonePaid}).Settled())
	assert.False(t, (&Order{Status: StatusCompleted}).Settled())
}

func TestValidCode(t *testing.T) {
	assert.True(t, ValidCode("PAL00012"))
	assert.True(t, ValidCode("PAL123456789"))
	assert.False(t, ValidCode("PAL1234"), "needs at least five digits")
	assert.False(t, ValidCode("pal00012"), "caller must uppercase first")
	assert.False(t, ValidCode("XAL00012"))
	assert.False(t, ValidCode("PAL00012X"))
	assert.False(t, ValidCode(""))
}
