package number

import (
	"testing"

	"github.com/bmizerany/assert"
)

func TestWeiRoundTrip(t *testing.T) {
	data := map[string]string{
		"0.0005": "500000000000000",
		"0.0002": "200000000000000",
		"1":      "1000000000000000000",
		"0":      "0",
	}

	for ether, wei := range data {
		t.Run(ether, func(t *testing.T) {
			w := ToWei(Decimal(ether))
			assert.Equal(t, wei, w.String())
			assert.Equal(t, Decimal(ether).String(), FromWei(w).String())
		})
	}
}
