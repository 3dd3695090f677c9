package prob

import (
	"testing"

	"github.com/danielpatrickdp/gcalc/internal/calcerr"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    float64
		wantErr error
	}{
		{name: "fraction", in: "0.25", want: 0.25},
		{name: "one is a fraction", in: "1", want: 1},
		{name: "zero", in: "0", want: 0},
		{name: "percentage", in: "25", want: 0.25},
		{name: "percent sign", in: "50%", want: 0.5},
		{name: "hundred", in: "100", want: 1},
		{name: "small percent reads as fraction", in: "0.5%", want: 0.5},
		{name: "whitespace", in: " 3.5 ", want: 0.035},
		{name: "empty", in: "", wantErr: calcerr.ErrParse},
		{name: "only percent", in: "%", wantErr: calcerr.ErrParse},
		{name: "garbage", in: "abc", wantErr: calcerr.ErrParse},
		{name: "negative", in: "-0.1", wantErr: calcerr.ErrDomain},
		{name: "above hundred", in: "100.5", wantErr: calcerr.ErrDomain},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse("probability", tt.in)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			require.InDelta(t, tt.want, got, 1e-12)
		})
	}
}

func TestFormat(t *testing.T) {
	tests := []struct {
		name string
		v    float64
		d    Display
		want string
	}{
		{name: "shortest fraction", v: 0.5, d: DefaultDisplay(), want: "0.5"},
		{name: "truncated not rounded", v: 0.83193, d: Display{Mode: DisplayFraction, Precision: 2}, want: "0.83"},
		{name: "truncates 0.999", v: 0.999, d: Display{Mode: DisplayFraction, Precision: 2}, want: "0.99"},
		{name: "representation guard", v: 0.29, d: Display{Mode: DisplayFraction, Precision: 2}, want: "0.29"},
		{name: "percentage", v: 0.83193, d: Display{Mode: DisplayPercentage, Precision: 1}, want: "83.1%"},
		{name: "percentage shortest", v: 0.25, d: Display{Mode: DisplayPercentage, Precision: -1}, want: "25%"},
		{name: "zero precision", v: 0.9, d: Display{Mode: DisplayPercentage, Precision: 0}, want: "90%"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, Format(tt.v, tt.d))
		})
	}
}

func TestParseDisplayMode(t *testing.T) {
	m, err := ParseDisplayMode("Percent")
	require.NoError(t, err)
	require.Equal(t, DisplayPercentage, m)

	m, err = ParseDisplayMode("float")
	require.NoError(t, err)
	require.Equal(t, DisplayFraction, m)

	_, err = ParseDisplayMode("ratio")
	require.ErrorIs(t, err, calcerr.ErrConfiguration)
}
