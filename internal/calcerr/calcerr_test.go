package calcerr

import (
	"errors"
	"strconv"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIsMatchesByCode(t *testing.T) {
	err := Configuration("budget %v with zero cost", 10.0)
	require.ErrorIs(t, err, ErrConfiguration)
	require.NotErrorIs(t, err, ErrParse)
}

func TestParseKeepsCause(t *testing.T) {
	_, cause := strconv.ParseFloat("abc", 64)
	err := Parse("probability", "abc", cause)

	require.ErrorIs(t, err, ErrParse)
	var numErr *strconv.NumError
	require.True(t, errors.As(err, &numErr))
	require.Equal(t, "abc", err.Metadata["value"])
}

func TestWithTrialAnnotates(t *testing.T) {
	err := WithTrial(Parse("cost", "x", nil), 7)

	require.ErrorIs(t, err, ErrParse)
	var e *Error
	require.True(t, errors.As(err, &e))
	require.Equal(t, "7", e.Metadata["trial"])
	require.Equal(t, "cost", e.Metadata["field"])
	require.Contains(t, e.Error(), "trial 7")
}

func TestWithTrialForeignError(t *testing.T) {
	base := errors.New("boom")
	err := WithTrial(base, 3)
	require.ErrorIs(t, err, base)
	require.Equal(t, "trial 3: boom", err.Error())
}

func TestSourceExhaustedNamesTrial(t *testing.T) {
	err := SourceExhausted(12)
	require.ErrorIs(t, err, ErrSourceExhausted)
	require.Contains(t, err.Error(), "trial 12")
}
