package term

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ra2003/prodint/errs"
)

func TestFunc_ValueAndDependencies(t *testing.T) {
	x := NewVar("x", 2, 0, 1)
	y := NewVar("y", 0, 0, 1)

	f := NewFunc("f", NewSet(x), func() float64 { return x.Value(nil) * x.Value(nil) })
	require.Equal(t, 4.0, f.Value(nil))

	require.True(t, f.DependsOn(x))
	require.False(t, f.DependsOn(y))
	require.True(t, f.DependsOnAny(NewSet(y, x)))
	require.False(t, f.DependsOnAny(NewSet(y)))
	require.Equal(t, []string{"x"}, f.Variables().Names())
}

func TestFunc_CreateIntegral(t *testing.T) {
	x := NewVar("x", 0, 0, 2)

	t.Run("without a closure it is unavailable", func(t *testing.T) {
		f := NewFunc("f", NewSet(x), func() float64 { return 1 })
		_, err := f.CreateIntegral(NewSet(x), DefaultRange)
		require.True(t, errors.Is(err, errs.ErrNoAnalyticIntegral))
	})

	t.Run("closure output is returned as-is", func(t *testing.T) {
		f := NewFuncWithIntegral("f", NewSet(x),
			func() float64 { return x.Value(nil) },
			func(vars *Set, rng string) (Real, error) {
				min, max, err := x.Range(rng)
				if err != nil {
					return nil, err
				}
				return NewConst(IntegralName("f", vars, rng), (max*max-min*min)/2), nil
			})

		integral, err := f.CreateIntegral(NewSet(x), DefaultRange)
		require.NoError(t, err)
		require.Equal(t, 2.0, integral.Value(nil))
		require.Equal(t, "f_Int[x]", integral.Name())
	})
}

func TestConst(t *testing.T) {
	c := NewConst("c", 3.5)
	require.Equal(t, 3.5, c.Value(nil))
	require.False(t, c.DependsOn(NewVar("x", 0, 0, 1)))
	require.Equal(t, 0, c.Variables().Len())
}

func TestIntegralName(t *testing.T) {
	x := NewVar("x", 0, 0, 1)
	y := NewVar("y", 0, 0, 1)

	require.Equal(t, "f_Int[x,y]", IntegralName("f", NewSet(x, y), DefaultRange))
	require.Equal(t, "f_Int[x]_window", IntegralName("f", NewSet(x), "window"))
}

func TestCat(t *testing.T) {
	c := NewCat("mode", 3)
	require.Equal(t, "mode", c.Name())
	require.Equal(t, 3, c.Index())

	c.SetIndex(-2)
	require.Equal(t, -2, c.Index())

	require.False(t, c.DependsOn(NewVar("x", 0, 0, 1)))
	require.False(t, c.DependsOnAny(NewSet(NewVar("x", 0, 0, 1))))
}
