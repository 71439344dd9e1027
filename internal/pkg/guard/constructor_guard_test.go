package guard_test

import (
	"errors"
	"testing"

	"millflow/internal/pkg/guard"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConstructorGuard(t *testing.T) {
	g := guard.NewConstructorGuard()

	require.NoError(t, g.Validate(errors.New("roll not constructed")))
	require.NoError(t, g.Validate(nil))
}

func TestConstructorGuard_Validate(t *testing.T) {
	t.Run("constructed_guard_returns_nil", func(t *testing.T) {
		g := guard.NewConstructorGuard()

		require.NoError(t, g.Validate(errors.New("not constructed")))
	})

	t.Run("zero_value_guard_returns_custom_error", func(t *testing.T) {
		var g guard.ConstructorGuard
		expectedError := errors.New("roll must be created via NewRoll")

		err := g.Validate(expectedError)

		require.Error(t, err)
		assert.Equal(t, expectedError, err)
	})

	t.Run("zero_value_guard_returns_default_error_when_nil", func(t *testing.T) {
		var g guard.ConstructorGuard

		err := g.Validate(nil)

		require.Error(t, err)
		assert.Equal(t, guard.ErrDefaultConstructorGuard, err)
	})
}

// TestConstructorGuardUsageExample shows the pattern every aggregate and
// command in this codebase follows: a private guard field set only by the
// constructor, checked by Validate.
func TestConstructorGuardUsageExample(t *testing.T) {
	type rollLabel struct {
		weightKg float64
		location string
		guard    guard.ConstructorGuard
	}

	var errRollLabelNotConstructed = errors.New("rollLabel must be created via newRollLabel")

	newRollLabel := func(weightKg float64, location string) (rollLabel, error) {
		if weightKg <= 0 {
			return rollLabel{}, errors.New("weight must be positive")
		}
		if location == "" {
			return rollLabel{}, errors.New("location is required")
		}
		return rollLabel{
			weightKg: weightKg,
			location: location,
			guard:    guard.NewConstructorGuard(),
		}, nil
	}

	validateRollLabel := func(r rollLabel) error {
		return r.guard.Validate(errRollLabelNotConstructed)
	}

	t.Run("valid_construction_through_constructor", func(t *testing.T) {
		label, err := newRollLabel(420.5, "warehouse-a/row-3")

		require.NoError(t, err)
		require.NoError(t, validateRollLabel(label))
		assert.Equal(t, 420.5, label.weightKg)
		assert.Equal(t, "warehouse-a/row-3", label.location)
	})

	t.Run("zero_value_fails_validation", func(t *testing.T) {
		var label rollLabel

		err := validateRollLabel(label)

		require.Error(t, err)
		assert.Equal(t, errRollLabelNotConstructed, err)
	})

	t.Run("constructor_still_enforces_its_own_rules", func(t *testing.T) {
		_, err := newRollLabel(-1, "warehouse-a")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "weight must be positive")

		_, err = newRollLabel(100, "")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "location is required")
	})
}

func TestConstructorGuardDefaultError(t *testing.T) {
	require.Error(t, guard.ErrDefaultConstructorGuard)
	assert.Equal(t, "object must be created via its constructor", guard.ErrDefaultConstructorGuard.Error())
}

// TestConstructorGuardConcurrency verifies Validate is safe for concurrent use;
// handlers validate shared command values from multiple goroutines.
func TestConstructorGuardConcurrency(t *testing.T) {
	g := guard.NewConstructorGuard()
	validationError := errors.New("not constructed")

	done := make(chan bool)
	for range 50 {
		go func() {
			for range 500 {
				assert.NoError(t, g.Validate(validationError))
			}
			done <- true
		}()
	}

	for range 50 {
		<-done
	}
}

func TestConstructorGuardCopySemantics(t *testing.T) {
	g := guard.NewConstructorGuard()
	testError := errors.New("not constructed")

	gCopy := g

	require.NoError(t, g.Validate(testError))
	require.NoError(t, gCopy.Validate(testError))
}
