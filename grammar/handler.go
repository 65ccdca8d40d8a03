package grammar

import (
	"log/slog"
)

// Handler turns rule content of object form into a sampled value using the
// caller-supplied randomness source. The content is the full rule object,
// including its "handler" field and any handler-specific parameters.
//
// A handler returning an error fails the expansion of that subtree; the
// engine additionally requires the successful result to be a string.
type Handler func(content *Value, rng Source) (*Value, error)

// builtinHandlers returns a fresh registry holding the object handlers every
// Grammar carries.
func builtinHandlers() map[string]Handler {
	return map[string]Handler{
		"binomial-distribution": binomialHandler,
		"discrete-distribution": discreteHandler,
	}
}

// binomialHandler picks from a "values" array using a binomially distributed
// index: with n+1 values it runs n trials at the given "success-rate" and
// selects the value at the number of successes. Rates at 0 or 1 degenerate to
// the first or last value.
func binomialHandler(content *Value, rng Source) (*Value, error) {
	values, err := arrayField(content, "values")
	if err != nil {
		return nil, err
	}

	rate, ok := content.Field("success-rate")
	if !ok || rate.Kind != KindNumber || rate.Num < 0 || rate.Num > 1 {
		return nil, ErrHandlerParams.
			With(slog.String("field", "success-rate"))
	}

	successes := 0

	for trial := 0; trial < len(values)-1; trial++ {
		if rng.Float64() < rate.Num {
			successes++
		}
	}

	return values[successes], nil
}

// discreteHandler picks from a "values" array using the parallel "weights"
// array as a discrete distribution. Weights must be non-negative numbers with
// a positive total.
func discreteHandler(content *Value, rng Source) (*Value, error) {
	values, err := arrayField(content, "values")
	if err != nil {
		return nil, err
	}

	weights, err := arrayField(content, "weights")
	if err != nil {
		return nil, err
	}

	if len(weights) != len(values) {
		return nil, ErrHandlerParams.
			With(
				slog.String("field", "weights"),
				slog.Int("values", len(values)),
				slog.Int("weights", len(weights)),
			)
	}

	total := 0.0

	for _, w := range weights {
		if w.Kind != KindNumber || w.Num < 0 {
			return nil, ErrHandlerParams.
				With(slog.String("field", "weights"))
		}

		total += w.Num
	}

	if total <= 0 {
		return nil, ErrHandlerParams.
			With(slog.String("field", "weights"), slog.String("reason", "zero total weight"))
	}

	target := rng.Float64() * total

	for i, w := range weights {
		target -= w.Num
		if target < 0 {
			return values[i], nil
		}
	}

	// Float round-off can leave target at exactly zero after the last weight.
	return values[len(values)-1], nil
}

// arrayField extracts a required non-empty array field from handler content.
func arrayField(content *Value, name string) ([]*Value, error) {
	if content == nil {
		return nil, ErrUnexpectedType.
			With(slog.String("kind", KindNull.String()))
	}

	if content.Kind != KindObject {
		return nil, ErrUnexpectedType.
			With(slog.String("kind", content.Kind.String()))
	}

	field, ok := content.Field(name)
	if !ok || field.Kind != KindArray || len(field.Arr) == 0 {
		return nil, ErrHandlerParams.
			With(slog.String("field", name))
	}

	return field.Arr, nil
}
