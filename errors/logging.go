package errors

import "log/slog"

// Attrs exposes the structured fields of the error for logging.
func (e *Error) Attrs() []slog.Attr {
	a := make([]slog.Attr, 0, 6)

	a = append(a, slog.Int("kind", int(e.Kind)))

	if e.NestedError != nil {
		a = append(a, slog.Any("nested_error", e.NestedError))
	}

	switch e.Kind {
	case ConfigurationInvalid, ArgumentInvalid:
		a = append(a,
			slog.String("property_name", e.PropertyName),
			slog.Any("property_value", e.PropertyValue),
		)
	case StateInvalid:
		a = append(a, slog.String("property_name", e.PropertyName))
		if e.PropertyValue != nil {
			a = append(a, slog.Any("property_value", e.PropertyValue))
		}
	case Timeout:
		a = append(a,
			slog.String("timeout_name", e.TimeoutName),
			slog.Duration("timeout_value", e.TimeoutValue),
		)
	case InternalLogicError:
		if e.PropertyName != "" {
			a = append(a, slog.String("property_name", e.PropertyName))
		}
	}

	return a
}
