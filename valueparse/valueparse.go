// Package valueparse is the built-in catalog of value parsers a caller can
// hand to clap.Arg.Parser, so common scalar and validated-string
// arguments do not need a hand-written parser.
//
// The validated parsers (Email, URL, IPAddr, Hostname, Regex) are backed by
// github.com/go-playground/validator/v10 through validator.Var(value, tag).
package valueparse

import (
	"fmt"
	"reflect"
	"strconv"
	"time"

	scalar "github.com/alexflint/go-scalar"
	"github.com/go-playground/validator/v10"
)

// Func is the shape every value parser in this package returns: given the
// raw string token, produce a typed value or a failure. It is a type alias
// (not a defined type) so a Func value is directly assignable to
// clap.ValueParser without a conversion at every call site.
type Func = func(raw string) (any, error)

// Bool parses "true"/"false" (and strconv.ParseBool's other spellings).
func Bool() Func {
	return func(raw string) (any, error) {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid boolean value %q", raw)
		}

		return v, nil
	}
}

// Int parses a base-10 int, matching the platform int width.
func Int() Func {
	return func(raw string) (any, error) {
		v, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid integer value %q", raw)
		}

		return v, nil
	}
}

// Int64 parses a base-10 int64.
func Int64() Func {
	return func(raw string) (any, error) {
		v, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid integer value %q", raw)
		}

		return v, nil
	}
}

// Uint parses a base-10 uint, matching the platform uint width.
func Uint() Func {
	return func(raw string) (any, error) {
		v, err := strconv.ParseUint(raw, 10, 0)
		if err != nil {
			return nil, fmt.Errorf("invalid unsigned integer value %q", raw)
		}

		return uint(v), nil
	}
}

// Uint64 parses a base-10 uint64.
func Uint64() Func {
	return func(raw string) (any, error) {
		v, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid unsigned integer value %q", raw)
		}

		return v, nil
	}
}

// Float64 parses a 64-bit float.
func Float64() Func {
	return func(raw string) (any, error) {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid float value %q", raw)
		}

		return v, nil
	}
}

// Duration parses a Go duration string (e.g. "1h30m").
func Duration() Func {
	return func(raw string) (any, error) {
		v, err := time.ParseDuration(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid duration value %q", raw)
		}

		return v, nil
	}
}

// String is the identity parser: every token, the empty string included, is
// returned unchanged. It exists so callers can be explicit about "no
// conversion" rather than leaving the Arg's parser unset.
func String() Func {
	return func(raw string) (any, error) {
		return raw, nil
	}
}

// Path is the identity parser for filesystem paths: the core never touches
// the filesystem (that belongs to the consuming program), it only passes the
// raw token through as a string.
func Path() Func {
	return String()
}

// Typed builds a Func that parses raw into a fresh value of prototype's
// type through github.com/alexflint/go-scalar: numeric types, bools,
// durations, and any encoding.TextUnmarshaler (net.IP, time.Time, ...).
// Typed(0) parses ints, Typed(net.IP{}) parses addresses, and so on.
func Typed(prototype any) Func {
	t := reflect.TypeOf(prototype)

	return func(raw string) (any, error) {
		if !scalar.CanParse(t) {
			return nil, fmt.Errorf("type %s is not parseable from a string", t)
		}

		v := reflect.New(t)
		if err := scalar.ParseValue(v.Elem(), raw); err != nil {
			return nil, fmt.Errorf("cannot parse %q as %s: %w", raw, t, err)
		}

		return v.Elem().Interface(), nil
	}
}

var validate = validator.New()

// validated builds a Func that runs the value through
// validator.Var(value, tag), folding a validation failure into a plain error
// the parser wraps as InvalidValue.
func validated(tag, label string) Func {
	return func(raw string) (any, error) {
		if err := validate.Var(raw, tag); err != nil {
			return nil, fmt.Errorf("%q is not a valid %s: %w", raw, label, err)
		}

		return raw, nil
	}
}

// Email validates an RFC 5322 email address.
func Email() Func { return validated("email", "email address") }

// URL validates an absolute URL.
func URL() Func { return validated("url", "URL") }

// IPAddr validates an IPv4 or IPv6 address.
func IPAddr() Func { return validated("ip", "IP address") }

// Hostname validates an RFC 952/1123 hostname.
func Hostname() Func { return validated("hostname", "hostname") }

// Regex validates the raw value against an arbitrary validator tag
// expression (e.g. "len=5" or "alphanum"), for catalog entries not otherwise
// named here.
func Regex(tag string) Func { return validated(tag, "value") }

// OneOf restricts the value to a fixed, case-sensitive set of choices. It is
// a convenience wrapper; Arg.PossibleValues provides the same constraint
// together with per-value help text and hidden entries, so OneOf is best used
// when a caller wants enforcement without the bookkeeping.
func OneOf(choices ...string) Func {
	return func(raw string) (any, error) {
		for _, c := range choices {
			if raw == c {
				return raw, nil
			}
		}

		return nil, fmt.Errorf("%q is not one of %v", raw, choices)
	}
}

// Range restricts a parsed int64 to [min, max] inclusive.
func Range(min, max int64) Func {
	return func(raw string) (any, error) {
		v, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid integer value %q", raw)
		}

		if v < min || v > max {
			return nil, fmt.Errorf("%d is not in range [%d, %d]", v, min, max)
		}

		return v, nil
	}
}
