package dsl

import (
	"fmt"
	"strconv"
	"strings"
)

// Error reports a semantic problem at a position in a flavor file.
type Error struct {
	Pos string
	Msg string
}

func (e *Error) Error() string { return e.Pos + ": " + e.Msg }

// Errorf builds an Error positioned at a command.
func (c *Command) Errorf(format string, args ...any) error {
	return &Error{Pos: c.Pos.String(), Msg: fmt.Sprintf(format, args...)}
}

// Assignments collects key: value statements of b. Later keys win.
func (b *Block) Assignments() map[string]*Value {
	out := map[string]*Value{}
	if b == nil {
		return out
	}
	for _, st := range b.Statements {
		if st.Assignment != nil {
			out[st.Assignment.Key] = st.Assignment.Value
		}
	}
	return out
}

// Commands returns the commands of b in source order.
func (b *Block) Commands() []*Command {
	if b == nil {
		return nil
	}
	var out []*Command
	for _, st := range b.Statements {
		if st.Command != nil {
			out = append(out, st.Command)
		}
	}
	return out
}

// Text returns the literal of a string value, or its raw token for
// identifiers, numbers and colors.
func (v *Value) Text() (string, bool) {
	switch {
	case v == nil:
		return "", false
	case v.String != nil:
		return string(*v.String), true
	case v.Ident != nil:
		return *v.Ident, true
	case v.Number != nil:
		return *v.Number, true
	case v.Color != nil:
		return *v.Color, true
	}
	return "", false
}

// Strings returns the elements of an array value as text. A scalar is
// returned as a one-element slice.
func (v *Value) Strings() ([]string, error) {
	if v == nil {
		return nil, fmt.Errorf("missing value")
	}
	if v.Array == nil {
		s, ok := v.Text()
		if !ok {
			return nil, fmt.Errorf("expected text")
		}
		return []string{s}, nil
	}
	out := make([]string, 0, len(v.Array.Values))
	for i, el := range v.Array.Values {
		s, ok := el.Text()
		if !ok {
			return nil, fmt.Errorf("element %d is not text", i)
		}
		out = append(out, s)
	}
	return out, nil
}

// Floats returns the elements of an array of plain numbers.
func (v *Value) Floats() ([]float64, error) {
	items, err := v.Strings()
	if err != nil {
		return nil, err
	}
	out := make([]float64, len(items))
	for i, s := range items {
		f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			return nil, fmt.Errorf("element %d: %w", i, err)
		}
		out[i] = f
	}
	return out, nil
}

// Bool interprets true/false, yes/no and on/off identifiers.
func (v *Value) Bool() (bool, error) {
	s, ok := v.Text()
	if !ok {
		return false, fmt.Errorf("expected boolean")
	}
	switch strings.ToLower(s) {
	case "true", "yes", "on":
		return true, nil
	case "false", "no", "off":
		return false, nil
	}
	return false, fmt.Errorf("expected boolean, got %q", s)
}

// ParseColor decodes #RGB, #RRGGBB or #RRGGBBAA (alpha ignored) into 0-255
// components.
func ParseColor(s string) (r, g, b int, err error) {
	hex := strings.TrimPrefix(s, "#")
	switch len(hex) {
	case 3:
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	case 6:
	case 8:
		hex = hex[:6]
	default:
		return 0, 0, 0, fmt.Errorf("invalid color %q", s)
	}
	n, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return 0, 0, 0, fmt.Errorf("invalid color %q: %w", s, err)
	}
	return int(n >> 16 & 0xff), int(n >> 8 & 0xff), int(n & 0xff), nil
}
