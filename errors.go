package spritesplit

import (
	"errors"
	"fmt"
)

var (
	ErrEmptyAxis = errors.New("no pixel above detection threshold")
	ErrDecode    = errors.New("decode image")
	ErrWrite     = errors.New("write sprite")
)

// AxisError reports an axis without any occupied index. No candidate grid can
// be formed from it.
type AxisError struct {
	Axis Axis
}

func (e *AxisError) Error() string {
	return fmt.Sprintf("%s: %v", e.Axis, ErrEmptyAxis)
}

func (e *AxisError) Unwrap() error { return ErrEmptyAxis }

// DecodeError wraps a missing, unreadable or corrupt sheet.
type DecodeError struct {
	Path string
	Err  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("%v %s: %v", ErrDecode, e.Path, e.Err)
}

func (e *DecodeError) Unwrap() []error { return []error{ErrDecode, e.Err} }

// WriteError is a per-sprite output failure. Export keeps going after one.
type WriteError struct {
	Name string
	Path string
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("%v %s: %v", ErrWrite, e.Name, e.Err)
}

func (e *WriteError) Unwrap() []error { return []error{ErrWrite, e.Err} }
