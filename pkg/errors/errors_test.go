package errors

import (
	stderrors "errors"
	"fmt"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeUnknownLayer, "layer %q not defined", "cta_button")

	if err.Code != ErrCodeUnknownLayer {
		t.Errorf("Code = %q, want %q", err.Code, ErrCodeUnknownLayer)
	}
	want := `UNKNOWN_LAYER: layer "cta_button" not defined`
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestWrap(t *testing.T) {
	cause := stderrors.New("unexpected EOF")
	err := Wrap(ErrCodeDecode, cause, "decode %s", "bg.png")

	if !stderrors.Is(err, cause) {
		t.Error("wrapped error should match cause via errors.Is")
	}
	want := "DECODE_ERROR: decode bg.png: unexpected EOF"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestIs(t *testing.T) {
	err := New(ErrCodeUnknownCanvas, "canvas missing")

	if !Is(err, ErrCodeUnknownCanvas) {
		t.Error("Is should match the error's own code")
	}
	if Is(err, ErrCodeWrite) {
		t.Error("Is should not match a different code")
	}
	if Is(stderrors.New("plain"), ErrCodeWrite) {
		t.Error("Is should not match plain errors")
	}
}

func TestIsThroughWrapping(t *testing.T) {
	inner := New(ErrCodeAssetNotFound, "no such file")
	outer := fmt.Errorf("render entry: %w", inner)

	if !Is(outer, ErrCodeAssetNotFound) {
		t.Error("Is should unwrap fmt.Errorf chains")
	}
	if GetCode(outer) != ErrCodeAssetNotFound {
		t.Errorf("GetCode = %q, want %q", GetCode(outer), ErrCodeAssetNotFound)
	}
}

func TestGetCode(t *testing.T) {
	if got := GetCode(stderrors.New("plain")); got != "" {
		t.Errorf("GetCode(plain) = %q, want empty", got)
	}
	if got := GetCode(New(ErrCodeFontLoad, "bad font")); got != ErrCodeFontLoad {
		t.Errorf("GetCode = %q, want %q", got, ErrCodeFontLoad)
	}
}

func TestUserMessage(t *testing.T) {
	err := New(ErrCodeWrite, "disk full")
	if got := UserMessage(err); got != "disk full" {
		t.Errorf("UserMessage = %q, want %q", got, "disk full")
	}

	plain := stderrors.New("boom")
	if got := UserMessage(plain); got != "boom" {
		t.Errorf("UserMessage(plain) = %q, want %q", got, "boom")
	}
}

func TestIsFatal(t *testing.T) {
	tests := []struct {
		code  Code
		fatal bool
	}{
		{ErrCodeInvalidTemplate, true},
		{ErrCodeFontLoad, true},
		{ErrCodeInternal, true},
		{ErrCodeUnknownCanvas, false},
		{ErrCodeUnknownLayer, false},
		{ErrCodeAmbiguousLayer, false},
		{ErrCodeAssetNotFound, false},
		{ErrCodeDecode, false},
		{ErrCodeWrite, false},
	}

	for _, tt := range tests {
		err := New(tt.code, "msg")
		if got := IsFatal(err); got != tt.fatal {
			t.Errorf("IsFatal(%s) = %v, want %v", tt.code, got, tt.fatal)
		}
	}

	if !IsFatal(stderrors.New("uncoded")) {
		t.Error("uncoded errors should be fatal")
	}
}
