// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gerrit

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func TestStripMagic(t *testing.T) {
	for _, tc := range []struct {
		name string
		in   string
		want string
	}{
		{"prefix with newline", ")]}'\n{\"a\":1}", "{\"a\":1}"},
		{"prefix with crlf", ")]}'\r\n{\"a\":1}", "{\"a\":1}"},
		{"no prefix", "{\"a\":1}", "{\"a\":1}"},
		{"empty", "", ""},
		{"prefix only", ")]}'", ""},
		{"prefix inside body stays", "{\"a\":\")]}'\"}", "{\"a\":\")]}'\"}"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			got := string(stripMagic([]byte(tc.in)))
			if got != tc.want {
				t.Errorf("stripMagic(%q) = %q, want %q", tc.in, got, tc.want)
			}
			// Stripping is idempotent.
			again := string(stripMagic([]byte(got)))
			if again != got {
				t.Errorf("stripMagic not idempotent: %q -> %q", got, again)
			}
		})
	}
}

func TestUnmarshalBodyPrefixLossless(t *testing.T) {
	// A body with the anti-XSSI prefix must parse identically to the
	// same body without it.
	plain := []byte(`{"subject":"fix tests","_number":42}`)
	prefixed := append([]byte(")]}'\n"), plain...)

	var a, b ChangeInfo
	if err := unmarshalBody(plain, &a); err != nil {
		t.Fatal(err)
	}
	if err := unmarshalBody(prefixed, &b); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(a, b, cmpopts.EquateComparable(TimeStamp{})); diff != "" {
		t.Errorf("prefixed body parsed differently (-plain +prefixed):\n%s", diff)
	}
	if a.Subject != "fix tests" || a.Number != 42 {
		t.Errorf("parsed ChangeInfo = %+v, want subject %q number 42", a, "fix tests")
	}
}

func TestUnmarshalBodyMalformed(t *testing.T) {
	for _, body := range []string{
		")]}'\nnot json",
		"<html>login page</html>",
		")]}'\n{\"truncated\":",
	} {
		var obj map[string]any
		err := unmarshalBody([]byte(body), &obj)
		if err == nil {
			t.Errorf("unmarshalBody(%q) succeeded, want malformed error", body)
			continue
		}
		if got := ErrorKind(err); got != KindMalformed {
			t.Errorf("unmarshalBody(%q) kind = %q, want %q", body, got, KindMalformed)
		}
	}
}

func TestErrorKind(t *testing.T) {
	err := &Error{Kind: KindNotFound, Status: 404}
	if got := ErrorKind(err); got != KindNotFound {
		t.Errorf("ErrorKind = %q, want %q", got, KindNotFound)
	}
	wrapped := errors.Join(errors.New("outer"), err)
	if got := ErrorKind(wrapped); got != KindNotFound {
		t.Errorf("ErrorKind(wrapped) = %q, want %q", got, KindNotFound)
	}
	if got := ErrorKind(errors.New("plain")); got != "" {
		t.Errorf("ErrorKind(plain) = %q, want empty", got)
	}
}
