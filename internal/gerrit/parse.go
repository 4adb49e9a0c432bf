// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gerrit

import (
	"bytes"
	"encoding/json"
)

// magicPrefix is the anti-XSSI line Gerrit prepends to every JSON
// response body. It must be stripped before parsing.
const magicPrefix = ")]}'"

// stripMagic removes the anti-XSSI magic prefix line from body,
// if present. Stripping is idempotent: a body without the prefix
// is returned unchanged.
func stripMagic(body []byte) []byte {
	if !bytes.HasPrefix(body, []byte(magicPrefix)) {
		return body
	}
	body = body[len(magicPrefix):]
	if i := bytes.IndexByte(body, '\n'); i >= 0 && len(bytes.TrimSpace(body[:i])) == 0 {
		body = body[i+1:]
	}
	return body
}

// unmarshalBody strips the magic prefix from body and decodes the
// remainder as JSON into obj. A body that is not valid JSON after
// stripping is a KindMalformed error.
func unmarshalBody(body []byte, obj any) error {
	data := bytes.TrimSpace(stripMagic(body))
	if err := json.Unmarshal(data, obj); err != nil {
		return &Error{Kind: KindMalformed, Detail: "invalid JSON response body", Err: err}
	}
	return nil
}
