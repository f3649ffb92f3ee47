/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

package launcher

import (
	"testing"

	"github.com/google/uuid"
)

func TestClientTokenIsDeterministic(t *testing.T) {
	a := ClientToken("evt-1", "0900", "user-1")
	b := ClientToken("evt-1", "0900", "user-1")
	if a != b {
		t.Fatalf("identical inputs produced different tokens: %s vs %s", a, b)
	}
}

func TestClientTokenChangesWithAnyInput(t *testing.T) {
	base := ClientToken("evt-1", "0900", "user-1")

	tests := []struct {
		name  string
		token string
	}{
		{name: "different invocation id", token: ClientToken("evt-2", "0900", "user-1")},
		{name: "different start time", token: ClientToken("evt-1", "0915", "user-1")},
		{name: "different user", token: ClientToken("evt-1", "0900", "user-2")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.token == base {
				t.Errorf("token did not change: %s", tt.token)
			}
		})
	}
}

func TestClientTokenIsUUIDFormatted(t *testing.T) {
	token := ClientToken("evt-1", "0900", "user-1")
	if _, err := uuid.Parse(token); err != nil {
		t.Fatalf("token %q is not a valid UUID: %v", token, err)
	}
}

func TestClientTokenHandlesEmptyInputs(t *testing.T) {
	a := ClientToken("", "", "")
	b := ClientToken("", "", "")
	if a != b {
		t.Fatalf("empty inputs should still hash deterministically: %s vs %s", a, b)
	}
	if _, err := uuid.Parse(a); err != nil {
		t.Fatalf("token %q is not a valid UUID: %v", a, err)
	}
}
