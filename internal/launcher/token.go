/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

package launcher

import (
	"crypto/md5"

	"github.com/google/uuid"
)

// ClientToken derives the idempotency token for one (invocation, config)
// pair. The same invocation id, launch slot, and user always yield the same
// token, which is what lets the session service collapse duplicate launch
// calls within a scheduling tick. MD5 is fine here: the token is a
// deduplication key, not a security control.
func ClientToken(invocationID, startTime, userID string) string {
	sum := md5.Sum([]byte(invocationID + startTime + userID))
	return uuid.Must(uuid.FromBytes(sum[:])).String()
}
