// SPDX-FileCopyrightText: 2021 Open Networking Foundation <info@opennetworking.org>
//
// SPDX-License-Identifier: Apache-2.0

package esm

// Cause is an ESM cause value from TS 24.301 section 9.9.4.4. CauseSuccess
// is not sent on the wire; it marks a procedure that completed without a
// reportable cause.
type Cause uint8

const (
	CauseSuccess                         Cause = 0
	CauseInsufficientResources           Cause = 26
	CauseUnknownOrMissingAPN             Cause = 27
	CauseRequestRejectedUnspecified      Cause = 31
	CausePdnTypeIPv4OnlyAllowed          Cause = 50
	CausePdnTypeIPv6OnlyAllowed          Cause = 51
	CauseSingleAddressBearersOnlyAllowed Cause = 52
)

var causeStrings = map[Cause]string{
	CauseSuccess:                         "Success",
	CauseInsufficientResources:           "Insufficient resources",
	CauseUnknownOrMissingAPN:             "Unknown or missing APN",
	CauseRequestRejectedUnspecified:      "Request rejected, unspecified",
	CausePdnTypeIPv4OnlyAllowed:          "PDN type IPv4 only allowed",
	CausePdnTypeIPv6OnlyAllowed:          "PDN type IPv6 only allowed",
	CauseSingleAddressBearersOnlyAllowed: "Single address bearers only allowed",
}

func (c Cause) String() string {
	if s, ok := causeStrings[c]; ok {
		return s
	}
	return "Protocol error, unspecified"
}
