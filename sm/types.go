// SPDX-FileCopyrightText: 2021 Open Networking Foundation <info@opennetworking.org>
//
// SPDX-License-Identifier: Apache-2.0

package sm

import (
	"fmt"
	"net"
)

// MaxServiceAreaCodes bounds the decoded MBMS service area list.
const MaxServiceAreaCodes = 16

// Multicast distribution address family tags (TS 29.274 section 8.80).
const (
	MulticastAddressTypeIPv4 uint8 = 0
	MulticastAddressTypeIPv6 uint8 = 1
)

// Plmn holds the TBCD digits of a mobile country and network code.
type Plmn struct {
	MccDigit1 uint8
	MccDigit2 uint8
	MccDigit3 uint8
	MncDigit1 uint8
	MncDigit2 uint8
	MncDigit3 uint8
}

func (p Plmn) String() string {
	if p.MncDigit3 == 0x0f {
		return fmt.Sprintf("%d%d%d-%d%d", p.MccDigit1, p.MccDigit2, p.MccDigit3, p.MncDigit1, p.MncDigit2)
	}
	return fmt.Sprintf("%d%d%d-%d%d%d", p.MccDigit1, p.MccDigit2, p.MccDigit3, p.MncDigit1, p.MncDigit2, p.MncDigit3)
}

// Tmgi is the temporary mobile group identity: an MBMS service identifier
// scoped by the owning PLMN.
type Tmgi struct {
	ServiceID uint32
	Plmn      Plmn
}

// SessionDuration is the remaining MBMS session lifetime.
type SessionDuration struct {
	Seconds uint32
	Days    uint8
}

// ServiceArea is the list of MBMS service area codes the session targets.
type ServiceArea struct {
	NumServiceArea uint8
	ServiceArea    [MaxServiceAreaCodes]uint16
}

// FlowIdentifier distinguishes MBMS bearers within one service.
type FlowIdentifier uint16

// IPMulticastDistribution carries the multicast tunnel parameters: the
// common TEID, the distribution and source addresses and the MBMS HC
// indication.
type IPMulticastDistribution struct {
	CTeid uint32

	DistributionAddressType uint8
	DistributionAddress     net.IP

	SourceAddressType uint8
	SourceAddress     net.IP

	HCIndication uint8
}

// AbsTimeDataTransfer is the absolute time of MBMS data transfer, a 64-bit
// NTP style seconds value kept in wire order.
type AbsTimeDataTransfer struct {
	AbsTime [8]byte
}

// Flags are the MBMS flags: MSRI (MBMS session re-establishment indication)
// and LMRI (local MBMS bearer context release indication).
type Flags struct {
	MSRI bool
	LMRI bool
}
