// SPDX-FileCopyrightText: 2022-present Intel Corporation
// SPDX-FileCopyrightText: 2021 Open Networking Foundation <info@opennetworking.org>
//
// SPDX-License-Identifier: Apache-2.0

// Package sm decodes the GTPv2-C information elements of the Sm interface
// MBMS session procedures (TS 29.274). Every decoder satisfies the same
// contract so the message parser can invoke them uniformly by IE type,
// length and instance: the payload is guaranteed to hold at least ieLength
// octets, the output argument is caller owned and filled in place, and no
// decoder keeps a reference into the payload after returning.
package sm

import (
	"fmt"
	"net"

	"github.com/omec-project/mme/logger"
)

const (
	mbmsServiceIDOctets = 3
	plmnOctets          = 3
	tmgiOctets          = mbmsServiceIDOctets + plmnOctets
)

// DecodeTmgi fills arg (*Tmgi) from a TMGI IE: a 24-bit MBMS service
// identifier followed by the TBCD encoded PLMN identity.
func DecodeTmgi(ieType uint8, ieLength uint16, ieInstance uint8, ieValue []byte, arg interface{}) error {
	tmgi, ok := arg.(*Tmgi)
	if !ok {
		return fmt.Errorf("sm: TMGI decoder needs *Tmgi, got %T", arg)
	}

	if int(ieLength) > tmgiOctets {
		return ErrIncorrectIE
	}

	r, err := newIEReader(ieValue, ieLength)
	if err != nil {
		return err
	}

	if tmgi.ServiceID, err = r.uint24(); err != nil {
		return err
	}
	logger.SmLog.Debugf("MBMS service ID %d", tmgi.ServiceID)

	plmn, err := r.bytes(plmnOctets)
	if err != nil {
		return err
	}
	tmgi.Plmn.MccDigit1 = plmn[0] & 0x0f
	tmgi.Plmn.MccDigit2 = (plmn[0] & 0xf0) >> 4
	tmgi.Plmn.MccDigit3 = plmn[1] & 0x0f
	tmgi.Plmn.MncDigit3 = (plmn[1] & 0xf0) >> 4
	tmgi.Plmn.MncDigit1 = plmn[2] & 0x0f
	tmgi.Plmn.MncDigit2 = (plmn[2] & 0xf0) >> 4
	return nil
}

// DecodeSessionDuration fills arg (*SessionDuration): a 17-bit seconds
// value spread over the first three octets and a 7-bit day count.
func DecodeSessionDuration(ieType uint8, ieLength uint16, ieInstance uint8, ieValue []byte, arg interface{}) error {
	msd, ok := arg.(*SessionDuration)
	if !ok {
		return fmt.Errorf("sm: session duration decoder needs *SessionDuration, got %T", arg)
	}

	r, err := newIEReader(ieValue, ieLength)
	if err != nil {
		return err
	}

	b, err := r.bytes(4)
	if err != nil {
		return err
	}
	msd.Seconds = uint32(b[0])<<17 + uint32(b[1])<<9 + uint32(b[2]&0x80)
	msd.Days = b[3] & 0x7f
	return nil
}

// DecodeServiceArea fills arg (*ServiceArea) from a count octet followed by
// that many 16-bit service area codes. The count is checked against both
// the declared IE length and the output capacity before anything is
// written.
func DecodeServiceArea(ieType uint8, ieLength uint16, ieInstance uint8, ieValue []byte, arg interface{}) error {
	sa, ok := arg.(*ServiceArea)
	if !ok {
		return fmt.Errorf("sm: service area decoder needs *ServiceArea, got %T", arg)
	}

	r, err := newIEReader(ieValue, ieLength)
	if err != nil {
		return err
	}

	count, err := r.uint8()
	if err != nil {
		return err
	}
	if int(count) > MaxServiceAreaCodes || r.remaining() != 2*int(count) {
		return ErrIncorrectIE
	}

	sa.NumServiceArea = count
	for i := 0; i < int(count); i++ {
		if sa.ServiceArea[i], err = r.uint16(); err != nil {
			return err
		}
	}
	return nil
}

// DecodeFlowIdentifier fills arg (*FlowIdentifier) from a single 16-bit
// value.
func DecodeFlowIdentifier(ieType uint8, ieLength uint16, ieInstance uint8, ieValue []byte, arg interface{}) error {
	flowID, ok := arg.(*FlowIdentifier)
	if !ok {
		return fmt.Errorf("sm: flow identifier decoder needs *FlowIdentifier, got %T", arg)
	}

	if ieLength != 2 {
		return ErrIncorrectIE
	}

	r, err := newIEReader(ieValue, ieLength)
	if err != nil {
		return err
	}

	v, err := r.uint16()
	if err != nil {
		return err
	}
	*flowID = FlowIdentifier(v)
	logger.SmLog.Debugf("MBMS flow ID %d", v)
	return nil
}

// readMulticastAddress parses one type/length octet and the address octets
// behind it. Only IPv4 (4 octets) and IPv6 (exactly 16 octets) are
// recognized; anything else fails the IE.
func readMulticastAddress(r *ieReader) (uint8, net.IP, error) {
	tl, err := r.uint8()
	if err != nil {
		return 0, nil, err
	}

	addrType := (tl & 0xc0) >> 6
	addrLen := int(tl & 0x3f)

	switch addrType {
	case MulticastAddressTypeIPv4:
		b, err := r.bytes(net.IPv4len)
		if err != nil {
			return 0, nil, err
		}
		ip := make(net.IP, net.IPv4len)
		copy(ip, b)
		return addrType, ip, nil

	case MulticastAddressTypeIPv6:
		if addrLen != net.IPv6len {
			logger.SmLog.Errorf("invalid IPv6 length %d for IP multicast addr", addrLen)
			return 0, nil, ErrIncorrectIE
		}
		b, err := r.bytes(net.IPv6len)
		if err != nil {
			return 0, nil, err
		}
		ip := make(net.IP, net.IPv6len)
		copy(ip, b)
		return addrType, ip, nil
	}

	logger.SmLog.Errorf("invalid IP type %d for IP multicast addr", addrType)
	return 0, nil, ErrIncorrectIE
}

// DecodeIPMulticastDistribution fills arg (*IPMulticastDistribution): the
// common TEID, the distribution and source multicast addresses and the HC
// indication octet.
func DecodeIPMulticastDistribution(ieType uint8, ieLength uint16, ieInstance uint8, ieValue []byte, arg interface{}) error {
	dist, ok := arg.(*IPMulticastDistribution)
	if !ok {
		return fmt.Errorf("sm: IP multicast distribution decoder needs *IPMulticastDistribution, got %T", arg)
	}

	r, err := newIEReader(ieValue, ieLength)
	if err != nil {
		return err
	}

	if dist.CTeid, err = r.uint32(); err != nil {
		return err
	}
	logger.SmLog.Debugf("CTEID %08x", dist.CTeid)

	if dist.DistributionAddressType, dist.DistributionAddress, err = readMulticastAddress(r); err != nil {
		return err
	}
	if dist.SourceAddressType, dist.SourceAddress, err = readMulticastAddress(r); err != nil {
		return err
	}

	if dist.HCIndication, err = r.uint8(); err != nil {
		return err
	}
	return nil
}

// DecodeAbsTimeDataTransfer fills arg (*AbsTimeDataTransfer) from the
// 8-octet absolute transfer time.
func DecodeAbsTimeDataTransfer(ieType uint8, ieLength uint16, ieInstance uint8, ieValue []byte, arg interface{}) error {
	absTime, ok := arg.(*AbsTimeDataTransfer)
	if !ok {
		return fmt.Errorf("sm: absolute time decoder needs *AbsTimeDataTransfer, got %T", arg)
	}

	r, err := newIEReader(ieValue, ieLength)
	if err != nil {
		return err
	}

	b, err := r.bytes(len(absTime.AbsTime))
	if err != nil {
		return err
	}
	copy(absTime.AbsTime[:], b)
	return nil
}

// DecodeFlags fills arg (*Flags) from the single MBMS flags octet.
func DecodeFlags(ieType uint8, ieLength uint16, ieInstance uint8, ieValue []byte, arg interface{}) error {
	flags, ok := arg.(*Flags)
	if !ok {
		return fmt.Errorf("sm: flags decoder needs *Flags, got %T", arg)
	}

	if ieLength != 1 {
		return ErrIncorrectIE
	}

	r, err := newIEReader(ieValue, ieLength)
	if err != nil {
		return err
	}

	b, err := r.uint8()
	if err != nil {
		return err
	}
	flags.MSRI = b&0x01 != 0
	flags.LMRI = b&0x02 != 0
	return nil
}
