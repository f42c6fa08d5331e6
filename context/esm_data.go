// SPDX-FileCopyrightText: 2022-present Intel Corporation
// SPDX-FileCopyrightText: 2021 Open Networking Foundation <info@opennetworking.org>
//
// SPDX-License-Identifier: Apache-2.0

package context

import (
	"errors"
	"strconv"

	"github.com/omec-project/mme/logger"
	"github.com/omec-project/mme/metrics"
)

const (
	// EsmDataPdnMax is the per-UE cap on simultaneous PDN connections.
	// Entry identifiers are table indices, so the cap also bounds the
	// identifier space.
	EsmDataPdnMax = 11

	// EsmDataIPAddressSize holds an IPv4 address followed by an IPv6
	// interface identifier (4 + 8 octets).
	EsmDataIPAddressSize = 12

	// PtiUnassigned is the reserved "no procedure transaction identity
	// assigned" value from TS 24.007.
	PtiUnassigned = 0

	pidUnassigned = -1
)

// PdnType is the PDN type value from TS 24.301 section 9.9.4.10.
type PdnType uint8

const (
	PdnTypeIPv4 PdnType = iota + 1
	PdnTypeIPv6
	PdnTypeIPv4v6
)

func (t PdnType) String() string {
	switch t {
	case PdnTypeIPv4:
		return "IPv4"
	case PdnTypeIPv6:
		return "IPv6"
	case PdnTypeIPv4v6:
		return "IPv4v6"
	}
	return "unknown"
}

var (
	ErrInsufficientResources = errors.New("no available PDN connection entry")
	ErrInvalidPdnID          = errors.New("PDN connection identifier is not valid")
	ErrPdnNotFound           = errors.New("PDN connection has not been allocated")
	ErrPdnStillActive        = errors.New("PDN connection is active")
)

// PdnConnection is the data owned by one occupied PDN table entry.
type PdnConnection struct {
	// Pti correlates the connection with the signaling exchange that
	// created it.
	Pti int

	// Apn keeps a trailing NUL octet for display use only; ApnLength is
	// the authoritative size and is never re-derived from the terminator.
	Apn       []byte
	ApnLength int

	PdnType PdnType
	IpAddr  [EsmDataIPAddressSize]byte

	IsEmergency bool
}

// APN returns the stored access point name without the display terminator.
func (p *PdnConnection) APN() []byte {
	if p.ApnLength == 0 {
		return nil
	}
	return p.Apn[:p.ApnLength]
}

func (p *PdnConnection) ApnString() string {
	return string(p.APN())
}

// PdnSlot is one entry of the fixed PDN connection table. Pid equals the
// table index while the slot is occupied and pidUnassigned while free.
type PdnSlot struct {
	Pid      int
	IsActive bool
	Data     *PdnConnection
}

// EsmDataContext is the per-UE session management context. It is owned by
// exactly one UEContext; the outer layer serializes operations per UE.
type EsmDataContext struct {
	ueID  uint32
	Pdn   [EsmDataPdnMax]PdnSlot
	NPdns int
}

func (e *EsmDataContext) init(ueID uint32) {
	e.ueID = ueID
	for pid := range e.Pdn {
		e.Pdn[pid].Pid = pidUnassigned
	}
}

// PdnCreate allocates a new PDN connection entry for the UE. The table is
// scanned in index order and the first free entry is used, so identifiers
// are reproducible across equivalent input sequences. The returned pid is
// the table index of the new entry.
func (e *EsmDataContext) PdnCreate(pti int, apn []byte, pdnType PdnType, pdnAddr []byte, isEmergency bool) (int, error) {
	logger.CtxLog.Infof("create new PDN connection (ue_id=%06x, pti=%d) type %s, APN %q",
		e.ueID, pti, pdnType, apn)

	pid := 0
	for ; pid < EsmDataPdnMax; pid++ {
		if e.Pdn[pid].Data == nil {
			break
		}
	}
	if pid >= EsmDataPdnMax {
		return pidUnassigned, ErrInsufficientResources
	}

	pdn := &PdnConnection{
		Pti:         pti,
		PdnType:     pdnType,
		IsEmergency: isEmergency,
	}

	if len(apn) > 0 {
		pdn.Apn = make([]byte, len(apn)+1)
		copy(pdn.Apn, apn)
		pdn.ApnLength = len(apn)
	}

	if len(pdnAddr) > 0 {
		copy(pdn.IpAddr[:], pdnAddr)
	}

	e.NPdns++
	e.Pdn[pid].Pid = pid
	e.Pdn[pid].IsActive = false
	e.Pdn[pid].Data = pdn
	metrics.SetPdnSessStats(strconv.FormatUint(uint64(e.ueID), 10), uint64(e.NPdns))

	return pid, nil
}

// PdnDelete releases the PDN connection entry identified by pid and returns
// the procedure transaction identity that created it. On any constraint
// violation the entry is left untouched and PtiUnassigned is returned
// alongside the error.
func (e *EsmDataContext) PdnDelete(pid int) (int, error) {
	if pid < 0 || pid >= EsmDataPdnMax {
		return PtiUnassigned, ErrInvalidPdnID
	}

	slot := &e.Pdn[pid]
	switch {
	case slot.Pid != pid:
		return PtiUnassigned, ErrInvalidPdnID
	case slot.Data == nil:
		return PtiUnassigned, ErrPdnNotFound
	case slot.IsActive:
		return PtiUnassigned, ErrPdnStillActive
	}

	pti := slot.Data.Pti

	e.NPdns--
	slot.Pid = pidUnassigned
	slot.Data = nil
	metrics.SetPdnSessStats(strconv.FormatUint(uint64(e.ueID), 10), uint64(e.NPdns))

	logger.CtxLog.Warnf("PDN connection %d released (ue_id=%06x)", pid, e.ueID)
	return pti, nil
}

// Slot returns the occupied slot for pid, or nil when pid is out of range or
// the slot is free.
func (e *EsmDataContext) Slot(pid int) *PdnSlot {
	if pid < 0 || pid >= EsmDataPdnMax {
		return nil
	}
	if e.Pdn[pid].Data == nil {
		return nil
	}
	return &e.Pdn[pid]
}

// SetActive records the default bearer activation state of the connection.
// An active connection cannot be deleted.
func (e *EsmDataContext) SetActive(pid int, active bool) error {
	slot := e.Slot(pid)
	if slot == nil {
		return ErrPdnNotFound
	}
	slot.IsActive = active
	return nil
}
