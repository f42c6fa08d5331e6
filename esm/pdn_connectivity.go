// SPDX-FileCopyrightText: 2022-present Intel Corporation
// SPDX-FileCopyrightText: 2021 Open Networking Foundation <info@opennetworking.org>
//
// SPDX-License-Identifier: Apache-2.0

// Package esm implements the PDN connectivity procedure executed by the MME
// (TS 24.301 sections 6.5.1.3 and 6.5.1.4). The procedure stores connection
// state in the UE context PDN table and reports outcomes as ESM causes; the
// NAS dispatcher that frames and routes ESM messages sits above it.
package esm

import (
	"errors"

	"github.com/omec-project/mme/context"
	"github.com/omec-project/mme/factory"
	"github.com/omec-project/mme/logger"
	"github.com/omec-project/mme/metrics"
)

// RequestType is the PDN request type of TS 24.301 section 9.9.4.14.
type RequestType uint8

const (
	RequestInitial RequestType = iota + 1
	RequestHandover
	RequestEmergency
)

// QoSProfile carries the EPS bearer level QoS negotiated by the
// subscription authority.
type QoSProfile struct {
	GbrUL uint64
	GbrDL uint64
	MbrUL uint64
	MbrDL uint64
	QCI   uint8
}

// SubscriptionAuthority decides whether connectivity with the requested PDN
// can be established and returns the subscribed QoS. It is optional: without
// one the procedure runs degraded and trusts the caller supplied parameters.
type SubscriptionAuthority interface {
	Subscribe(apn []byte, pdnType context.PdnType, pdnAddr []byte, isEmergency bool) (*QoSProfile, error)
}

// EmmSender forwards an encoded ESM PDU to the lower layers through the EPS
// mobility management sublayer.
type EmmSender interface {
	UnitDataRequest(ue *context.UEContext, msg []byte) error
}

var (
	ErrNilUEContext    = errors.New("UE context is required")
	ErrNotStandalone   = errors.New("procedure is part of the attach procedure, no standalone reject sent")
	ErrNoEmmSender     = errors.New("no EMM unit-data interface configured")
	ErrNoIPCapability  = errors.New("network features enable neither IPv4 nor IPv6")
	ErrRequestRejected = errors.New("connectivity with the requested PDN cannot be established")
)

// Procedure executes the UE requested PDN connectivity procedure. It holds
// no per-UE state; a single Procedure serves all UEs, and the caller
// serializes invocations per UE.
type Procedure struct {
	cfg       *factory.Esm
	authority SubscriptionAuthority
	emm       EmmSender
}

func NewProcedure(cfg *factory.Esm, authority SubscriptionAuthority, emm EmmSender) *Procedure {
	return &Procedure{cfg: cfg, authority: authority, emm: emm}
}

func (p *Procedure) bypassed() bool {
	return p.cfg == nil || p.cfg.SubscriptionCheck == factory.SubscriptionCheckBypassed
}

// checkIPCapability matches the requested PDN type against the network IP
// capability. A nil error may still carry an informative cause, e.g. single
// address bearers only.
func (p *Procedure) checkIPCapability(pdnType context.PdnType) (Cause, error) {
	switch {
	case p.cfg.IPv4 && p.cfg.IPv6:
		if pdnType == context.PdnTypeIPv4v6 && p.cfg.SingleAddressBearers {
			return CauseSingleAddressBearersOnlyAllowed, nil
		}
		return CauseSuccess, nil

	case p.cfg.IPv6:
		if pdnType == context.PdnTypeIPv4 {
			return CausePdnTypeIPv6OnlyAllowed, ErrRequestRejected
		}
		return CausePdnTypeIPv6OnlyAllowed, nil

	case p.cfg.IPv4:
		if pdnType == context.PdnTypeIPv6 {
			return CausePdnTypeIPv4OnlyAllowed, ErrRequestRejected
		}
		return CausePdnTypeIPv4OnlyAllowed, nil
	}

	logger.EsmLog.Errorf("network IP capability misconfigured: ipv4=%v ipv6=%v", p.cfg.IPv4, p.cfg.IPv6)
	return CauseRequestRejectedUnspecified, ErrNoIPCapability
}

// Request performs the PDN connectivity procedure requested by the UE
// (TS 24.301 section 6.5.1.3). On success it returns the identifier of the
// new PDN connection and the negotiated QoS, if any. On failure the
// returned cause carries the value to encode into the reject message.
func (p *Procedure) Request(ue *context.UEContext, pti int, requestType RequestType,
	apn []byte, pdnType context.PdnType, pdnAddr []byte,
) (int, *QoSProfile, Cause, error) {
	if ue == nil {
		return -1, nil, CauseRequestRejectedUnspecified, ErrNilUEContext
	}

	logger.EsmLog.Infof("PDN connectivity requested by the UE (ue_id=%06x, pti=%d) PDN type = %s, APN = %q",
		ue.UeID, pti, pdnType, apn)

	cause := CauseSuccess
	var qos *QoSProfile

	isEmergency := requestType == RequestEmergency

	if !p.bypassed() {
		var err error
		if cause, err = p.checkIPCapability(pdnType); err != nil {
			metrics.IncrementEsmProcStats("request", "failure", cause.String())
			return -1, nil, cause, err
		}

		if p.authority != nil {
			if qos, err = p.authority.Subscribe(apn, pdnType, pdnAddr, isEmergency); err != nil {
				logger.EsmLog.Warnf("connectivity with the requested PDN cannot be established: %v", err)
				metrics.IncrementEsmProcStats("request", "failure", CauseRequestRejectedUnspecified.String())
				return -1, nil, CauseRequestRejectedUnspecified, ErrRequestRejected
			}
		}
	}

	pid, err := ue.EsmData.PdnCreate(pti, apn, pdnType, pdnAddr, isEmergency)
	if err != nil {
		logger.EsmLog.Warnf("failed to create PDN connection (ue_id=%06x): %v", ue.UeID, err)
		metrics.IncrementEsmProcStats("request", "failure", CauseInsufficientResources.String())
		return -1, nil, CauseInsufficientResources, err
	}

	metrics.IncrementEsmProcStats("request", "success", cause.String())
	return pid, qos, cause, nil
}

// Reject handles a PDN connectivity procedure not accepted by the network
// (TS 24.301 section 6.5.1.4). A standalone procedure forwards the encoded
// reject message toward the UE and returns the lower layer status. When the
// procedure is piggybacked on attach, ErrNotStandalone tells the caller to
// fold the failure into the enclosing attach procedure instead.
func (p *Procedure) Reject(ue *context.UEContext, isStandalone bool, msg []byte) error {
	if ue == nil {
		return ErrNilUEContext
	}

	logger.EsmLog.Warnf("PDN connectivity not accepted by the network (ue_id=%06x)", ue.UeID)

	if !isStandalone {
		metrics.IncrementEsmProcStats("reject", "failure", "not standalone")
		return ErrNotStandalone
	}

	if p.emm == nil {
		metrics.IncrementEsmProcStats("reject", "failure", "no emm sender")
		return ErrNoEmmSender
	}

	if err := p.emm.UnitDataRequest(ue, msg); err != nil {
		metrics.IncrementEsmProcStats("reject", "failure", "unit-data request failed")
		return err
	}

	metrics.IncrementEsmProcStats("reject", "success", "")
	return nil
}

// Failure releases the PDN connection entry allocated by a request whose
// activation locally failed in the mobility management sublayer. It returns
// the procedure transaction identity that created the connection so the
// caller can correlate the teardown with the original request.
func (p *Procedure) Failure(ue *context.UEContext, pid int) (int, error) {
	if ue == nil {
		return context.PtiUnassigned, ErrNilUEContext
	}

	logger.EsmLog.Warnf("PDN connectivity failure (ue_id=%06x, pid=%d)", ue.UeID, pid)

	pti, err := ue.EsmData.PdnDelete(pid)
	if err != nil {
		logger.EsmLog.Errorf("failed to release PDN connection (ue_id=%06x, pid=%d): %v", ue.UeID, pid, err)
		metrics.IncrementEsmProcStats("failure", "failure", err.Error())
		return context.PtiUnassigned, err
	}

	metrics.IncrementEsmProcStats("failure", "success", "")
	return pti, nil
}
