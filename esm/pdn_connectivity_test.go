// SPDX-License-Identifier: Apache-2.0
// Copyright 2024 Canonical Ltd.

package esm_test

import (
	"errors"
	"testing"

	"github.com/omec-project/mme/context"
	"github.com/omec-project/mme/esm"
	"github.com/omec-project/mme/factory"
)

type fakeAuthority struct {
	qos    *esm.QoSProfile
	err    error
	called bool
}

func (a *fakeAuthority) Subscribe(apn []byte, pdnType context.PdnType, pdnAddr []byte, isEmergency bool) (*esm.QoSProfile, error) {
	a.called = true
	return a.qos, a.err
}

type fakeEmmSender struct {
	sent []byte
	err  error
}

func (s *fakeEmmSender) UnitDataRequest(ue *context.UEContext, msg []byte) error {
	s.sent = msg
	return s.err
}

func dualStackEsm() *factory.Esm {
	return &factory.Esm{
		SubscriptionCheck: factory.SubscriptionCheckEnabled,
		IPv4:              true,
		IPv6:              true,
	}
}

func TestRequestThenFailureReleasesConnection(t *testing.T) {
	ue := context.NewUEContext(0x201)
	p := esm.NewProcedure(dualStackEsm(), nil, nil)

	pid, _, cause, err := p.Request(ue, 5, esm.RequestInitial, []byte("internet"), context.PdnTypeIPv4, nil)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if pid != 0 {
		t.Errorf("expected connection id 0 on empty table, got %d", pid)
	}
	if cause != esm.CauseSuccess {
		t.Errorf("expected success cause, got %v", cause)
	}

	pti, err := p.Failure(ue, pid)
	if err != nil {
		t.Fatalf("failure handling failed: %v", err)
	}
	if pti != 5 {
		t.Errorf("expected original pti 5, got %d", pti)
	}

	// The slot is free again; the same failure must now be reported.
	if _, err = p.Failure(ue, pid); err == nil {
		t.Fatal("expected error on released connection")
	}
}

func TestRequestTableFull(t *testing.T) {
	ue := context.NewUEContext(0x202)
	p := esm.NewProcedure(dualStackEsm(), nil, nil)

	for i := 0; i < context.EsmDataPdnMax; i++ {
		if _, _, _, err := p.Request(ue, i+1, esm.RequestInitial, []byte("internet"), context.PdnTypeIPv4, nil); err != nil {
			t.Fatalf("request %d failed: %v", i, err)
		}
	}

	_, _, cause, err := p.Request(ue, 99, esm.RequestInitial, []byte("internet"), context.PdnTypeIPv4, nil)
	if !errors.Is(err, context.ErrInsufficientResources) {
		t.Errorf("expected ErrInsufficientResources, got %v", err)
	}
	if cause != esm.CauseInsufficientResources {
		t.Errorf("expected insufficient resources cause, got %v", cause)
	}
}

func TestRequestPdnTypeNegotiation(t *testing.T) {
	tests := []struct {
		name      string
		cfg       factory.Esm
		pdnType   context.PdnType
		wantCause esm.Cause
		wantErr   bool
	}{
		{
			name:      "single address bearers only",
			cfg:       factory.Esm{SubscriptionCheck: factory.SubscriptionCheckEnabled, IPv4: true, IPv6: true, SingleAddressBearers: true},
			pdnType:   context.PdnTypeIPv4v6,
			wantCause: esm.CauseSingleAddressBearersOnlyAllowed,
		},
		{
			name:      "ipv6 only network rejects ipv4",
			cfg:       factory.Esm{SubscriptionCheck: factory.SubscriptionCheckEnabled, IPv6: true},
			pdnType:   context.PdnTypeIPv4,
			wantCause: esm.CausePdnTypeIPv6OnlyAllowed,
			wantErr:   true,
		},
		{
			name:      "ipv6 only network accepts ipv6",
			cfg:       factory.Esm{SubscriptionCheck: factory.SubscriptionCheckEnabled, IPv6: true},
			pdnType:   context.PdnTypeIPv6,
			wantCause: esm.CausePdnTypeIPv6OnlyAllowed,
		},
		{
			name:      "ipv4 only network rejects ipv6",
			cfg:       factory.Esm{SubscriptionCheck: factory.SubscriptionCheckEnabled, IPv4: true},
			pdnType:   context.PdnTypeIPv6,
			wantCause: esm.CausePdnTypeIPv4OnlyAllowed,
			wantErr:   true,
		},
		{
			name:      "no capability configured",
			cfg:       factory.Esm{SubscriptionCheck: factory.SubscriptionCheckEnabled},
			pdnType:   context.PdnTypeIPv4,
			wantCause: esm.CauseRequestRejectedUnspecified,
			wantErr:   true,
		},
	}

	for i, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ue := context.NewUEContext(uint32(0x300 + i))
			p := esm.NewProcedure(&tc.cfg, nil, nil)

			_, _, cause, err := p.Request(ue, 1, esm.RequestInitial, []byte("internet"), tc.pdnType, nil)
			if tc.wantErr != (err != nil) {
				t.Fatalf("unexpected error state: %v", err)
			}
			if cause != tc.wantCause {
				t.Errorf("expected cause %v, got %v", tc.wantCause, cause)
			}
		})
	}
}

func TestRequestSubscriptionRejected(t *testing.T) {
	ue := context.NewUEContext(0x203)
	authority := &fakeAuthority{err: errors.New("no subscription for APN")}
	p := esm.NewProcedure(dualStackEsm(), authority, nil)

	_, _, cause, err := p.Request(ue, 1, esm.RequestInitial, []byte("corp"), context.PdnTypeIPv4, nil)
	if !errors.Is(err, esm.ErrRequestRejected) {
		t.Errorf("expected ErrRequestRejected, got %v", err)
	}
	if cause != esm.CauseRequestRejectedUnspecified {
		t.Errorf("expected request rejected cause, got %v", cause)
	}
	if ue.EsmData.NPdns != 0 {
		t.Errorf("no connection should be created on rejection, got %d", ue.EsmData.NPdns)
	}
}

func TestRequestSubscriptionAccepted(t *testing.T) {
	ue := context.NewUEContext(0x204)
	authority := &fakeAuthority{qos: &esm.QoSProfile{QCI: 9, MbrDL: 100_000_000}}
	p := esm.NewProcedure(dualStackEsm(), authority, nil)

	_, qos, _, err := p.Request(ue, 1, esm.RequestInitial, []byte("internet"), context.PdnTypeIPv4, nil)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if qos == nil || qos.QCI != 9 {
		t.Errorf("expected negotiated QoS profile, got %+v", qos)
	}
}

func TestRequestBypassedModeSkipsChecks(t *testing.T) {
	ue := context.NewUEContext(0x205)
	authority := &fakeAuthority{err: errors.New("would reject")}
	cfg := &factory.Esm{SubscriptionCheck: factory.SubscriptionCheckBypassed}
	p := esm.NewProcedure(cfg, authority, nil)

	// Bypassed mode accepts any PDN type without consulting the authority,
	// even with no network features configured.
	pid, _, cause, err := p.Request(ue, 1, esm.RequestInitial, nil, context.PdnTypeIPv4v6, nil)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if pid != 0 || cause != esm.CauseSuccess {
		t.Errorf("unexpected outcome: pid=%d cause=%v", pid, cause)
	}
	if authority.called {
		t.Error("subscription authority consulted in bypassed mode")
	}
}

func TestRequestEmergency(t *testing.T) {
	ue := context.NewUEContext(0x206)
	p := esm.NewProcedure(dualStackEsm(), nil, nil)

	pid, _, _, err := p.Request(ue, 1, esm.RequestEmergency, nil, context.PdnTypeIPv4, nil)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if !ue.EsmData.Slot(pid).Data.IsEmergency {
		t.Error("emergency request type not recorded on the connection")
	}
}

func TestRequestNilContext(t *testing.T) {
	p := esm.NewProcedure(dualStackEsm(), nil, nil)
	if _, _, _, err := p.Request(nil, 1, esm.RequestInitial, nil, context.PdnTypeIPv4, nil); !errors.Is(err, esm.ErrNilUEContext) {
		t.Errorf("expected ErrNilUEContext, got %v", err)
	}
}

func TestRejectStandaloneForwardsMessage(t *testing.T) {
	ue := context.NewUEContext(0x207)
	sender := &fakeEmmSender{}
	p := esm.NewProcedure(dualStackEsm(), nil, sender)

	msg := []byte{0x02, 0x01, 0xd1, 0x1f}
	if err := p.Reject(ue, true, msg); err != nil {
		t.Fatalf("reject failed: %v", err)
	}
	if string(sender.sent) != string(msg) {
		t.Errorf("forwarded message mismatch: %x", sender.sent)
	}
}

func TestRejectStandaloneLowerLayerError(t *testing.T) {
	ue := context.NewUEContext(0x208)
	lowerErr := errors.New("sap send failed")
	p := esm.NewProcedure(dualStackEsm(), nil, &fakeEmmSender{err: lowerErr})

	if err := p.Reject(ue, true, []byte{0x00}); !errors.Is(err, lowerErr) {
		t.Errorf("expected lower layer status unchanged, got %v", err)
	}
}

func TestRejectNotStandalone(t *testing.T) {
	ue := context.NewUEContext(0x209)
	p := esm.NewProcedure(dualStackEsm(), nil, &fakeEmmSender{})

	if err := p.Reject(ue, false, []byte{0x00}); !errors.Is(err, esm.ErrNotStandalone) {
		t.Errorf("expected ErrNotStandalone, got %v", err)
	}
}
