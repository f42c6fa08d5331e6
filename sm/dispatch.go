// SPDX-FileCopyrightText: 2021 Open Networking Foundation <info@opennetworking.org>
//
// SPDX-License-Identifier: Apache-2.0

package sm

import (
	"fmt"
	"strconv"

	gtpv2ie "github.com/wmnsk/go-gtp/gtpv2/ie"

	"github.com/omec-project/mme/metrics"
)

// GTPv2-C IE type values used on the Sm interface (TS 29.274 table 8.1-1).
const (
	IETypeMbmsSessionDuration            uint8 = 138
	IETypeMbmsServiceArea                uint8 = 139
	IETypeMbmsSessionIdentifier          uint8 = 140
	IETypeMbmsFlowIdentifier             uint8 = 141
	IETypeMbmsIPMulticastDistribution    uint8 = 142
	IETypeTmgi                           uint8 = 158
	IETypeAbsoluteTimeOfMbmsDataTransfer uint8 = 164
	IETypeMbmsFlags                      uint8 = 171
)

// DecoderFunc decodes one information element into arg. The framing layer
// guarantees that ieValue holds at least ieLength octets. A return of
// ErrIncorrectIE marks a per-IE recoverable decode failure; any other
// non-nil error is a contract violation.
type DecoderFunc func(ieType uint8, ieLength uint16, ieInstance uint8, ieValue []byte, arg interface{}) error

type decoderKey struct {
	ieType     uint8
	ieInstance uint8
}

// Dispatcher routes framed information elements to registered decoders by
// type and instance. IE ordering and uniqueness within a message are not
// assumed.
type Dispatcher struct {
	decoders map[decoderKey]DecoderFunc
}

// NewDispatcher returns a dispatcher preloaded with the Sm MBMS session
// decoders, instance 0 each.
func NewDispatcher() *Dispatcher {
	d := &Dispatcher{decoders: make(map[decoderKey]DecoderFunc)}

	d.Register(IETypeTmgi, 0, DecodeTmgi)
	d.Register(IETypeMbmsSessionDuration, 0, DecodeSessionDuration)
	d.Register(IETypeMbmsServiceArea, 0, DecodeServiceArea)
	d.Register(IETypeMbmsFlowIdentifier, 0, DecodeFlowIdentifier)
	d.Register(IETypeMbmsIPMulticastDistribution, 0, DecodeIPMulticastDistribution)
	d.Register(IETypeAbsoluteTimeOfMbmsDataTransfer, 0, DecodeAbsTimeDataTransfer)
	d.Register(IETypeMbmsFlags, 0, DecodeFlags)
	return d
}

func (d *Dispatcher) Register(ieType, ieInstance uint8, fn DecoderFunc) {
	d.decoders[decoderKey{ieType: ieType, ieInstance: ieInstance}] = fn
}

// Decode invokes the decoder registered for (ieType, ieInstance).
func (d *Dispatcher) Decode(ieType uint8, ieLength uint16, ieInstance uint8, ieValue []byte, arg interface{}) error {
	fn, ok := d.decoders[decoderKey{ieType: ieType, ieInstance: ieInstance}]
	if !ok {
		return fmt.Errorf("sm: no decoder for IE type %d instance %d", ieType, ieInstance)
	}

	err := fn(ieType, ieLength, ieInstance, ieValue, arg)
	metrics.IncrementSmDecodeStats(strconv.Itoa(int(ieType)), decodeResult(err))
	return err
}

// DecodeIE adapts a go-gtp framed information element to the decoder
// contract.
func (d *Dispatcher) DecodeIE(i *gtpv2ie.IE, arg interface{}) error {
	return d.Decode(i.Type, i.Length, i.Instance(), i.Payload, arg)
}

func decodeResult(err error) string {
	switch err {
	case nil:
		return "success"
	case ErrIncorrectIE:
		return "incorrect_ie"
	}
	return "failure"
}
