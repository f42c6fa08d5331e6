// SPDX-FileCopyrightText: 2022-present Intel Corporation
// SPDX-FileCopyrightText: 2021 Open Networking Foundation <info@opennetworking.org>
//
// SPDX-License-Identifier: Apache-2.0

package context

import (
	"sync"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/omec-project/mme/logger"
)

var (
	ueContextPool sync.Map

	ueContextActive uint64
)

// UEContext is the MME side context of one attached UE. Each UE owns exactly
// one EsmDataContext; connection records are never shared across UEs.
type UEContext struct {
	Ref string

	// UeID is the MME UE S1AP identifier.
	UeID uint32

	EsmData EsmDataContext
}

// NewUEContext allocates the context for ueID and registers it in the pool.
// An existing context for the same ueID is replaced.
func NewUEContext(ueID uint32) *UEContext {
	ue := &UEContext{
		Ref:  uuid.New().URN(),
		UeID: ueID,
	}
	ue.EsmData.init(ueID)

	if _, loaded := ueContextPool.Swap(ueID, ue); !loaded {
		atomic.AddUint64(&ueContextActive, 1)
	}
	logger.CtxLog.Infof("created UE context (ue_id=%06x, ref=%s)", ueID, ue.Ref)
	return ue
}

// GetUEContext returns the context registered for ueID, or nil.
func GetUEContext(ueID uint32) *UEContext {
	if value, ok := ueContextPool.Load(ueID); ok {
		return value.(*UEContext)
	}
	return nil
}

// RemoveUEContext drops the context registered for ueID.
func RemoveUEContext(ueID uint32) {
	if _, ok := ueContextPool.LoadAndDelete(ueID); ok {
		atomic.AddUint64(&ueContextActive, ^uint64(0))
		logger.CtxLog.Infof("removed UE context (ue_id=%06x)", ueID)
	}
}

// UEContextCount reports the number of registered UE contexts.
func UEContextCount() uint64 {
	return atomic.LoadUint64(&ueContextActive)
}
