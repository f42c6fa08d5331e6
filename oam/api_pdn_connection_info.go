// Copyright 2019 free5GC.org
//
// SPDX-License-Identifier: Apache-2.0

package oam

import (
	"fmt"
	"net"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/omec-project/util/httpwrapper"

	"github.com/omec-project/mme/context"
	"github.com/omec-project/mme/logger"
)

// PdnConnectionInfo is the OAM view of one occupied PDN table entry.
type PdnConnectionInfo struct {
	Pid         int    `json:"pid"`
	Pti         int    `json:"pti"`
	Apn         string `json:"apn,omitempty"`
	PdnType     string `json:"pdnType,omitempty"`
	IpAddr      string `json:"ipAddr,omitempty"`
	IsActive    bool   `json:"isActive"`
	IsEmergency bool   `json:"isEmergency"`
}

type UEPdnInfo struct {
	Ref            string              `json:"ref"`
	UeID           uint32              `json:"ueId"`
	NPdns          int                 `json:"nPdns"`
	PdnConnections []PdnConnectionInfo `json:"pdnConnections"`
}

func HTTPGetUEPdnConnectionInfo(c *gin.Context) {
	req := httpwrapper.NewRequest(c.Request, nil)
	req.Params["ueId"] = c.Params.ByName("ueId")

	rsp := handleGetUEPdnConnectionInfo(req.Params["ueId"])
	c.JSON(rsp.Status, rsp.Body)
}

func handleGetUEPdnConnectionInfo(ueIDParam string) *httpwrapper.Response {
	ueID, err := strconv.ParseUint(ueIDParam, 10, 32)
	if err != nil {
		return httpwrapper.NewResponse(http.StatusBadRequest, nil, gin.H{"error": "invalid ueId"})
	}

	ue := context.GetUEContext(uint32(ueID))
	if ue == nil {
		logger.OamLog.Warnf("no UE context for ue_id=%06x", ueID)
		return httpwrapper.NewResponse(http.StatusNotFound, nil, gin.H{"error": "UE context not found"})
	}

	info := &UEPdnInfo{
		Ref:            ue.Ref,
		UeID:           ue.UeID,
		NPdns:          ue.EsmData.NPdns,
		PdnConnections: make([]PdnConnectionInfo, 0, ue.EsmData.NPdns),
	}

	for pid := 0; pid < context.EsmDataPdnMax; pid++ {
		slot := ue.EsmData.Slot(pid)
		if slot == nil {
			continue
		}
		info.PdnConnections = append(info.PdnConnections, PdnConnectionInfo{
			Pid:         slot.Pid,
			Pti:         slot.Data.Pti,
			Apn:         slot.Data.ApnString(),
			PdnType:     slot.Data.PdnType.String(),
			IpAddr:      pdnAddrString(slot.Data),
			IsActive:    slot.IsActive,
			IsEmergency: slot.Data.IsEmergency,
		})
	}

	return httpwrapper.NewResponse(http.StatusOK, nil, info)
}

// pdnAddrString renders the stored PDN address: the IPv4 prefix of the
// buffer, the IPv6 interface identifier behind it, or both.
func pdnAddrString(pdn *context.PdnConnection) string {
	switch pdn.PdnType {
	case context.PdnTypeIPv4:
		return net.IP(pdn.IpAddr[:net.IPv4len]).String()
	case context.PdnTypeIPv6:
		return fmt.Sprintf("::%x", pdn.IpAddr[:8])
	case context.PdnTypeIPv4v6:
		return fmt.Sprintf("%s ::%x", net.IP(pdn.IpAddr[:net.IPv4len]), pdn.IpAddr[net.IPv4len:])
	}
	return ""
}
