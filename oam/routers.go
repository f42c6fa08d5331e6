// Copyright 2019 free5GC.org
//
// SPDX-License-Identifier: Apache-2.0

package oam

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const serviceBasePath = "/mme-oam/v1"

// Route is the information for every URI.
type Route struct {
	Name        string
	Method      string
	Pattern     string
	HandlerFunc gin.HandlerFunc
}

type Routes []Route

// AddService registers the OAM routes on the engine.
func AddService(engine *gin.Engine) *gin.RouterGroup {
	group := engine.Group(serviceBasePath)

	for _, route := range routes {
		switch route.Method {
		case http.MethodGet:
			group.GET(route.Pattern, route.HandlerFunc)
		}
	}
	return group
}

var routes = Routes{
	{
		"GetUEPdnConnectionInfo",
		http.MethodGet,
		"/ue/:ueId/pdn-connections",
		HTTPGetUEPdnConnectionInfo,
	},
}
