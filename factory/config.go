// SPDX-FileCopyrightText: 2021 Open Networking Foundation <info@opennetworking.org>
// Copyright 2019 free5GC.org
//
// SPDX-License-Identifier: Apache-2.0

/*
 * MME Configuration Factory
 */

package factory

const (
	MME_EXPECTED_CONFIG_VERSION = "1.0.0"

	MME_DEFAULT_METRICS_PORT = 9089
	MME_DEFAULT_OAM_PORT     = 8091
)

// Subscription-check operating modes. In bypassed mode the PDN connectivity
// procedure accepts the UE supplied parameters without consulting the
// subscription authority or the network IP capability mask.
const (
	SubscriptionCheckEnabled  = "enabled"
	SubscriptionCheckBypassed = "bypassed"
)

type Config struct {
	Info          *Info          `yaml:"info"`
	Configuration *Configuration `yaml:"configuration"`
	Logger        *Logger        `yaml:"logger"`
}

type Info struct {
	Version     string `yaml:"version,omitempty"`
	Description string `yaml:"description,omitempty"`
}

type Configuration struct {
	MmeName string   `yaml:"mmeName,omitempty"`
	Metrics *Metrics `yaml:"metrics,omitempty"`
	Oam     *Oam     `yaml:"oam,omitempty"`
	Esm     *Esm     `yaml:"esm,omitempty"`
}

// Metrics is the prometheus scrape endpoint.
type Metrics struct {
	Addr string `yaml:"addr,omitempty"`
	Port int    `yaml:"port,omitempty"`
}

// Oam is the binding of the OAM http server.
type Oam struct {
	Addr string `yaml:"addr,omitempty"`
	Port int    `yaml:"port,omitempty"`
}

// Esm carries the session-management knobs: the network IP capability
// advertised during PDN type negotiation and the subscription-check mode.
type Esm struct {
	SubscriptionCheck    string `yaml:"subscriptionCheck,omitempty"`
	IPv4                 bool   `yaml:"ipv4"`
	IPv6                 bool   `yaml:"ipv6"`
	SingleAddressBearers bool   `yaml:"singleAddressBearers,omitempty"`
}

type Logger struct {
	MME *LogSetting `yaml:"MME"`
}

type LogSetting struct {
	DebugLevel   string `yaml:"debugLevel"`
	ReportCaller bool   `yaml:"ReportCaller"`
}

func (c *Config) GetVersion() string {
	if c.Info != nil && c.Info.Version != "" {
		return c.Info.Version
	}
	return ""
}
