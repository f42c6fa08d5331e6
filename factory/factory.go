// SPDX-FileCopyrightText: 2021 Open Networking Foundation <info@opennetworking.org>
// Copyright 2019 free5GC.org
//
// SPDX-License-Identifier: Apache-2.0

/*
 * MME Configuration Factory
 */

package factory

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v2"

	"github.com/omec-project/mme/logger"
)

var MmeConfig Config

// InitConfigFactory loads the MME configuration from f.
func InitConfigFactory(f string) error {
	content, err := os.ReadFile(f)
	if err != nil {
		return err
	}

	MmeConfig = Config{}
	if yamlErr := yaml.Unmarshal(content, &MmeConfig); yamlErr != nil {
		return yamlErr
	}

	if MmeConfig.Configuration == nil {
		return fmt.Errorf("configuration section missing in %s", f)
	}

	setConfigDefaults(MmeConfig.Configuration)
	return validateEsmConfig(MmeConfig.Configuration.Esm)
}

func setConfigDefaults(cfg *Configuration) {
	if cfg.Metrics == nil {
		cfg.Metrics = &Metrics{}
	}
	if cfg.Metrics.Port == 0 {
		cfg.Metrics.Port = MME_DEFAULT_METRICS_PORT
	}
	if cfg.Oam == nil {
		cfg.Oam = &Oam{}
	}
	if cfg.Oam.Port == 0 {
		cfg.Oam.Port = MME_DEFAULT_OAM_PORT
	}
	if cfg.Esm == nil {
		cfg.Esm = &Esm{SubscriptionCheck: SubscriptionCheckBypassed, IPv4: true, IPv6: true}
		logger.CfgLog.Warnln("esm section missing, running with subscription check bypassed")
	}
	if cfg.Esm.SubscriptionCheck == "" {
		cfg.Esm.SubscriptionCheck = SubscriptionCheckEnabled
	}
}

func validateEsmConfig(esm *Esm) error {
	switch esm.SubscriptionCheck {
	case SubscriptionCheckEnabled, SubscriptionCheckBypassed:
	default:
		return fmt.Errorf("invalid subscriptionCheck mode %q", esm.SubscriptionCheck)
	}

	if esm.SubscriptionCheck == SubscriptionCheckEnabled && !esm.IPv4 && !esm.IPv6 {
		return fmt.Errorf("esm configuration enables neither IPv4 nor IPv6")
	}
	return nil
}

func CheckConfigVersion() error {
	currentVersion := MmeConfig.GetVersion()

	if currentVersion != MME_EXPECTED_CONFIG_VERSION {
		return fmt.Errorf("config version is [%s], but expected is [%s]",
			currentVersion, MME_EXPECTED_CONFIG_VERSION)
	}

	logger.CfgLog.Infof("config version [%s]", currentVersion)
	return nil
}
