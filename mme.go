// SPDX-FileCopyrightText: 2021 Open Networking Foundation <info@opennetworking.org>
// Copyright 2019 free5GC.org
//
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"os"

	"github.com/urfave/cli"

	"github.com/omec-project/mme/logger"
	"github.com/omec-project/mme/service"
)

var MME = &service.MME{}

var appLog = logger.AppLog

func main() {
	app := cli.NewApp()
	app.Name = "mme"
	app.Usage = "MME ESM/Sm control plane"
	app.Action = action
	app.Flags = MME.GetCliCmd()

	if err := app.Run(os.Args); err != nil {
		appLog.Fatalf("MME run error: %v", err)
	}
}

func action(c *cli.Context) error {
	if err := MME.Initialize(c); err != nil {
		logger.CfgLog.Errorf("%v", err)
		return err
	}

	MME.Start()
	return nil
}
