// SPDX-FileCopyrightText: 2022-present Intel Corporation
// SPDX-FileCopyrightText: 2021 Open Networking Foundation <info@opennetworking.org>
// Copyright 2019 free5GC.org
//
// SPDX-License-Identifier: Apache-2.0

package service

import (
	"fmt"
	"net/http"
	_ "net/http/pprof" // Using package only for invoking initialization.
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/urfave/cli"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/omec-project/mme/factory"
	"github.com/omec-project/mme/logger"
	"github.com/omec-project/mme/metrics"
	"github.com/omec-project/mme/oam"
)

type MME struct{}

type (
	// Config information.
	Config struct {
		mmecfg string
	}
)

var config Config

var mmeCLi = []cli.Flag{
	cli.StringFlag{
		Name:  "mmecfg",
		Usage: "config file",
	},
}

var initLog *zap.SugaredLogger

func init() {
	initLog = logger.InitLog
}

func (*MME) GetCliCmd() (flags []cli.Flag) {
	return mmeCLi
}

func (mme *MME) Initialize(c *cli.Context) error {
	config = Config{
		mmecfg: c.String("mmecfg"),
	}

	if config.mmecfg == "" {
		return fmt.Errorf("no config file provided")
	}

	if err := factory.InitConfigFactory(config.mmecfg); err != nil {
		return err
	}

	mme.setLogLevel()

	return factory.CheckConfigVersion()
}

func (mme *MME) setLogLevel() {
	if factory.MmeConfig.Logger == nil || factory.MmeConfig.Logger.MME == nil {
		initLog.Warnln("MME config without log level setting")
		return
	}

	setting := factory.MmeConfig.Logger.MME
	if setting.DebugLevel != "" {
		if level, err := zapcore.ParseLevel(setting.DebugLevel); err != nil {
			initLog.Warnf("MME log level [%s] is invalid, set to [info] level", setting.DebugLevel)
			logger.SetLogLevel(zap.InfoLevel)
		} else {
			initLog.Infof("MME log level is set to [%s] level", level)
			logger.SetLogLevel(level)
		}
	} else {
		initLog.Infoln("MME log level is default set to [info] level")
		logger.SetLogLevel(zap.InfoLevel)
	}
}

func (mme *MME) Start() {
	initLog.Infoln("MME app initialising")

	go metrics.InitMetrics()

	router := gin.New()
	router.Use(gin.Recovery())
	oam.AddService(router)

	oamCfg := factory.MmeConfig.Configuration.Oam
	addr := fmt.Sprintf("%s:%d", oamCfg.Addr, oamCfg.Port)

	go func() {
		if err := http.ListenAndServe(addr, router); err != nil {
			logger.AppLog.Fatalf("OAM server stopped: %v", err)
		}
	}()

	signalChannel := make(chan os.Signal, 1)
	signal.Notify(signalChannel, os.Interrupt, syscall.SIGTERM)
	<-signalChannel
	mme.Terminate()
}

func (mme *MME) Terminate() {
	logger.AppLog.Infoln("terminating MME")
}
