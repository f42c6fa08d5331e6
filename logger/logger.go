// SPDX-FileCopyrightText: 2021 Open Networking Foundation <info@opennetworking.org>
//
// SPDX-License-Identifier: Apache-2.0

package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	log         *zap.Logger
	AppLog      *zap.SugaredLogger
	InitLog     *zap.SugaredLogger
	CfgLog      *zap.SugaredLogger
	CtxLog      *zap.SugaredLogger
	EsmLog      *zap.SugaredLogger
	SmLog       *zap.SugaredLogger
	OamLog      *zap.SugaredLogger
	GinLog      *zap.SugaredLogger
	MetricsLog  *zap.SugaredLogger
	atomicLevel zap.AtomicLevel
)

func init() {
	atomicLevel = zap.NewAtomicLevelAt(zap.InfoLevel)
	config := zap.Config{
		Level:            atomicLevel,
		Development:      false,
		Encoding:         "console",
		EncoderConfig:    zap.NewProductionEncoderConfig(),
		OutputPaths:      []string{"stdout"},
		ErrorOutputPaths: []string{"stderr"},
	}

	config.EncoderConfig.TimeKey = "timestamp"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	config.EncoderConfig.LevelKey = "level"
	config.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	config.EncoderConfig.CallerKey = "caller"
	config.EncoderConfig.EncodeCaller = zapcore.ShortCallerEncoder
	config.EncoderConfig.MessageKey = "message"
	config.EncoderConfig.StacktraceKey = ""

	var err error
	log, err = config.Build()
	if err != nil {
		panic(err)
	}

	AppLog = log.Sugar().With("component", "MME", "category", "App")
	InitLog = log.Sugar().With("component", "MME", "category", "Init")
	CfgLog = log.Sugar().With("component", "MME", "category", "CFG")
	CtxLog = log.Sugar().With("component", "MME", "category", "CTX")
	EsmLog = log.Sugar().With("component", "MME", "category", "ESM")
	SmLog = log.Sugar().With("component", "MME", "category", "SM")
	OamLog = log.Sugar().With("component", "MME", "category", "OAM")
	GinLog = log.Sugar().With("component", "MME", "category", "GIN")
	MetricsLog = log.Sugar().With("component", "MME", "category", "Metrics")
}

func GetLogger() *zap.Logger {
	return log
}

// SetLogLevel: set the log level (panic|fatal|error|warn|info|debug)
func SetLogLevel(level zapcore.Level) {
	InitLog.Infoln("set log level:", level)
	atomicLevel.SetLevel(level)
}
