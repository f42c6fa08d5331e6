// SPDX-FileCopyrightText: 2021 Open Networking Foundation <info@opennetworking.org>
//
// SPDX-License-Identifier: Apache-2.0

/*
* Handles statistics for MME
*
 */

package metrics

import (
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/omec-project/mme/factory"
	"github.com/omec-project/mme/logger"
)

// MmeStats captures MME level stats
type MmeStats struct {
	esmProc     *prometheus.CounterVec
	smIeDecode  *prometheus.CounterVec
	pdnSessions *prometheus.GaugeVec
}

var mmeStats *MmeStats

func initMmeStats() *MmeStats {
	return &MmeStats{
		esmProc: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "esm_procedures_total",
			Help: "ESM procedure counters",
		}, []string{"procedure", "result", "cause"}),

		smIeDecode: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "sm_ie_decode_total",
			Help: "Sm interface IE decode counters",
		}, []string{"ie_type", "result"}),

		pdnSessions: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "mme_pdn_connections",
			Help: "Number of PDN connections currently held per UE",
		}, []string{"ue_id"}),
	}
}

func (ms *MmeStats) register() error {
	if err := prometheus.Register(ms.esmProc); err != nil {
		return err
	}
	if err := prometheus.Register(ms.smIeDecode); err != nil {
		return err
	}
	if err := prometheus.Register(ms.pdnSessions); err != nil {
		return err
	}
	return nil
}

func init() {
	mmeStats = initMmeStats()

	if err := mmeStats.register(); err != nil {
		logger.MetricsLog.Panicln("MME stats register failed")
	}
}

// InitMetrics initialises the prometheus scrape endpoint
func InitMetrics() {
	cfg := factory.MmeConfig.Configuration.Metrics
	addr := fmt.Sprintf("%s:%d", cfg.Addr, cfg.Port)

	http.Handle("/metrics", promhttp.Handler())
	if err := http.ListenAndServe(addr, nil); err != nil {
		logger.MetricsLog.Fatalf("failed to start metrics server: %v", err)
	}
}

// IncrementEsmProcStats increments procedure level stats
func IncrementEsmProcStats(procedure, result, cause string) {
	mmeStats.esmProc.WithLabelValues(procedure, result, cause).Inc()
}

// IncrementSmDecodeStats increments IE decode stats
func IncrementSmDecodeStats(ieType, result string) {
	mmeStats.smIeDecode.WithLabelValues(ieType, result).Inc()
}

// SetPdnSessStats maintains PDN connection level stats
func SetPdnSessStats(ueID string, count uint64) {
	mmeStats.pdnSessions.WithLabelValues(ueID).Set(float64(count))
}
