// Package metrics exposes evaluation results as Prometheus gauges, for
// scraping by the HTTP server or export to a node-exporter textfile.
package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"ai-governance-controls/internal/model"
)

const namespace = "aigov"

var tiers = []model.Tier{model.TierMinimal, model.TierLimited, model.TierHigh, model.TierUnacceptable}

// Recorder owns a private registry so repeated runs and tests never collide
// with the global one.
type Recorder struct {
	reg *prometheus.Registry

	controlsTotal  *prometheus.GaugeVec
	controlsPassed *prometheus.GaugeVec
	passRate       *prometheus.GaugeVec
	weightedScore  *prometheus.GaugeVec
	riskTier       *prometheus.GaugeVec
	compliance     *prometheus.GaugeVec
	requests       *prometheus.CounterVec
}

func NewRecorder() *Recorder {
	reg := prometheus.NewRegistry()
	f := promauto.With(reg)
	return &Recorder{
		reg: reg,
		controlsTotal: f.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "controls_total",
			Help:      "Controls evaluated in the last run",
		}, []string{"system"}),
		controlsPassed: f.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "controls_passed",
			Help:      "Controls passed in the last run",
		}, []string{"system"}),
		passRate: f.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "pass_rate_percent",
			Help:      "Unweighted pass rate",
		}, []string{"system"}),
		weightedScore: f.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "weighted_score_percent",
			Help:      "Severity-weighted pass rate",
		}, []string{"system"}),
		riskTier: f.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "risk_tier",
			Help:      "EU AI Act risk tier; 1 for the current tier, 0 otherwise",
		}, []string{"system", "tier"}),
		compliance: f.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "high_risk_compliance_percent",
			Help:      "High-risk checklist compliance rate, present only for high-tier systems",
		}, []string{"system"}),
		requests: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "API requests by route and status code",
		}, []string{"route", "code"}),
	}
}

func (r *Recorder) Registry() *prometheus.Registry { return r.reg }

func (r *Recorder) ObserveEvaluation(system string, s model.ScoreSummary) {
	r.controlsTotal.WithLabelValues(system).Set(float64(s.Total))
	r.controlsPassed.WithLabelValues(system).Set(float64(s.Passed))
	r.passRate.WithLabelValues(system).Set(s.PassRate)
	r.weightedScore.WithLabelValues(system).Set(s.WeightedScore)
}

// ObserveClassification marks tier as current for system. The compliance
// gauge is removed when compliance is nil.
func (r *Recorder) ObserveClassification(system string, tier model.Tier, compliance *model.ComplianceResult) {
	for _, t := range tiers {
		v := 0.0
		if t == tier {
			v = 1
		}
		r.riskTier.WithLabelValues(system, string(t)).Set(v)
	}
	if compliance == nil {
		r.compliance.DeleteLabelValues(system)
		return
	}
	r.compliance.WithLabelValues(system).Set(compliance.ComplianceRate)
}

func (r *Recorder) ObserveReport(rep model.Report) {
	system := rep.Metadata.SystemName
	r.ObserveEvaluation(system, rep.ControlEvaluation.Summary)
	r.ObserveClassification(system, rep.RiskClassification.Tier, rep.RiskClassification.HighRiskCompliance)
}

func (r *Recorder) ObserveRequest(route string, code int) {
	r.requests.WithLabelValues(route, strconv.Itoa(code)).Inc()
}

// WriteTextfile writes every gauge in the text exposition format.
func (r *Recorder) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, r.reg)
}
