package api

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Label values never include income or asset figures.
var (
	AssessmentsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "housing_assessments_total",
			Help: "Total number of assessments by jurisdiction and outcome",
		},
		[]string{"jurisdiction", "outcome"},
	)

	AssessmentNotesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "housing_assessment_notes_total",
			Help: "Total number of notes emitted, by note code",
		},
		[]string{"code"},
	)

	AssessmentsRejected = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "housing_assessments_rejected_total",
			Help: "Total number of assessment requests rejected before evaluation",
		},
		[]string{"error_code"},
	)

	EvaluationDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "housing_evaluation_duration_seconds",
			Help:    "Duration of a single eligibility evaluation in seconds",
			Buckets: prometheus.ExponentialBuckets(0.000001, 4, 10),
		},
	)

	RuleSetChanges = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "housing_rule_set_changes_total",
			Help: "Total number of rule-set administration actions",
		},
		[]string{"action"},
	)
)

func outcomeLabel(eligible bool) string {
	if eligible {
		return "eligible"
	}
	return "ineligible"
}
