package handler

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	registrationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "auth_registrations_total",
		Help: "Total number of registration attempts by status.",
	}, []string{"status"})

	loginsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "auth_logins_total",
		Help: "Total number of login attempts by status.",
	}, []string{"status"})

	inviteValidationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "auth_invite_code_validations_total",
		Help: "Total number of invite code validations by result.",
	}, []string{"result"})

	inviteCodesCreatedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "auth_invite_codes_created_total",
		Help: "Total number of invite codes issued through the API.",
	})

	tokenVerificationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "auth_token_verifications_total",
		Help: "Total number of token verification attempts by status.",
	}, []string{"status"})
)

func outcome(err error) string {
	if err != nil {
		return "failure"
	}
	return "success"
}
