package services

import "github.com/ahmetcoskunkizilkaya/photoshare-backend/internal/metrics"

func outcome(err error) string {
	if err == nil {
		return "ok"
	}
	if k := Kind(err); k != "" {
		return k
	}
	return "error"
}

func observeMembership(op string, err error) {
	metrics.MembershipOperations.WithLabelValues(op, outcome(err)).Inc()
}

// observeInvitesResolved counts promotions once their transaction committed.
func observeInvitesResolved(n int) {
	if n > 0 {
		metrics.InvitesResolved.Add(float64(n))
	}
}

func observeSharing(op string, err error) {
	metrics.SharingOperations.WithLabelValues(op, outcome(err)).Inc()
}
