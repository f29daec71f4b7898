package lifecycle

import (
	"github.com/cashstream/voucher-settlement/pkg/models"
)

// transitionTable fixes the set of legal voucher status moves. Every
// requested transition is validated against this table; anything not listed
// here is rejected.
var transitionTable = map[models.VoucherStatus]map[models.VoucherEvent]models.VoucherStatus{
	models.ISSUED: {
		models.EventActivate: models.AVAILABLE,
		models.EventExpire:   models.EXPIRED,
	},
	models.AVAILABLE: {
		models.EventRedeem:  models.REDEEMED,
		models.EventExpire:  models.EXPIRED,
		models.EventReissue: models.REISSUED,
	},
	models.EXPIRED: {
		models.EventReissue: models.REISSUED,
	},
	models.REISSUED: {
		models.EventActivate: models.AVAILABLE,
	},
	// REDEEMED is terminal.
}

// Target resolves the destination status for an event from a given status.
// The second return value is false when the edge does not exist.
func Target(from models.VoucherStatus, event models.VoucherEvent) (models.VoucherStatus, bool) {
	edges, ok := transitionTable[from]
	if !ok {
		return "", false
	}
	to, ok := edges[event]
	return to, ok
}

// TargetAnywhere reports the destination a given event leads to from any
// status, used to recognize duplicate triggers for a state the voucher
// already reached.
func TargetAnywhere(event models.VoucherEvent) (models.VoucherStatus, bool) {
	switch event {
	case models.EventActivate:
		return models.AVAILABLE, true
	case models.EventRedeem:
		return models.REDEEMED, true
	case models.EventExpire:
		return models.EXPIRED, true
	case models.EventReissue:
		return models.REISSUED, true
	}
	return "", false
}
