package models

import "time"

// Voucher status values as persisted. The product keeps the domain language
// (Portuguese) in stored data; identifiers stay in English.
const (
	VoucherStatusIssued    = "emitida"
	VoucherStatusRealized  = "realizada"
	VoucherStatusInvoiced  = "faturada"
	VoucherStatusPaid      = "paga"
	VoucherStatusCancelled = "cancelada"
	VoucherStatusReversed  = "estornada"
	VoucherStatusExpired   = "expirada"
)

const (
	// VoucherExpirationDays is how long an issued voucher stays usable.
	VoucherExpirationDays = 30

	// NearExpirationDays is the warning window surfaced on reads.
	NearExpirationDays = 5
)

// voucherTransitions maps a status to the statuses a caller may request
// next. Expiration is not listed: it is derived from time, never requested.
var voucherTransitions = map[string][]string{
	VoucherStatusIssued:    {VoucherStatusRealized, VoucherStatusCancelled},
	VoucherStatusRealized:  {VoucherStatusInvoiced, VoucherStatusCancelled},
	VoucherStatusInvoiced:  {VoucherStatusPaid, VoucherStatusCancelled},
	VoucherStatusPaid:      {VoucherStatusReversed},
	VoucherStatusCancelled: {},
	VoucherStatusReversed:  {},
	VoucherStatusExpired:   {},
}

// CanTransitionVoucher reports whether target is reachable from current.
func CanTransitionVoucher(current, target string) bool {
	for _, allowed := range voucherTransitions[current] {
		if allowed == target {
			return true
		}
	}
	return false
}

// VoucherStatusTerminal reports whether no further transition is possible.
func VoucherStatusTerminal(status string) bool {
	return len(voucherTransitions[status]) == 0
}

// VoucherCancellable reports whether a voucher in this status may still be
// cancelled through the order cascade.
func VoucherCancellable(status string) bool {
	return CanTransitionVoucher(status, VoucherStatusCancelled)
}

// EffectiveVoucherStatus applies the lazy expiration rule: an issued voucher
// past its window is expired regardless of what the row still says. Stored
// state is never required to be refreshed for this to hold.
func EffectiveVoucherStatus(v *Voucher, now time.Time) string {
	if v.Status == VoucherStatusIssued && now.Sub(v.IssuedAt) > VoucherExpirationDays*24*time.Hour {
		return VoucherStatusExpired
	}
	return v.Status
}

// VoucherDaysToExpire returns the whole days remaining before an issued
// voucher expires. Zero or negative means already expired.
func VoucherDaysToExpire(issuedAt, now time.Time) int {
	elapsed := int(now.Sub(issuedAt).Hours() / 24)
	return VoucherExpirationDays - elapsed
}

// VoucherNearExpiration reports whether an issued voucher is close enough to
// its deadline that callers should be warned. Never a status change.
func VoucherNearExpiration(v *Voucher, now time.Time) bool {
	if EffectiveVoucherStatus(v, now) != VoucherStatusIssued {
		return false
	}
	days := VoucherDaysToExpire(v.IssuedAt, now)
	return days > 0 && days <= NearExpirationDays
}

// VoucherStampField returns the timestamp column a transition fills, or ""
// when the transition carries no timestamp of its own.
func VoucherStampField(target string) string {
	switch target {
	case VoucherStatusRealized:
		return "realized_at"
	case VoucherStatusInvoiced:
		return "invoiced_at"
	case VoucherStatusPaid:
		return "paid_at"
	}
	return ""
}
