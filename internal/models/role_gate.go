package models

// Actor roles that operate on vouchers. Identity resolution happens at the
// edge; services receive the role explicitly on every call.
const (
	RoleUnit     = "unidade"
	RoleProvider = "prestador"
)

type transitionKey struct {
	from string
	to   string
}

// roleGate is the full permission table: (current, target) -> roles allowed
// to request it. Anything absent is denied before the state machine runs.
var roleGate = map[transitionKey][]string{
	{VoucherStatusIssued, VoucherStatusRealized}:    {RoleProvider},
	{VoucherStatusIssued, VoucherStatusCancelled}:   {RoleUnit},
	{VoucherStatusRealized, VoucherStatusCancelled}: {RoleUnit},
	{VoucherStatusRealized, VoucherStatusInvoiced}:  {RoleProvider},
	{VoucherStatusInvoiced, VoucherStatusCancelled}: {RoleUnit},
	{VoucherStatusInvoiced, VoucherStatusPaid}:      {RoleUnit},
	{VoucherStatusPaid, VoucherStatusReversed}:      {RoleUnit},
}

// RoleCanTransition reports whether role may request current -> target.
func RoleCanTransition(current, target, role string) bool {
	for _, allowed := range roleGate[transitionKey{current, target}] {
		if allowed == role {
			return true
		}
	}
	return false
}
