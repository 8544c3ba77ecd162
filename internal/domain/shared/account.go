package shared

// AccountKind identifies which of a profile's balances a money movement
// draws from.
type AccountKind string

const (
	AccountChequing AccountKind = "chequing"
	AccountSavings  AccountKind = "savings"
)

// Valid reports whether the kind names a real balance column.
func (k AccountKind) Valid() bool {
	return k == AccountChequing || k == AccountSavings
}
