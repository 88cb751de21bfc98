package payment

type Status string

const (
	StatusPending   Status = "pendiente"
	StatusCompleted Status = "completado"
	StatusFailed    Status = "fallido"
	StatusRefunded  Status = "reembolsado"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusCompleted, StatusFailed, StatusRefunded:
		return true
	}
	return false
}

type Method string

const (
	MethodCard      Method = "tarjeta"
	MethodTransfer  Method = "transferencia"
	MethodCash      Method = "efectivo"
	MethodPSE       Method = "pse"
	MethodNequi     Method = "nequi"
	MethodDaviplata Method = "daviplata"
)

func (m Method) Valid() bool {
	switch m {
	case MethodCard, MethodTransfer, MethodCash, MethodPSE, MethodNequi, MethodDaviplata:
		return true
	}
	return false
}

// ExtendsShop reports whether moving from old to next must push the shop's
// expiry to the payment period end.
func ExtendsShop(old, next Status) bool {
	return next == StatusCompleted && old != StatusCompleted
}
