package models

type ClassLevel string

const (
	Class11 ClassLevel = "11"
	Class12 ClassLevel = "12"
)

type Board string

const (
	BoardCBSE Board = "CBSE"
	BoardBSEB Board = "BSEB"
)

type Medium string

const (
	MediumHindi   Medium = "Hindi"
	MediumEnglish Medium = "English"
)

type FeeStatus string

const (
	FeeStatusPending FeeStatus = "Pending"
	FeeStatusPaid    FeeStatus = "Paid"
)

// PaymentStatus is the canonical payment state, independent of the
// provider-specific vocabulary reported by a gateway.
type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "Pending"
	PaymentStatusPaid    PaymentStatus = "Paid"
	PaymentStatusFailed  PaymentStatus = "Failed"
)

type PaymentMethod string

const (
	PaymentMethodUPI    PaymentMethod = "UPI"
	PaymentMethodCash   PaymentMethod = "Cash"
	PaymentMethodBank   PaymentMethod = "Bank"
	PaymentMethodOnline PaymentMethod = "Online"
)

type PaymentGateway string

const (
	GatewayRazorpay PaymentGateway = "Razorpay"
	GatewayPhonePe  PaymentGateway = "PhonePe"
)
