package models

// All lists every persisted model in migration order.
func All() []any {
	return []any{
		&User{},
		&Barbershop{},
		&Barber{},
		&Service{},
		&Appointment{},
		&Review{},
		&Payment{},
		&Membership{},
		&Product{},
		&Order{},
		&OrderItem{},
		&Favorite{},
		&AuditLog{},
	}
}
