package authz

import (
	"github.com/google/uuid"

	"github.com/BruksfildServices01/nextbarber-api/internal/models"
)

func IsSuperAdmin(u *models.User) bool {
	return u != nil && u.Role == models.RoleSuperAdmin
}

// CanManageShop: the super admin, or the admin who owns the shop.
func CanManageShop(u *models.User, shop *models.Barbershop) bool {
	if u == nil || shop == nil {
		return false
	}
	return IsSuperAdmin(u) || shop.OwnerID == u.ID
}

// CanActOnAppointment: the client who booked it, or whoever manages the shop.
func CanActOnAppointment(u *models.User, shop *models.Barbershop, ap *models.Appointment) bool {
	if u == nil || ap == nil {
		return false
	}
	return ap.ClientID == u.ID || CanManageShop(u, shop)
}

// CanCancelAppointment: the client who booked it, or any admin role.
// Shop ownership is not checked.
func CanCancelAppointment(u *models.User, ap *models.Appointment) bool {
	if u == nil || ap == nil {
		return false
	}
	return ap.ClientID == u.ID || u.Role == models.RoleSuperAdmin || u.Role == models.RoleShopAdmin
}

// CanEditUser: yourself or the super admin.
func CanEditUser(u *models.User, targetID uuid.UUID) bool {
	return u != nil && (IsSuperAdmin(u) || u.ID == targetID)
}
