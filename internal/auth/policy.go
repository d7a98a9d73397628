package auth

import "github.com/spec-kit/salon-service/internal/domain"

// IsStaffSide reports ADMIN or STAFF.
func IsStaffSide(role domain.Role) bool {
	return role == domain.RoleAdmin || role == domain.RoleStaff
}

// CanCreateAppointment: only customers book.
func CanCreateAppointment(role domain.Role) bool {
	return role == domain.RoleCustomer
}

// CanCancelAppointment allows the owner or any staff-side user.
func CanCancelAppointment(actor *domain.User, appt *domain.Appointment) bool {
	return IsStaffSide(actor.Role) || appt.CustomerID == actor.ID
}

// CanCompleteAppointment allows staff-side users.
func CanCompleteAppointment(role domain.Role) bool {
	return IsStaffSide(role)
}

// CanSubmitPayment allows the customer owning the payment.
func CanSubmitPayment(actor *domain.User, payment *domain.Payment) bool {
	return actor.Role == domain.RoleCustomer && payment.CustomerID == actor.ID
}

// CanApprovePayment allows staff-side users.
func CanApprovePayment(role domain.Role) bool {
	return IsStaffSide(role)
}

// CanManageSchedules allows administrators.
func CanManageSchedules(role domain.Role) bool {
	return role == domain.RoleAdmin
}

// CanManageUsers allows administrators.
func CanManageUsers(role domain.Role) bool {
	return role == domain.RoleAdmin
}

// CanSeeStaffLoad allows administrators.
func CanSeeStaffLoad(role domain.Role) bool {
	return role == domain.RoleAdmin
}

// CustomerScope returns the customer id list queries are restricted to, or nil for unrestricted.
func CustomerScope(actor *domain.User) *string {
	if actor.Role != domain.RoleCustomer {
		return nil
	}
	id := actor.ID
	return &id
}
