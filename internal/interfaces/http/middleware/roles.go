package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/harborstay/backend/internal/domain/identity"
)

// RequireCompanyScope rejects sessions that are not bound to a company.
// Super admins act on companies through the admin endpoints, never
// through the company-scoped ones.
func RequireCompanyScope() gin.HandlerFunc {
	return func(c *gin.Context) {
		if GetJWTTenantID(c) == "" {
			abortForbidden(c, "COMPANY_SCOPE_REQUIRED", "This endpoint requires a company membership")
			return
		}
		c.Next()
	}
}

// RequireSuperAdmin restricts an endpoint to platform super admins
func RequireSuperAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if identity.Role(GetJWTRole(c)) != identity.RoleSuperAdmin {
			abortForbidden(c, "SUPER_ADMIN_REQUIRED", "This endpoint requires super admin access")
			return
		}
		c.Next()
	}
}

// RequireCompanyAdmin restricts an endpoint to company admins (and
// super admins, who outrank them)
func RequireCompanyAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !identity.Role(GetJWTRole(c)).CanManageCompany() {
			abortForbidden(c, "COMPANY_ADMIN_REQUIRED", "This endpoint requires company admin access")
			return
		}
		c.Next()
	}
}

// RequireBookingWriter restricts an endpoint to roles that may create
// and modify bookings: managers and above. Plain members read only.
func RequireBookingWriter() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !identity.Role(GetJWTRole(c)).CanCreateBookings() {
			abortForbidden(c, "BOOKING_WRITE_FORBIDDEN", "Your role cannot modify bookings")
			return
		}
		c.Next()
	}
}

func abortForbidden(c *gin.Context, code, message string) {
	c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
		"success": false,
		"error": gin.H{
			"code":    code,
			"message": message,
		},
	})
}
