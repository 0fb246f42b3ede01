package router

import "github.com/rentflow/backend/internal/interfaces/http/handler"

// PaymentRoutes builds the payment and room groups served by h.
// Static payment paths are registered before /:id.
func PaymentRoutes(h *handler.PaymentHandler) []*DomainGroup {
	payments := NewDomainGroup("payments", "/payments").
		GET("", h.List).
		POST("", h.Create).
		POST("/calculate", h.CalculateFees).
		POST("/generate", h.Generate).
		GET("/overdue", h.Overdue).
		GET("/statistics", h.Statistics).
		GET("/reminders", h.Reminders).
		GET("/:id", h.GetByID).
		PUT("/:id/usage", h.UpdateUsage).
		PUT("/:id/pay", h.MarkPaid).
		PUT("/:id/status", h.UpdateStatus).
		PUT("/:id/due-date", h.UpdateDueDate)

	rooms := NewDomainGroup("rooms", "/rooms").
		POST("/:id/usage", h.RecordUsage).
		GET("/:id/payments", h.History).
		GET("/:id/payment-status", h.RoomPaymentStatus)

	return []*DomainGroup{payments, rooms}
}
