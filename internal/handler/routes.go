package handler

import (
	"github.com/labstack/echo/v4"
	"github.com/pennyhq/penny/penny-backend/internal/middleware"
)

// Handlers groups every API handler mounted by RegisterRoutes
type Handlers struct {
	Auth         *AuthHandler
	User         *UserHandler
	Profile      *ProfileHandler
	Debt         *DebtHandler
	Bill         *BillHandler
	Reminder     *ReminderHandler
	Investment   *InvestmentHandler
	Messaging    *MessagingHandler
	Advisor      *AdvisorHandler
	Notification *NotificationHandler
	Report       *ReportHandler
}

// RouteLimiters holds the rate limiters applied to sensitive routes. Nil limiters are skipped.
type RouteLimiters struct {
	Login   *middleware.RateLimiter
	Advisor *middleware.RateLimiter
}

func limit(rl *middleware.RateLimiter) []echo.MiddlewareFunc {
	if rl == nil {
		return nil
	}
	return []echo.MiddlewareFunc{middleware.RateLimitMiddleware(rl)}
}

// RegisterRoutes sets up all API routes
func RegisterRoutes(e *echo.Echo, authMiddleware *middleware.AuthMiddleware, h Handlers, limiters RouteLimiters) {
	// API version 1
	api := e.Group("/api/v1")

	// Auth routes (public except password change)
	auth := api.Group("/auth")
	auth.POST("/register", h.Auth.Register, limit(limiters.Login)...)
	auth.POST("/login", h.Auth.Login, limit(limiters.Login)...)
	auth.PUT("/password", h.Auth.ChangePassword, authMiddleware.Authenticate())

	// User directory (protected)
	users := api.Group("/users")
	users.Use(authMiddleware.Authenticate())
	users.GET("", h.User.ListUsers)

	// Profile routes (protected)
	profile := api.Group("/profile")
	profile.Use(authMiddleware.Authenticate())
	profile.GET("/:id", h.Profile.GetProfile)
	profile.PUT("/:id", h.Profile.UpdateProfile)
	profile.POST("/:id/avatar", h.Profile.UploadAvatar)

	// Debt routes (protected)
	debts := api.Group("/debts")
	debts.Use(authMiddleware.Authenticate())
	debts.POST("", h.Debt.CreateDebt)
	debts.GET("", h.Debt.GetDebts)
	debts.GET("/export", h.Debt.ExportDebts)
	debts.POST("/import", h.Debt.ImportDebts)
	debts.POST("/preview-schedule", h.Debt.PreviewSchedule)
	debts.GET("/:id", h.Debt.GetDebt)
	debts.PUT("/:id", h.Debt.UpdateDebt)
	debts.DELETE("/:id", h.Debt.DeleteDebt)
	debts.GET("/:id/schedule", h.Debt.GetSchedule)
	debts.GET("/:id/accrued-interest", h.Debt.GetAccruedInterest)
	debts.POST("/:id/report", h.Report.GenerateDebtReport)

	// Bill routes (protected)
	bills := api.Group("/bills")
	bills.Use(authMiddleware.Authenticate())
	bills.POST("", h.Bill.CreateBill)
	bills.GET("", h.Bill.GetBills)
	bills.GET("/:id", h.Bill.GetBill)
	bills.PUT("/:id", h.Bill.UpdateBill)
	bills.PATCH("/:id/toggle-paid", h.Bill.TogglePaid)
	bills.DELETE("/:id", h.Bill.DeleteBill)

	// Reminder routes (protected)
	reminders := api.Group("/reminders")
	reminders.Use(authMiddleware.Authenticate())
	reminders.POST("", h.Reminder.CreateReminder)
	reminders.GET("", h.Reminder.GetReminders)
	reminders.GET("/:id", h.Reminder.GetReminder)
	reminders.PUT("/:id", h.Reminder.UpdateReminder)
	reminders.DELETE("/:id", h.Reminder.DeleteReminder)

	// Investment routes (protected)
	investments := api.Group("/investments")
	investments.Use(authMiddleware.Authenticate())
	investments.POST("", h.Investment.CreateInvestment)
	investments.GET("", h.Investment.GetInvestments)
	investments.GET("/overview", h.Investment.GetOverview)
	investments.GET("/:id", h.Investment.GetInvestment)
	investments.PUT("/:id", h.Investment.UpdateInvestment)
	investments.DELETE("/:id", h.Investment.DeleteInvestment)
	investments.GET("/:id/profit-loss", h.Investment.GetProfitLoss)
	investments.POST("/:id/profit-loss", h.Investment.AddProfitLoss)

	// Messaging routes (protected)
	conversations := api.Group("/conversations")
	conversations.Use(authMiddleware.Authenticate())
	conversations.GET("", h.Messaging.GetConversations)
	conversations.POST("", h.Messaging.CreateConversation)
	conversations.GET("/:id/messages", h.Messaging.GetMessages)
	conversations.POST("/:id/messages", h.Messaging.SendMessage)
	conversations.DELETE("/:id/messages", h.Messaging.ClearMessages)
	conversations.POST("/:id/upload", h.Messaging.UploadFile)

	// Advisor routes (protected, rate limited per user)
	advisor := api.Group("/advisor")
	advisor.Use(authMiddleware.Authenticate())
	advisor.POST("/chat", h.Advisor.Chat, limit(limiters.Advisor)...)

	// Notification routes (protected)
	notifications := api.Group("/notifications")
	notifications.Use(authMiddleware.Authenticate())
	notifications.GET("", h.Notification.GetNotifications)
	notifications.PATCH("/:id/read", h.Notification.MarkRead)

	// Report routes (protected)
	reports := api.Group("/reports")
	reports.Use(authMiddleware.Authenticate())
	reports.GET("", h.Report.GetReports)
	reports.POST("", h.Report.UploadReport)
}
