package setup

import (
	"time"

	"github.com/spf13/viper"

	"github.com/openclub/lendhub/cmd/app"
	"github.com/openclub/lendhub/internal/adapters/controller/http/handlers"
	"github.com/openclub/lendhub/internal/adapters/controller/http/middlewares"
	"github.com/openclub/lendhub/internal/adapters/database/postgres"
	"github.com/openclub/lendhub/internal/domain/entity"
	"github.com/openclub/lendhub/internal/domain/service"
	"github.com/openclub/lendhub/pkg/logger"
	qr "github.com/openclub/lendhub/pkg/qrcode"
	"github.com/openclub/lendhub/pkg/smtp"
)

// Setup wires storages, services and handlers and mounts all routes.
func Setup(a *app.App) {
	userStorage := postgres.NewUserStorage(a.DB)
	clubStorage := postgres.NewClubStorage(a.DB)
	membershipStorage := postgres.NewMembershipStorage(a.DB)
	itemStorage := postgres.NewItemStorage(a.DB)
	borrowStorage := postgres.NewBorrowStorage(a.DB)
	auditStorage := postgres.NewAuditStorage(a.DB)

	auditLogger, _ := logger.Named("audit")
	borrowLogger, _ := logger.Named("borrow")

	guard := service.NewApprovalGuard(approvalPolicy(), membershipStorage)
	auditService := service.NewAuditService(auditStorage, auditLogger)

	var notifier service.ApprovalNotifier
	if a.SMTPDialer != nil {
		notifier = smtp.NewClient(
			a.SMTPDialer,
			viper.GetString("service.smtp.email"),
			viper.GetString("service.smtp.domain"),
		)
	}

	loanDays := viper.GetInt("workflow.default-loan-days")
	if loanDays <= 0 {
		loanDays = 7
	}

	borrowService := service.NewBorrowService(
		borrowStorage,
		membershipStorage,
		guard,
		auditService,
		notifier,
		time.Duration(loanDays)*24*time.Hour,
		borrowLogger,
	)
	historyService := service.NewHistoryService(borrowStorage, guard)
	userService := service.NewUserService(userStorage, membershipStorage)
	clubService := service.NewClubService(clubStorage)
	membershipService := service.NewMembershipService(membershipStorage)
	itemService := service.NewItemService(itemStorage, clubStorage, qr.Default)

	sessionTTL := viper.GetDuration("workflow.session-ttl")
	if sessionTTL <= 0 {
		sessionTTL = 72 * time.Hour
	}
	authService := service.NewAuthService(userStorage, a.Redis.Sessions, sessionTTL)

	mw := middlewares.New(authService, a.Logger)
	authHandler := handlers.NewAuthHandler(authService, a.Logger)
	userHandler := handlers.NewUserHandler(userService, historyService, a.Logger)
	clubHandler := handlers.NewClubHandler(clubService, membershipService, a.Logger)
	itemHandler := handlers.NewItemHandler(itemService, a.Logger)
	borrowHandler := handlers.NewBorrowHandler(borrowService, historyService, a.Logger)

	r := a.Router

	auth := r.Group("/auth")
	{
		auth.POST("/sessions", authHandler.Login)
		auth.DELETE("/sessions", mw.Authorized, authHandler.Logout)
	}

	users := r.Group("/users", mw.Authorized)
	{
		users.GET("/me", userHandler.Me)
		users.GET("/me/clubs", userHandler.MyClubs)
		users.GET("/me/history", userHandler.History)
	}

	clubs := r.Group("/clubs", mw.Authorized)
	{
		clubs.GET("", clubHandler.List)
		clubs.POST("", mw.Superuser, clubHandler.Create)
		clubs.GET("/:clubID", clubHandler.Get)
		clubs.DELETE("/:clubID", mw.Superuser, clubHandler.Delete)

		clubs.GET("/:clubID/members", clubHandler.ListMembers)
		clubs.POST("/:clubID/members", clubHandler.AddMember)
		clubs.PUT("/:clubID/members/:userID/role", clubHandler.SetRole)
		clubs.DELETE("/:clubID/members/:userID", clubHandler.RemoveMember)

		clubs.GET("/:clubID/items", itemHandler.ListByClub)

		clubs.POST("/:clubID/borrow", borrowHandler.Borrow)
		clubs.POST("/:clubID/return", borrowHandler.Return)
		clubs.GET("/:clubID/approvals", borrowHandler.PendingApprovals)
	}

	transactions := r.Group("/transactions", mw.Authorized)
	{
		transactions.PUT("/:transactionID/approval", borrowHandler.ProcessApproval)
	}

	items := r.Group("/items", mw.Authorized, mw.Superuser)
	{
		items.POST("", itemHandler.Create)
		items.PUT("/:itemID", itemHandler.Update)
		items.PATCH("/:itemID/club", itemHandler.Transfer)
		items.DELETE("/:itemID", itemHandler.Delete)
		items.GET("/:itemID/qr", itemHandler.Label)
	}
}

func approvalPolicy() service.ApprovalPolicy {
	policy := service.DefaultApprovalPolicy()

	if s := viper.GetString("workflow.approver-role"); s != "" {
		if role, err := entity.ParseClubRole(s); err == nil {
			policy.ApproverRole = role
		}
	}
	if viper.IsSet("workflow.approver-exact") {
		policy.Exact = viper.GetBool("workflow.approver-exact")
	}
	policy.ReleaseOnReject = viper.GetBool("workflow.release-on-reject")

	return policy
}
