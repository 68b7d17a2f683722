// Package dependency provides dependency injection for the application.
package dependency

import (
	"context"
	"log/slog"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/slogsolutions/Audit-Management-Platform/config"
	"github.com/slogsolutions/Audit-Management-Platform/internal/application/adapter"
	"github.com/slogsolutions/Audit-Management-Platform/internal/application/usecase/auth"
	"github.com/slogsolutions/Audit-Management-Platform/internal/application/usecase/category"
	"github.com/slogsolutions/Audit-Management-Platform/internal/application/usecase/invoice"
	"github.com/slogsolutions/Audit-Management-Platform/internal/application/usecase/invoicesync"
	"github.com/slogsolutions/Audit-Management-Platform/internal/application/usecase/transaction"
	"github.com/slogsolutions/Audit-Management-Platform/internal/domain/valueobject"
	store "github.com/slogsolutions/Audit-Management-Platform/internal/infra/db"
	"github.com/slogsolutions/Audit-Management-Platform/internal/infra/server/router"
	"github.com/slogsolutions/Audit-Management-Platform/internal/integration/adapters"
	"github.com/slogsolutions/Audit-Management-Platform/internal/integration/email"
	"github.com/slogsolutions/Audit-Management-Platform/internal/integration/email/templates"
	"github.com/slogsolutions/Audit-Management-Platform/internal/integration/entrypoint/controller"
	"github.com/slogsolutions/Audit-Management-Platform/internal/integration/entrypoint/middleware"
	"github.com/slogsolutions/Audit-Management-Platform/internal/integration/feed"
	"github.com/slogsolutions/Audit-Management-Platform/internal/integration/persistence"
)

// Injector holds all application dependencies.
type Injector struct {
	Config *config.Config
	DB     *gorm.DB
	Router *router.Router

	// Use cases driven outside HTTP by ledgerctl.
	RegisterUser   *auth.RegisterUserUseCase
	ListCategories *category.ListCategoriesUseCase
	CreateCategory *category.CreateCategoryUseCase
	BulkCreate     *category.BulkCreateSubcategoriesUseCase
	SyncInvoices   *invoicesync.SyncInvoicesUseCase
}

// NewInjector creates a new dependency injector with all dependencies wired.
// redisClient may be nil, in which case login attempts are counted in memory.
func NewInjector(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) (*Injector, error) {
	// Create repositories
	userRepo := persistence.NewUserRepository(db)
	categoryRepo := persistence.NewCategoryRepository(db)
	transactionRepo := persistence.NewTransactionRepository(db)
	invoiceRepo := persistence.NewInvoiceRepository(db)

	// Create adapters/services
	passwordService := adapters.NewPasswordService(adapters.DefaultBcryptCost)
	tokenService := adapters.NewTokenService(cfg.JWT.Secret, cfg.JWT.AccessTokenExpiry)

	notifier, err := newSyncNotifier(cfg.Email)
	if err != nil {
		return nil, err
	}

	var invoiceFeed adapter.InvoiceFeed
	if cfg.InvoiceFeed.Enabled() {
		invoiceFeed = feed.NewClient(cfg.InvoiceFeed.URL, cfg.InvoiceFeed.APIKey, cfg.InvoiceFeed.Timeout)
	}

	// Create auth use cases
	registerUseCase := auth.NewRegisterUserUseCase(userRepo, passwordService, tokenService)
	loginUseCase := auth.NewLoginUserUseCase(userRepo, passwordService, tokenService)
	listUsersUseCase := auth.NewListUsersUseCase(userRepo)

	// Create category use cases
	listCategoriesUseCase := category.NewListCategoriesUseCase(categoryRepo)
	listSubcategoriesUseCase := category.NewListSubcategoriesUseCase(categoryRepo)
	getCategoryUseCase := category.NewGetCategoryUseCase(categoryRepo)
	createCategoryUseCase := category.NewCreateCategoryUseCase(categoryRepo)
	bulkCreateUseCase := category.NewBulkCreateSubcategoriesUseCase(categoryRepo)
	updateCategoryUseCase := category.NewUpdateCategoryUseCase(categoryRepo)
	deleteCategoryUseCase := category.NewDeleteCategoryUseCase(categoryRepo, transactionRepo)

	// Create transaction use cases
	listTransactionsUseCase := transaction.NewListTransactionsUseCase(transactionRepo)
	getTransactionUseCase := transaction.NewGetTransactionUseCase(transactionRepo)
	createTransactionUseCase := transaction.NewCreateTransactionUseCase(transactionRepo, userRepo, categoryRepo, invoiceRepo)
	updateTransactionUseCase := transaction.NewUpdateTransactionUseCase(transactionRepo, userRepo, categoryRepo, invoiceRepo)
	deleteTransactionUseCase := transaction.NewDeleteTransactionUseCase(transactionRepo)

	// Create invoice use cases
	listInvoicesUseCase := invoice.NewListInvoicesUseCase(invoiceRepo)
	listOpenInvoicesUseCase := invoice.NewListOpenInvoicesUseCase(invoiceRepo, valueobject.DefaultReconciliationConfig())
	getInvoiceUseCase := invoice.NewGetInvoiceUseCase(invoiceRepo, transactionRepo)
	createInvoiceUseCase := invoice.NewCreateInvoiceUseCase(invoiceRepo)
	updateInvoiceUseCase := invoice.NewUpdateInvoiceUseCase(invoiceRepo, transactionRepo)
	deleteInvoiceUseCase := invoice.NewDeleteInvoiceUseCase(invoiceRepo)
	syncInvoicesUseCase := invoicesync.NewSyncInvoicesUseCase(invoiceFeed, invoiceRepo, notifier)

	// Create controllers
	healthController := controller.NewHealthController(func() bool {
		return store.Ping(context.Background(), db) == nil
	})

	authController := controller.NewAuthController(registerUseCase, loginUseCase)
	userController := controller.NewUserController(listUsersUseCase)

	categoryController := controller.NewCategoryController(
		listCategoriesUseCase,
		listSubcategoriesUseCase,
		getCategoryUseCase,
		createCategoryUseCase,
		bulkCreateUseCase,
		updateCategoryUseCase,
		deleteCategoryUseCase,
	)

	transactionController := controller.NewTransactionController(
		listTransactionsUseCase,
		getTransactionUseCase,
		createTransactionUseCase,
		updateTransactionUseCase,
		deleteTransactionUseCase,
	)

	invoiceController := controller.NewInvoiceController(
		listInvoicesUseCase,
		listOpenInvoicesUseCase,
		getInvoiceUseCase,
		createInvoiceUseCase,
		updateInvoiceUseCase,
		deleteInvoiceUseCase,
		syncInvoicesUseCase,
	)

	// Create middleware
	var store middleware.RateLimitStore
	if redisClient != nil {
		store = middleware.NewRedisStore(redisClient, cfg.RateLimit.LoginAttempts, cfg.RateLimit.LoginWindow)
	} else {
		store = middleware.NewMemoryStore(cfg.RateLimit.LoginAttempts, cfg.RateLimit.LoginWindow)
	}
	loginRateLimiter := middleware.NewRateLimiter(store, "login")
	authMiddleware := middleware.NewAuthMiddleware(tokenService)

	r := router.NewRouter(
		healthController,
		authController,
		userController,
		categoryController,
		transactionController,
		invoiceController,
		loginRateLimiter,
		authMiddleware,
	)

	return &Injector{
		Config:         cfg,
		DB:             db,
		Router:         r,
		RegisterUser:   registerUseCase,
		ListCategories: listCategoriesUseCase,
		CreateCategory: createCategoryUseCase,
		BulkCreate:     bulkCreateUseCase,
		SyncInvoices:   syncInvoicesUseCase,
	}, nil
}

// newSyncNotifier mails sync reports through Resend when it is configured
// and logs them otherwise.
func newSyncNotifier(cfg config.EmailConfig) (adapter.SyncReportNotifier, error) {
	if cfg.ResendAPIKey == "" || cfg.SyncReportRecipient == "" {
		return email.NewLogNotifier(slog.Default()), nil
	}

	renderer, err := templates.NewRenderer()
	if err != nil {
		return nil, err
	}
	sender := email.NewResendClient(cfg.ResendAPIKey, cfg.FromName, cfg.FromEmail)
	return email.NewSyncReportMailer(sender, renderer, cfg.SyncReportRecipient), nil
}
