package dependency

import (
	"context"
	"database/sql"
	"time"

	"github.com/jekabolt/storefront-ledger/internal/dto"
	"github.com/jekabolt/storefront-ledger/internal/entity"
	"github.com/jmoiron/sqlx"
	"github.com/sendgrid/rest"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

//go:generate mockery --case underscore --all --output=./mocks
type (
	ContextStore interface {
		Tx(ctx context.Context, fn func(ctx context.Context, store Repository) error) error
	}

	Products interface {
		// GetProductsByIDs returns the products with the given ids keyed by id,
		// prices included. Unknown ids are absent from the map.
		GetProductsByIDs(ctx context.Context, ids []string) (map[string]entity.Product, error)
		CountProducts(ctx context.Context) (int64, error)
	}

	Orders interface {
		// GetOrdersCreated returns orders with items created within tr, newest first.
		GetOrdersCreated(ctx context.Context, tr entity.TimeRange) ([]entity.OrderFull, error)
		GetOrderByID(ctx context.Context, id string) (*entity.OrderFull, error)
		AddOrder(ctx context.Context, o *entity.OrderFull) error
	}

	Expenses interface {
		GetExpensesBetween(ctx context.Context, tr entity.TimeRange) ([]entity.Expense, error)
		AddExpense(ctx context.Context, e *entity.Expense) (int, error)
	}

	Customers interface {
		CountCustomers(ctx context.Context) (int64, error)
		CountCustomersCreated(ctx context.Context, tr entity.TimeRange) (int64, error)
	}

	Carts interface {
		GetCartByID(ctx context.Context, id string) (*entity.Cart, error)
		MarkCartPurchased(ctx context.Context, id string, at time.Time) error
	}

	Transactions interface {
		ContextStore
		AddTransaction(ctx context.Context, ti *entity.TransactionInsert) (*entity.Transaction, error)
		DeleteTransaction(ctx context.Context, id string) error
		GetTransactionByReference(ctx context.Context, reference string) (*entity.Transaction, error)
		SetTransactionSession(ctx context.Context, id string, session *entity.PaymentSession) error
		// CompleteTransaction creates the order from the transaction snapshot,
		// marks the cart purchased and flips the transaction to succeeded as one
		// unit. When the transaction already has its order, nothing is written
		// and the existing order is returned with Created=false.
		CompleteTransaction(ctx context.Context, reference string, p *entity.ProviderPayment) (*entity.Completion, error)
		// FailTransaction moves a pending transaction to failed. It reports
		// false when the transaction was no longer pending.
		FailTransaction(ctx context.Context, reference string, reason string) (bool, error)
		GetStalePendingTransactions(ctx context.Context, olderThan time.Time, limit int) ([]entity.Transaction, error)
	}

	Mail interface {
		AddMail(ctx context.Context, ser *entity.SendEmailRequest) (int, error)
		GetAllUnsent(ctx context.Context, withError bool) ([]entity.SendEmailRequest, error)
		UpdateSent(ctx context.Context, id int) error
		AddError(ctx context.Context, id int, errMsg string) error
	}

	Repository interface {
		Products() Products
		Orders() Orders
		Expenses() Expenses
		Customers() Customers
		Carts() Carts
		Transactions() Transactions
		Mail() Mail

		Tx(ctx context.Context, f func(context.Context, Repository) error) error
		TxBegin(ctx context.Context) (Repository, error)
		TxCommit(ctx context.Context) error
		TxRollback(ctx context.Context) error
		Now() time.Time
		InTx() bool
		Close()
		Ping(ctx context.Context) error

		IsErrUniqueViolation(err error) bool
		IsErrorRepeat(err error) bool
		DB() DB
	}

	DB interface {
		BeginTxx(ctx context.Context, opts *sql.TxOptions) (*sqlx.Tx, error)
		ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)

		// sqlx methods
		GetContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
		NamedExecContext(ctx context.Context, query string, arg interface{}) (sql.Result, error)
		QueryRowxContext(ctx context.Context, query string, args ...interface{}) *sqlx.Row
		QueryxContext(ctx context.Context, query string, args ...interface{}) (*sqlx.Rows, error)
		SelectContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	}

	// PaymentProvider opens checkout sessions and reports charge outcomes.
	PaymentProvider interface {
		Name() entity.PaymentMethod
		// Validate reports gerr.ProviderNotConfigured when credentials are missing.
		Validate() error
		// Initialize opens a checkout session. It is never retried.
		Initialize(ctx context.Context, req *entity.PaymentSessionRequest) (*entity.PaymentSession, error)
		// Verify asks the provider about the charge behind a transaction.
		Verify(ctx context.Context, tx *entity.Transaction) (*entity.ProviderPayment, error)
	}

	// Analytics builds the admin dashboard for a lookback window.
	Analytics interface {
		GetAnalytics(ctx context.Context, days int) (*entity.AnalyticsData, error)
	}

	// Checkout is the storefront side of one payment provider.
	Checkout interface {
		Initiate(ctx context.Context, req *dto.InitiatePaymentRequest) (*dto.InitiatePaymentResponse, error)
		ConfirmOrder(ctx context.Context, reference string) (*dto.ConfirmOrderResponse, error)
	}

	// AnalyticsCache stores rendered dashboards keyed by lookback days.
	AnalyticsCache interface {
		Get(ctx context.Context, days int) (*entity.AnalyticsData, bool, error)
		Set(ctx context.Context, days int, data *entity.AnalyticsData) error
		Close() error
	}

	Mailer interface {
		SendOrderConfirmation(ctx context.Context, to string, orderDetails *dto.OrderConfirmed) error
		Start(ctx context.Context) error
		Stop() error
	}

	Sender interface {
		SendWithContext(ctx context.Context, email *mail.SGMailV3) (*rest.Response, error)
	}
)
