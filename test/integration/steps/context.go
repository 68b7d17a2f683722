//go:build integration

// Package steps provides step definitions for BDD integration tests.
package steps

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"time"

	"github.com/cucumber/godog"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/slogsolutions/Audit-Management-Platform/config"
	"github.com/slogsolutions/Audit-Management-Platform/internal/application/adapter"
	"github.com/slogsolutions/Audit-Management-Platform/internal/infra/dependency"
	"github.com/slogsolutions/Audit-Management-Platform/internal/integration/adapters"
	"github.com/slogsolutions/Audit-Management-Platform/internal/integration/persistence"
	"github.com/slogsolutions/Audit-Management-Platform/internal/integration/persistence/model"
	"github.com/slogsolutions/Audit-Management-Platform/test/integration/mock"
)

const (
	testJWTSecret   = "test-jwt-secret-key-for-testing-purposes"
	testFeedAPIKey  = "feed-key"
	feedPath        = "/invoices"
	loginAttempts   = 5
	defaultPassword = "DefaultPass123"
)

// suite holds the resources shared by every scenario.
type suite struct {
	db       *mock.Db
	redis    *mock.Redis
	feed     *mock.ApiMock
	server   *httptest.Server
	tokens   adapter.TokenService
	users    adapter.UserRepository
	cats     adapter.CategoryRepository
	invoices adapter.InvoiceRepository
	txns     adapter.TransactionRepository
}

var (
	shared     *suite
	sharedOnce sync.Once
)

func getSuite() *suite {
	sharedOnce.Do(func() {
		gin.SetMode(gin.TestMode)

		s := &suite{
			db: mock.NewDb("expense_ledger", []mock.Table{
				{Name: "users", Model: &model.UserModel{}},
				{Name: "categories", Model: &model.CategoryModel{}},
				{Name: "invoices", Model: &model.InvoiceModel{}},
				{Name: "transactions", Model: &model.TransactionModel{}},
			}),
			redis: mock.NewRedis(),
			feed:  mock.NewApiServer(),
		}
		s.feed.Start()

		cfg := &config.Config{
			Server: config.ServerConfig{Environment: "test"},
			JWT: config.JWTConfig{
				Secret:            testJWTSecret,
				AccessTokenExpiry: time.Hour,
			},
			RateLimit: config.RateLimitConfig{
				LoginAttempts: loginAttempts,
				LoginWindow:   15 * time.Minute,
			},
			InvoiceFeed: config.InvoiceFeedConfig{
				URL:     s.feed.GetUrl() + feedPath,
				APIKey:  testFeedAPIKey,
				Timeout: 5 * time.Second,
			},
		}

		injector, err := dependency.NewInjector(cfg, s.db.DbConn, s.redis.Client)
		if err != nil {
			panic("failed to wire application: " + err.Error())
		}
		s.server = httptest.NewServer(injector.Router.Setup(cfg.Server.Environment))

		s.tokens = adapters.NewTokenService(testJWTSecret, time.Hour)
		s.users = persistence.NewUserRepository(s.db.DbConn)
		s.cats = persistence.NewCategoryRepository(s.db.DbConn)
		s.invoices = persistence.NewInvoiceRepository(s.db.DbConn)
		s.txns = persistence.NewTransactionRepository(s.db.DbConn)

		shared = s
	})
	return shared
}

type testContext struct {
	*suite

	client        *http.Client
	headers       map[string]string
	response      *response
	accessToken   string
	currentUserID uuid.UUID
	lastID        uuid.UUID

	// ids of named fixtures, keyed "category:<name>" or "invoice:<number>"
	ids map[string]uuid.UUID
}

type response struct {
	status int
	body   any
}

// InitializeTestSuite sets up resources before any scenarios run.
func InitializeTestSuite(ctx *godog.TestSuiteContext) {
	ctx.BeforeSuite(func() {
		getSuite()
	})

	ctx.AfterSuite(func() {
		if shared != nil {
			shared.server.Close()
		}
	})
}

// InitializeScenario registers all step definitions.
func InitializeScenario(ctx *godog.ScenarioContext) {
	test := &testContext{
		client: &http.Client{Timeout: 10 * time.Second},
	}

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		return ctx, test.before()
	})

	// Background steps
	ctx.Given(`^the API server is running$`, test.theAPIServerIsRunning)

	// Fixture steps
	ctx.Given(`^I am logged in as "([^"]*)"$`, test.iAmLoggedInAs)
	ctx.Given(`^a user exists with email "([^"]*)" and password "([^"]*)"$`, test.aUserExistsWithEmailAndPassword)
	ctx.Given(`^a category "([^"]*)" exists$`, test.aCategoryExists)
	ctx.Given(`^a category "([^"]*)" exists under "([^"]*)"$`, test.aCategoryExistsUnder)
	ctx.Given(`^an invoice "([^"]*)" exists expecting "([^"]*)"$`, test.anInvoiceExistsExpecting)
	ctx.Given(`^a "([^"]*)" transaction of "([^"]*)" exists in category "([^"]*)"$`, test.aTransactionExistsInCategory)
	ctx.Given(`^(\d+) "([^"]*)" payments? of "([^"]*)" exists? for invoice "([^"]*)" in category "([^"]*)"$`, test.paymentsExistForInvoice)
	ctx.Given(`^the invoice feed responds with status (\d+) and body:$`, test.theInvoiceFeedRespondsWith)

	// Header steps
	ctx.Given(`^the header is empty$`, test.theHeaderIsEmpty)
	ctx.Given(`^the header contains the key "([^"]*)" with "([^"]*)"$`, test.theHeaderContainsTheKeyWith)

	// Request steps
	ctx.When(`^I send a "([^"]*)" request to "([^"]*)"$`, test.iSendARequestTo)
	ctx.When(`^I send a "([^"]*)" request to "([^"]*)" with body:$`, test.iSendARequestToWithBody)
	ctx.When(`^I send (\d+) "([^"]*)" requests to "([^"]*)" with body:$`, test.iSendRequestsToWithBody)

	// Response assertion steps
	ctx.Then(`^the response status should be (\d+)$`, test.theResponseStatusShouldBe)
	ctx.Then(`^the response should contain "([^"]*)"$`, test.theResponseShouldContain)
	ctx.Then(`^the response field "([^"]*)" should be "([^"]*)"$`, test.theResponseFieldShouldBe)
	ctx.Then(`^the response field "([^"]*)" should be null$`, test.theResponseFieldShouldBeNull)
	ctx.Then(`^the response field "([^"]*)" should exist$`, test.theResponseFieldShouldExist)
	ctx.Then(`^the response field "([^"]*)" should have (\d+) items?$`, test.theResponseFieldShouldHaveItems)
	ctx.Then(`^the response list "([^"]*)" should contain an item with "([^"]*)" "([^"]*)"$`, test.theResponseListShouldContainAnItemWith)

	// Upstream assertion steps
	ctx.Then(`^the invoice feed should have received (\d+) requests? with header "([^"]*)" set to "([^"]*)"$`, test.theInvoiceFeedShouldHaveReceived)

	// Database assertion steps
	ctx.Then(`^the db should contain (\d+) objects in the "([^"]*)" table$`, test.theDbShouldContainObjectsInTheTable)
	ctx.Then(`^the db should contain (\d+) objects in "([^"]*)" with the values$`, test.theDbShouldContainObjectsInWithTheValues)
}

func (t *testContext) before() error {
	t.suite = getSuite()
	t.headers = make(map[string]string)
	t.response = nil
	t.accessToken = ""
	t.currentUserID = uuid.Nil
	t.lastID = uuid.Nil
	t.ids = make(map[string]uuid.UUID)

	t.feed.Reset()
	if err := t.redis.Clear(); err != nil {
		return err
	}
	return t.db.ClearDB()
}

func (t *testContext) theAPIServerIsRunning() error {
	resp, err := t.client.Get(t.server.URL + "/health")
	if err != nil {
		return err
	}
	resp.Body.Close()
	return nil
}
