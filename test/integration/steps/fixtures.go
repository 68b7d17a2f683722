//go:build integration

package steps

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/cucumber/godog"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"github.com/slogsolutions/Audit-Management-Platform/internal/domain/entity"
)

func hashPassword(password string) string {
	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		panic(fmt.Sprintf("failed to hash password: %v", err))
	}
	return string(hashedBytes)
}

func (t *testContext) createUser(email, password string, role entity.UserRole) (*entity.User, error) {
	name := strings.Split(email, "@")[0]
	user := entity.NewUser(name, strings.ToLower(email), hashPassword(password), role)
	if err := t.users.Create(context.Background(), user); err != nil {
		return nil, err
	}
	return user, nil
}

func (t *testContext) iAmLoggedInAs(email string) error {
	user, err := t.createUser(email, defaultPassword, entity.UserRoleAdmin)
	if err != nil {
		return err
	}

	token, err := t.tokens.GenerateAccessToken(context.Background(), user.ID, user.Email, string(user.Role))
	if err != nil {
		return err
	}
	t.currentUserID = user.ID
	t.accessToken = token.Token
	return nil
}

func (t *testContext) aUserExistsWithEmailAndPassword(email, password string) error {
	_, err := t.createUser(email, password, entity.UserRoleMember)
	return err
}

func (t *testContext) aCategoryExists(name string) error {
	return t.createCategory(name, "")
}

func (t *testContext) aCategoryExistsUnder(name, parent string) error {
	return t.createCategory(name, parent)
}

func (t *testContext) createCategory(name, parent string) error {
	cat := entity.NewCategory(name, nil, nil)
	if parent != "" {
		parentID, ok := t.ids["category:"+parent]
		if !ok {
			return fmt.Errorf("unknown parent category %q", parent)
		}
		cat.ParentID = &parentID
	}
	if err := t.cats.Create(context.Background(), cat); err != nil {
		return err
	}
	t.ids["category:"+name] = cat.ID
	t.lastID = cat.ID
	return nil
}

func (t *testContext) anInvoiceExistsExpecting(number, amount string) error {
	expected, err := decimal.NewFromString(amount)
	if err != nil {
		return err
	}
	inv := entity.NewInvoice(number, expected, "", nil)
	if err := t.invoices.Create(context.Background(), inv); err != nil {
		return err
	}
	t.ids["invoice:"+number] = inv.ID
	t.lastID = inv.ID
	return nil
}

func (t *testContext) createTransaction(txType, amount, categoryName, invoiceNumber string) error {
	if t.currentUserID == uuid.Nil {
		return fmt.Errorf("log in before creating transactions")
	}
	value, err := decimal.NewFromString(amount)
	if err != nil {
		return err
	}
	categoryID, ok := t.ids["category:"+categoryName]
	if !ok {
		return fmt.Errorf("unknown category %q", categoryName)
	}

	txn := entity.NewTransaction(entity.TransactionType(txType), value, categoryID, t.currentUserID, time.Now())
	if invoiceNumber != "" {
		invoiceID, ok := t.ids["invoice:"+invoiceNumber]
		if !ok {
			return fmt.Errorf("unknown invoice %q", invoiceNumber)
		}
		txn.InvoiceID = &invoiceID
	}
	if err := t.txns.Create(context.Background(), txn); err != nil {
		return err
	}
	t.lastID = txn.ID
	return nil
}

func (t *testContext) aTransactionExistsInCategory(txType, amount, categoryName string) error {
	return t.createTransaction(txType, amount, categoryName, "")
}

func (t *testContext) paymentsExistForInvoice(count int, txType, amount, invoiceNumber, categoryName string) error {
	for i := 0; i < count; i++ {
		if err := t.createTransaction(txType, amount, categoryName, invoiceNumber); err != nil {
			return err
		}
	}
	return nil
}

func (t *testContext) theInvoiceFeedRespondsWith(status int, body *godog.DocString) error {
	t.feed.SetResponse(http.MethodGet, feedPath, status, body.Content)
	return nil
}

func (t *testContext) theInvoiceFeedShouldHaveReceived(count int, header, value string) error {
	requests := t.feed.Requests(http.MethodGet, feedPath)
	if len(requests) != count {
		return fmt.Errorf("expected %d feed requests, got %d", count, len(requests))
	}
	for i, r := range requests {
		if got := r.Headers.Get(header); got != value {
			return fmt.Errorf("feed request %d: header %q is %q, expected %q", i, header, got, value)
		}
	}
	return nil
}
