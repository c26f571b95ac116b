package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"testing"

	"github.com/Kariaki58/Ciwaviv-sub000/internal/client"
	"github.com/Kariaki58/Ciwaviv-sub000/internal/model"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func testDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared",
		strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&model.Product{},
		&model.Order{},
		&model.OrderItem{},
		&model.ShippingRate{},
		&model.RecoveryOTP{},
	))

	return db
}

func testLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func seedProduct(t *testing.T, db *gorm.DB, id string, price float64, inventory int) {
	t.Helper()
	require.NoError(t, db.Create(&model.Product{
		ID:        id,
		Name:      "Product " + id,
		Image:     "https://cdn.example.com/" + id + ".jpg",
		Price:     price,
		Inventory: inventory,
	}).Error)
}

type fakeGateway struct {
	initErr       error
	verifyErr     error
	verifySuccess bool

	initCalls   int
	verifyCalls int
	lastInit    *client.InitializeRequest
}

func (g *fakeGateway) InitializeTransaction(_ context.Context, req *client.InitializeRequest) (*client.InitializeResponse, error) {
	g.initCalls++
	g.lastInit = req
	if g.initErr != nil {
		return nil, g.initErr
	}
	return &client.InitializeResponse{
		AuthorizationURL: "https://checkout.paystack.com/" + req.Reference,
		AccessCode:       "ac_" + req.Reference,
		Reference:        req.Reference,
	}, nil
}

func (g *fakeGateway) VerifyTransaction(_ context.Context, reference string) (*client.VerifyResponse, error) {
	g.verifyCalls++
	if g.verifyErr != nil {
		return nil, g.verifyErr
	}
	detail := "Declined"
	if g.verifySuccess {
		detail = "Successful"
	}
	return &client.VerifyResponse{Success: g.verifySuccess, StatusDetail: detail}, nil
}

type sentMail struct {
	kind      client.TemplateKind
	recipient string
	data      map[string]string
}

type fakeMailer struct {
	mu   sync.Mutex
	sent []sentMail
}

func (m *fakeMailer) Send(_ context.Context, kind client.TemplateKind, recipient string, data map[string]string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, sentMail{kind: kind, recipient: recipient, data: data})
	return nil
}
