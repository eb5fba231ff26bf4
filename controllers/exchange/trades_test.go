package exchange

import (
	"context"
	"encoding/json"
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/Amolika28-Kale/dubaip2p-sub000/models"
	"github.com/Amolika28-Kale/dubaip2p-sub000/rates"
	"github.com/Amolika28-Kale/dubaip2p-sub000/utils"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	gormmysql "gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type stubFetcher struct{ v float64 }

func (s stubFetcher) FetchSpotPrice(ctx context.Context) (float64, error) { return s.v, nil }

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { sqlDB.Close() })
	db, err := gorm.Open(gormmysql.New(gormmysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("gorm.Open: %v", err)
	}
	return db, mock
}

func authedJSONRequest(method, target, body string) *http.Request {
	r := httptest.NewRequest(method, target, strings.NewReader(body))
	r.Header.Set("Content-Type", "application/json")
	user := &models.User{ID: 7, Username: "tester", Email: "tester@example.com"}
	return r.WithContext(context.WithValue(r.Context(), utils.UserKey, user))
}

func TestInitiateRejectsUnknownDirection(t *testing.T) {
	c := NewController(nil, nil)
	w := httptest.NewRecorder()
	body := `{"direction":"HOLD","send_method":"UPI","receive_method":"USDT-TRC20","fiat_amount":1000,"wallet_address":"TXYZabcdefghijklmnopqrstuv"}`

	c.Initiate(w, authedJSONRequest(http.MethodPost, "/api/exchange/initiate", body))

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown direction, got %d", w.Code)
	}
}

func TestInitiateRejectsMissingWallet(t *testing.T) {
	c := NewController(nil, nil)
	w := httptest.NewRecorder()
	body := `{"direction":"BUY","send_method":"UPI","receive_method":"USDT-TRC20","fiat_amount":1000,"wallet_address":""}`

	c.Initiate(w, authedJSONRequest(http.MethodPost, "/api/exchange/initiate", body))

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for missing wallet, got %d", w.Code)
	}
}

// A fiat input with more than two decimals is stored rounded; the crypto
// amount must be derived from that stored value, not the raw request.
func TestInitiatePersistsCryptoDerivedFromStoredFiat(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `trades`").WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	rateSvc := rates.New(nil, stubFetcher{v: 83.0}, time.Minute, 0)
	c := NewController(db, rateSvc)

	w := httptest.NewRecorder()
	body := `{"direction":"BUY","send_method":"UPI","receive_method":"USDT-TRC20","fiat_amount":1000.006,"wallet_address":"TXYZabcdefghijklmnopqrstuv"}`
	c.Initiate(w, authedJSONRequest(http.MethodPost, "/api/exchange/initiate", body))

	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}

	var resp struct {
		Data models.Trade `json:"data"`
	}
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}

	if resp.Data.FiatAmount != 1000.01 {
		t.Fatalf("expected fiat stored as 1000.01, got %v", resp.Data.FiatAmount)
	}
	want := models.CryptoAmount(resp.Data.FiatAmount, resp.Data.Rate)
	if resp.Data.CryptoAmount != want {
		t.Fatalf("stored crypto %v does not match round(storedFiat/rate, 6) = %v", resp.Data.CryptoAmount, want)
	}
	if math.Abs(resp.Data.CryptoAmount-12.048313) > 1e-9 {
		t.Fatalf("expected crypto 12.048313 for 1000.01 INR at 83.0, got %v", resp.Data.CryptoAmount)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet DB expectations: %v", err)
	}
}

func TestInitiateRequiresAuth(t *testing.T) {
	c := NewController(nil, nil)
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/api/exchange/initiate", strings.NewReader(`{}`))
	r.Header.Set("Content-Type", "application/json")

	c.Initiate(w, r)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without user in context, got %d", w.Code)
	}
}

func TestAdminSetRateRejectsNonPositive(t *testing.T) {
	c := NewController(nil, nil)
	w := httptest.NewRecorder()

	c.AdminSetRate(w, authedJSONRequest(http.MethodPost, "/api/exchange/admin/rate", `{"rate":-5}`))

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for negative rate, got %d", w.Code)
	}
}

func TestAdminSetOperatorRequiresFlag(t *testing.T) {
	c := NewController(nil, nil)
	w := httptest.NewRecorder()

	c.AdminSetOperator(w, authedJSONRequest(http.MethodPost, "/api/exchange/admin/operator", `{}`))

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 when online flag is absent, got %d", w.Code)
	}
}

func TestAdminSetReservesRejectsNegative(t *testing.T) {
	c := NewController(nil, nil)
	w := httptest.NewRecorder()

	c.AdminSetReserves(w, authedJSONRequest(http.MethodPost, "/api/exchange/reserves", `{"UPI":-100}`))

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for negative reserve, got %d", w.Code)
	}
}

func TestAdminUpsertPaymentDetailRejectsUnknownMethod(t *testing.T) {
	c := NewController(nil, nil)
	w := httptest.NewRecorder()

	c.AdminUpsertPaymentDetail(w, authedJSONRequest(http.MethodPost, "/api/exchange/admin/payment-details", `{"method":"PAYPAL"}`))

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown method, got %d", w.Code)
	}
}
