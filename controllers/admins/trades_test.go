package admins

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Amolika28-Kale/dubaip2p-sub000/database"
	"github.com/Amolika28-Kale/dubaip2p-sub000/models"
	"github.com/Amolika28-Kale/dubaip2p-sub000/utils"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	gormmysql "gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func useMockDB(t *testing.T) sqlmock.Sqlmock {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	db, err := gorm.Open(gormmysql.New(gormmysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("gorm.Open: %v", err)
	}
	prev := database.DB
	database.DB = db
	t.Cleanup(func() {
		database.DB = prev
		sqlDB.Close()
	})
	return mock
}

func adminJSONRequest(target, body string) *http.Request {
	r := httptest.NewRequest(http.MethodPost, target, strings.NewReader(body))
	r.Header.Set("Content-Type", "application/json")
	admin := &models.User{ID: 1, Username: "admin", Email: "admin@example.com", IsAdmin: true}
	return r.WithContext(context.WithValue(r.Context(), utils.UserKey, admin))
}

func completedTradeRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "user_id", "reference", "direction", "status", "fiat_amount", "crypto_amount", "rate"}).
		AddRow(9, 7, "TRD-000001", models.TradeDirectionBuy, models.TradeStatusCompleted, 1000.0, 12.048193, 83.0)
}

// Releasing a trade that is not PAID must fail with 400 and change nothing:
// the conditional UPDATE matches zero rows and no further write happens.
func TestReleaseTradeNotPaidConflicts(t *testing.T) {
	mock := useMockDB(t)

	mock.ExpectQuery("SELECT (.+) FROM `trades`").WillReturnRows(completedTradeRows())
	mock.ExpectBegin()
	mock.ExpectExec("UPDATE `trades` SET").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	w := httptest.NewRecorder()
	ReleaseTrade(w, adminJSONRequest("/api/exchange/admin/release", `{"reference":"TRD-000001","txid":"0xabc123"}`))

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 releasing a COMPLETED trade, got %d: %s", w.Code, w.Body.String())
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unexpected DB activity: %v", err)
	}
}

func TestRejectTradeAlreadySettledConflicts(t *testing.T) {
	mock := useMockDB(t)

	mock.ExpectQuery("SELECT (.+) FROM `trades`").WillReturnRows(completedTradeRows())
	mock.ExpectBegin()
	mock.ExpectExec("UPDATE `trades` SET").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	w := httptest.NewRecorder()
	RejectTrade(w, adminJSONRequest("/api/exchange/admin/reject", `{"reference":"TRD-000001","reason":"proof unreadable"}`))

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 rejecting a settled trade, got %d: %s", w.Code, w.Body.String())
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unexpected DB activity: %v", err)
	}
}

func TestReleaseTradeNotFound(t *testing.T) {
	mock := useMockDB(t)

	mock.ExpectQuery("SELECT (.+) FROM `trades`").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	w := httptest.NewRecorder()
	ReleaseTrade(w, adminJSONRequest("/api/exchange/admin/release", `{"reference":"TRD-MISSING","txid":"0xabc123"}`))

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown reference, got %d", w.Code)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unexpected DB activity: %v", err)
	}
}
