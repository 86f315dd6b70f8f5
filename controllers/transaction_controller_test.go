package controllers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"ledgerProject/config"
	"ledgerProject/database"
	"ledgerProject/models"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const testCookieName = "sessionId"

// newTestRouter собирает роутер с контроллером поверх базы данных в памяти
func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("не удалось открыть тестовую базу данных: %v", err)
	}
	if err := db.AutoMigrate(&models.Transaction{}); err != nil {
		t.Fatalf("не удалось выполнить миграцию: %v", err)
	}

	cfg := &config.Config{}
	cfg.Session.CookieName = testCookieName
	cfg.Session.MaxAge = 3600

	router := gin.New()
	NewTransactionController(&database.Database{DB: db}, cfg).RegisterRoutes(router)
	return router
}

// createTransaction выполняет POST-запрос создания транзакции
func createTransaction(t *testing.T, router *gin.Engine, cookie *http.Cookie, title string, amount float64, transactionType string) *httptest.ResponseRecorder {
	t.Helper()

	body, err := json.Marshal(map[string]interface{}{
		"title":  title,
		"amount": amount,
		"type":   transactionType,
	})
	if err != nil {
		t.Fatal(err)
	}

	req, err := http.NewRequest("POST", "/api/transactions", bytes.NewReader(body))
	if err != nil {
		t.Fatal(err)
	}
	req.Header.Set("Content-Type", "application/json")
	if cookie != nil {
		req.AddCookie(cookie)
	}

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}

// sessionCookie достает сессионную cookie из ответа
func sessionCookie(t *testing.T, rr *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range rr.Result().Cookies() {
		if c.Name == testCookieName {
			return c
		}
	}
	t.Fatal("в ответе нет сессионной cookie")
	return nil
}

// doGet выполняет GET-запрос с опциональной cookie
func doGet(t *testing.T, router *gin.Engine, path string, cookie *http.Cookie) *httptest.ResponseRecorder {
	t.Helper()

	req, err := http.NewRequest("GET", path, nil)
	if err != nil {
		t.Fatal(err)
	}
	if cookie != nil {
		req.AddCookie(cookie)
	}

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}

func TestCreateMintsSessionCookie(t *testing.T) {
	router := newTestRouter(t)

	// Первый запрос без cookie создает сессию
	rr := createTransaction(t, router, nil, "Salary", 5000.00, "credit")
	if rr.Code != http.StatusCreated {
		t.Fatalf("статус создания: got %d want %d, body: %s", rr.Code, http.StatusCreated, rr.Body.String())
	}

	cookie := sessionCookie(t, rr)
	if cookie.Value == "" {
		t.Fatal("токен сессии не должен быть пустым")
	}

	var response struct {
		ID        string `json:"id"`
		SessionID string `json:"session_id"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &response); err != nil {
		t.Fatal(err)
	}
	if response.ID == "" {
		t.Error("в ответе нет идентификатора транзакции")
	}
	if response.SessionID != cookie.Value {
		t.Errorf("идентификатор сессии в ответе: got %q want %q", response.SessionID, cookie.Value)
	}

	// Повторный запрос с cookie сохраняет сессию и не выдает новую
	rr = createTransaction(t, router, cookie, "Rent", 1200.00, "debit")
	if rr.Code != http.StatusCreated {
		t.Fatalf("статус создания: got %d want %d", rr.Code, http.StatusCreated)
	}
	for _, c := range rr.Result().Cookies() {
		if c.Name == testCookieName {
			t.Error("при существующей сессии новая cookie выдаваться не должна")
		}
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &response); err != nil {
		t.Fatal(err)
	}
	if response.SessionID != cookie.Value {
		t.Errorf("идентификатор сессии в ответе: got %q want %q", response.SessionID, cookie.Value)
	}
}

func TestReadWithoutSessionIsUnauthorized(t *testing.T) {
	router := newTestRouter(t)

	paths := []string{
		"/api/transactions",
		"/api/transactions/summary",
		"/api/transactions/00000000-0000-0000-0000-000000000000",
	}

	// Чтение без сессии отклоняется до обращения к хранилищу
	for _, path := range paths {
		rr := doGet(t, router, path, nil)
		if rr.Code != http.StatusUnauthorized {
			t.Errorf("GET %s: got %d want %d", path, rr.Code, http.StatusUnauthorized)
		}
	}
}

func TestLedgerScenario(t *testing.T) {
	router := newTestRouter(t)

	// Зарплата под новой сессией
	rr := createTransaction(t, router, nil, "Salary", 5000.00, "credit")
	if rr.Code != http.StatusCreated {
		t.Fatalf("статус создания: got %d want %d", rr.Code, http.StatusCreated)
	}
	cookie := sessionCookie(t, rr)

	// Баланс равен зарплате
	rr = doGet(t, router, "/api/transactions/summary", cookie)
	if rr.Code != http.StatusOK {
		t.Fatalf("статус баланса: got %d want %d", rr.Code, http.StatusOK)
	}
	var summaryResponse struct {
		Summary struct {
			Amount float64 `json:"amount"`
		} `json:"summary"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &summaryResponse); err != nil {
		t.Fatal(err)
	}
	if summaryResponse.Summary.Amount != 5000.00 {
		t.Errorf("баланс: got %v want %v", summaryResponse.Summary.Amount, 5000.00)
	}

	// Аренда в той же сессии
	rr = createTransaction(t, router, cookie, "Rent", 1200.00, "debit")
	if rr.Code != http.StatusCreated {
		t.Fatalf("статус создания: got %d want %d", rr.Code, http.StatusCreated)
	}
	var createResponse struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &createResponse); err != nil {
		t.Fatal(err)
	}

	// Баланс уменьшился на сумму аренды
	rr = doGet(t, router, "/api/transactions/summary", cookie)
	if err := json.Unmarshal(rr.Body.Bytes(), &summaryResponse); err != nil {
		t.Fatal(err)
	}
	if summaryResponse.Summary.Amount != 3800.00 {
		t.Errorf("баланс: got %v want %v", summaryResponse.Summary.Amount, 3800.00)
	}

	// Список содержит ровно две транзакции
	rr = doGet(t, router, "/api/transactions", cookie)
	if rr.Code != http.StatusOK {
		t.Fatalf("статус списка: got %d want %d", rr.Code, http.StatusOK)
	}
	var listResponse struct {
		Transactions []struct {
			ID     string  `json:"id"`
			Amount float64 `json:"amount"`
		} `json:"transactions"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &listResponse); err != nil {
		t.Fatal(err)
	}
	if len(listResponse.Transactions) != 2 {
		t.Errorf("количество транзакций: got %d want 2", len(listResponse.Transactions))
	}

	// Аренда хранится с отрицательной суммой
	rr = doGet(t, router, "/api/transactions/"+createResponse.ID, cookie)
	if rr.Code != http.StatusOK {
		t.Fatalf("статус получения: got %d want %d", rr.Code, http.StatusOK)
	}
	var getResponse struct {
		Transaction struct {
			Amount float64 `json:"amount"`
		} `json:"transaction"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &getResponse); err != nil {
		t.Fatal(err)
	}
	if getResponse.Transaction.Amount != -1200.00 {
		t.Errorf("сумма аренды: got %v want %v", getResponse.Transaction.Amount, -1200.00)
	}
}

func TestSessionsDoNotSeeEachOther(t *testing.T) {
	router := newTestRouter(t)

	// Две независимые сессии
	rr := createTransaction(t, router, nil, "Salary", 5000.00, "credit")
	firstCookie := sessionCookie(t, rr)
	var created struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &created); err != nil {
		t.Fatal(err)
	}

	rr = createTransaction(t, router, nil, "Coffee", 3.50, "debit")
	secondCookie := sessionCookie(t, rr)
	if firstCookie.Value == secondCookie.Value {
		t.Fatal("сессии должны получать разные токены")
	}

	// Вторая сессия не видит чужую транзакцию
	rr = doGet(t, router, "/api/transactions/"+created.ID, secondCookie)
	if rr.Code != http.StatusNotFound {
		t.Errorf("чужая транзакция: got %d want %d", rr.Code, http.StatusNotFound)
	}

	rr = doGet(t, router, "/api/transactions", secondCookie)
	var listResponse struct {
		Transactions []json.RawMessage `json:"transactions"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &listResponse); err != nil {
		t.Fatal(err)
	}
	if len(listResponse.Transactions) != 1 {
		t.Errorf("количество транзакций второй сессии: got %d want 1", len(listResponse.Transactions))
	}
}

func TestGetByIDValidation(t *testing.T) {
	router := newTestRouter(t)

	rr := createTransaction(t, router, nil, "Salary", 5000.00, "credit")
	cookie := sessionCookie(t, rr)

	// Некорректная форма идентификатора
	rr = doGet(t, router, "/api/transactions/not-a-uuid", cookie)
	if rr.Code != http.StatusBadRequest {
		t.Errorf("некорректный идентификатор: got %d want %d", rr.Code, http.StatusBadRequest)
	}

	// Корректный, но несуществующий идентификатор
	rr = doGet(t, router, "/api/transactions/00000000-0000-0000-0000-000000000000", cookie)
	if rr.Code != http.StatusNotFound {
		t.Errorf("несуществующий идентификатор: got %d want %d", rr.Code, http.StatusNotFound)
	}
}

func TestCreateRejectsInvalidBody(t *testing.T) {
	router := newTestRouter(t)

	// Некорректный JSON
	req, err := http.NewRequest("POST", "/api/transactions", bytes.NewReader([]byte("{not json")))
	if err != nil {
		t.Fatal(err)
	}
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	if rr.Code != http.StatusBadRequest {
		t.Errorf("некорректное тело: got %d want %d", rr.Code, http.StatusBadRequest)
	}

	// Неизвестный тип транзакции
	rr = createTransaction(t, router, nil, "Oops", 10.00, "transfer")
	if rr.Code != http.StatusBadRequest {
		t.Errorf("неизвестный тип: got %d want %d", rr.Code, http.StatusBadRequest)
	}

	// Отрицательная величина
	rr = createTransaction(t, router, nil, "Oops", -10.00, "credit")
	if rr.Code != http.StatusBadRequest {
		t.Errorf("отрицательная величина: got %d want %d", rr.Code, http.StatusBadRequest)
	}
}
