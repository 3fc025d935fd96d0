package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"

	"ticket_queue/internal/models"
	"ticket_queue/internal/queue"
	"ticket_queue/internal/response"
	"ticket_queue/internal/storage"
	"ticket_queue/internal/tasks"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func setupTestServer(t *testing.T) *httptest.Server {
	gin.SetMode(gin.TestMode)

	storage.ConnectTestingDatabase()
	if err := storage.DB.AutoMigrate(&models.QueueDay{}, &models.QueueEntry{}); err != nil {
		t.Fatal("Ошибка при миграции тестовой базы:", err)
	}
	storage.DB.Exec("DELETE FROM queue_entries")
	storage.DB.Exec("DELETE FROM queue_days")

	// Redis в тестах недоступен, обработчики переходят на чтение из базы.
	storage.InitRedis()

	r := gin.New()
	queueGroup := r.Group("/queue")
	{
		queueGroup.POST("/start-day", StartDayHandler)
		queueGroup.POST("/entries", CreateEntryHandler)
		queueGroup.POST("/xibo", CreateEntryFormHandler)
		queueGroup.GET("/entries", ListEntriesHandler)
		queueGroup.GET("/display", DisplayHandler)
		queueGroup.GET("/health", HealthHandler)
	}

	return httptest.NewServer(r)
}

func postJSON(t *testing.T, ts *httptest.Server, path string, payload interface{}) *http.Response {
	body, err := json.Marshal(payload)
	assert.NoError(t, err)
	res, err := http.Post(ts.URL+path, "application/json", bytes.NewReader(body))
	assert.NoError(t, err)
	return res
}

func decodeEntry(t *testing.T, res *http.Response) response.EntryResponse {
	defer res.Body.Close()
	var entry response.EntryResponse
	assert.NoError(t, json.NewDecoder(res.Body).Decode(&entry))
	return entry
}

func decodeError(t *testing.T, res *http.Response) response.ErrorResponse {
	defer res.Body.Close()
	var apiErr response.ErrorResponse
	assert.NoError(t, json.NewDecoder(res.Body).Decode(&apiErr))
	return apiErr
}

func issueTicket(t *testing.T, ts *httptest.Server, serviceDate, name, phone string) response.EntryResponse {
	payload := map[string]string{"name": name, "service_date": serviceDate}
	if phone != "" {
		payload["phone"] = phone
	}
	res := postJSON(t, ts, "/queue/entries", payload)
	assert.Equal(t, http.StatusCreated, res.StatusCode, "Талон не выдан")
	return decodeEntry(t, res)
}

func TestIssueSequence(t *testing.T) {
	ts := setupTestServer(t)
	defer ts.Close()

	for i := 1; i <= 5; i++ {
		entry := issueTicket(t, ts, "2024-05-20", fmt.Sprintf("Посетитель %d", i), "")
		assert.Equal(t, fmt.Sprintf("%03d", i), entry.Ticket, "Номера талонов должны идти подряд")
		assert.Equal(t, "2024-05-20", entry.ServiceDate)
		assert.NotZero(t, entry.ID)
	}

	res, err := http.Get(ts.URL + "/queue/entries?service_date=2024-05-20")
	assert.NoError(t, err)
	defer res.Body.Close()
	assert.Equal(t, http.StatusOK, res.StatusCode)

	var entries []response.EntryResponse
	assert.NoError(t, json.NewDecoder(res.Body).Decode(&entries))
	assert.Len(t, entries, 5)
	for i, entry := range entries {
		assert.Equal(t, fmt.Sprintf("%03d", i+1), entry.Ticket, "Список должен быть упорядочен по номеру")
	}
}

func TestIssueValidation(t *testing.T) {
	ts := setupTestServer(t)
	defer ts.Close()

	res := postJSON(t, ts, "/queue/entries", map[string]string{"name": "   "})
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
	apiErr := decodeError(t, res)
	assert.Equal(t, "VALIDATION_ERROR", apiErr.Code)

	res = postJSON(t, ts, "/queue/entries", map[string]string{"name": "Иван", "service_date": "20.05.2024"})
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
	apiErr = decodeError(t, res)
	assert.Equal(t, "INVALID_SERVICE_DATE", apiErr.Code)

	// Ошибки валидации не меняют состояние.
	var count int64
	storage.DB.Model(&models.QueueEntry{}).Count(&count)
	assert.Zero(t, count)
}

func TestStartDayConflict(t *testing.T) {
	ts := setupTestServer(t)
	defer ts.Close()

	issueTicket(t, ts, "2024-05-20", "Иван", "")
	issueTicket(t, ts, "2024-05-20", "Пётр", "")

	res := postJSON(t, ts, "/queue/start-day", map[string]interface{}{
		"service_date": "2024-05-20",
		"overwrite":    false,
	})
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
	apiErr := decodeError(t, res)
	assert.Equal(t, "ALREADY_STARTED", apiErr.Code)

	// Талоны не тронуты.
	var active int64
	storage.DB.Model(&models.QueueEntry{}).
		Where("service_date = ? AND voided = ?", "2024-05-20", false).
		Count(&active)
	assert.Equal(t, int64(2), active)
}

func TestStartDayOverwriteRestartsNumbering(t *testing.T) {
	ts := setupTestServer(t)
	defer ts.Close()

	issueTicket(t, ts, "2024-05-20", "Иван", "")
	issueTicket(t, ts, "2024-05-20", "Пётр", "")
	issueTicket(t, ts, "2024-05-20", "Сидор", "")

	res := postJSON(t, ts, "/queue/start-day", map[string]interface{}{
		"service_date": "2024-05-20",
		"overwrite":    true,
	})
	assert.Equal(t, http.StatusOK, res.StatusCode)
	defer res.Body.Close()
	var day response.StartDayResponse
	assert.NoError(t, json.NewDecoder(res.Body).Decode(&day))
	assert.Equal(t, 2, day.Cycle)

	// Новый цикл начинается с 001.
	entry := issueTicket(t, ts, "2024-05-20", "Анна", "")
	assert.Equal(t, "001", entry.Ticket)

	// История сохранена: аннулированные строки остались в базе.
	var voided, total int64
	storage.DB.Model(&models.QueueEntry{}).
		Where("service_date = ? AND voided = ?", "2024-05-20", true).
		Count(&voided)
	storage.DB.Model(&models.QueueEntry{}).
		Where("service_date = ?", "2024-05-20").
		Count(&total)
	assert.Equal(t, int64(3), voided)
	assert.Equal(t, int64(4), total)
}

func TestStartDayFreshDate(t *testing.T) {
	ts := setupTestServer(t)
	defer ts.Close()

	res := postJSON(t, ts, "/queue/start-day", map[string]interface{}{
		"service_date": "2024-05-21",
	})
	assert.Equal(t, http.StatusOK, res.StatusCode)
	defer res.Body.Close()
	var day response.StartDayResponse
	assert.NoError(t, json.NewDecoder(res.Body).Decode(&day))
	assert.Equal(t, "2024-05-21", day.ServiceDate)
	assert.Equal(t, 1, day.Cycle)

	entry := issueTicket(t, ts, "2024-05-21", "Иван", "")
	assert.Equal(t, "001", entry.Ticket)
}

func TestStartDayTodayAfterMidnightRollover(t *testing.T) {
	ts := setupTestServer(t)
	defer ts.Close()

	// Полуночная задача отметила день, талонов ещё нет.
	tasks.EnsureTodayStarted()

	res := postJSON(t, ts, "/queue/start-day", map[string]interface{}{})
	assert.Equal(t, http.StatusOK, res.StatusCode, "День без талонов должен запускаться без перезаписи")
	defer res.Body.Close()
	var day response.StartDayResponse
	assert.NoError(t, json.NewDecoder(res.Body).Decode(&day))
	assert.Equal(t, queue.Today(), day.ServiceDate)
	assert.Equal(t, 1, day.Cycle)

	// После первого талона запуск без перезаписи снова отклоняется.
	issueTicket(t, ts, "", "Иван", "")
	res = postJSON(t, ts, "/queue/start-day", map[string]interface{}{})
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
	apiErr := decodeError(t, res)
	assert.Equal(t, "ALREADY_STARTED", apiErr.Code)
}

func TestXiboFormIssue(t *testing.T) {
	ts := setupTestServer(t)
	defer ts.Close()

	form := url.Values{}
	form.Set("name", "Мария")
	form.Set("phone", "+79991112233")
	form.Set("service_date", "2024-05-22")

	res, err := http.Post(ts.URL+"/queue/xibo", "application/x-www-form-urlencoded",
		strings.NewReader(form.Encode()))
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, res.StatusCode)

	entry := decodeEntry(t, res)
	assert.Equal(t, "001", entry.Ticket)
	assert.Equal(t, "Мария", entry.Name)
	if assert.NotNil(t, entry.Phone) {
		assert.Equal(t, "+79991112233", *entry.Phone)
	}

	// Форма без имени отклоняется так же, как JSON.
	res, err = http.Post(ts.URL+"/queue/xibo", "application/x-www-form-urlencoded",
		strings.NewReader("phone=123"))
	assert.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
	apiErr := decodeError(t, res)
	assert.Equal(t, "VALIDATION_ERROR", apiErr.Code)
}

func TestCapacityExceeded(t *testing.T) {
	ts := setupTestServer(t)
	defer ts.Close()

	entries := make([]models.QueueEntry, 0, queue.MaxNumber)
	for i := 1; i <= queue.MaxNumber; i++ {
		entries = append(entries, models.QueueEntry{
			ServiceDate: "2024-05-23",
			Cycle:       1,
			QueueNumber: i,
			Name:        "Посетитель",
		})
	}
	assert.NoError(t, storage.DB.CreateInBatches(entries, 200).Error)
	day := models.QueueDay{ServiceDate: "2024-05-23", Cycle: 1}
	assert.NoError(t, storage.DB.Create(&day).Error)

	res := postJSON(t, ts, "/queue/entries", map[string]string{
		"name":         "Тысячный",
		"service_date": "2024-05-23",
	})
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
	apiErr := decodeError(t, res)
	assert.Equal(t, "CAPACITY_EXCEEDED", apiErr.Code)

	// 999-й талон остался последним.
	var last models.QueueEntry
	assert.NoError(t, storage.DB.
		Where("service_date = ? AND voided = ?", "2024-05-23", false).
		Order("queue_number DESC").
		First(&last).Error)
	assert.Equal(t, queue.MaxNumber, last.QueueNumber)
	assert.Equal(t, "999", queue.FormatTicket(last.QueueNumber))
}

func TestConcurrentIssueUniqueNumbers(t *testing.T) {
	ts := setupTestServer(t)
	defer ts.Close()

	const workers = 30
	tickets := make(chan string, workers)
	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func(i int) {
			defer wg.Done()
			body, _ := json.Marshal(map[string]string{
				"name":         fmt.Sprintf("Посетитель %d", i),
				"service_date": "2024-05-24",
			})
			res, err := http.Post(ts.URL+"/queue/entries", "application/json", bytes.NewReader(body))
			if err != nil {
				return
			}
			defer res.Body.Close()
			if res.StatusCode != http.StatusCreated {
				return
			}
			var entry response.EntryResponse
			if json.NewDecoder(res.Body).Decode(&entry) == nil {
				tickets <- entry.Ticket
			}
		}(i)
	}
	wg.Wait()
	close(tickets)

	seen := make(map[string]bool)
	for ticket := range tickets {
		assert.False(t, seen[ticket], "Номер %s выдан дважды", ticket)
		seen[ticket] = true
	}
	assert.Len(t, seen, workers, "Каждый запрос должен получить свой номер")
}

func TestHealth(t *testing.T) {
	ts := setupTestServer(t)
	defer ts.Close()

	res, err := http.Get(ts.URL + "/queue/health")
	assert.NoError(t, err)
	defer res.Body.Close()
	assert.Equal(t, http.StatusOK, res.StatusCode)

	var status map[string]string
	assert.NoError(t, json.NewDecoder(res.Body).Decode(&status))
	assert.Equal(t, "ok", status["status"])
}
