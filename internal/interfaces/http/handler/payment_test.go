package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rentflow/backend/internal/application/payment"
	"github.com/rentflow/backend/internal/domain/billing"
	"github.com/rentflow/backend/internal/infrastructure/persistence"
	"github.com/rentflow/backend/internal/infrastructure/persistence/models"
	"github.com/rentflow/backend/internal/interfaces/http/dto"
	"github.com/rentflow/backend/internal/interfaces/http/middleware"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const testOwnerHeader = "X-Test-Owner"

// envelope mirrors dto.Response with a raw data field for typed decoding
type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *dto.ErrorInfo  `json:"error"`
	Meta    *dto.Meta       `json:"meta"`
}

type paymentTestEnv struct {
	router     *gin.Engine
	db         *gorm.DB
	ownerID    uuid.UUID
	propertyID uuid.UUID
	roomID     uuid.UUID
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// newPaymentTestEnv wires the handler to real services over an in-memory database.
// The clock reads 2024-03-10; the seeded room's tenant moved in on 2024-01-03 and pays on the 5th.
func newPaymentTestEnv(t *testing.T) *paymentTestEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)
	middleware.SetupValidator()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(&models.PropertyModel{}, &models.RoomModel{}, &models.PaymentRecordModel{}))

	env := &paymentTestEnv{db: db, ownerID: uuid.New(), propertyID: uuid.New()}
	property := &models.PropertyModel{OwnerID: env.ownerID, Name: "Sunrise House"}
	property.ID = env.propertyID
	require.NoError(t, db.Create(property).Error)
	env.roomID = env.seedRoom(t, "A101", true)

	now := time.Date(2024, time.March, 10, 10, 0, 0, 0, time.UTC)
	clock := func() time.Time { return now }

	paymentRepo := persistence.NewGormPaymentRecordRepository(db)
	roomRepo := persistence.NewGormRoomRepository(db)
	propertyRepo := persistence.NewGormPropertyRepository(db)

	paymentService := payment.NewPaymentService(paymentRepo, roomRepo, propertyRepo, zap.NewNop(),
		payment.DefaultPaymentServiceConfig(), payment.WithClock(clock))
	generationService := payment.NewGenerationService(paymentRepo, roomRepo, zap.NewNop(),
		payment.DefaultGenerationServiceConfig())
	reminderService := payment.NewReminderService(paymentRepo, propertyRepo, zap.NewNop(), 3)

	h := NewPaymentHandler(paymentService, generationService, reminderService, WithHandlerClock(clock))

	router := gin.New()
	router.Use(func(c *gin.Context) {
		if owner := c.GetHeader(testOwnerHeader); owner != "" {
			c.Set(middleware.JWTOwnerIDKey, owner)
		}
		c.Next()
	})
	payments := router.Group("/payments")
	payments.GET("", h.List)
	payments.POST("", h.Create)
	payments.POST("/calculate", h.CalculateFees)
	payments.POST("/generate", h.Generate)
	payments.GET("/overdue", h.Overdue)
	payments.GET("/statistics", h.Statistics)
	payments.GET("/reminders", h.Reminders)
	payments.GET("/:id", h.GetByID)
	payments.PUT("/:id/usage", h.UpdateUsage)
	payments.PUT("/:id/pay", h.MarkPaid)
	payments.PUT("/:id/status", h.UpdateStatus)
	payments.PUT("/:id/due-date", h.UpdateDueDate)
	rooms := router.Group("/rooms")
	rooms.POST("/:id/usage", h.RecordUsage)
	rooms.GET("/:id/payments", h.History)
	rooms.GET("/:id/payment-status", h.RoomPaymentStatus)

	env.router = router
	return env
}

func (e *paymentTestEnv) seedRoom(t *testing.T, code string, withTenant bool) uuid.UUID {
	t.Helper()
	room := &billing.RoomConfiguration{
		ID:                   uuid.New(),
		OwnerID:              e.ownerID,
		PropertyID:           e.propertyID,
		RoomCode:             code,
		Status:               billing.RoomStatusVacant,
		RentalPrice:          decimal.NewFromInt(3_000_000),
		ElectricityUnitPrice: decimal.NewFromInt(3500),
		WaterUnitPrice:       decimal.NewFromInt(20000),
		GarbageFee:           decimal.NewFromInt(50_000),
		ParkingFee:           decimal.NewFromInt(100_000),
	}
	if withTenant {
		tenantID := uuid.New()
		room.Status = billing.RoomStatusOccupied
		room.CurrentTenant = &billing.TenantAssignment{
			TenantID:      &tenantID,
			Name:          "Nguyen Van A",
			MoveInDate:    date(2024, time.January, 3),
			PaymentDueDay: 5,
		}
	}
	require.NoError(t, e.db.Create(models.RoomModelFromDomain(room)).Error)
	return room.ID
}

func (e *paymentTestEnv) do(t *testing.T, method, path string, body any) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	return e.doAs(t, e.ownerID.String(), method, path, body)
}

func (e *paymentTestEnv) doAs(t *testing.T, owner, method, path string, body any) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if owner != "" {
		req.Header.Set(testOwnerHeader, owner)
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)

	var resp envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp), w.Body.String())
	return w, resp
}

// generate bills the seeded room for the period starting 2024-03-03 and returns it
func (e *paymentTestEnv) generate(t *testing.T) payment.PaymentResponse {
	t.Helper()
	w, resp := e.do(t, http.MethodPost, "/payments/generate", gin.H{
		"date":    "2024-03-03",
		"room_id": e.roomID.String(),
	})
	require.Equal(t, http.StatusCreated, w.Code, string(resp.Data))
	var record payment.PaymentResponse
	require.NoError(t, json.Unmarshal(resp.Data, &record))
	return record
}

func decodeData[T any](t *testing.T, resp envelope) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(resp.Data, &out))
	return out
}

func assertDecimal(t *testing.T, expected int64, actual decimal.Decimal) {
	t.Helper()
	assert.True(t, actual.Equal(decimal.NewFromInt(expected)), "expected %d, got %s", expected, actual)
}

func TestPaymentHandler_Generate(t *testing.T) {
	t.Run("anniversary run is idempotent", func(t *testing.T) {
		env := newPaymentTestEnv(t)
		env.seedRoom(t, "B201", false)

		w, resp := env.do(t, http.MethodPost, "/payments/generate", gin.H{"date": "2024-03-03"})
		require.Equal(t, http.StatusOK, w.Code)
		first := decodeData[payment.GenerationResultResponse](t, resp)
		assert.Equal(t, "2024-03-03", first.RunDate)
		assert.Equal(t, 1, first.TotalRooms)
		assert.Equal(t, 1, first.Eligible)
		assert.Equal(t, 1, first.Created)

		w, resp = env.do(t, http.MethodPost, "/payments/generate", gin.H{"date": "2024-03-03"})
		require.Equal(t, http.StatusOK, w.Code)
		second := decodeData[payment.GenerationResultResponse](t, resp)
		assert.Equal(t, 0, second.Created)
		assert.Equal(t, 1, second.Skipped)

		var count int64
		require.NoError(t, env.db.Model(&models.PaymentRecordModel{}).Count(&count).Error)
		assert.Equal(t, int64(1), count)
	})

	t.Run("without body runs for today", func(t *testing.T) {
		env := newPaymentTestEnv(t)

		w, resp := env.do(t, http.MethodPost, "/payments/generate", nil)
		require.Equal(t, http.StatusOK, w.Code)
		result := decodeData[payment.GenerationResultResponse](t, resp)
		assert.Equal(t, "2024-03-10", result.RunDate)
		assert.Equal(t, 0, result.Eligible)
	})

	t.Run("single room creates the period record", func(t *testing.T) {
		env := newPaymentTestEnv(t)
		record := env.generate(t)

		assert.Equal(t, "2024-03-03", record.BillingPeriodStart)
		assert.Equal(t, "2024-04-02", record.BillingPeriodEnd)
		assert.Equal(t, "2024-03-05", record.DueDate)
		assertDecimal(t, 3_150_000, record.Charges.TotalAmount)

		w, resp := env.do(t, http.MethodPost, "/payments/generate", gin.H{
			"date":    "2024-03-03",
			"room_id": env.roomID.String(),
		})
		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Equal(t, dto.ErrCodeAlreadyExists, resp.Error.Code)
	})

	t.Run("invalid date", func(t *testing.T) {
		env := newPaymentTestEnv(t)
		w, resp := env.do(t, http.MethodPost, "/payments/generate", gin.H{"date": "03/03/2024"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, dto.ErrCodeValidation, resp.Error.Code)
	})
}

func TestPaymentHandler_Lifecycle(t *testing.T) {
	env := newPaymentTestEnv(t)
	record := env.generate(t)
	paymentPath := "/payments/" + record.ID.String()

	t.Run("get derives overdue", func(t *testing.T) {
		w, resp := env.do(t, http.MethodGet, paymentPath, nil)
		require.Equal(t, http.StatusOK, w.Code)
		got := decodeData[payment.PaymentResponse](t, resp)
		assert.Equal(t, billing.PaymentStatusOverdue, got.Status)
		assertDecimal(t, 3_150_000, got.Outstanding)
	})

	t.Run("record usage on the room", func(t *testing.T) {
		w, resp := env.do(t, http.MethodPost, "/rooms/"+env.roomID.String()+"/usage", gin.H{
			"electricity_usage": 100,
			"water_usage":       5,
		})
		require.Equal(t, http.StatusOK, w.Code, resp.Error)
		got := decodeData[payment.PaymentResponse](t, resp)
		assertDecimal(t, 350_000, got.Charges.ElectricityAmount)
		assertDecimal(t, 100_000, got.Charges.WaterAmount)
		assertDecimal(t, 3_600_000, got.Charges.TotalAmount)
	})

	t.Run("partial payment", func(t *testing.T) {
		w, resp := env.do(t, http.MethodPut, paymentPath+"/pay", gin.H{
			"paid_amount":    1_000_000,
			"payment_method": "cash",
		})
		require.Equal(t, http.StatusOK, w.Code)
		got := decodeData[payment.PaymentResponse](t, resp)
		assertDecimal(t, 1_000_000, got.PaidAmount)
		assertDecimal(t, 2_600_000, got.Outstanding)
	})

	t.Run("move due date", func(t *testing.T) {
		w, resp := env.do(t, http.MethodPut, paymentPath+"/due-date", gin.H{"due_date": "2024-03-15"})
		require.Equal(t, http.StatusOK, w.Code)
		got := decodeData[payment.PaymentResponse](t, resp)
		assert.Equal(t, "2024-03-15", got.DueDate)
		assert.Equal(t, billing.PaymentStatusPartial, got.Status)
	})

	t.Run("status paid settles the total", func(t *testing.T) {
		w, resp := env.do(t, http.MethodPut, paymentPath+"/status", gin.H{"status": "paid"})
		require.Equal(t, http.StatusOK, w.Code)
		got := decodeData[payment.PaymentResponse](t, resp)
		assert.Equal(t, billing.PaymentStatusPaid, got.Status)
		assertDecimal(t, 3_600_000, got.PaidAmount)
	})

	t.Run("usage on a paid bill is rejected", func(t *testing.T) {
		w, resp := env.do(t, http.MethodPut, paymentPath+"/usage", gin.H{"electricity_usage": 10})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, dto.ErrCodeInvalidState, resp.Error.Code)
	})

	t.Run("status cannot be set to overdue", func(t *testing.T) {
		w, resp := env.do(t, http.MethodPut, paymentPath+"/status", gin.H{"status": "overdue"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, dto.ErrCodeValidation, resp.Error.Code)
		require.NotEmpty(t, resp.Error.Details)
		assert.Equal(t, "status", resp.Error.Details[0].Field)
	})

	t.Run("reset to unpaid", func(t *testing.T) {
		w, resp := env.do(t, http.MethodPut, paymentPath+"/status", gin.H{"status": "unpaid"})
		require.Equal(t, http.StatusOK, w.Code)
		got := decodeData[payment.PaymentResponse](t, resp)
		assert.Equal(t, billing.PaymentStatusUnpaid, got.Status)
		assert.True(t, got.PaidAmount.IsZero())
	})
}

func TestPaymentHandler_Create(t *testing.T) {
	env := newPaymentTestEnv(t)
	body := gin.H{
		"room_id":              env.roomID.String(),
		"property_id":          env.propertyID.String(),
		"billing_month":        2,
		"billing_year":         2024,
		"billing_period_start": "2024-02-03",
		"billing_period_end":   "2024-03-02",
		"due_date":             "2024-02-05",
		"rental_amount":        3_000_000,
		"garbage_amount":       50_000,
		"adjustments":          -100_000,
	}

	w, resp := env.do(t, http.MethodPost, "/payments", body)
	require.Equal(t, http.StatusCreated, w.Code, resp.Error)
	got := decodeData[payment.PaymentResponse](t, resp)
	assertDecimal(t, 2_950_000, got.Charges.TotalAmount)
	assert.Equal(t, billing.PaymentStatusOverdue, got.Status)

	t.Run("duplicate period", func(t *testing.T) {
		w, resp := env.do(t, http.MethodPost, "/payments", body)
		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Equal(t, dto.ErrCodeAlreadyExists, resp.Error.Code)
	})

	t.Run("missing fields", func(t *testing.T) {
		w, resp := env.do(t, http.MethodPost, "/payments", gin.H{"room_id": env.roomID.String()})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, dto.ErrCodeValidation, resp.Error.Code)
	})

	t.Run("malformed json", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/payments", bytes.NewBufferString("{"))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set(testOwnerHeader, env.ownerID.String())
		w := httptest.NewRecorder()
		env.router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("room of another owner", func(t *testing.T) {
		w, resp := env.doAs(t, uuid.NewString(), http.MethodPost, "/payments", body)
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, dto.ErrCodeNotFound, resp.Error.Code)
	})
}

func TestPaymentHandler_Queries(t *testing.T) {
	env := newPaymentTestEnv(t)
	record := env.generate(t)
	property := "property_id=" + env.propertyID.String()

	t.Run("list with pagination meta", func(t *testing.T) {
		w, resp := env.do(t, http.MethodGet, "/payments?"+property, nil)
		require.Equal(t, http.StatusOK, w.Code)
		records := decodeData[[]payment.PaymentResponse](t, resp)
		require.Len(t, records, 1)
		assert.Equal(t, record.ID, records[0].ID)
		require.NotNil(t, resp.Meta)
		assert.Equal(t, int64(1), resp.Meta.Total)
		assert.Equal(t, 1, resp.Meta.Page)
		assert.Equal(t, 20, resp.Meta.PageSize)
	})

	t.Run("list filters on derived status", func(t *testing.T) {
		w, resp := env.do(t, http.MethodGet, "/payments?status=overdue", nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Len(t, decodeData[[]payment.PaymentResponse](t, resp), 1)

		w, resp = env.do(t, http.MethodGet, "/payments?status=paid,partial", nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Empty(t, decodeData[[]payment.PaymentResponse](t, resp))
	})

	t.Run("list rejects unknown status", func(t *testing.T) {
		w, resp := env.do(t, http.MethodGet, "/payments?status=late", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, resp.Error.Message, "late")
	})

	t.Run("overdue", func(t *testing.T) {
		w, resp := env.do(t, http.MethodGet, "/payments/overdue?"+property, nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Len(t, decodeData[[]payment.PaymentResponse](t, resp), 1)
	})

	t.Run("overdue requires a property", func(t *testing.T) {
		w, _ := env.do(t, http.MethodGet, "/payments/overdue", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("overdue for an unknown property", func(t *testing.T) {
		w, resp := env.do(t, http.MethodGet, "/payments/overdue?property_id="+uuid.NewString(), nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, dto.ErrCodeNotFound, resp.Error.Code)
	})

	t.Run("statistics", func(t *testing.T) {
		w, resp := env.do(t, http.MethodGet, "/payments/statistics?"+property+"&start_date=2024-03-01&end_date=2024-03-31", nil)
		require.Equal(t, http.StatusOK, w.Code)
		stats := decodeData[payment.StatisticsResponse](t, resp)
		assert.Equal(t, 1, stats.TotalRecords)
		assert.Equal(t, 1, stats.OverdueCount)
		assert.Equal(t, 0, stats.PaidCount)
		assertDecimal(t, 3_150_000, stats.OutstandingAmount)
		assert.Equal(t, "2024-03-01", stats.StartDate)
	})

	t.Run("statistics with inverted range", func(t *testing.T) {
		w, resp := env.do(t, http.MethodGet, "/payments/statistics?"+property+"&start_date=2024-03-31&end_date=2024-03-01", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, dto.ErrCodeValidation, resp.Error.Code)
	})

	t.Run("reminders", func(t *testing.T) {
		w, resp := env.do(t, http.MethodGet, "/payments/reminders?"+property, nil)
		require.Equal(t, http.StatusOK, w.Code)
		reminders := decodeData[payment.ReminderListResponse](t, resp)
		assert.Equal(t, 1, reminders.OverdueCount)
		require.Len(t, reminders.Reminders, 1)
		assert.Equal(t, payment.ReminderPriorityMedium, reminders.Reminders[0].Priority)
		assert.Equal(t, "Payment is 5 days overdue, 3.150.000 VND outstanding", reminders.Reminders[0].Message)
	})

	t.Run("reminders filtered by type", func(t *testing.T) {
		w, resp := env.do(t, http.MethodGet, "/payments/reminders?"+property+"&type=due_soon", nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Empty(t, decodeData[payment.ReminderListResponse](t, resp).Reminders)
	})

	t.Run("fee preview", func(t *testing.T) {
		w, resp := env.do(t, http.MethodPost, "/payments/calculate", gin.H{
			"room_id":           env.roomID.String(),
			"electricity_usage": 100,
			"water_usage":       5,
		})
		require.Equal(t, http.StatusOK, w.Code)
		preview := decodeData[payment.FeePreviewResponse](t, resp)
		assertDecimal(t, 3_600_000, preview.Charges.TotalAmount)
		assertDecimal(t, 3500, preview.ElectricityUnitPrice)
	})

	t.Run("room history", func(t *testing.T) {
		w, resp := env.do(t, http.MethodGet, "/rooms/"+env.roomID.String()+"/payments?limit=5", nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Len(t, decodeData[[]payment.PaymentResponse](t, resp), 1)
	})

	t.Run("room payment status", func(t *testing.T) {
		w, resp := env.do(t, http.MethodGet, "/rooms/"+env.roomID.String()+"/payment-status", nil)
		require.Equal(t, http.StatusOK, w.Code)
		status := decodeData[payment.RoomPaymentStatusResponse](t, resp)
		assert.Equal(t, billing.PaymentStatusOverdue.String(), status.Status)
		assert.Equal(t, "2024-03-05", status.DueDate)
	})

	t.Run("room never billed", func(t *testing.T) {
		vacant := env.seedRoom(t, "C301", false)
		w, resp := env.do(t, http.MethodGet, "/rooms/"+vacant.String()+"/payment-status", nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, payment.RoomPaymentStatusNone, decodeData[payment.RoomPaymentStatusResponse](t, resp).Status)
	})

	t.Run("usage on a vacant room", func(t *testing.T) {
		vacant := env.seedRoom(t, "D401", false)
		w, resp := env.do(t, http.MethodPost, "/rooms/"+vacant.String()+"/usage", gin.H{"electricity_usage": 10})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, dto.ErrCodeInvalidState, resp.Error.Code)
	})
}

func TestPaymentHandler_RequestErrors(t *testing.T) {
	env := newPaymentTestEnv(t)

	t.Run("anonymous request", func(t *testing.T) {
		w, resp := env.doAs(t, "", http.MethodGet, "/payments", nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, dto.ErrCodeUnauthorized, resp.Error.Code)
	})

	t.Run("malformed payment id", func(t *testing.T) {
		w, resp := env.do(t, http.MethodGet, "/payments/not-a-uuid", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "Invalid payment ID format", resp.Error.Message)
	})

	t.Run("unknown payment", func(t *testing.T) {
		w, resp := env.do(t, http.MethodGet, "/payments/"+uuid.NewString(), nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, dto.ErrCodeNotFound, resp.Error.Code)
	})

	t.Run("negative usage", func(t *testing.T) {
		w, resp := env.do(t, http.MethodPost, "/rooms/"+env.roomID.String()+"/usage", gin.H{"electricity_usage": -1})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, dto.ErrCodeValidation, resp.Error.Code)
	})

	t.Run("payment of another owner is hidden", func(t *testing.T) {
		record := env.generate(t)
		w, _ := env.doAs(t, uuid.NewString(), http.MethodPut, "/payments/"+record.ID.String()+"/pay", gin.H{"paid_amount": 10})
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
