package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	cancelAppointmentHandler "github.com/BreezDev/kimq/internal/api/handlers/cancel_appointment"
	createAppointmentHandler "github.com/BreezDev/kimq/internal/api/handlers/create_appointment"
	createAvailabilityHandler "github.com/BreezDev/kimq/internal/api/handlers/create_availability"
	createTimeOffHandler "github.com/BreezDev/kimq/internal/api/handlers/create_time_off"
	deleteAvailabilityHandler "github.com/BreezDev/kimq/internal/api/handlers/delete_availability"
	getAppointmentHandler "github.com/BreezDev/kimq/internal/api/handlers/get_appointment"
	getAvailableSlotsHandler "github.com/BreezDev/kimq/internal/api/handlers/get_available_slots"
	getBillingHandler "github.com/BreezDev/kimq/internal/api/handlers/get_billing"
	getGiftCardHandler "github.com/BreezDev/kimq/internal/api/handlers/get_gift_card"
	getStaffAppointmentsHandler "github.com/BreezDev/kimq/internal/api/handlers/get_staff_appointments"
	listServicesHandler "github.com/BreezDev/kimq/internal/api/handlers/list_services"
	purchaseGiftCardHandler "github.com/BreezDev/kimq/internal/api/handlers/purchase_gift_card"
	updateAppointmentHandler "github.com/BreezDev/kimq/internal/api/handlers/update_appointment"
	"github.com/BreezDev/kimq/internal/api/middleware"
	"github.com/BreezDev/kimq/internal/config"
	appointmentRepo "github.com/BreezDev/kimq/internal/infra/storage/appointment"
	catalogRepo "github.com/BreezDev/kimq/internal/infra/storage/catalog"
	clientRepo "github.com/BreezDev/kimq/internal/infra/storage/client"
	giftcardRepo "github.com/BreezDev/kimq/internal/infra/storage/giftcard"
	paymentRepo "github.com/BreezDev/kimq/internal/infra/storage/payment"
	scheduleRepo "github.com/BreezDev/kimq/internal/infra/storage/schedule"
	staffRepo "github.com/BreezDev/kimq/internal/infra/storage/staff"
	notifyClient "github.com/BreezDev/kimq/internal/integrations/notify"
	paymentsClient "github.com/BreezDev/kimq/internal/integrations/payments"
	appointmentsService "github.com/BreezDev/kimq/internal/service/appointments"
	availabilityService "github.com/BreezDev/kimq/internal/service/availability"
	billingService "github.com/BreezDev/kimq/internal/service/billing"
	catalogService "github.com/BreezDev/kimq/internal/service/catalog"
	giftcardsService "github.com/BreezDev/kimq/internal/service/giftcards"
	scheduleService "github.com/BreezDev/kimq/internal/service/schedule"
	createAppointmentUC "github.com/BreezDev/kimq/internal/usecase/create_appointment"
	getAvailableSlotsUC "github.com/BreezDev/kimq/internal/usecase/get_available_slots"
	updateAppointmentUC "github.com/BreezDev/kimq/internal/usecase/update_appointment"
	"github.com/BreezDev/kimq/pkg/dbmetrics"
	"github.com/BreezDev/kimq/pkg/logger"
	"github.com/BreezDev/kimq/pkg/metrics"
	"github.com/BreezDev/kimq/pkg/simpletxmanager"
	"github.com/BreezDev/kimq/pkg/txmanager"
)

func main() {
	// Секреты (Stripe, SendGrid, Twilio) берутся из окружения; .env опционален
	_ = godotenv.Load()

	// Загружаем конфигурацию
	cfg, err := config.Load("config.toml")
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Инициализируем логгер
	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting kimq booking service...")
	log.Info("Configuration loaded from config.toml")

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	var wrappedDB *dbmetrics.DB
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Подключаемся к базе данных
	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Настраиваем connection pool
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	// Проверяем соединение
	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	// Инициализируем интеграционных клиентов
	payments := paymentsClient.NewClient(os.Getenv("STRIPE_SECRET_KEY"), log)
	notify := notifyClient.NewClient(notifyClient.Config{
		SendGridAPIKey:   os.Getenv("SENDGRID_API_KEY"),
		FromEmail:        cfg.Studio.ContactEmail,
		FromName:         cfg.Studio.Name,
		TwilioAccountSID: os.Getenv("TWILIO_ACCOUNT_SID"),
		TwilioAuthToken:  os.Getenv("TWILIO_AUTH_TOKEN"),
		TwilioFromNumber: os.Getenv("TWILIO_FROM_NUMBER"),
	}, log)

	// Инициализируем репозитории (с метриками или без)
	var (
		appointmentRepository *appointmentRepo.Repository
		catalogRepository     *catalogRepo.Repository
		clientRepository      *clientRepo.Repository
		giftcardRepository    *giftcardRepo.Repository
		paymentRepository     *paymentRepo.Repository
		scheduleRepository    *scheduleRepo.Repository
		staffRepository       *staffRepo.Repository
	)

	// Интерфейс для transaction manager (используется в сервисах и usecases)
	type TxManager interface {
		Do(ctx context.Context, fn func(ctx context.Context) error) error
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		appointmentRepository = appointmentRepo.NewRepository(wrappedDB)
		catalogRepository = catalogRepo.NewRepository(wrappedDB)
		clientRepository = clientRepo.NewRepository(wrappedDB)
		giftcardRepository = giftcardRepo.NewRepository(wrappedDB)
		paymentRepository = paymentRepo.NewRepository(wrappedDB)
		scheduleRepository = scheduleRepo.NewRepository(wrappedDB)
		staffRepository = staffRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		appointmentRepository = appointmentRepo.NewRepository(db)
		catalogRepository = catalogRepo.NewRepository(db)
		clientRepository = clientRepo.NewRepository(db)
		giftcardRepository = giftcardRepo.NewRepository(db)
		paymentRepository = paymentRepo.NewRepository(db)
		scheduleRepository = scheduleRepo.NewRepository(db)
		staffRepository = staffRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	appointmentDuration := time.Duration(cfg.Studio.AppointmentDurationMinutes) * time.Minute

	// Инициализируем движок доступности и сервисы
	engine := availabilityService.NewEngine(scheduleRepository, appointmentRepository, log)

	appointmentsSvc := appointmentsService.NewService(appointmentRepository, notify, log)
	catalogSvc := catalogService.NewService(catalogRepository, log)
	scheduleSvc := scheduleService.NewService(scheduleRepository, staffRepository, log)
	giftcardsSvc := giftcardsService.NewService(
		giftcardRepository,
		paymentRepository,
		payments,
		notify,
		txMgr,
		log,
	)
	billingSvc := billingService.NewService(paymentRepository, appointmentRepository, log)

	// Инициализируем use cases
	createAppointmentUseCase := createAppointmentUC.NewUseCase(
		appointmentRepository,
		catalogRepository,
		clientRepository,
		staffRepository,
		paymentRepository,
		engine,
		payments,
		notify,
		txMgr,
		appointmentDuration,
		log,
	)

	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		engine,
		staffRepository,
		appointmentDuration,
		log,
	)

	updateAppointmentUseCase := updateAppointmentUC.NewUseCase(
		appointmentRepository,
		engine,
		txMgr,
		appointmentDuration,
		log,
	)

	// Инициализируем handlers
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	createAppointment := createAppointmentHandler.NewHandler(createAppointmentUseCase, log)
	getAppointment := getAppointmentHandler.NewHandler(appointmentsSvc, log)
	updateAppointment := updateAppointmentHandler.NewHandler(updateAppointmentUseCase, log)
	cancelAppointment := cancelAppointmentHandler.NewHandler(appointmentsSvc, log)
	getStaffAppointments := getStaffAppointmentsHandler.NewHandler(appointmentsSvc, log)
	createAvailability := createAvailabilityHandler.NewHandler(scheduleSvc, log)
	deleteAvailability := deleteAvailabilityHandler.NewHandler(scheduleSvc, log)
	createTimeOff := createTimeOffHandler.NewHandler(scheduleSvc, log)
	listServices := listServicesHandler.NewHandler(catalogSvc, log)
	purchaseGiftCard := purchaseGiftCardHandler.NewHandler(giftcardsSvc, log)
	getGiftCard := getGiftCardHandler.NewHandler(giftcardsSvc, log)
	getBilling := getBillingHandler.NewHandler(billingSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.RequestID)

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		log.Info("HTTP metrics middleware enabled")
	}

	// Metrics endpoint (публичный, без аутентификации)
	if cfg.Metrics.Enabled {
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Свободные слоты на дату (по мастеру или по всем)
	api.HandleFunc("/availability", getAvailableSlots.Handle).Methods(http.MethodGet)

	// Создание записи клиентом
	api.HandleFunc("/appointments", createAppointment.Handle).Methods(http.MethodPost)

	// Получение записи по ID
	api.HandleFunc("/appointments/{appointmentId}", getAppointment.Handle).Methods(http.MethodGet)

	// Каталог услуг студии
	api.HandleFunc("/services", listServices.Handle).Methods(http.MethodGet)

	// Покупка подарочной карты
	api.HandleFunc("/gift-cards", purchaseGiftCard.Handle).Methods(http.MethodPost)

	// Остаток подарочной карты по коду
	api.HandleFunc("/gift-cards/{code}", getGiftCard.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Записи (для персонала) ---
	// Перенос записи / смена статуса
	protected.HandleFunc("/appointments/{appointmentId}", updateAppointment.Handle).Methods(http.MethodPatch)

	// Отмена записи
	protected.HandleFunc("/appointments/{appointmentId}/cancel", cancelAppointment.Handle).Methods(http.MethodPost)

	// Предстоящие записи мастера
	protected.HandleFunc("/staff/{employeeId}/appointments", getStaffAppointments.Handle).Methods(http.MethodGet)

	// --- Управление расписанием ---
	// Добавление блока регулярной доступности
	protected.HandleFunc("/schedule/availability", createAvailability.Handle).Methods(http.MethodPost)

	// Удаление блока регулярной доступности
	protected.HandleFunc("/schedule/availability/{availabilityId}", deleteAvailability.Handle).Methods(http.MethodDelete)

	// Добавление периода отсутствия
	protected.HandleFunc("/schedule/time-off", createTimeOff.Handle).Methods(http.MethodPost)

	// --- Биллинг ---
	// Выписка клиента: платежи и история записей
	protected.HandleFunc("/billing", getBilling.Handle).Methods(http.MethodGet)

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start: %v", err)
		}
	}()

	// Ожидаем сигнал завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	// Останавливаем сбор метрик connection pool
	if cfg.Metrics.Enabled {
		close(stopMetricsCh)
		log.Info("Metrics collection stopped")
	}

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	log.Info("Server stopped gracefully")
}
