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
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	cancelReservationHandler "github.com/barberio/scheduling-service/internal/api/handlers/cancel_reservation"
	createReservationHandler "github.com/barberio/scheduling-service/internal/api/handlers/create_reservation"
	getBusinessReservationsHandler "github.com/barberio/scheduling-service/internal/api/handlers/get_business_reservations"
	getClientReservationsHandler "github.com/barberio/scheduling-service/internal/api/handlers/get_client_reservations"
	getEmployeeAvailabilityHandler "github.com/barberio/scheduling-service/internal/api/handlers/get_employee_availability"
	getReservationHandler "github.com/barberio/scheduling-service/internal/api/handlers/get_reservation"
	listOpenSlotsHandler "github.com/barberio/scheduling-service/internal/api/handlers/list_open_slots"
	rescheduleReservationHandler "github.com/barberio/scheduling-service/internal/api/handlers/reschedule_reservation"
	"github.com/barberio/scheduling-service/internal/api/middleware"
	"github.com/barberio/scheduling-service/internal/config"
	businessRepo "github.com/barberio/scheduling-service/internal/infra/storage/business"
	employeeRepo "github.com/barberio/scheduling-service/internal/infra/storage/employee"
	reservationRepo "github.com/barberio/scheduling-service/internal/infra/storage/reservation"
	servicecatalogRepo "github.com/barberio/scheduling-service/internal/infra/storage/servicecatalog"
	clientServiceClient "github.com/barberio/scheduling-service/internal/integrations/clientservice"
	availabilityService "github.com/barberio/scheduling-service/internal/service/availability"
	conflictsService "github.com/barberio/scheduling-service/internal/service/conflicts"
	reservationsService "github.com/barberio/scheduling-service/internal/service/reservations"
	createReservationUC "github.com/barberio/scheduling-service/internal/usecase/create_reservation"
	listOpenSlotsUC "github.com/barberio/scheduling-service/internal/usecase/list_open_slots"
	rescheduleReservationUC "github.com/barberio/scheduling-service/internal/usecase/reschedule_reservation"
	"github.com/barberio/scheduling-service/pkg/dbmetrics"
	"github.com/barberio/scheduling-service/pkg/logger"
	"github.com/barberio/scheduling-service/pkg/metrics"
	"github.com/barberio/scheduling-service/pkg/simpletxmanager"
	"github.com/barberio/scheduling-service/pkg/txmanager"
)

func main() {
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

	log.Info("Starting scheduling-service...")
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

	// Инициализируем клиент сервиса клиентских профилей
	clientClient := clientServiceClient.NewClient(
		cfg.ClientService.URL,
		time.Duration(cfg.ClientService.Timeout)*time.Second,
		log,
	)
	log.Info("Integration client initialized (ClientService=%s timeout=%ds)",
		cfg.ClientService.URL, cfg.ClientService.Timeout)

	// Инициализируем репозитории (с метриками или без)
	var (
		reservationRepository    *reservationRepo.Repository
		businessRepository       *businessRepo.Repository
		employeeRepository       *employeeRepo.Repository
		servicecatalogRepository *servicecatalogRepo.Repository
	)

	// Интерфейс для transaction manager (используется в usecases)
	type TxManager interface {
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		reservationRepository = reservationRepo.NewRepository(wrappedDB)
		businessRepository = businessRepo.NewRepository(wrappedDB)
		employeeRepository = employeeRepo.NewRepository(wrappedDB)
		servicecatalogRepository = servicecatalogRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		reservationRepository = reservationRepo.NewRepository(db)
		businessRepository = businessRepo.NewRepository(db)
		employeeRepository = employeeRepo.NewRepository(db)
		servicecatalogRepository = servicecatalogRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем доменные сервисы
	resolver := availabilityService.NewResolver(businessRepository, employeeRepository, log)
	detector := conflictsService.NewDetector(reservationRepository, log)
	reservationSvc := reservationsService.NewService(reservationRepository, log)

	// Инициализируем use cases
	createReservationUseCase := createReservationUC.NewUseCase(
		reservationRepository,
		businessRepository,
		employeeRepository,
		servicecatalogRepository,
		clientClient,
		resolver,
		detector,
		txMgr,
		log,
	)

	rescheduleReservationUseCase := rescheduleReservationUC.NewUseCase(
		reservationRepository,
		businessRepository,
		employeeRepository,
		resolver,
		detector,
		txMgr,
		log,
	)

	listOpenSlotsUseCase := listOpenSlotsUC.NewUseCase(
		businessRepository,
		employeeRepository,
		servicecatalogRepository,
		resolver,
		detector,
		log,
	)

	// Инициализируем handlers
	createReservation := createReservationHandler.NewHandler(createReservationUseCase, log)
	rescheduleReservation := rescheduleReservationHandler.NewHandler(rescheduleReservationUseCase, log)
	listOpenSlots := listOpenSlotsHandler.NewHandler(listOpenSlotsUseCase, log)
	getReservation := getReservationHandler.NewHandler(reservationSvc, log)
	cancelReservation := cancelReservationHandler.NewHandler(reservationSvc, log)
	getClientReservations := getClientReservationsHandler.NewHandler(reservationSvc, log)
	getBusinessReservations := getBusinessReservationsHandler.NewHandler(reservationSvc, log)
	getEmployeeAvailability := getEmployeeAvailabilityHandler.NewHandler(resolver, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector, cfg.Metrics.ServiceName))
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

	// Окна доступности сотрудника на дату
	api.HandleFunc("/employees/{employeeId}/availability",
		getEmployeeAvailability.Handle).Methods(http.MethodGet)

	// Свободные слоты сотрудника под услугу
	api.HandleFunc("/businesses/{businessId}/employees/{employeeId}/open-slots",
		listOpenSlots.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-Client-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Бронирования ---
	// Создание бронирования
	protected.HandleFunc("/reservations", createReservation.Handle).Methods(http.MethodPost)

	// Получение бронирования по ID
	protected.HandleFunc("/reservations/{reservationId}", getReservation.Handle).Methods(http.MethodGet)

	// Отмена бронирования
	protected.HandleFunc("/reservations/{reservationId}/cancel", cancelReservation.Handle).Methods(http.MethodPatch)

	// Перенос бронирования
	protected.HandleFunc("/reservations/{reservationId}/reschedule", rescheduleReservation.Handle).Methods(http.MethodPatch)

	// История бронирований клиента
	protected.HandleFunc("/clients/{clientId}/reservations", getClientReservations.Handle).Methods(http.MethodGet)

	// --- Панель бизнеса ---
	// Список бронирований бизнеса
	protected.HandleFunc("/businesses/{businessId}/reservations", getBusinessReservations.Handle).Methods(http.MethodGet)

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
