package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lgu-hris/leave-backend-go/internal/config"
	appHTTP "github.com/lgu-hris/leave-backend-go/internal/handler/http"
	"github.com/lgu-hris/leave-backend-go/internal/pkg/database"
	"github.com/lgu-hris/leave-backend-go/internal/pkg/jwt"
	"github.com/lgu-hris/leave-backend-go/internal/pkg/oauth"
	"github.com/lgu-hris/leave-backend-go/internal/pkg/sse"
	"github.com/lgu-hris/leave-backend-go/internal/pkg/storage"
	"github.com/lgu-hris/leave-backend-go/internal/repository/postgresql"
	authService "github.com/lgu-hris/leave-backend-go/internal/service/auth"
	employeeService "github.com/lgu-hris/leave-backend-go/internal/service/employee"
	leaveService "github.com/lgu-hris/leave-backend-go/internal/service/leave"
	ledgerService "github.com/lgu-hris/leave-backend-go/internal/service/ledger"
	notificationService "github.com/lgu-hris/leave-backend-go/internal/service/notification"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}
	defer db.Close()

	employeeRepo := postgresql.NewEmployeeRepository(db)
	departmentRepo := postgresql.NewDepartmentRepository(db)
	leaveRequestRepo := postgresql.NewLeaveRequestRepository(db)
	recommendationRepo := postgresql.NewRecommendationRepository(db)
	approvalRepo := postgresql.NewApprovalRepository(db)
	leaveRecordRepo := postgresql.NewLeaveRecordRepository(db)
	notificationRepo := postgresql.NewNotificationRepository(db)
	jwtRepo := postgresql.NewJWTRepository(db)

	jwtService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration, cfg.JWT.RefreshExpiration)
	googleService := oauth.NewGoogleService(cfg.OAuth2Google.ClientID, cfg.OAuth2Google.ClientSecret, cfg.OAuth2Google.RedirectURL, cfg.OAuth2Google.Scopes)

	fileStorage, err := storage.NewLocalStorage(cfg.Storage.BasePath, cfg.Storage.BaseURL)
	if err != nil {
		log.Fatal("Failed to initialize local storage:", err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	hub := sse.NewHub()
	notifService := notificationService.NewNotificationService(
		notificationRepo,
		notificationService.NewSSEGateway(hub),
		logger,
	)
	defer notifService.Shutdown()

	ledgerSvc := ledgerService.NewLedgerService(leaveRecordRepo, db)
	requestSvc := leaveService.NewRequestService(leaveRequestRepo, recommendationRepo, approvalRepo, employeeRepo, ledgerSvc, notifService)
	decisionSvc := leaveService.NewDecisionService(db, leaveRequestRepo, recommendationRepo, approvalRepo, employeeRepo, ledgerSvc, notifService)
	authSvc := authService.NewAuthService(employeeRepo, jwtService, jwtRepo, googleService)
	employeeSvc := employeeService.NewEmployeeService(employeeRepo, departmentRepo, fileStorage)
	departmentSvc := employeeService.NewDepartmentService(departmentRepo)

	router := appHTTP.NewRouter(
		cfg,
		jwtService,
		appHTTP.NewAuthHandler(authSvc, jwtService),
		appHTTP.NewLeaveHandler(requestSvc, decisionSvc),
		appHTTP.NewLedgerHandler(ledgerSvc),
		appHTTP.NewEmployeeHandler(employeeSvc, departmentSvc),
		appHTTP.NewNotificationHandler(notifService, jwtService, hub),
	)

	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.App.Port),
		Handler: router,
	}

	go func() {
		logger.Info("server listening", slog.Int("port", cfg.App.Port))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server error:", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	// Drain in-flight requests before the deferred notification flush and
	// pool close run.
	logger.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Error("server shutdown", slog.Any("error", err))
	}
}
