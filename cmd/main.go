package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"

	"github.com/garajdev/garage-api/internal/auth"
	"github.com/garajdev/garage-api/internal/cache"
	"github.com/garajdev/garage-api/internal/config"
	"github.com/garajdev/garage-api/internal/db"
	"github.com/garajdev/garage-api/internal/handlers"
	"github.com/garajdev/garage-api/internal/middleware"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	if level, err := log.ParseLevel(cfg.LogLevel); err == nil {
		log.SetLevel(level)
	}
	log.SetFormatter(&log.JSONFormatter{})

	client, err := db.ConnectMongo(cfg.MongoURI)
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	database := client.Database(cfg.MongoDB)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := db.EnsureIndexes(ctx, database); err != nil {
		log.Fatalf("Failed to create indexes: %v", err)
	}

	users := &db.MongoUserCollection{Collection: database.Collection("users")}
	vehicles := &db.MongoVehicleCollection{Collection: database.Collection("customer_vehicles")}
	parts := &db.MongoPartCollection{Collection: database.Collection("parts")}
	suppliers := &db.MongoSupplierCollection{Collection: database.Collection("suppliers")}
	purchases := &db.MongoPurchaseCollection{Collection: database.Collection("purchases")}
	repairs := &db.MongoRepairCollection{Collection: database.Collection("repairs")}
	expenses := &db.MongoExpenseCollection{Collection: database.Collection("expenses")}

	authService := auth.NewService(cfg.JWTSecret, cfg.JWTExpire, cfg.BcryptCost)
	shared := cache.New(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if shared != nil {
		log.WithField("addr", cfg.RedisAddr).Info("shared revocation store enabled")
	}
	revocations := auth.NewRevocationRegistry(authService, shared)
	revocations.StartSweeper(ctx)

	guard := middleware.NewAuthMiddleware(authService, revocations, users)

	// Separate limiter instances so login attempts are budgeted
	// independently of general API traffic.
	apiLimiter := middleware.NewRateLimitMiddleware()
	loginLimiter := middleware.NewRateLimitMiddleware()

	authHandler := handlers.NewAuthHandler(authService, revocations, users)
	userHandler := handlers.NewUserHandler(authService, users)
	vehicleHandler := handlers.NewVehicleHandler(vehicles, repairs)
	partHandler := handlers.NewPartHandler(parts)
	supplierHandler := handlers.NewSupplierHandler(suppliers)
	purchaseHandler := handlers.NewPurchaseHandler(purchases, suppliers, parts)
	repairHandler := handlers.NewRepairHandler(repairs, vehicles, parts)
	expenseHandler := handlers.NewExpenseHandler(expenses)
	analysisHandler := handlers.NewAnalysisHandler(purchases, repairs, expenses)

	anyAuth := func(h http.HandlerFunc) http.Handler {
		return guard.Protect(h)
	}
	adminOnly := func(h http.HandlerFunc) http.Handler {
		return guard.Protect(guard.AdminOnly(h))
	}

	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"success":true,"message":"Server is running"}`))
	})

	authLimiter := loginLimiter.Limit(cfg.AuthRateLimit, cfg.RateLimitWindow)
	mux.Handle("POST /api/auth/login", authLimiter(http.HandlerFunc(authHandler.Login)))
	mux.Handle("GET /api/auth/me", anyAuth(authHandler.Me))
	mux.Handle("POST /api/auth/logout", anyAuth(authHandler.Logout))

	mux.Handle("GET /api/users", adminOnly(userHandler.List))
	mux.Handle("POST /api/users", adminOnly(userHandler.Create))
	mux.Handle("PUT /api/users/{id}", adminOnly(userHandler.Update))
	mux.Handle("DELETE /api/users/{id}", adminOnly(userHandler.Delete))

	mux.Handle("GET /api/suppliers", anyAuth(supplierHandler.List))
	mux.Handle("POST /api/suppliers", adminOnly(supplierHandler.Create))
	mux.Handle("PUT /api/suppliers/{id}", adminOnly(supplierHandler.Update))
	mux.Handle("DELETE /api/suppliers/{id}", adminOnly(supplierHandler.Delete))

	mux.Handle("GET /api/parts", anyAuth(partHandler.List))
	mux.Handle("POST /api/parts", adminOnly(partHandler.Create))

	mux.Handle("GET /api/purchases", anyAuth(purchaseHandler.List))
	mux.Handle("POST /api/purchases", anyAuth(purchaseHandler.Create))
	mux.Handle("PUT /api/purchases/{id}", anyAuth(purchaseHandler.Update))
	mux.Handle("DELETE /api/purchases/{id}", adminOnly(purchaseHandler.Delete))

	mux.Handle("GET /api/repairs", adminOnly(repairHandler.List))
	mux.Handle("GET /api/repairs/{id}", adminOnly(repairHandler.Get))
	mux.Handle("POST /api/repairs", adminOnly(repairHandler.Create))
	mux.Handle("PUT /api/repairs/{id}", adminOnly(repairHandler.Update))
	mux.Handle("PATCH /api/repairs/{id}/payment", adminOnly(repairHandler.MarkPayment))
	mux.Handle("DELETE /api/repairs/{id}", adminOnly(repairHandler.Delete))

	mux.Handle("GET /api/customerVehicles", anyAuth(vehicleHandler.List))
	mux.HandleFunc("GET /api/customerVehicles/public/{qrCode}", vehicleHandler.PublicHistory)
	mux.Handle("GET /api/customerVehicles/{id}", anyAuth(vehicleHandler.Get))
	mux.Handle("GET /api/customerVehicles/{id}/history", anyAuth(vehicleHandler.History))
	mux.Handle("GET /api/customerVehicles/{id}/qr", anyAuth(vehicleHandler.QR))
	mux.Handle("POST /api/customerVehicles", anyAuth(vehicleHandler.Create))
	mux.Handle("PUT /api/customerVehicles/{id}", adminOnly(vehicleHandler.Update))
	mux.Handle("DELETE /api/customerVehicles/{id}", adminOnly(vehicleHandler.Delete))

	mux.Handle("GET /api/expenses", adminOnly(expenseHandler.List))
	mux.Handle("POST /api/expenses", adminOnly(expenseHandler.Create))
	mux.Handle("PUT /api/expenses/{id}", adminOnly(expenseHandler.Update))
	mux.Handle("DELETE /api/expenses/{id}", adminOnly(expenseHandler.Delete))

	mux.Handle("GET /api/analysis", adminOnly(analysisHandler.Report))

	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"success":false,"message":"Route not found"}`))
	})

	var handler http.Handler = mux
	handler = apiLimiter.Limit(cfg.RateLimitMax, cfg.RateLimitWindow)(handler)
	handler = middleware.CORS(cfg.AllowedOrigins)(handler)
	handler = middleware.RequestLogger(handler)
	handler = middleware.Recovery(cfg.IsDevelopment())(handler)

	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: handler,
	}

	go func() {
		log.WithFields(log.Fields{"port": cfg.Port, "env": cfg.AppEnv}).Info("HTTP server listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("HTTP server error: %v", err)
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("server shutdown failed")
	}
	if err := client.Disconnect(shutdownCtx); err != nil {
		log.WithError(err).Error("mongo disconnect failed")
	}
	if err := shared.Close(); err != nil {
		log.WithError(err).Error("redis close failed")
	}
	os.Exit(0)
}
