package main

import (
	"context"
	"flag"
	"log"
	"os"
	"time"

	"unibordima/config"
	"unibordima/services"
	"unibordima/services/logger"
)

// Tạo tài khoản admin đầu tiên; chạy lại nhiều lần không tạo trùng
func main() {
	username := flag.String("username", "admin", "admin username")
	email := flag.String("email", "admin@unibordima.lk", "admin email")
	password := flag.String("password", os.Getenv("ADMIN_PASSWORD"), "admin password (or ADMIN_PASSWORD)")
	flag.Parse()

	if *password == "" {
		log.Fatal("password is required: pass -password or set ADMIN_PASSWORD")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	appLog := logger.New("createadmin", cfg.LogLevel)

	db, err := config.ConnectDB(cfg, appLog)
	if err != nil {
		log.Fatalf("Failed to connect db: %v", err)
	}
	if err := config.Migrate(db); err != nil {
		log.Fatalf("Failed to migrate: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	admins := services.NewAdminService(services.AdminServiceOptions{DB: db, Logger: appLog})
	admin, created, err := admins.EnsureAdmin(ctx, *username, *email, *password)
	if err != nil {
		log.Fatalf("Failed to create admin: %v", err)
	}

	if !created {
		appLog.Info("Admin already exists", "email", admin.Email)
		return
	}
	appLog.Info("Admin created successfully", "id", admin.ID, "email", admin.Email)
}
