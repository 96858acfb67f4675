package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/ogurasousui/employee-directory/internal/adapters/http/handler"
	"github.com/ogurasousui/employee-directory/internal/adapters/repository/postgres"
	"github.com/ogurasousui/employee-directory/internal/core/department"
	"github.com/ogurasousui/employee-directory/internal/core/employee"
	"github.com/ogurasousui/employee-directory/internal/platform/config"
	pg "github.com/ogurasousui/employee-directory/internal/platform/db/postgres"
	"github.com/ogurasousui/employee-directory/internal/platform/logging"
	"github.com/ogurasousui/employee-directory/internal/platform/server"
)

func main() {
	if err := run(); err != nil {
		slog.Error("server stopped with error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "assets/local.yaml"
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		return err
	}

	logger := logging.New(cfg.Log, os.Stdout)
	slog.SetDefault(logger)

	dbPool, err := pg.NewPool(ctx, cfg.Database)
	if err != nil {
		return err
	}
	defer dbPool.Close()

	txManager := pg.NewTransactionManager(dbPool)

	departmentRepo := postgres.NewDepartmentRepository(dbPool)
	employeeRepo := postgres.NewEmployeeRepository(dbPool)

	departmentSvc := department.NewService(departmentRepo, txManager)
	employeeSvc := employee.NewService(employeeRepo, departmentRepo, txManager)

	router := handler.NewRouter(
		handler.NewEmployeeHTTPHandler(employeeSvc, logger),
		handler.NewDepartmentHTTPHandler(departmentSvc, logger),
		logger,
	)

	srv := server.New(cfg.Server.HTTPAddr, cfg.Server.HealthAddr, cfg.Server.ShutdownTimeout, router, logger)
	return srv.Run(ctx)
}
