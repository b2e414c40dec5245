package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"CareBridge/Controllers"
	"CareBridge/CronJobs"
	"CareBridge/FiberConfig"
	"CareBridge/email"
	"CareBridge/middleware"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API and the flag digest",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()
			return serve(ctx, svc)
		},
	}
}

func serve(ctx context.Context, svc *service) error {
	logger := svc.logger

	validator, err := Controllers.NewValidator()
	if err != nil {
		return err
	}

	logCfg := middleware.DefaultLogConfig()
	logCfg.LogFilePath = svc.cfg.LogFile
	requestLog, err := middleware.NewRequestLogger(logger, logCfg)
	if err != nil {
		return err
	}
	defer requestLog.Close()

	digest := CronJobs.NewFlagDigest(svc.engine, notifier(svc), svc.cfg.DigestSchedule, svc.cfg.Location, logger.Named("digest"))
	if err := digest.Start(); err != nil {
		return err
	}
	defer digest.Stop()

	app := FiberConfig.New(FiberConfig.Handlers{
		Tasks:     Controllers.NewTaskController(svc.engine, validator, logger),
		Reports:   Controllers.NewReportController(svc.engine, validator, logger),
		Directory: Controllers.NewDirectoryController(svc.engine, logger),
		Logs:      Controllers.NewLogController(logCfg.LogFilePath, svc.cfg.Location, logger),
	}, requestLog)

	errc := make(chan error, 1)
	go func() {
		logger.Info("server up", zap.String("port", svc.cfg.Port))
		errc <- app.Listen(":" + svc.cfg.Port)
	}()

	select {
	case err := <-errc:
		return fmt.Errorf("listen: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	return app.Shutdown()
}

// notifier mails the digest when SMTP and recipients are configured and
// logs it otherwise.
func notifier(svc *service) CronJobs.Notifier {
	if svc.cfg.SMTP.Configured() && len(svc.cfg.DigestTo) > 0 {
		return email.DigestNotifier{Config: svc.cfg.SMTP, To: svc.cfg.DigestTo}
	}
	svc.logger.Info("SMTP not configured, flag digest goes to the log")
	return CronJobs.LogNotifier{Logger: svc.logger.Named("digest")}
}
