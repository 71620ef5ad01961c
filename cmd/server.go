package cmd

import (
	"context"
	"fmt"
	"log"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"google.golang.org/grpc"

	"github.com/afoley587/coding-challenges-2025/user-records/internal/config"
	"github.com/afoley587/coding-challenges-2025/user-records/internal/httpapi"
	"github.com/afoley587/coding-challenges-2025/user-records/internal/server"
	"github.com/afoley587/coding-challenges-2025/user-records/internal/store"
)

var (
	// server network config
	listenAddr string
	httpAddr   string

	// store config
	backend       string
	redisAddr     string
	redisPassword string
	sqlitePath    string

	// TLS/mTLS flags
	enableMTLS     bool
	serverCertFile string
	serverKeyFile  string
	serverCAFile   string
)

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Run the gRPC server",
	Long:  "Commands related to running the gRPC server and HTTP gateway.",
}

var runServerCmd = &cobra.Command{
	Use:   "run",
	Short: "Start the gRPC server",
	RunE: func(cmd *cobra.Command, args []string) error {
		applyServerFlags(cmd, cfg)
		if err := cfg.Validate(); err != nil {
			return err
		}
		if enableMTLS && !cfg.GRPC.TLS.Enabled() {
			return fmt.Errorf("mtls mode requires --cert, --key, and --ca")
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		st, err := store.Open(ctx, cfg.Store)
		if err != nil {
			return fmt.Errorf("%s store failed: %w", cfg.Store.Backend, err)
		}
		defer st.Close()
		log.Printf("Using %s store", cfg.Store.Backend)

		return serve(ctx, cfg, st)
	},
}

// applyServerFlags copies explicitly set flags over the loaded config.
func applyServerFlags(cmd *cobra.Command, c *config.Config) {
	f := cmd.Flags()
	if f.Changed("addr") {
		c.GRPC.Addr = listenAddr
	}
	if f.Changed("http-addr") {
		c.HTTP.Addr = httpAddr
	}
	if f.Changed("backend") {
		c.Store.Backend = backend
	}
	if f.Changed("redis-address") {
		c.Store.Redis.Addr = redisAddr
	}
	if f.Changed("redis-password") {
		c.Store.Redis.Password = redisPassword
	}
	if f.Changed("sqlite-path") {
		c.Store.SQLite.Path = sqlitePath
	}
	if f.Changed("cert") {
		c.GRPC.TLS.Cert = serverCertFile
	}
	if f.Changed("key") {
		c.GRPC.TLS.Key = serverKeyFile
	}
	if f.Changed("ca") {
		c.GRPC.TLS.CA = serverCAFile
	}
}

// serve runs the gRPC server, and the HTTP gateway when configured,
// until ctx is cancelled or either listener fails.
func serve(ctx context.Context, c *config.Config, st store.UserStore) error {
	var opts []grpc.ServerOption
	if c.GRPC.TLS.Enabled() {
		creds, err := server.ServerCredentials(c.GRPC.TLS.Cert, c.GRPC.TLS.Key, c.GRPC.TLS.CA)
		if err != nil {
			return err
		}
		opts = append(opts, grpc.Creds(creds))
	}

	lis, err := net.Listen("tcp", c.GRPC.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", c.GRPC.Addr, err)
	}
	grpcServer := server.New(st, opts...)

	errCh := make(chan error, 2)
	go func() {
		if c.GRPC.TLS.Enabled() {
			log.Printf("Starting gRPC server with mTLS on %s", c.GRPC.Addr)
		} else {
			log.Printf("Starting insecure gRPC server on %s", c.GRPC.Addr)
		}
		errCh <- grpcServer.Serve(lis)
	}()

	var gw *httpapi.Gateway
	if c.HTTP.Addr != "" {
		gw = httpapi.NewGateway(c.HTTP.Addr, st, c.HTTP.AllowedOrigins)
		go func() {
			log.Printf("Starting HTTP gateway on %s", c.HTTP.Addr)
			errCh <- gw.ListenAndServe()
		}()
	}

	select {
	case <-ctx.Done():
		log.Println("Shutdown signal received, stopping servers...")
	case err = <-errCh:
		if err != nil {
			log.Printf("Server stopped: %v", err)
		}
	}

	if gw != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if serr := gw.Shutdown(shutdownCtx); serr != nil {
			log.Printf("Error during gateway shutdown: %v", serr)
		}
	}
	grpcServer.GracefulStop()
	return err
}

func init() {

	runServerCmd.Flags().StringVarP(&listenAddr,
		"addr", "a", "0.0.0.0:9090", "Address to listen on")

	runServerCmd.Flags().StringVar(&httpAddr,
		"http-addr", "", "Address for the HTTP gateway (empty disables it)")

	runServerCmd.Flags().StringVarP(&backend,
		"backend", "b", config.BackendMemory, "Store backend: memory, redis or sqlite")

	runServerCmd.Flags().StringVarP(&redisAddr,
		"redis-address", "r", "127.0.0.1:6379", "Redis address")

	runServerCmd.Flags().StringVarP(&redisPassword,
		"redis-password", "p", "", "Redis password")

	runServerCmd.Flags().StringVar(&sqlitePath,
		"sqlite-path", "users.db", "SQLite database path")

	runServerCmd.Flags().BoolVar(&enableMTLS,
		"mtls", false, "Enable mutual TLS (requires --cert, --key, --ca)")

	runServerCmd.Flags().StringVar(&serverCertFile,
		"cert", "", "Path to server certificate (PEM)")

	runServerCmd.Flags().StringVar(&serverKeyFile,
		"key", "", "Path to server private key (PEM)")

	runServerCmd.Flags().StringVar(&serverCAFile,
		"ca", "", "Path to CA certificate for verifying client certificates (PEM)")

	serverCmd.AddCommand(runServerCmd)
	rootCmd.AddCommand(serverCmd)
}
