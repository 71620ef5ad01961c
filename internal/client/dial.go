package client

import (
	"crypto/tls"
	"crypto/x509"
	"fmt"
	"os"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials"
	"google.golang.org/grpc/credentials/insecure"
)

// dial opens a client connection.  Without Insecure the system roots
// are used unless RootCA names a PEM bundle; ClientCert and ClientKey
// together enable mTLS.
func dial(cfg DialConfig) (*grpc.ClientConn, error) {
	creds, err := transportCredentials(cfg)
	if err != nil {
		return nil, err
	}
	return grpc.NewClient(cfg.Address, grpc.WithTransportCredentials(creds))
}

func transportCredentials(cfg DialConfig) (credentials.TransportCredentials, error) {
	if cfg.Insecure {
		return insecure.NewCredentials(), nil
	}

	tlsCfg := &tls.Config{MinVersion: tls.VersionTLS12}

	if cfg.RootCA != "" {
		caPEM, err := os.ReadFile(cfg.RootCA)
		if err != nil {
			return nil, fmt.Errorf("read root CA %s: %w", cfg.RootCA, err)
		}
		pool := x509.NewCertPool()
		if !pool.AppendCertsFromPEM(caPEM) {
			return nil, fmt.Errorf("no certificates found in %s", cfg.RootCA)
		}
		tlsCfg.RootCAs = pool
	}

	switch {
	case cfg.ClientCert != "" && cfg.ClientKey != "":
		cert, err := tls.LoadX509KeyPair(cfg.ClientCert, cfg.ClientKey)
		if err != nil {
			return nil, fmt.Errorf("load client key pair: %w", err)
		}
		tlsCfg.Certificates = []tls.Certificate{cert}
	case cfg.ClientCert != "" || cfg.ClientKey != "":
		return nil, fmt.Errorf("mtls requires both a client cert and key")
	}

	return credentials.NewTLS(tlsCfg), nil
}
