package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"time"

	"github.com/spf13/cobra"

	"github.com/afoley587/coding-challenges-2025/user-records/internal/client"
	"github.com/afoley587/coding-challenges-2025/user-records/internal/user"
)

var (
	// server address
	clientServerAddr string

	// add/get/by-role fields
	newID    int64
	newName  string
	newEmail string
	newRole  string
	userId   int64
	roleName string

	// TLS flags
	insecure      bool
	tlsCA         string
	tlsClientCert string
	tlsClientKey  string

	requestTimeout time.Duration
)

// Build DialConfig from CLI flags
func getDialConfig() client.DialConfig {
	return client.DialConfig{
		Address:    clientServerAddr,
		Insecure:   insecure,
		RootCA:     tlsCA,
		ClientCert: tlsClientCert,
		ClientKey:  tlsClientKey,
	}
}

// Wrapper to build a high-level client
func getClient() (*client.GRPCClient, error) {
	cfg := getDialConfig()
	return client.NewClient(cfg)
}

// withClient dials, runs fn under the request timeout and closes the
// connection.
func withClient(cmd *cobra.Command, fn func(ctx context.Context, c *client.GRPCClient) error) error {
	c, err := getClient()
	if err != nil {
		return err
	}
	defer c.Close()
	ctx, cancel := context.WithTimeout(cmd.Context(), requestTimeout)
	defer cancel()
	return fn(ctx, c)
}

func printUsers(w io.Writer, users []user.User) {
	for _, u := range users {
		fmt.Fprintf(w, "%d\t%s\t%s\n", u.ID, u.DisplayName(), u.Role)
	}
}

// Root client command
var clientCmd = &cobra.Command{
	Use:   "client",
	Short: "Interact with the gRPC server",
	Long:  "Commands for adding, retrieving, listing and filtering users via the gRPC client.",
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all users in insertion order",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withClient(cmd, func(ctx context.Context, c *client.GRPCClient) error {
			log.Printf("Listing users from %s", clientServerAddr)
			users, err := c.ListUsers(ctx)
			if err != nil {
				return err
			}
			printUsers(cmd.OutOrStdout(), users)
			return nil
		})
	},
}

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a user",
	RunE: func(cmd *cobra.Command, args []string) error {
		if !cmd.Flags().Changed("id") {
			return errors.New("--id must be specified")
		}
		role, err := user.ParseRole(newRole)
		if err != nil {
			return err
		}
		u := user.User{ID: newID, Name: newName, Email: newEmail, Role: role}

		return withClient(cmd, func(ctx context.Context, c *client.GRPCClient) error {
			added, err := c.AddUser(ctx, u)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added user: %s (%s)\n", added.DisplayName(), added.Role)
			return nil
		})
	},
}

var getCmd = &cobra.Command{
	Use:   "get",
	Short: "Get a user by ID",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withClient(cmd, func(ctx context.Context, c *client.GRPCClient) error {
			u, ok, err := c.GetUser(ctx, userId)
			if err != nil {
				return err
			}
			if !ok {
				fmt.Fprintln(cmd.OutOrStdout(), "User not found")
				return nil
			}
			printUsers(cmd.OutOrStdout(), []user.User{u})
			return nil
		})
	},
}

var byRoleCmd = &cobra.Command{
	Use:   "by-role",
	Short: "List users holding a role",
	RunE: func(cmd *cobra.Command, args []string) error {
		if roleName == "" {
			return errors.New("--role must be specified")
		}
		role, err := user.ParseRole(roleName)
		if err != nil {
			return err
		}
		return withClient(cmd, func(ctx context.Context, c *client.GRPCClient) error {
			users, err := c.ListUsersByRole(ctx, role)
			if err != nil {
				return err
			}
			printUsers(cmd.OutOrStdout(), users)
			return nil
		})
	},
}

func init() {

	clientCmd.PersistentFlags().StringVarP(&clientServerAddr,
		"addr", "a", "127.0.0.1:9090", "Server address")

	clientCmd.PersistentFlags().BoolVar(
		&insecure, "insecure", false, "Use insecure gRPC (no TLS)")

	clientCmd.PersistentFlags().StringVar(
		&tlsCA, "tls-ca", "", "Path to root CA certificate")

	clientCmd.PersistentFlags().StringVar(
		&tlsClientCert, "tls-cert", "", "Path to client certificate for mTLS")

	clientCmd.PersistentFlags().StringVar(
		&tlsClientKey, "tls-key", "", "Path to client private key for mTLS")

	clientCmd.PersistentFlags().DurationVar(
		&requestTimeout, "timeout", 10*time.Second, "Per-command request timeout")

	addCmd.Flags().Int64VarP(&newID, "id", "i", 0, "ID of the user (need not be unique)")

	addCmd.Flags().StringVarP(&newName, "name", "n", "", "Name of the user")

	addCmd.Flags().StringVarP(&newEmail, "email", "e", "", "Email of the user")

	addCmd.Flags().StringVarP(&newRole, "role", "r", "user", "Role of the user: admin, user or guest")

	getCmd.Flags().Int64VarP(&userId, "id", "i", 0, "ID of the user to retrieve")

	byRoleCmd.Flags().StringVarP(&roleName, "role", "r", "", "Role to filter by: admin, user or guest")

	clientCmd.AddCommand(listCmd, addCmd, getCmd, byRoleCmd)
	rootCmd.AddCommand(clientCmd)
}
