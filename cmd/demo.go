package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/afoley587/coding-challenges-2025/user-records/internal/store"
	"github.com/afoley587/coding-challenges-2025/user-records/internal/user"
)

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Run the sample add/lookup/filter sequence against an in-memory store",
	RunE: func(cmd *cobra.Command, args []string) error {
		return RunDemo(cmd.Context(), cmd.OutOrStdout(), store.NewInMemoryStore())
	},
}

// RunDemo adds John Doe (admin) and Jane Smith (user) to s, prints the
// name of user 1 and then the number of admins.
func RunDemo(ctx context.Context, w io.Writer, s store.UserStore) error {
	seed := []user.User{
		{ID: 1, Name: "John Doe", Email: "john@example.com", Role: user.RoleAdmin},
		{ID: 2, Name: "Jane Smith", Email: "jane@example.com", Role: user.RoleUser},
	}
	for _, u := range seed {
		if _, err := s.AddUser(ctx, u); err != nil {
			return fmt.Errorf("add %s: %w", u.Name, err)
		}
	}

	admin, ok, err := s.GetUser(ctx, 1)
	if err != nil {
		return err
	}
	if ok {
		fmt.Fprintln(w, admin.Name)
	} else {
		fmt.Fprintln(w)
	}

	admins, err := s.ListUsersByRole(ctx, user.RoleAdmin)
	if err != nil {
		return err
	}
	fmt.Fprintln(w, "Admins:", len(admins))
	return nil
}

func init() {
	rootCmd.AddCommand(demoCmd)
}
