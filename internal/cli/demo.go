package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	domain "github.com/BruksfildServices01/client-registry/internal/domain/client"
	"github.com/BruksfildServices01/client-registry/internal/infra/repository"
	"github.com/BruksfildServices01/client-registry/internal/models"
)

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Run a create/update/delete walkthrough against the database",
	Long: `demo creates the schema, adds a client, edits its phones and
name, deletes it, and finally searches for it by email. It leaves the
table as it found it.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if memory, _ := cmd.Flags().GetBool("memory"); memory {
			return RunDemo(cmd.Context(), repository.NewClientMemoryRepository(), cmd.OutOrStdout())
		}

		s, err := openStore(cmd.Context())
		if err != nil {
			return err
		}
		defer s.close()

		return RunDemo(cmd.Context(), s.repo, cmd.OutOrStdout())
	},
}

func init() {
	demoCmd.Flags().Bool("memory", false, "run against an in-memory store instead of the database")
	rootCmd.AddCommand(demoCmd)
}

// RunDemo walks one client through every repository operation and
// prints each step.
func RunDemo(ctx context.Context, repo domain.Repository, w io.Writer) error {
	if err := repo.EnsureSchema(ctx); err != nil {
		return err
	}

	client, err := repo.AddClient(ctx, domain.NewClient{
		FirstName: models.Text("John"),
		LastName:  models.Text("Doe"),
		Email:     models.Text("john.doe@example.com"),
		Phones:    []string{"1234567890"},
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "added client %d\n", client.ID)

	if _, err := repo.AddPhone(ctx, client.ID, "9876543210"); err != nil {
		return err
	}
	fmt.Fprintln(w, "added phone 9876543210")

	if _, err := repo.UpdateClient(ctx, client.ID, domain.Patch{
		FirstName: domain.Some("Jane"),
		LastName:  domain.Some("Smith"),
	}); err != nil {
		return err
	}
	fmt.Fprintln(w, "renamed to Jane Smith")

	if _, err := repo.DeletePhone(ctx, client.ID, "1234567890"); err != nil {
		return err
	}
	fmt.Fprintln(w, "removed phone 1234567890")

	if _, err := repo.DeleteClient(ctx, client.ID); err != nil {
		return err
	}
	fmt.Fprintf(w, "deleted client %d\n", client.ID)

	found, err := repo.FindClients(ctx, domain.Filter{
		Email: domain.Some("jane.smith@example.com"),
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "clients with email jane.smith@example.com: %d\n", len(found))

	return nil
}
