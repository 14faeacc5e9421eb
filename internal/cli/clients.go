package cli

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	dbpkg "github.com/BruksfildServices01/client-registry/internal/db"
	domain "github.com/BruksfildServices01/client-registry/internal/domain/client"
	"github.com/BruksfildServices01/client-registry/internal/models"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create the clients and audit tables if they do not exist",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore(cmd.Context())
		if err != nil {
			return err
		}
		defer s.close()

		if err := dbpkg.Migrate(cmd.Context(), s.db); err != nil {
			return err
		}

		fmt.Fprintln(cmd.OutOrStdout(), "schema is up to date")
		return nil
	},
}

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a client",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		fs := cmd.Flags()
		phones, _ := fs.GetStringArray("phone")

		in := domain.NewClient{
			FirstName: textFlag(fs, "first-name"),
			LastName:  textFlag(fs, "last-name"),
			Email:     textFlag(fs, "email"),
			Phones:    phones,
		}

		s, err := openStore(cmd.Context())
		if err != nil {
			return err
		}
		defer s.close()

		client, err := s.clients.create.Execute(cmd.Context(), in)
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "client %d created\n", client.ID)
		return nil
	},
}

var addPhoneCmd = &cobra.Command{
	Use:   "add-phone <client-id> <phone>",
	Short: "Append a phone number to a client",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}

		s, err := openStore(cmd.Context())
		if err != nil {
			return err
		}
		defer s.close()

		err = s.clients.addPhone.Execute(cmd.Context(), id, args[1])
		return report(cmd.OutOrStdout(), id, err, "updated")
	},
}

var updateCmd = &cobra.Command{
	Use:   "update <client-id>",
	Short: "Update the fields given as flags",
	Long: `Update only the fields whose flag is given. A flag given with an
empty value clears that field, e.g. --email "".`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}

		patch := patchFromFlags(cmd.Flags())
		if len(patch.Assignments()) == 0 {
			return fmt.Errorf("nothing to update: pass at least one of --first-name, --last-name, --email, --phone")
		}

		s, err := openStore(cmd.Context())
		if err != nil {
			return err
		}
		defer s.close()

		err = s.clients.update.Execute(cmd.Context(), id, patch)
		return report(cmd.OutOrStdout(), id, err, "updated")
	},
}

var removePhoneCmd = &cobra.Command{
	Use:   "remove-phone <client-id> <phone>",
	Short: "Remove every occurrence of a phone number from a client",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}

		s, err := openStore(cmd.Context())
		if err != nil {
			return err
		}
		defer s.close()

		err = s.clients.removePhone.Execute(cmd.Context(), id, args[1])
		return report(cmd.OutOrStdout(), id, err, "updated")
	},
}

var deleteCmd = &cobra.Command{
	Use:   "delete <client-id>",
	Short: "Delete a client",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}

		s, err := openStore(cmd.Context())
		if err != nil {
			return err
		}
		defer s.close()

		err = s.clients.delete.Execute(cmd.Context(), id)
		return report(cmd.OutOrStdout(), id, err, "deleted")
	},
}

var findCmd = &cobra.Command{
	Use:   "find",
	Short: "Find clients matching any of the given fields",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		filter := filterFromFlags(cmd.Flags())
		if len(filter.Conditions()) == 0 {
			return fmt.Errorf("nothing to search for: pass at least one of --first-name, --last-name, --email, --phone")
		}

		s, err := openStore(cmd.Context())
		if err != nil {
			return err
		}
		defer s.close()

		clients, err := s.clients.find.Execute(cmd.Context(), filter)
		if err != nil {
			return err
		}

		return printClients(cmd.OutOrStdout(), clients)
	},
}

func init() {
	addCmd.Flags().String("first-name", "", "first name")
	addCmd.Flags().String("last-name", "", "last name")
	addCmd.Flags().String("email", "", "email address")
	addCmd.Flags().StringArray("phone", nil, "phone number (repeatable)")

	updateCmd.Flags().String("first-name", "", "new first name")
	updateCmd.Flags().String("last-name", "", "new last name")
	updateCmd.Flags().String("email", "", "new email address")
	updateCmd.Flags().StringArray("phone", nil, "replacement phone list (repeatable)")

	findCmd.Flags().String("first-name", "", "match first name")
	findCmd.Flags().String("last-name", "", "match last name")
	findCmd.Flags().String("email", "", "match email")
	findCmd.Flags().String("phone", "", "match clients having this phone")

	rootCmd.AddCommand(migrateCmd, addCmd, addPhoneCmd, updateCmd, removePhoneCmd, deleteCmd, findCmd)
}

// --------------------------------------------------
// flag helpers
// --------------------------------------------------

// optionalString is supplied only when the flag was given on the command
// line, so an explicit empty value is kept.
func optionalString(fs *pflag.FlagSet, name string) domain.Optional[string] {
	if !fs.Changed(name) {
		return domain.None[string]()
	}
	v, _ := fs.GetString(name)
	return domain.Some(v)
}

func textFlag(fs *pflag.FlagSet, name string) *string {
	if v, ok := optionalString(fs, name).Get(); ok {
		return &v
	}
	return nil
}

func patchFromFlags(fs *pflag.FlagSet) domain.Patch {
	patch := domain.Patch{
		FirstName: optionalString(fs, "first-name"),
		LastName:  optionalString(fs, "last-name"),
		Email:     optionalString(fs, "email"),
	}
	if fs.Changed("phone") {
		phones, _ := fs.GetStringArray("phone")
		patch.Phones = domain.Some(phones)
	}
	return patch
}

func filterFromFlags(fs *pflag.FlagSet) domain.Filter {
	return domain.Filter{
		FirstName: optionalString(fs, "first-name"),
		LastName:  optionalString(fs, "last-name"),
		Email:     optionalString(fs, "email"),
		Phone:     optionalString(fs, "phone"),
	}
}

func parseID(raw string) (uint, error) {
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("invalid client id %q", raw)
	}
	return uint(id), nil
}

// report prints the outcome of a write on one client. A missing client
// is reported, not returned as an error.
func report(w io.Writer, id uint, err error, verb string) error {
	switch {
	case errors.Is(err, domain.ErrClientNotFound):
		fmt.Fprintf(w, "no client with id %d\n", id)
		return nil
	case err != nil:
		return err
	}
	fmt.Fprintf(w, "client %d %s\n", id, verb)
	return nil
}

func printClients(w io.Writer, clients []models.Client) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tFIRST NAME\tLAST NAME\tEMAIL\tPHONES")
	for _, c := range clients {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n",
			c.ID,
			deref(c.FirstName),
			deref(c.LastName),
			deref(c.Email),
			strings.Join(c.Phone, ","),
		)
	}
	return tw.Flush()
}

func deref(s *string) string {
	if s == nil {
		return "-"
	}
	return *s
}
