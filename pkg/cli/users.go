package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/astrobooklet/astroctl/pkg/gateway"
	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
)

var usersCmd = &cobra.Command{
	Use:   "users",
	Short: "Manage backend users",
	Long:  `Manage backend users: list them, fetch one, or save a new profile.`,
}

var usersListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List all users",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := dispatchAction(cmd, gateway.ActionListUsers, gateway.Params{})

		r := gateway.RenderOutcome(out)
		if !jsonOutput && r.Kind == gateway.RenderData {
			if users, ok := r.Data.([]any); ok {
				if err := emitOutcome(gateway.ActionListUsers, out); err != nil {
					return err
				}
				fmt.Printf("Found %d user(s)\n", len(users))
				return nil
			}
		}
		return emitOutcome(gateway.ActionListUsers, out)
	},
}

var usersGetCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Fetch a single user by ID",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseUserID(args[0])
		if err != nil {
			return err
		}
		return runAction(cmd, gateway.ActionGetUser, gateway.Params{
			Path: map[string]string{"id": id},
		})
	},
}

var (
	saveFirstName string
	saveLastName  string
	saveBirthdate string
	saveBirthtime string
	saveCity      string
	saveCountry   string
	saveLogin     string
	saveTimezone  string
)

var usersSaveCmd = &cobra.Command{
	Use:   "save",
	Short: "Save a user profile",
	Long: `Save a user profile. Provide fields as flags, or run without --first-name
to fill them in interactively.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		// If flags were intentionally omitted (just ran "astroctl users save"),
		// collect the profile interactively.
		if !cmd.Flags().Changed("first-name") {
			if err := runSaveForm(); err != nil {
				return err
			}
		}

		payload := gateway.UserPayload{
			FirstName: saveFirstName,
			LastName:  saveLastName,
			Birthdate: saveBirthdate,
			Birthtime: saveBirthtime,
			City:      saveCity,
			Country:   saveCountry,
			Login:     saveLogin,
			Timezone:  saveTimezone,
		}
		if err := payload.Validate(); err != nil {
			return err
		}

		out := dispatchAction(cmd, gateway.ActionSaveUser, gateway.Params{Body: payload})
		if !jsonOutput && out.Kind == gateway.OutcomeResponse && out.Status < 400 {
			fmt.Println("User saved successfully!")
		}
		return emitOutcome(gateway.ActionSaveUser, out)
	},
}

// runSaveForm collects the profile fields in two groups, mirroring the two
// columns of the save screen.
func runSaveForm() error {
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("First name").
				Placeholder("Mara").
				Value(&saveFirstName).
				Validate(func(s string) error {
					if s == "" {
						return errors.New("first name is required")
					}
					return nil
				}),
			huh.NewInput().
				Title("Last name").
				Value(&saveLastName),
			huh.NewInput().
				Title("Birth date (YYYY-MM-DD)").
				Placeholder("1990-04-21").
				Value(&saveBirthdate).
				Validate(validateDate),
			huh.NewInput().
				Title("Birth time (HH:MM)").
				Placeholder("08:30").
				Value(&saveBirthtime).
				Validate(validateTime),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("City of birth").
				Placeholder("São Paulo").
				Value(&saveCity),
			huh.NewInput().
				Title("Country of birth").
				Value(&saveCountry),
			huh.NewInput().
				Title("Login").
				Value(&saveLogin),
			huh.NewInput().
				Title("Timezone").
				Placeholder("America/Sao_Paulo").
				Value(&saveTimezone),
		),
	)
	return form.Run()
}

// validateDate accepts an empty value or a YYYY-MM-DD date.
func validateDate(s string) error {
	if s == "" {
		return nil
	}
	if _, err := time.Parse("2006-01-02", s); err != nil {
		return errors.New("use YYYY-MM-DD")
	}
	return nil
}

// validateTime accepts an empty value or a 24h HH:MM time.
func validateTime(s string) error {
	if s == "" {
		return nil
	}
	if _, err := time.Parse("15:04", s); err != nil {
		return errors.New("use HH:MM")
	}
	return nil
}

func init() {
	rootCmd.AddCommand(usersCmd)
	usersCmd.AddCommand(usersListCmd)
	usersCmd.AddCommand(usersGetCmd)

	usersSaveCmd.Flags().StringVar(&saveFirstName, "first-name", "", "First name (required)")
	usersSaveCmd.Flags().StringVar(&saveLastName, "last-name", "", "Last name")
	usersSaveCmd.Flags().StringVar(&saveBirthdate, "birthdate", "", "Birth date (YYYY-MM-DD)")
	usersSaveCmd.Flags().StringVar(&saveBirthtime, "birthtime", "", "Birth time (HH:MM)")
	usersSaveCmd.Flags().StringVar(&saveCity, "city", "", "City of birth")
	usersSaveCmd.Flags().StringVar(&saveCountry, "country", "", "Country of birth")
	usersSaveCmd.Flags().StringVar(&saveLogin, "login", "", "Login name")
	usersSaveCmd.Flags().StringVar(&saveTimezone, "timezone", "", "IANA timezone, e.g. America/Sao_Paulo")
	usersCmd.AddCommand(usersSaveCmd)
}
