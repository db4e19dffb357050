package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"syscall"

	"github.com/existflow/taskdeck/internal/api"
	"github.com/existflow/taskdeck/internal/config"
	"github.com/existflow/taskdeck/internal/logger"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var (
	authServer string
	authName   string
	authMagic  bool
)

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Manage authentication",
	Long:  `Register, log in, log out, and inspect the current session.`,
}

var authRegisterCmd = &cobra.Command{
	Use:   "register [email]",
	Short: "Create a new account",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := loadOrDefaultConfig()
		serverURL := pickServer(cfg)

		password, err := promptPassword("Password: ")
		if err != nil {
			return err
		}
		confirmPw, err := promptPassword("Confirm password: ")
		if err != nil {
			return err
		}
		if password != confirmPw {
			return fmt.Errorf("passwords do not match")
		}

		client := api.NewClient(serverURL, "")
		result, err := client.Register(args[0], password, authName)
		if err != nil {
			return fmt.Errorf("registration failed: %w", err)
		}

		if err := saveSession(serverURL, result, args[0]); err != nil {
			return err
		}

		logger.Info("Registered new account", logger.F("email", args[0]))
		fmt.Printf("Registered and logged in as %s\n", args[0])
		return nil
	},
}

var authLoginCmd = &cobra.Command{
	Use:   "login [email]",
	Short: "Log in to a TaskDeck server",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := loadOrDefaultConfig()
		serverURL := pickServer(cfg)
		email := args[0]
		client := api.NewClient(serverURL, "")

		var result *api.AuthResult
		var err error
		if authMagic {
			devToken, reqErr := client.RequestMagicLink(email)
			if reqErr != nil {
				return fmt.Errorf("magic link request failed: %w", reqErr)
			}
			fmt.Println("A magic link has been requested for", email)
			token := devToken
			if token == "" {
				token, err = promptLine("Paste the magic link token: ")
				if err != nil {
					return err
				}
			}
			result, err = client.VerifyMagicLink(token)
			if err != nil {
				return fmt.Errorf("magic link verification failed: %w", err)
			}
		} else {
			password, pwErr := promptPassword("Password: ")
			if pwErr != nil {
				return pwErr
			}
			result, err = client.Login(email, password)
			if err != nil {
				return fmt.Errorf("login failed: %w", err)
			}
		}

		if err := saveSession(serverURL, result, email); err != nil {
			return err
		}

		logger.Info("Logged in", logger.F("email", email))
		fmt.Printf("Logged in as %s\n", email)
		return nil
	},
}

var authLogoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Log out and discard the saved session",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, client, session, err := loadClient()
		if err != nil {
			return err
		}

		// Best effort: the local session is cleared even if the server
		// is unreachable.
		if err := client.Logout(); err != nil {
			logger.Warn("Server logout failed", logger.F("error", err))
		}
		if err := session.Clear(); err != nil {
			return fmt.Errorf("failed to clear session: %w", err)
		}

		fmt.Println("Logged out.")
		return nil
	},
}

var authStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the current session",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := loadOrDefaultConfig()
		session, err := api.LoadSession(cfg.ServerURL)
		if err != nil {
			return err
		}
		if !session.IsLoggedIn() {
			fmt.Println("Not logged in.")
			return nil
		}

		fmt.Printf("Logged in as %s\n", session.Email)
		fmt.Printf("Server: %s\n", session.ServerURL)

		if _, err := session.Client().Me(); err != nil {
			fmt.Println("Session check failed:", err)
		} else {
			fmt.Println("Session is valid.")
		}
		return nil
	},
}

func loadOrDefaultConfig() *config.Config {
	cfg, err := config.Load()
	if err != nil {
		return config.DefaultConfig()
	}
	return cfg
}

func pickServer(cfg *config.Config) string {
	if authServer != "" {
		return authServer
	}
	return cfg.ServerURL
}

func saveSession(serverURL string, result *api.AuthResult, email string) error {
	session := &api.Session{
		ServerURL: serverURL,
		Token:     result.Token,
		UserID:    result.UserID,
		Email:     email,
	}
	if err := session.Save(); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

func promptPassword(prompt string) (string, error) {
	fmt.Print(prompt)
	raw, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println()
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	return string(raw), nil
}

func promptLine(prompt string) (string, error) {
	fmt.Print(prompt)
	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func init() {
	authCmd.PersistentFlags().StringVar(&authServer, "server", "", "Server URL (defaults to the configured server)")
	authRegisterCmd.Flags().StringVar(&authName, "name", "", "Display name for the new profile")
	authLoginCmd.Flags().BoolVar(&authMagic, "magic-link", false, "Log in with a magic link instead of a password")

	authCmd.AddCommand(authRegisterCmd)
	authCmd.AddCommand(authLoginCmd)
	authCmd.AddCommand(authLogoutCmd)
	authCmd.AddCommand(authStatusCmd)
}
