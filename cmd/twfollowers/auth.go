package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"twfollowers/pkg/auth"
	"twfollowers/pkg/ui"
)

var (
	loginName  string
	logoutAll  bool
	showGuide  bool
	tokenStdin bool
)

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Manage stored bearer tokens",
	Long: `Manage Twitter API bearer tokens stored on this machine.

Tokens are stored using:
  - System keychain (when available)
  - Encrypted file with PBKDF2 key derivation
  - Environment variables (read-only)

Never share your token or config files!`,
}

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Store a bearer token",
	Long: `Store a bearer token in the system keychain or an encrypted file.

The token is read without echo from the terminal, or from stdin with --stdin.
Use --guide for instructions on creating a token in the developer portal.`,
	Example: `  # Interactive login under the name "default"
  twfollowers auth login

  # Named account, token piped in
  echo "$TOKEN" | twfollowers auth login --name work --stdin`,
	Args: cobra.NoArgs,
	RunE: runLogin,
}

var logoutCmd = &cobra.Command{
	Use:   "logout [name]",
	Short: "Remove a stored bearer token",
	Example: `  twfollowers auth logout work
  twfollowers auth logout --all`,
	Args: cobra.MaximumNArgs(1),
	RunE: runLogout,
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored accounts with masked tokens",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

func init() {
	rootCmd.AddCommand(authCmd)
	authCmd.AddCommand(loginCmd)
	authCmd.AddCommand(logoutCmd)
	authCmd.AddCommand(listCmd)

	loginCmd.Flags().StringVarP(&loginName, "name", "n", "default", "name for the stored account")
	loginCmd.Flags().BoolVar(&showGuide, "guide", false, "show how to obtain a bearer token first")
	loginCmd.Flags().BoolVar(&tokenStdin, "stdin", false, "read the token from stdin")
	logoutCmd.Flags().BoolVar(&logoutAll, "all", false, "remove every stored account")
}

func runLogin(cmd *cobra.Command, args []string) error {
	manager, err := newCredentialManager()
	if err != nil {
		return fmt.Errorf("failed to initialize credential manager: %w", err)
	}

	out := cmd.OutOrStdout()
	if showGuide {
		auth.ShowTokenGuide(out)
	}

	name := strings.TrimSpace(loginName)
	if name == "" {
		return fmt.Errorf("account name is required")
	}

	if existing, _ := manager.Retrieve(name); existing != nil && !tokenStdin {
		fmt.Fprintf(out, "⚠️  Account '%s' already exists. Replace its token? (y/N): ", name)
		answer, _ := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
		if !strings.HasPrefix(strings.ToLower(strings.TrimSpace(answer)), "y") {
			return nil
		}
	}

	var token string
	if tokenStdin {
		token, err = readLine(cmd.InOrStdin())
	} else {
		if !showGuide {
			auth.ShowQuickTokenGuide(out)
		}
		fmt.Fprint(out, "\n🔐 Bearer token (input hidden): ")
		token, err = readSecret(cmd.InOrStdin())
		fmt.Fprintln(out)
	}
	if err != nil {
		return fmt.Errorf("failed to read token: %w", err)
	}

	account := &auth.Account{Name: name, BearerToken: token}
	if err := manager.Store(account); err != nil {
		return err
	}

	ui.PrintSuccess(fmt.Sprintf("Account saved: %s (%s)", name, auth.SanitizeAccount(account).BearerToken))
	fmt.Fprintf(out, "\nUse it with:\n  twfollowers fetch <username> --account %s\n", name)
	return nil
}

func runLogout(cmd *cobra.Command, args []string) error {
	manager, err := newCredentialManager()
	if err != nil {
		return fmt.Errorf("failed to initialize credential manager: %w", err)
	}

	if logoutAll {
		if err := manager.DeleteAll(); err != nil {
			return fmt.Errorf("failed to remove all accounts: %w", err)
		}
		ui.PrintSuccess("All accounts removed")
		return nil
	}

	name := "default"
	if len(args) > 0 {
		name = args[0]
	}
	if err := manager.Delete(name); err != nil {
		return err
	}
	ui.PrintSuccess("Account removed: " + name)
	return nil
}

func runList(cmd *cobra.Command, args []string) error {
	manager, err := newCredentialManager()
	if err != nil {
		return fmt.Errorf("failed to initialize credential manager: %w", err)
	}

	accounts, err := manager.List()
	if err != nil {
		return fmt.Errorf("failed to list accounts: %w", err)
	}

	out := cmd.OutOrStdout()
	if len(accounts) == 0 {
		fmt.Fprintln(out, "No stored accounts. Use 'twfollowers auth login' to add one.")
		return nil
	}

	ui.PrintHighlight(fmt.Sprintf("%d stored account(s)", len(accounts)))
	for i, account := range accounts {
		sanitized := auth.SanitizeAccount(account)
		fmt.Fprintf(out, "%d. %s\n", i+1, sanitized.Name)
		fmt.Fprintf(out, "   Token: %s\n", sanitized.BearerToken)
		fmt.Fprintf(out, "   Last Modified: %s\n", sanitized.LastModified.Format("2006-01-02 15:04:05"))
	}
	return nil
}

// readSecret reads without echo when in is the terminal
func readSecret(in io.Reader) (string, error) {
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		secret, err := term.ReadPassword(int(f.Fd()))
		if err != nil {
			return "", err
		}
		return strings.TrimSpace(string(secret)), nil
	}
	return readLine(in)
}

func readLine(in io.Reader) (string, error) {
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && err != io.EOF {
		return "", err
	}
	return strings.TrimSpace(line), nil
}
