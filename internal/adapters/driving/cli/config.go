package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/tramites/internal/adapters/driven/config/file"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or create the configuration file",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	Args:  cobra.NoArgs,
	RunE:  runConfigShow,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a configuration file with the defaults",
	Args:  cobra.NoArgs,
	RunE:  runConfigInit,
}

var configAstraCmd = &cobra.Command{
	Use:   "astra",
	Short: "Store Astra DB connection settings",
	Long: `Saves the Astra Data API endpoint and application token to the config
file and selects the astra document store. The token is read from the
terminal without echo.`,
	Args: cobra.NoArgs,
	RunE: runConfigAstra,
}

var (
	configInitForce bool
	astraEndpoint   string
	astraKeyspace   string
)

func init() {
	configInitCmd.Flags().BoolVar(&configInitForce, "force", false, "Overwrite an existing file")
	configAstraCmd.Flags().StringVar(&astraEndpoint, "endpoint", "", "API endpoint (prompted when empty)")
	configAstraCmd.Flags().StringVar(&astraKeyspace, "keyspace", "", "Keyspace (default default_keyspace)")

	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configAstraCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigShow(cmd *cobra.Command, _ []string) error {
	c := cfg
	c.Store.Astra.Token = maskToken(c.Store.Astra.Token)

	source := cfgStore.Path()
	if !cfgStore.Exists() {
		source += " (not found, using defaults)"
	}
	cmd.Printf("# %s\n", source)

	out, err := encodeConfig(c)
	if err != nil {
		return err
	}
	cmd.Print(out)

	if err := cfg.Validate(); err != nil {
		cmd.Printf("\n# Invalid configuration:\n# %s\n", strings.ReplaceAll(err.Error(), "\n", "\n# "))
	}
	return nil
}

func runConfigInit(cmd *cobra.Command, _ []string) error {
	if cfgStore.Exists() && !configInitForce {
		return fmt.Errorf("%s already exists (use --force to overwrite)", cfgStore.Path())
	}
	if err := cfgStore.Save(file.Default()); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	cmd.Printf("Wrote %s\n", cfgStore.Path())
	return nil
}

func runConfigAstra(cmd *cobra.Command, _ []string) error {
	in := bufio.NewReader(cmd.InOrStdin())

	endpoint := astraEndpoint
	if endpoint == "" {
		cmd.Print("Endpoint: ")
		endpoint = readLine(in)
	}
	if endpoint == "" {
		return errors.New("endpoint is required")
	}

	cmd.Print("Token: ")
	token := readSecret(cmd.InOrStdin(), in)
	cmd.Println()
	if token == "" {
		return errors.New("token is required")
	}

	saved := cfgStore.Config()
	saved.Store.Kind = file.StoreAstra
	saved.Store.Astra.Endpoint = endpoint
	saved.Store.Astra.Token = token
	if astraKeyspace != "" {
		saved.Store.Astra.Keyspace = astraKeyspace
	}
	if err := saved.Validate(); err != nil {
		return err
	}
	if err := cfgStore.Save(saved); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	cmd.Printf("Saved Astra settings (token %s) to %s\n", maskToken(token), cfgStore.Path())
	return nil
}

func readLine(r *bufio.Reader) string {
	line, _ := r.ReadString('\n') //nolint:errcheck // EOF yields what was read
	return strings.TrimSpace(line)
}

// readSecret reads without echo when in is a terminal, else a plain line.
func readSecret(in io.Reader, buffered *bufio.Reader) string {
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		secret, err := term.ReadPassword(int(f.Fd()))
		if err == nil {
			return strings.TrimSpace(string(secret))
		}
	}
	return readLine(buffered)
}

func maskToken(token string) string {
	if token == "" {
		return ""
	}
	if len(token) <= 8 {
		return "****"
	}
	return token[:4] + "..." + token[len(token)-4:]
}

func encodeConfig(c file.Config) (string, error) {
	b, err := toml.Marshal(c)
	if err != nil {
		return "", fmt.Errorf("encoding config: %w", err)
	}
	return string(b), nil
}
