package main

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"strings"

	"beauty-solutions-backend/config"
	"beauty-solutions-backend/internal/contactform"
	"beauty-solutions-backend/internal/domain"
	"beauty-solutions-backend/internal/usecase"
	"beauty-solutions-backend/pkg/email"
	"beauty-solutions-backend/pkg/logger"
	"beauty-solutions-backend/pkg/validation"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var logLevel string

	root := &cobra.Command{
		Use:           "contactctl",
		Short:         "Submit contact forms from the command line",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logger.InitWithWriter(os.Stderr, logLevel)
		},
	}
	root.PersistentFlags().StringVar(&logLevel, "log-level", envOr("LOG_LEVEL", "warn"), "debug|info|warn|error")

	root.AddCommand(newSubmitCmd(), newCheckConfigCmd())
	return root
}

func newSubmitCmd() *cobra.Command {
	var (
		req          domain.SubmissionRequest
		mode         string
		open         bool
		companyEmail string
	)

	cmd := &cobra.Command{
		Use:   "submit",
		Short: "Validate a submission and relay it or hand it to the mail client",
		RunE: func(cmd *cobra.Command, args []string) error {
			form, err := buildForm(contactform.Mode(mode), companyEmail, open)
			if err != nil {
				return err
			}

			out, err := form.Submit(cmd.Context(), &req)
			if errors.Is(err, domain.ErrMissingFields) {
				missing := usecase.NewSubmissionValidator().Validate(&req).MissingFields
				return fmt.Errorf("%w (missing: %s)", err, strings.Join(validation.Labels(missing), ", "))
			}
			printOutcome(cmd, out)
			if err != nil {
				return err
			}
			if out.State == contactform.StateError {
				return fmt.Errorf("submission failed")
			}
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&req.Name, "name", "", "Sender name (required)")
	f.StringVar(&req.Email, "email", "", "Sender email (required)")
	f.StringVar(&req.Message, "message", "", "Message body (required)")
	f.StringVar(&req.Company, "company", "", "Company")
	f.StringVar(&req.Country, "country", "", "Country")
	f.StringVar(&req.Phone, "phone", "", "Phone")
	f.StringVar(&req.Interest, "interest", "", "Area of interest")
	f.StringSliceVar(&req.Services, "services", nil, "Selected services, comma separated")
	f.StringVar(&mode, "mode", string(contactform.ModeRelay), "relay|mailto")
	f.BoolVar(&open, "open", false, "Open the mailto link in the default mail client")
	f.StringVar(&companyEmail, "company-email", envOr("COMPANY_EMAIL", "info@beautysolutions.com"), "Inbox shown in fallbacks and mailto links (env COMPANY_EMAIL)")

	return cmd
}

func newCheckConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check-config",
		Short: "Load and validate the relay configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig()
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "provider=%s timeout=%s site=%q\n", cfg.RelayProvider, cfg.RelayTimeout, cfg.SiteName)
			return nil
		},
	}
}

func buildForm(mode contactform.Mode, companyEmail string, open bool) (*contactform.Form, error) {
	fc := contactform.Config{Mode: mode, CompanyEmail: companyEmail}

	switch mode {
	case contactform.ModeRelay:
		// relay mode needs the full provider configuration
		cfg, err := config.LoadConfig()
		if err != nil {
			return nil, err
		}
		relay, err := email.NewRelay(cfg, logger.Log)
		if err != nil {
			return nil, err
		}
		fc.Contact = usecase.NewContactUsecase(relay, usecase.ContactConfigFrom(cfg), nil, nil)
		fc.CompanyEmail = cfg.CompanyEmail
	case contactform.ModeMailto:
		if open {
			fc.Opener = contactform.OpenerFunc(openURI)
		}
	}

	return contactform.New(fc)
}

func printOutcome(cmd *cobra.Command, out contactform.Outcome) {
	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "state=%s\n", out.State)
	if out.StatusText != "" {
		fmt.Fprintln(w, out.StatusText)
	}
	if out.MailtoURI != "" {
		fmt.Fprintln(w, out.MailtoURI)
	}
}

// openURI asks the desktop to open uri with its registered handler
func openURI(uri string) error {
	var c *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		c = exec.Command("open", uri)
	case "windows":
		c = exec.Command("rundll32", "url.dll,FileProtocolHandler", uri)
	default:
		c = exec.Command("xdg-open", uri)
	}
	return c.Start()
}

func envOr(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
