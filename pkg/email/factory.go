package email

import (
	"fmt"
	"log/slog"

	"beauty-solutions-backend/config"
)

// NewRelay builds the relay selected by RELAY_PROVIDER
func NewRelay(cfg *config.Config, log *slog.Logger) (Relay, error) {
	switch cfg.RelayProvider {
	case config.ProviderWeb3Forms:
		return NewWeb3FormsClient(cfg.Web3FormsEndpoint, cfg.RelayTimeout), nil
	case config.ProviderPostmark:
		return NewPostmarkRelay(
			cfg.PostmarkServerToken,
			cfg.PostmarkAccountToken,
			cfg.PostmarkFromEmail,
			cfg.ContactEmailTo,
			cfg.SiteName,
			cfg.RelayTimeout,
		)
	case config.ProviderSMTP:
		return NewSMTPRelay(
			cfg.SMTPHost,
			cfg.SMTPPort,
			cfg.SMTPUsername,
			cfg.SMTPPassword,
			cfg.SMTPFromEmail,
			cfg.ContactEmailTo,
			cfg.SiteName,
			cfg.RelayTimeout,
		), nil
	case config.ProviderLog:
		return NewLogRelay(log), nil
	default:
		return nil, fmt.Errorf("unknown relay provider %q", cfg.RelayProvider)
	}
}
