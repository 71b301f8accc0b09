package retail

// Config is the per-submission vendor configuration snapshot. A copy is
// taken at the start of a submission and never re-read mid-flight.
type Config struct {
	TokenURL       string
	ClientID       string
	Username       string
	Password       string
	APIBaseURL     string
	ProxyURL       string
	StoreID        string
	WarehouseID    string
	Currency       string
	POSRedirectURL string
}

// ProxyMode reports whether requests go through the local relay instead
// of straight to the vendor endpoints. A transport indirection only:
// the relay re-shapes requests as JSON bodies, the protocol is unchanged.
func (c Config) ProxyMode() bool {
	return c.ProxyURL != ""
}

// Validate checks every field a submission needs. Absence is reported
// as a ConfigError up front, never as a failure deep in the pipeline.
func (c Config) Validate() error {
	var missing []string
	if !c.ProxyMode() && c.TokenURL == "" {
		missing = append(missing, "token URL")
	}
	required := []struct {
		name  string
		value string
	}{
		{"client ID", c.ClientID},
		{"username", c.Username},
		{"password", c.Password},
		{"basket API URL", c.APIBaseURL},
		{"store ID", c.StoreID},
		{"warehouse ID", c.WarehouseID},
		{"currency", c.Currency},
		{"POS redirect URL", c.POSRedirectURL},
	}
	for _, field := range required {
		if field.value == "" {
			missing = append(missing, field.name)
		}
	}
	if len(missing) > 0 {
		return &ConfigError{Missing: missing}
	}
	return nil
}
