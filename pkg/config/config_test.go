package config

import "testing"

func TestCredentialsPresent(t *testing.T) {
	tests := []struct {
		name string
		cfg  PlaidConfig
		want bool
	}{
		{
			name: "real credentials",
			cfg:  PlaidConfig{ClientID: "5f1a2b3c4d", Secret: "sandbox-secret-value"},
			want: true,
		},
		{
			name: "empty client id",
			cfg:  PlaidConfig{ClientID: "", Secret: "sandbox-secret-value"},
			want: false,
		},
		{
			name: "empty secret",
			cfg:  PlaidConfig{ClientID: "5f1a2b3c4d", Secret: ""},
			want: false,
		},
		{
			name: "placeholder client id",
			cfg:  PlaidConfig{ClientID: "your_sandbox_client_id_here", Secret: "sandbox-secret-value"},
			want: false,
		},
		{
			name: "placeholder secret with real client id",
			cfg:  PlaidConfig{ClientID: "5f1a2b3c4d", Secret: "your_sandbox_secret_here"},
			want: false,
		},
		{
			name: "both placeholders",
			cfg:  PlaidConfig{ClientID: "your_plaid_client_id_here", Secret: "your_plaid_secret_here"},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.cfg.CredentialsPresent(); got != tt.want {
				t.Errorf("Expected %v for %s, got %v", tt.want, tt.name, got)
			}
		})
	}
}

func TestBaseURL(t *testing.T) {
	tests := []struct {
		env  string
		want string
	}{
		{"sandbox", "https://sandbox.plaid.com"},
		{"development", "https://development.plaid.com"},
		{"production", "https://production.plaid.com"},
		{"", "https://sandbox.plaid.com"},
	}
	for _, tt := range tests {
		cfg := PlaidConfig{Env: tt.env}
		if got := cfg.BaseURL(); got != tt.want {
			t.Errorf("BaseURL(%q): expected %s, got %s", tt.env, tt.want, got)
		}
	}
}
