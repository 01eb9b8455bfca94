package cli

import "testing"

func TestOutputPath(t *testing.T) {
	tests := []struct {
		name   string
		output string
		input  string
		ext    string
		want   string
	}{
		{"explicit output wins", "custom.pdf", "invoice.toml", "pdf", "custom.pdf"},
		{"derived from input", "", "invoice.toml", "pdf", "invoice.pdf"},
		{"derived json", "", "invoice.toml", "json", "invoice.json"},
		{"nested path", "", "manifests/acme.toml", "pdf", "manifests/acme.pdf"},
		{"no extension on input", "", "invoice", "pdf", "invoice.pdf"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := outputPath(tt.output, tt.input, tt.ext); got != tt.want {
				t.Errorf("outputPath(%q, %q, %q) = %q, want %q", tt.output, tt.input, tt.ext, got, tt.want)
			}
		})
	}
}

func TestValidateFormat(t *testing.T) {
	for _, f := range []string{"pdf", "text", "json"} {
		if err := validateFormat(f); err != nil {
			t.Errorf("validateFormat(%q) error: %v", f, err)
		}
	}
	if err := validateFormat("svg"); err == nil {
		t.Error("validateFormat(\"svg\") should fail")
	}
}
