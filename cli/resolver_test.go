package cli

import (
	"strings"
	"testing"

	"github.com/alecthomas/kong"
	"github.com/google/go-cmp/cmp"
)

func TestResolve(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want config
	}{
		{
			name: "nested",
			yaml: "log:\n  level: debug\n  caller: true\n",
			want: config{"log-level": "debug", "log-caller": true},
		},
		{
			name: "flat",
			yaml: "log-format: json\nlog_time_layout: Kitchen\n",
			want: config{"log-format": "json", "log_time_layout": "Kitchen"},
		},
		{
			name: "numbers",
			yaml: "indent: 4\nratio: 0.5\noffset: -1\n",
			want: config{"indent": "4", "ratio": "0.5", "offset": "-1"},
		},
		{
			name: "empty",
			yaml: "",
			want: config{},
		},
		{
			name: "malformed",
			yaml: "log: [",
			want: config{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := resolve(t.Context())(strings.NewReader(tt.yaml))
			if err != nil {
				t.Fatalf("resolve: %v", err)
			}

			if diff := cmp.Diff(tt.want, r); diff != "" {
				t.Errorf("config mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestConfig_Resolve(t *testing.T) {
	cfg := config{"log-level": "warn", "log_time_layout": "Kitchen"}

	tests := []struct {
		flag string
		want any
	}{
		{"log-level", "warn"},
		{"log-time-layout", "Kitchen"},
		{"log-format", nil},
	}

	for _, tt := range tests {
		t.Run(tt.flag, func(t *testing.T) {
			flag := &kong.Flag{Value: &kong.Value{Name: tt.flag}}

			got, err := cfg.Resolve(nil, nil, flag)
			if err != nil {
				t.Fatalf("Resolve: %v", err)
			}

			if got != tt.want {
				t.Errorf("Resolve(%q) = %v, want %v", tt.flag, got, tt.want)
			}
		})
	}
}
