//go:build !pprof

package profile

import "testing"

func TestMake(t *testing.T) {
	c := Make(WithMode("cpu"), WithDir("/tmp/p"), WithQuiet(true))

	want := Config{Mode: "cpu", Dir: "/tmp/p", Quiet: true}
	if c != want {
		t.Errorf("Make() = %+v, want %+v", c, want)
	}
}

func TestStartDisabled(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
	}{
		{name: "zero", cfg: Config{}},
		{name: "mode without tag", cfg: Make(WithMode("cpu"))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := tt.cfg.Start()
			if _, ok := s.(ignore); !ok {
				t.Errorf("Start() = %T, want no-op", s)
			}

			s.Stop()
		})
	}
}

func TestValidate(t *testing.T) {
	if err := (Config{}).Validate(); err != nil {
		t.Errorf("Validate() on zero Config = %v, want nil", err)
	}

	if err := Make(WithMode("cpu")).Validate(); err == nil {
		t.Error("Validate() = nil, want error for mode without pprof tag")
	}

	if got := Modes(); len(got) != 0 {
		t.Errorf("Modes() = %v, want none", got)
	}
}
