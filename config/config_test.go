package config

import (
	"testing"

	"github.com/spf13/pflag"
)

func TestBindRegistersDefaults(t *testing.T) {
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	v := Bind(fs)
	if got := v.GetFloat64("land_surface.lai"); got != 2.0 {
		t.Errorf("land_surface.lai default = %v, want 2.0", got)
	}
	if !v.GetBool("land_surface.swhomogeneous") {
		t.Error("land_surface.swhomogeneous default should be true")
	}
}

func TestValidateRejectsHomogeneousAndWater(t *testing.T) {
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	v := Bind(fs)
	fs.Set("land_surface.swhomogeneous", "true")
	fs.Set("land_surface.swwater", "true")
	if err := Validate(v); err == nil {
		t.Error("expected ConfigInvalid for swhomogeneous+swwater, got nil")
	}
}

func TestValidateAcceptsDefaults(t *testing.T) {
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	v := Bind(fs)
	fs.Set("land_surface.swwater", "false")
	if err := Validate(v); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}
