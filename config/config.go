// Package config binds the options table from §6 ("Configuration options
// recognised") the same way the teacher binds InMAP's options: a flat slice
// of {name, usage, shorthand, default} walked once in init, each entry
// registered on a pflag.FlagSet and mirrored into a viper.Viper so TOML
// files, flags and environment variables all resolve the same key.
package config

import (
	"github.com/BurntSushi/toml"
	"github.com/lnashier/viper"
	"github.com/spf13/pflag"

	"github.com/microhh-go/landsurface/surferr"
)

type option struct {
	name, usage, shorthand string
	defaultVal             interface{}
}

var options = []option{
	{name: "boundary.swconstantz0", usage: "hold roughness lengths constant across the domain (not read by lsmctl, which always uses the iterative Obukhov solver)", defaultVal: true},
	{name: "boundary.z0m", usage: "constant momentum roughness length (m), used when swconstantz0", defaultVal: 0.1},
	{name: "boundary.z0h", usage: "constant scalar roughness length (m), used when swconstantz0", defaultVal: 0.1},

	{name: "land_surface.swhomogeneous", usage: "use scalar land-surface properties for every cell", defaultVal: true},
	{name: "land_surface.swfreedrainage", usage: "free-drainage soil-moisture bottom boundary instead of closed", defaultVal: true},
	{name: "land_surface.swwater", usage: "enable the open-water tskin_water tile short-circuit", defaultVal: false},
	{name: "land_surface.tskin_water", usage: "prescribed skin temperature of open-water cells (K)", defaultVal: 290.0},

	{name: "land_surface.gD", usage: "VPD correction coefficient for canopy resistance", defaultVal: 0.0},
	{name: "land_surface.c_veg", usage: "vegetation fraction", defaultVal: 0.9},
	{name: "land_surface.lai", usage: "leaf area index", defaultVal: 2.0},
	{name: "land_surface.rs_veg_min", usage: "minimum canopy resistance (s/m)", defaultVal: 100.0},
	{name: "land_surface.rs_soil_min", usage: "minimum soil resistance (s/m)", defaultVal: 50.0},
	{name: "land_surface.lambda_stable", usage: "skin-to-soil conductance, stable stratification (W/m^2/K)", defaultVal: 5.0},
	{name: "land_surface.lambda_unstable", usage: "skin-to-soil conductance, unstable stratification (W/m^2/K)", defaultVal: 5.0},
	{name: "land_surface.cs_veg", usage: "vegetation skin heat capacity (J/m^2/K)", defaultVal: 0.0},

	{name: "diagnostics.domain_violation_guard", usage: "govaluate expression for a config.DomainGuard (not evaluated by lsmctl or Model.Step)", defaultVal: ""},
}

// Cfg is the bound configuration, populated by Bind.
var Cfg *viper.Viper

// Bind registers every option on fs and mirrors it into a fresh
// viper.Viper, matching inmaputil/cmd.go's per-type switch.
func Bind(fs *pflag.FlagSet) *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix("LSM")

	for _, o := range options {
		switch d := o.defaultVal.(type) {
		case string:
			fs.String(o.name, d, o.usage)
		case bool:
			fs.Bool(o.name, d, o.usage)
		case float64:
			fs.Float64(o.name, d, o.usage)
		default:
			panic("config: unsupported option type for " + o.name)
		}
		v.BindPFlag(o.name, fs.Lookup(o.name))
	}
	Cfg = v
	return v
}

// LoadTOML merges a TOML config file into v, following §6's on-disk
// configuration format.
func LoadTOML(v *viper.Viper, path string) error {
	var raw map[string]interface{}
	if _, err := toml.DecodeFile(path, &raw); err != nil {
		return surferr.New(surferr.IOFailed, "config.LoadTOML", err)
	}
	return v.MergeConfigMap(raw)
}

// Validate enforces the §7 ConfigInvalid rules: swhomogeneous and swwater
// cannot both hold, per the distilled spec's own text and §4.J's
// open-water short-circuit, which only makes sense per-cell.
func Validate(v *viper.Viper) error {
	if v.GetBool("land_surface.swhomogeneous") && v.GetBool("land_surface.swwater") {
		return surferr.New(surferr.ConfigInvalid, "config.Validate",
			errInvalidCombination{"land_surface.swhomogeneous and land_surface.swwater cannot both be set"})
	}
	return nil
}

type errInvalidCombination struct{ msg string }

func (e errInvalidCombination) Error() string { return e.msg }
