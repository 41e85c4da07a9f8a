package main

import (
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// bindFlags exposes every flag in fs to v under its config key
// (dashes become underscores), so only flags the user changed override
// lower-precedence sources.
func bindFlags(v *viper.Viper, fs *pflag.FlagSet) {
	fs.VisitAll(func(f *pflag.Flag) {
		if f.Name == "config" {
			return
		}
		_ = v.BindPFlag(flagKey(f.Name), f)
	})
}

func flagKey(name string) string { return strings.ReplaceAll(name, "-", "_") }
