package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

/*
bindConfig fills the flags of the command that were not set on the command
line with the values found for them on ARBOR_* environment variables (with
dashes replaced by underscores, as in ARBOR_CLASS_FEATURE) or, failing that,
on the YML file at configFile if one is given.
*/
func bindConfig(cmd *cobra.Command, configFile string) error {
	v := viper.New()
	v.SetEnvPrefix("arbor")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	if configFile != "" {
		v.SetConfigFile(configFile)
		v.SetConfigType("yml")
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("reading config file %s: %v", configFile, err)
		}
	}
	var err error
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		if err != nil || f.Changed || f.Name == "config" || !v.IsSet(f.Name) {
			return
		}
		if serr := cmd.Flags().Set(f.Name, v.GetString(f.Name)); serr != nil {
			err = fmt.Errorf("setting %s from configuration: %v", f.Name, serr)
		}
	})
	return err
}
