package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// AddFlagValidation makes flagName reject values validator refuses while the
// command line is parsed.
func AddFlagValidation(cmd *cobra.Command, flagName string, validator func(string) error) {
	flag := cmd.Flags().Lookup(flagName)
	if flag == nil {
		return
	}

	flag.Value = &validatingValue{
		Value:     flag.Value,
		validator: validator,
	}
}

type validatingValue struct {
	pflag.Value
	validator func(string) error
}

func (v *validatingValue) Set(val string) error {
	if v.validator != nil {
		if err := v.validator(val); err != nil {
			return err
		}
	}
	return v.Value.Set(val)
}

// validateFormat accepts one of formats, ignoring case.
func validateFormat(format string, formats []string) error {
	for _, valid := range formats {
		if strings.EqualFold(format, valid) {
			return nil
		}
	}
	return fmt.Errorf("unsupported format %q (supported: %s)", format, strings.Join(formats, ", "))
}
